package main

import (
	"os"

	"github.com/LambdaTest/xdist-tracker/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
