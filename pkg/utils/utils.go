package utils

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates uuid v4
func GenerateUUID() string {
	uuidV4 := uuid.New() // panics on error
	return strings.Map(func(r rune) rune {
		if r == '-' {
			return -1
		}
		return r
	}, uuidV4.String())
}

// RecordBlobPath returns the blob path of a record file below an optional folder.
func RecordBlobPath(folder, fileName string) string {
	if folder == "" {
		return fileName
	}
	return path.Join(folder, fileName)
}
