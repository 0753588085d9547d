package constants

// BinaryVersion is overridden at build time with -ldflags.
var BinaryVersion = "dev"
