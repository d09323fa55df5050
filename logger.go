package twittertext

import (
	"log"
	"os"
)

// Logger reports internal invariant violations, such as entities of
// different types still overlapping after conflict resolution. Those are
// grammar defects, not input errors, so they are logged rather than
// returned.
var Logger = log.New(os.Stderr, "[twittertext] ", log.LstdFlags)

// SetLogger replaces the package logger.
func SetLogger(logger *log.Logger) {
	Logger = logger
}
