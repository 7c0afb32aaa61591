// Package logger builds loggers for messages to feastctl users.
package logger

import (
	"io"
	"log"
	"os"
)

// Null discards messages. Tasks under test use it.
func Null() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Default writes messages to stderr, prefixed with "[name] ".
func Default(name string) *log.Logger {
	return log.New(os.Stderr, "["+name+"] ", log.LstdFlags)
}
