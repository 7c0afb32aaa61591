// Package errors marks errors with the place they passed through.
//
//	return xe.Wrap(err)
//
// A marked error reads like
//
//	github.com/azure/feast-azure/pkg/db/postgres.New (/src/pkg/db/postgres/database.go:51): cause
//
// with the note, if any, in brackets before the colon.
package errors

import (
	"errors"
	"runtime"
	"strconv"
	"strings"
)

// ErrWithCaller is an error marked with the frame which wrapped it.
type ErrWithCaller struct {
	frame runtime.Frame
	note  string
	cause error
}

func (e *ErrWithCaller) File() string { return e.frame.File }

func (e *ErrWithCaller) Line() int { return e.frame.Line }

func (e *ErrWithCaller) Error() string {
	b := new(strings.Builder)
	b.WriteString(e.frame.Function)
	b.WriteString(" (")
	b.WriteString(e.frame.File)
	b.WriteString(":")
	b.WriteString(strconv.Itoa(e.frame.Line))
	b.WriteString(")")
	if e.note != "" {
		b.WriteString(" [")
		b.WriteString(e.note)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.cause.Error())
	return b.String()
}

func (e *ErrWithCaller) Unwrap() error {
	return e.cause
}

// New is errors.New marked with its caller.
func New(text string) error {
	return &ErrWithCaller{frame: caller(1), cause: errors.New(text)}
}

// Wrap marks err with its caller.
func Wrap(err error) error {
	return &ErrWithCaller{frame: caller(1), cause: err}
}

// WrapWithNote is Wrap with a note, like the query which has failed.
func WrapWithNote(note string, err error) error {
	return &ErrWithCaller{frame: caller(1), note: note, cause: err}
}

// caller returns the frame skip levels above its caller.
func caller(skip int) runtime.Frame {
	pc := make([]uintptr, 1)
	if runtime.Callers(skip+2, pc) == 0 {
		return runtime.Frame{Function: "(unknown func)", File: "?", Line: -1}
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	return frame
}
