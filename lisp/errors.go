// This file is part of golisp - https://github.com/db47h/golisp

package lisp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the outcome of an operation performed by this package.
type Kind int

// Error kinds.
const (
	KindOK Kind = iota
	KindError
	KindOutOfMemory
	KindBadArgument
	KindUnsupported
	KindOverflow
	KindBug
)

var kindStrings = [...]string{
	KindOK:          "ok",
	KindError:       "error",
	KindOutOfMemory: "out-of-memory",
	KindBadArgument: "bad-argument",
	KindUnsupported: "unsupported",
	KindOverflow:    "overflow",
	KindBug:         "bug",
}

// ErrorString returns the human readable name of an error Kind.
func ErrorString(k Kind) string {
	if int(k) < 0 || int(k) >= len(kindStrings) {
		return "unknown"
	}
	return kindStrings[k]
}

// Error is the concrete error type produced by this package. It carries the
// Kind taxonomy from spec §7 plus an optional static or dynamic message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return ErrorString(e.Kind)
	}
	return ErrorString(e.Kind) + ": " + e.Message
}

// newError builds an *Error and wraps it with call-site context, mirroring
// the errors.Wrap chains vm.Run/io.go build around I/O and panics.
func newError(k Kind, msg string) error {
	return errors.WithStack(&Error{Kind: k, Message: msg})
}

func newErrorf(k Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: k, Message: fmt.Sprintf(format, args...)})
}

// causeError unwraps err down to the innermost *Error, the way
// cmd/retro/main.go unwraps down to io.EOF with errors.Cause.
func causeError(err error) *Error {
	if err == nil {
		return nil
	}
	type causer interface{ Cause() error }
	for {
		if e, ok := err.(*Error); ok {
			return e
		}
		c, ok := err.(causer)
		if !ok {
			return &Error{Kind: KindError, Message: err.Error()}
		}
		err = c.Cause()
	}
}
