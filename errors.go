package st

import (
	"errors"

	"github.com/peos-rtos/st/internal/sched"
)

// Error is the scheduler's structured error type, re-exported so
// callers never need to import internal/sched directly.
type Error = sched.Error

// Code classifies an Error.
type Code = sched.Code

const (
	CodeUnknown         = sched.CodeUnknown
	CodeAlreadyExists   = sched.CodeAlreadyExists
	CodeNotFound        = sched.CodeNotFound
	CodeOutOfMemory     = sched.CodeOutOfMemory
	CodeInvalidArgument = sched.CodeInvalidArgument
	CodeNotImplemented  = sched.CodeNotImplemented
)

// Sentinel errors, for callers that want a simple value to compare
// against with errors.Is rather than constructing an *Error.
var (
	ErrAlreadyExists   = sched.ErrAlreadyExists
	ErrNotFound        = sched.ErrNotFound
	ErrOutOfMemory     = sched.ErrOutOfMemory
	ErrInvalidArgument = sched.ErrInvalidArgument
	ErrNotImplemented  = sched.ErrNotImplemented
)

// IsCode reports whether err is a structured Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// SetAssertHandler installs the hook invoked whenever a core invariant
// is violated by a caller (e.g. a TaskID out of range reaching a
// public method). The default panics; a platform embedding this
// scheduler in something with a watchdog reset can override it to
// reset instead.
func SetAssertHandler(h func(msg string)) {
	sched.AssertHandler = h
}
