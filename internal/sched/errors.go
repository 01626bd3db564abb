package sched

import "fmt"

// Code classifies a scheduler error.
type Code int

const (
	CodeUnknown Code = iota
	CodeAlreadyExists
	CodeNotFound
	CodeOutOfMemory
	CodeInvalidArgument
	CodeNotImplemented
)

func (c Code) String() string {
	switch c {
	case CodeAlreadyExists:
		return "already_exists"
	case CodeNotFound:
		return "not_found"
	case CodeOutOfMemory:
		return "out_of_memory"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeNotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}

// Error is the scheduler's structured error type: the operation, the
// (task, event) pair involved, a Code, and an optional wrapped cause.
type Error struct {
	Op    string
	Task  TaskID
	Event EventID
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s (task=%d event=%d code=%s)", e.Op, e.Msg, e.Task, e.Event, e.Code)
	}
	return fmt.Sprintf("%s: code=%s (task=%d event=%d)", e.Op, e.Code, e.Task, e.Event)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Inner
}

// Is matches on Code so callers can do errors.Is(err, sched.ErrAlreadyExists).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(op string, task TaskID, event EventID, code Code, msg string) *Error {
	return &Error{Op: op, Task: task, Event: event, Code: code, Msg: msg}
}

// Sentinel errors, matched by Code via errors.Is — package-level
// values so callers don't need to construct an *Error to compare
// against one.
var (
	ErrAlreadyExists   = &Error{Op: "sched", Code: CodeAlreadyExists, Msg: "entry already armed"}
	ErrNotFound        = &Error{Op: "sched", Code: CodeNotFound, Msg: "entry not found"}
	ErrOutOfMemory     = &Error{Op: "sched", Code: CodeOutOfMemory, Msg: "allocator exhausted"}
	ErrInvalidArgument = &Error{Op: "sched", Code: CodeInvalidArgument, Msg: "invalid argument"}
	ErrNotImplemented  = &Error{Op: "sched", Code: CodeNotImplemented, Msg: "not implemented"}
)

// AssertHandler is invoked when a core invariant is violated by a
// caller (e.g. an out-of-range TaskID reaching a public entry point).
// The platform decides whether to panic, log-and-continue, or reset.
// Default panics, since a cooperative kernel has nowhere safe to
// continue running after a corrupted invariant.
var AssertHandler func(msg string) = func(msg string) {
	panic("sched: assertion failed: " + msg)
}

func assert(cond bool, msg string) {
	if !cond {
		AssertHandler(msg)
	}
}
