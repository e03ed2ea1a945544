package filemaker

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Error is a classified integration failure
type Error struct {
	Kind     ErrorKind
	Op       string
	Location string // file:line where the failure was classified
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError classifies err and records the caller's location
func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{
		Kind:     kind,
		Op:       op,
		Location: callerLocation(2),
		Err:      err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// LocationOf returns the recorded location of the first *Error in err's chain
func LocationOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Location
	}
	return ""
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
