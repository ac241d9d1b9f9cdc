package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the lifecycle controller can surface.
// Nothing leaves the service layer unclassified; handlers map kinds to HTTP
// status codes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindInvalidState
	KindUpload
	KindPersistence
	// KindPartialFailure marks a secondary coupled effect that failed after
	// the primary effect committed. It is logged for operator follow-up, not
	// returned to callers.
	KindPartialFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindUpload:
		return "upload"
	case KindPersistence:
		return "persistence"
	case KindPartialFailure:
		return "partial_failure"
	}
	return "unknown"
}

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds a classified error with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrap(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or 0 when err is not a service error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
