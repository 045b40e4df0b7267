package rendezvous

import (
	"errors"
)

var (
	// ErrClosed is the rejection reason for a put against a closed channel,
	// including puts that were still queued when the channel closed.
	ErrClosed = errors.New("csp: put on closed channel")

	// ErrAlreadyClosed is returned when closing a channel that is already
	// closed.
	ErrAlreadyClosed = errors.New("csp: close of closed channel")
)

// UnreachableError marks a broken internal invariant. It is raised with
// panic, and never returned to callers.
type UnreachableError struct {
	Message string
}

func (e *UnreachableError) Error() string {
	if e.Message == "" {
		return "csp: unreachable"
	}
	return "csp: unreachable: " + e.Message
}

func unreachable(msg string) *UnreachableError {
	return &UnreachableError{Message: msg}
}
