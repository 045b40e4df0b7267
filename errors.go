package csp

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-csp/internal/rendezvous"
)

var (
	// ErrClosed is the rejection reason for a put against a closed channel,
	// and for queued puts that are released by [Chan.Close].
	ErrClosed = rendezvous.ErrClosed

	// ErrAlreadyClosed is returned by [Chan.Close] if the channel is already
	// closed.
	ErrAlreadyClosed = rendezvous.ErrAlreadyClosed

	// ErrOutOfBounds matches any [*BoundsError], via [errors.Is].
	ErrOutOfBounds = errors.New("csp: delay out of bounds")
)

// UnreachableError indicates a broken internal invariant. It is only ever
// raised by panic.
type UnreachableError = rendezvous.UnreachableError

// BoundsError is returned, synchronously, by [After] and [Sleep] for a delay
// outside of [0, MaxDelay].
type BoundsError struct {
	Delay int
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("csp: %d is out of int32 bound or is negative", e.Delay)
}

// Unwrap returns [ErrOutOfBounds].
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
