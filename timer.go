package csp

import (
	"math"

	eventloop "github.com/joeycumines/go-eventloop"
)

// MaxDelay is the largest delay, in milliseconds, accepted by [After] and
// [Sleep].
const MaxDelay = math.MaxInt32

func checkDelay(delayMs int) error {
	if delayMs < 0 || delayMs > MaxDelay {
		return &BoundsError{Delay: delayMs}
	}
	return nil
}

// After returns a channel that receives delayMs, exactly once, after delayMs
// milliseconds. A delay outside [0, MaxDelay] fails immediately, with a
// [*BoundsError]. Must be called on the event loop goroutine.
//
// The channel is never closed by After. Since the channel is unbuffered, a
// value that is never received leaves the timer's put waiting forever.
func After(js *eventloop.JS, delayMs int, opts ...Option) (*Chan[int], error) {
	if err := checkDelay(delayMs); err != nil {
		return nil, err
	}
	c := New[int](js, opts...)
	if _, err := js.SetTimeout(func() {
		c.PutFunc(delayMs, func(err error) {
			if err != nil {
				c.logger.Debug().
					Uint64(`chan`, c.id).
					Int(`delay`, delayMs).
					Err(err).
					Log(`timer value discarded`)
			}
		})
	}, delayMs); err != nil {
		return nil, err
	}
	return c, nil
}

// Sleep returns a promise that resolves after delayMs milliseconds. A delay
// outside [0, MaxDelay] fails immediately, with a [*BoundsError].
func Sleep(js *eventloop.JS, delayMs int) (*eventloop.ChainedPromise, error) {
	if js == nil {
		panic(`csp: nil js`)
	}
	if err := checkDelay(delayMs); err != nil {
		return nil, err
	}
	p, resolve, _ := js.NewChainedPromise()
	if _, err := js.SetTimeout(func() {
		resolve(nil)
	}, delayMs); err != nil {
		return nil, err
	}
	return p, nil
}
