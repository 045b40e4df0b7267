package csp

import (
	"sync/atomic"

	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/joeycumines/logiface"

	"github.com/joeycumines/go-csp/internal/rendezvous"
)

// Received is the outcome of a receive. OK is false only for the closed
// sentinel, in which case Value is the zero value.
type Received[T any] struct {
	Value T
	OK    bool
}

// Chan is an unbuffered, closable rendezvous channel, driven by an
// [eventloop.JS]. A value is handed over only when a producer and a consumer
// are both present, and producers are matched with consumers in FIFO order.
//
// All methods must be called on the event loop goroutine. Operations that
// would block return an [eventloop.ChainedPromise], the continuations of
// which run as microtasks on the loop.
//
// Create instances with [New]. The zero value is not usable.
type Chan[T any] struct {
	js     *eventloop.JS
	logger *logiface.Logger[logiface.Event]
	core   rendezvous.Core[T]
	id     uint64
}

var chanIDCounter atomic.Uint64

// New creates an open channel bound to js. New panics if js is nil or any
// option fails validation.
func New[T any](js *eventloop.JS, opts ...Option) *Chan[T] {
	if js == nil {
		panic(`csp: nil js`)
	}
	cfg := mustResolveOptions(opts)
	return &Chan[T]{
		js:     js,
		logger: cfg.logger,
		id:     chanIDCounter.Add(1),
	}
}

// Ready returns a promise that resolves with c, once a put is waiting or c
// is closed. It does not consume a value. All waiters are released together,
// by the next put or by close.
func (c *Chan[T]) Ready() *eventloop.ChainedPromise {
	p, resolve, _ := c.js.NewChainedPromise()
	c.core.Ready(func() {
		resolve(c)
	})
	return p
}

// Put sends v, returning a promise that resolves once a consumer receives v.
// The promise is rejected with [ErrClosed] if c is already closed, or if c
// is closed while the put is waiting.
func (c *Chan[T]) Put(v T) *eventloop.ChainedPromise {
	p, resolve, reject := c.js.NewChainedPromise()
	c.core.Put(v, func(err error) {
		if err != nil {
			reject(err)
		} else {
			resolve(nil)
		}
	})
	return p
}

// PutFunc is the callback form of [Chan.Put]. If a consumer is already
// waiting, done is called before PutFunc returns. The done callback may be
// nil.
func (c *Chan[T]) PutFunc(v T, done func(err error)) {
	c.core.Put(v, done)
}

// Pop returns a promise that resolves with the next value, or with nil if c
// is closed. Use [Chan.Next] to distinguish a nil value from the closed
// sentinel.
func (c *Chan[T]) Pop() *eventloop.ChainedPromise {
	p, resolve, _ := c.js.NewChainedPromise()
	c.core.Pop(func(value T, ok bool) {
		if ok {
			resolve(value)
		} else {
			resolve(nil)
		}
	})
	return p
}

// PopFunc is the callback form of [Chan.Pop]. If a producer is already
// waiting, or c is closed, done is called before PopFunc returns.
func (c *Chan[T]) PopFunc(done func(value T, ok bool)) {
	c.core.Pop(done)
}

// Next returns a promise that resolves with the next [Received] value. The
// closed sentinel is Received{OK: false}. The promise is never rejected.
func (c *Chan[T]) Next() *eventloop.ChainedPromise {
	p, resolve, _ := c.js.NewChainedPromise()
	c.core.Pop(func(value T, ok bool) {
		resolve(Received[T]{Value: value, OK: ok})
	})
	return p
}

// Range receives values until c is closed, or fn returns false. The returned
// promise resolves once receiving stops, or is rejected with an
// [eventloop.PanicError], if fn panics.
//
// Stopping early does not close c, and it does not un-receive the value
// passed to the final call of fn.
func (c *Chan[T]) Range(fn func(v T) bool) *eventloop.ChainedPromise {
	if fn == nil {
		panic(`csp: nil range func`)
	}
	p, resolve, reject := c.js.NewChainedPromise()
	var step func()
	step = func() {
		c.Next().Then(func(r any) any {
			defer func() {
				if v := recover(); v != nil {
					reject(eventloop.PanicError{Value: v})
				}
			}()
			if rv := r.(Received[T]); !rv.OK || !fn(rv.Value) {
				resolve(nil)
				return nil
			}
			step()
			return nil
		}, nil)
	}
	step()
	return p
}

// Close closes c, returning [ErrAlreadyClosed] if it was already closed.
//
// Waiting consumers receive the closed sentinel, then waiters from
// [Chan.Ready] are released, then waiting producers are rejected with
// [ErrClosed].
func (c *Chan[T]) Close() error {
	puts, pops, readys := c.core.Pending()
	if err := c.core.Close(); err != nil {
		return err
	}
	c.logger.Debug().
		Uint64(`chan`, c.id).
		Int(`pops`, pops).
		Int(`readys`, readys).
		Int(`puts`, puts).
		Log(`channel closed`)
	return nil
}

// Closed reports whether c is closed.
func (c *Chan[T]) Closed() bool {
	return c.core.Closed()
}
