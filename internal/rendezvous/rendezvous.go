// Package rendezvous provides the scheduler-independent state machine behind
// an unbuffered channel.
//
// All types in this package assume single-threaded access on the event loop
// goroutine. No mutexes or atomic operations are used. Completion callbacks
// are invoked synchronously, after the state transition they belong to has
// been applied, so a callback may safely re-enter the same Core.
package rendezvous

// Core pairs producers with consumers, in FIFO order, with no buffering.
//
// At most one of the put and pop queues is non-empty at any point where a
// caller can observe the Core. Once closed, every queue is permanently empty.
//
// The zero value is an open channel, ready to use.
type Core[T any] struct {
	puts   queue[*putter[T]]
	pops   queue[*popper[T]]
	readys queue[*readier]
	closed bool
}

// Put offers value to the oldest waiting consumer.
//
// Every waiter registered via [Core.Ready] is released first. If a consumer
// is waiting it receives value, and done is called with nil, before Put
// returns. Otherwise the put is queued until a consumer arrives (done(nil)),
// or the channel closes (done([ErrClosed])). A put against a closed channel
// calls done with [ErrClosed] immediately. The done callback may be nil.
func (x *Core[T]) Put(value T, done func(err error)) {
	p := &putter[T]{value: value, done: done}
	if x.closed {
		p.reject(ErrClosed)
		return
	}

	readys := x.readys.Drain()

	var pop *popper[T]
	if x.pops.Len() != 0 {
		var ok bool
		if pop, ok = x.pops.Shift(); !ok {
			panic(unreachable("must be a pending pop"))
		}
	} else {
		x.puts.Push(p)
	}
	x.check()

	for _, r := range readys {
		r.resolve()
	}
	if pop != nil {
		pop.resolve(value, true)
		p.resolve()
	}
}

// Pop receives from the oldest waiting producer.
//
// If a producer is waiting its value is delivered via done(value, true), and
// the producer's completion is resolved, before Pop returns. Otherwise the
// pop is queued until a producer arrives, or the channel closes, in which
// case done is called with the zero value and false. The closed sentinel is
// delivered the same way, immediately, if the channel is already closed.
func (x *Core[T]) Pop(done func(value T, ok bool)) {
	p := &popper[T]{done: done}
	if x.closed {
		var zero T
		p.resolve(zero, false)
		return
	}

	put, ok := x.puts.Shift()
	if !ok {
		x.pops.Push(p)
		x.check()
		return
	}
	x.check()

	p.resolve(put.value, true)
	put.resolve()
}

// Ready calls done once a put is waiting or the channel is closed, which may
// be immediately. Waiters are released together, by the next [Core.Put] or
// by [Core.Close]. Ready does not consume anything.
func (x *Core[T]) Ready(done func()) {
	r := &readier{done: done}
	if x.closed || x.puts.Len() != 0 {
		r.resolve()
		return
	}
	x.readys.Push(r)
}

// Close transitions the channel to closed, returning [ErrAlreadyClosed] if
// it already was.
//
// Queued pops receive the closed sentinel, then ready waiters are released,
// then queued puts are rejected with [ErrClosed], in that order, each in the
// order they were queued.
func (x *Core[T]) Close() error {
	if x.closed {
		return ErrAlreadyClosed
	}
	x.closed = true

	pops := x.pops.Drain()
	readys := x.readys.Drain()
	puts := x.puts.Drain()

	var zero T
	for _, p := range pops {
		p.resolve(zero, false)
	}
	for _, r := range readys {
		r.resolve()
	}
	for _, p := range puts {
		p.reject(ErrClosed)
	}

	return nil
}

// Closed reports whether [Core.Close] has succeeded.
func (x *Core[T]) Closed() bool {
	return x.closed
}

// Pending returns the number of queued puts, pops, and ready waiters.
func (x *Core[T]) Pending() (puts, pops, readys int) {
	return x.puts.Len(), x.pops.Len(), x.readys.Len()
}

func (x *Core[T]) check() {
	if x.puts.Len() != 0 && x.pops.Len() != 0 {
		panic(unreachable("puts and pops queued simultaneously"))
	}
}
