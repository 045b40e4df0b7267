package csp

import (
	eventloop "github.com/joeycumines/go-eventloop"
)

// Case is a receive branch of [Select]. Create instances with [Recv].
type Case struct {
	ready  func() *eventloop.ChainedPromise
	commit func() *eventloop.ChainedPromise
}

// Recv builds a [Select] case, receiving from c. The handler is called with
// the received value, or the closed sentinel (the zero value and false), and
// its result settles the promise returned by Select. The handler may return
// a promise, which will be adopted.
//
// Recv panics if c or handler is nil.
func Recv[T any](c *Chan[T], handler func(v T, ok bool) any) Case {
	if c == nil {
		panic(`csp: nil chan`)
	}
	if handler == nil {
		panic(`csp: nil handler`)
	}
	return Case{
		ready: c.Ready,
		commit: func() *eventloop.ChainedPromise {
			return c.Next().Then(func(r any) any {
				rv := r.(Received[T])
				return handler(rv.Value, rv.OK)
			}, nil)
		},
	}
}

const defaultCase = -1

// Select waits until one of the cases is ready, receives from it, and
// settles the returned promise with the result of that case's handler.
// Must be called on the event loop goroutine.
//
// If def is non-nil it is called instead, if no case became ready within the
// current turn of the loop. The default branch is deferred by one turn,
// which gives channels that are ready (or become ready, within the current
// turn) priority, and prevents a retry loop with a default branch from
// spinning without yielding.
//
// Ties are resolved by readiness order, and cases that are ready at the time
// of the call win in the order they were given.
//
// Receiving from the winning case happens after readiness is observed. If
// another consumer receives from the same channel in between, the handler
// receives the value after that, waiting for it if necessary.
//
// With no cases and a nil def, the returned promise never settles. A
// panicking handler rejects the promise with an [eventloop.PanicError].
func Select(js *eventloop.JS, cases []Case, def func() any) *eventloop.ChainedPromise {
	if js == nil {
		panic(`csp: nil js`)
	}

	probes := make([]*eventloop.ChainedPromise, 0, len(cases)+1)
	for i, c := range cases {
		if c.ready == nil {
			panic(`csp: uninitialized case`)
		}
		probes = append(probes, c.ready().Then(func(any) any {
			return i
		}, nil))
	}

	var immediate uint64
	if def != nil {
		p, resolve, _ := js.NewChainedPromise()
		id, err := js.SetImmediate(func() {
			resolve(defaultCase)
		})
		if err != nil {
			return js.Reject(err)
		}
		immediate = id
		probes = append(probes, p)
	}

	return js.Race(probes).Then(func(r any) any {
		i := r.(int)
		if i == defaultCase {
			return def()
		}
		if def != nil {
			// already ran, if it lost the race within the same turn
			_ = js.ClearImmediate(immediate)
		}
		return cases[i].commit()
	}, nil)
}
