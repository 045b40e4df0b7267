// Package csp provides CSP-style (Communicating Sequential Processes)
// coordination primitives for tasks scheduled cooperatively on an
// [eventloop.Loop]: an unbuffered rendezvous channel, a select over channel
// readiness, a one-shot timer channel, and a fan-out multicaster.
//
// # Architecture
//
// A [Chan] is created via [New], bound to an [eventloop.JS] adapter. Its
// state is owned by the loop goroutine, and is never locked: every method
// must be called on the loop, e.g. from a task passed to
// [eventloop.Loop.Submit], or from a promise handler. Operations that would
// block return an [eventloop.ChainedPromise] instead, and the callback forms
// [Chan.PutFunc] and [Chan.PopFunc] are available for loop-native code.
//
//   - [Chan.Put] resolves once a consumer has received the value
//   - [Chan.Pop] and [Chan.Next] resolve with the next value, or the closed
//     sentinel
//   - [Chan.Ready] resolves once a value is waiting, without receiving it
//   - [Chan.Close] releases every waiter, and rejects every waiting put
//
// [Select] races the readiness of several channels, optionally with a
// default branch, deferred by one loop turn. [After] and [Sleep] are built on
// the loop's timers. [Multi] drains one channel into any number of listener
// channels created by [Multicast.Copy].
//
// # Closed Channels
//
// Receiving from a closed channel is not an error: [Chan.Pop] resolves with
// nil, and [Chan.Next] resolves with a [Received] that is not OK. Sending to
// a closed channel rejects with [ErrClosed], and closing a closed channel
// returns [ErrAlreadyClosed].
//
// # Cancellation
//
// Waiting puts, pops, and readiness probes cannot be canceled. They are
// released only by a matching operation, or by [Chan.Close]. To wait with a
// timeout, [Select] against a channel from [After].
//
// # Usage
//
//	loop, err := eventloop.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	js, err := eventloop.NewJS(loop)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loop.Submit(func() {
//	    ch := csp.New[string](js)
//	    ch.Pop().Then(func(v any) any {
//	        fmt.Println(v)
//	        go loop.Shutdown(context.Background())
//	        return nil
//	    }, nil)
//	    ch.Put("hello")
//	})
//
//	if err := loop.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package csp
