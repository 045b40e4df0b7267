package csp_test

import (
	"context"
	"testing"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
)

const testTimeout = 5 * time.Second

// newTestLoop creates a new event loop, starts it, and registers cleanup.
func newTestLoop(t testing.TB) *eventloop.Loop {
	t.Helper()
	loop, err := eventloop.New()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

// harness pairs a running loop with its JS adapter.
type harness struct {
	loop *eventloop.Loop
	js   *eventloop.JS
}

func newHarness(t testing.TB, opts ...eventloop.JSOption) *harness {
	t.Helper()
	loop := newTestLoop(t)
	js, err := eventloop.NewJS(loop, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return &harness{loop: loop, js: js}
}

// do runs fn on the loop, and waits for it to return.
func (h *harness) do(t testing.TB, fn func()) {
	t.Helper()
	done := make(chan struct{})
	if err := h.loop.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for loop task")
	}
}

// await waits for p to settle, returning its result and final state.
func await(t testing.TB, p *eventloop.ChainedPromise) (any, eventloop.PromiseState) {
	t.Helper()
	select {
	case r := <-p.ToChannel():
		return r, p.State()
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for promise")
		return nil, eventloop.Pending
	}
}

// mustResolve waits for p, failing the test unless it was resolved.
func mustResolve(t testing.TB, p *eventloop.ChainedPromise) any {
	t.Helper()
	r, state := await(t, p)
	if state != eventloop.Resolved {
		t.Fatalf("expected resolved promise, got state %v: %v", state, r)
	}
	return r
}

// mustReject waits for p, failing the test unless it was rejected.
func mustReject(t testing.TB, p *eventloop.ChainedPromise) any {
	t.Helper()
	r, state := await(t, p)
	if state != eventloop.Rejected {
		t.Fatalf("expected rejected promise, got state %v: %v", state, r)
	}
	return r
}

// flush waits for a full turn of the loop, including any microtasks queued
// by prior tasks.
func (h *harness) flush(t testing.TB) {
	t.Helper()
	var p *eventloop.ChainedPromise
	h.do(t, func() {
		var resolve eventloop.ResolveFunc
		p, resolve, _ = h.js.NewChainedPromise()
		if _, err := h.js.SetTimeout(func() { resolve(nil) }, 0); err != nil {
			t.Error(err)
			resolve(nil)
		}
	})
	mustResolve(t, p)
}

// isPending reports whether p is still pending, observed from the loop.
func (h *harness) isPending(t testing.TB, p *eventloop.ChainedPromise) bool {
	t.Helper()
	var pending bool
	h.do(t, func() {
		pending = p.State() == eventloop.Pending
	})
	return pending
}
