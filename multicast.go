package csp

import (
	catrate "github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// Multicast republishes every value received from a source channel to each
// of its listeners. Create instances with [Multi].
//
// Fan-out does not wait: each listener's put is issued without waiting for
// the previous one to be received, so a slow listener neither delays the
// others nor stops the source from being drained. Values queue on the slow
// listener instead, in order. If a listener is closed by its consumer while
// puts are waiting, those values are dropped, and a (rate limited) warning
// is logged.
//
// The source is borrowed, and never closed by the multicaster. Once the
// source is closed, every listener is closed, and the multicaster stops.
//
// All methods must be called on the event loop goroutine.
type Multicast[T any] struct {
	source    *Chan[T]
	logger    *logiface.Logger[logiface.Event]
	limiter   *catrate.Limiter
	opts      []Option
	listeners []*Chan[T]
	done      bool
}

// Multi starts multicasting from source. Multi panics if source is nil or
// any option fails validation. Options are also applied to each listener.
func Multi[T any](source *Chan[T], opts ...Option) *Multicast[T] {
	if source == nil {
		panic(`csp: nil source`)
	}
	cfg := mustResolveOptions(opts)
	m := &Multicast[T]{
		source:  source,
		logger:  cfg.logger,
		limiter: cfg.warnLimiter(),
		opts:    opts,
	}
	m.drain()
	return m
}

// Copy registers and returns a new listener. Listeners only receive values
// taken from the source after they were registered. After the multicaster
// has stopped, Copy returns a closed channel.
func (m *Multicast[T]) Copy() *Chan[T] {
	c := New[T](m.source.js, m.opts...)
	if m.done {
		_ = c.Close()
		return c
	}
	m.listeners = append(m.listeners, c)
	return c
}

// Terminated reports whether the source was observed closed, and every
// listener closed as a result.
func (m *Multicast[T]) Terminated() bool {
	return m.done
}

// drain performs one iteration of the fan-out loop. Each iteration resumes
// from a promise handler, so it always runs as a separate microtask.
func (m *Multicast[T]) drain() {
	if m.source.Closed() {
		m.terminate()
		return
	}
	m.source.Next().Then(func(r any) any {
		rv := r.(Received[T])
		if !rv.OK {
			m.terminate()
			return nil
		}
		m.publish(rv.Value)
		m.drain()
		return nil
	}, nil)
}

func (m *Multicast[T]) publish(v T) {
	for _, l := range m.listeners {
		if l.Closed() {
			continue
		}
		l.PutFunc(v, func(err error) {
			if err != nil {
				m.dropped(l, err)
			}
		})
	}
}

func (m *Multicast[T]) dropped(l *Chan[T], err error) {
	if _, ok := m.limiter.Allow(l.id); !ok {
		return
	}
	m.logger.Warning().
		Uint64(`source`, m.source.id).
		Uint64(`listener`, l.id).
		Err(err).
		Log(`multicast value dropped by closed listener`)
}

func (m *Multicast[T]) terminate() {
	m.done = true
	for _, l := range m.listeners {
		if l.Closed() {
			continue
		}
		if err := l.Close(); err != nil {
			panic(&UnreachableError{Message: "listener close: " + err.Error()})
		}
	}
	m.logger.Debug().
		Uint64(`source`, m.source.id).
		Int(`listeners`, len(m.listeners)).
		Log(`multicast terminated`)
}
