package csp

import (
	"errors"
	"fmt"
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// options holds configuration shared by channels, timers, and multicasters.
type options struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

// Option configures a [Chan], [After], or [Multi].
type Option interface {
	applyOption(*options) error
}

// optionImpl implements [Option] via a closure.
type optionImpl struct {
	fn func(*options) error
}

func (o *optionImpl) applyOption(opts *options) error {
	return o.fn(opts)
}

// WithLogger configures structured logging. A nil logger (the default)
// disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{fn: func(opts *options) error {
		opts.logger = logger
		return nil
	}}
}

// WithWarningRates configures rate limiting for warnings that may repeat
// indefinitely, e.g. fan-out puts rejected by a closed [Multicast] listener.
// Limits apply per listener. See [catrate.NewLimiter] for the constraints on
// rates, which must not be empty.
//
// Defaults to 1 per second and 10 per minute.
func WithWarningRates(rates map[time.Duration]int) Option {
	return &optionImpl{fn: func(opts *options) (err error) {
		if len(rates) == 0 {
			return errors.New("warning rates must not be empty")
		}
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("invalid warning rates: %v", r)
			}
		}()
		opts.limiter = catrate.NewLimiter(rates)
		return nil
	}}
}

var defaultWarningRates = map[time.Duration]int{
	time.Second: 1,
	time.Minute: 10,
}

// resolveOptions applies the given options to a default [options].
func resolveOptions(opts []Option) (*options, error) {
	cfg := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyOption(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func mustResolveOptions(opts []Option) *options {
	cfg, err := resolveOptions(opts)
	if err != nil {
		panic(fmt.Sprintf("csp: %s", err))
	}
	return cfg
}

// warnLimiter returns the configured limiter, building the default lazily,
// as it is only used by multicasters.
func (x *options) warnLimiter() *catrate.Limiter {
	if x.limiter == nil {
		x.limiter = catrate.NewLimiter(defaultWarningRates)
	}
	return x.limiter
}
