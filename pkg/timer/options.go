// Package timer provides debounce and throttle wrappers for callbacks.
package timer

import (
	"time"

	"github.com/compozy/toolkit/pkg/config"
)

// Option configures a Debouncer or a Throttler.
type Option func(*options)

type options struct {
	maxWait time.Duration
	now     func() time.Time
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxWait bounds how long a Debouncer may delay a call under a steady
// stream of triggers. Zero disables the bound.
func WithMaxWait(d time.Duration) Option {
	return func(o *options) {
		o.maxWait = d
	}
}

// WithClock sets the time source a Throttler uses to measure intervals.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// DebouncerFromConfig builds a Debouncer from the timer settings.
func DebouncerFromConfig[T any](cfg *config.TimerConfig, fn func(T)) *Debouncer[T] {
	return NewDebouncer(cfg.DebounceWait, fn, WithMaxWait(cfg.DebounceMaxWait))
}

// ThrottlerFromConfig builds a Throttler from the timer settings.
func ThrottlerFromConfig[T any](cfg *config.TimerConfig, fn func(T)) *Throttler[T] {
	return NewThrottler(cfg.ThrottleInterval, fn)
}
