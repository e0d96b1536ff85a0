package timer

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttler runs fn at most once per interval. The first Trigger runs
// immediately; later ones are dropped until interval has elapsed since the
// last call that ran.
type Throttler[T any] struct {
	limiter *rate.Limiter
	fn      func(T)
	now     func() time.Time
}

// NewThrottler creates a Throttler. A non-positive interval never drops calls.
func NewThrottler[T any](interval time.Duration, fn func(T), opts ...Option) *Throttler[T] {
	o := newOptions(opts)
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Throttler[T]{
		limiter: rate.NewLimiter(limit, 1),
		fn:      fn,
		now:     o.now,
	}
}

// Trigger calls fn(arg) synchronously unless it is suppressed, and reports
// whether fn ran.
func (t *Throttler[T]) Trigger(arg T) bool {
	if !t.limiter.AllowN(t.now(), 1) {
		return false
	}
	t.fn(arg)
	return true
}
