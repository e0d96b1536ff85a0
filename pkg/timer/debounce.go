package timer

import (
	"sync"
	"time"

	"github.com/romdo/go-debounce"
)

// Debouncer delays calls to fn until wait has passed without a new Trigger.
// fn receives the argument of the latest Trigger and runs on a timer
// goroutine.
type Debouncer[T any] struct {
	mu      sync.Mutex
	pending T
	trigger func()
	cancel  func()
}

func NewDebouncer[T any](wait time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	o := newOptions(opts)
	d := &Debouncer[T]{}
	call := func() {
		d.mu.Lock()
		arg := d.pending
		d.mu.Unlock()
		fn(arg)
	}
	if o.maxWait > 0 {
		d.trigger, d.cancel = debounce.NewWithMaxWait(wait, o.maxWait, call)
	} else {
		d.trigger, d.cancel = debounce.New(wait, call)
	}
	return d
}

// Trigger schedules fn(arg), replacing any pending call.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	d.pending = arg
	d.mu.Unlock()
	d.trigger()
}

// Cancel drops the pending call, if any. Later triggers schedule again.
func (d *Debouncer[T]) Cancel() {
	d.cancel()
}
