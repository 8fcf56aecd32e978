// Package debounce collapses bursts of trigger calls into a single trailing
// invocation of a wrapped operation. Each controller is owned by a single
// consumer and must be stopped on teardown.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer wraps an operation so that rapid successive triggers collapse
// into one invocation, fired one quiet period after the last trigger, with
// the arguments of that last trigger.
//
// Executions are strictly serialized: while the wrapped operation is in
// flight no timer fires, and at most one retrigger is queued to run
// immediately after the in-flight call returns, with the newest arguments.
type Debouncer[T any] struct {
	fn      func(T) error
	quiet   time.Duration
	onError func(error)

	mu         sync.Mutex
	timer      *time.Timer
	pending    T
	hasPending bool
	inFlight   bool
	queued     bool
	queuedArgs T
	stopped    bool
}

// NewDebouncer creates a debouncer around fn with the given quiet period.
// Operation failures are reported to onError; a nil onError logs them via
// the default logger instead. The quiet period must not be negative; zero
// is allowed and still defers execution to a separate goroutine.
func NewDebouncer[T any](fn func(T) error, quiet time.Duration, onError func(error)) *Debouncer[T] {
	if onError == nil {
		onError = func(err error) {
			slog.Error("Debounced operation failed", "err", err.Error())
		}
	}

	return &Debouncer[T]{
		fn:      fn,
		quiet:   quiet,
		onError: onError,
	}
}

// Trigger records args as the pending call and (re)starts the quiet timer.
// The wrapped operation never executes synchronously inside Trigger, even
// with a zero quiet period. If a previous invocation is still in flight,
// args are queued to run right after it completes, replacing any
// previously queued arguments.
func (d *Debouncer[T]) Trigger(args T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.inFlight {
		d.queuedArgs = args
		d.queued = true
		return
	}

	d.pending = args
	d.hasPending = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

// fire runs the wrapped operation with the last recorded arguments, then
// drains at most one queued retrigger
func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return
	}

	d.timer = nil
	d.inFlight = true
	args := d.pending
	d.hasPending = false

	for {
		d.mu.Unlock()

		if err := d.fn(args); err != nil {
			d.onError(err)
		}

		d.mu.Lock()
		if !d.queued || d.stopped {
			break
		}

		args = d.queuedArgs
		d.queued = false
	}

	d.inFlight = false
	d.mu.Unlock()
}

// Reset invalidates any pending call without stopping the controller.
// Owners call this when an input the wrapped operation depends on changes,
// so a stale pending invocation never fires. Later triggers behave as if
// the controller were fresh.
func (d *Debouncer[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.queued = false
	d.hasPending = false

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending timer; the wrapped operation does not fire
// afterward. An invocation already in flight runs to completion and its
// result is safe to ignore. Stop is idempotent.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.queued = false

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Value holds a plain value that settles one quiet period after the last
// write. Get returns the settled value, lagging behind rapid writes.
type Value[T any] struct {
	quiet time.Duration

	mu      sync.Mutex
	settled T
	pending T
	timer   *time.Timer
	stopped bool
}

// NewValue creates a debounced value holder with the given initial value
func NewValue[T any](initial T, quiet time.Duration) *Value[T] {
	return &Value[T]{
		quiet:   quiet,
		settled: initial,
		pending: initial,
	}
}

// Set replaces the pending value and restarts the quiet timer; the value
// becomes visible through Get once the quiet period passes without
// further writes
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		return
	}

	v.pending = value

	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.quiet, v.settle)
}

func (v *Value[T]) settle() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		return
	}

	v.settled = v.pending
	v.timer = nil
}

// Get returns the current settled value
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.settled
}

// Stop cancels any pending settle; the settled value no longer changes
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopped = true

	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}
