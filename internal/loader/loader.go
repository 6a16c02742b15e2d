// Package loader runs blocking content loads on a background goroutine and
// hands the result back to the UI goroutine without blocking it.
//
// A [Loader] is a small state machine:
//
//	Loading --fn returned content--> Loaded
//	Loading --fn returned error----> Failed
//
// Loaded and Failed are terminal. The worker calls notify before it stores
// its result, so [Loader.Update] never transitions ahead of the notification.
// The result can trail it briefly; a caller that drains a notification and
// finds the loader still Loading polls again on a later frame.
//
// A Loader is owned by the UI goroutine; only the worker's result channel
// and the notify callback cross goroutines. There is no cancellation, timeout
// or retry: a fn that never returns keeps its loader in Loading forever.
package loader

import (
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked wraps the value recovered from a load function that panicked.
var ErrPanicked = errors.New("loader: load function panicked")

// State is the lifecycle state of a Loader.
type State int

const (
	Loading State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type result[T any] struct {
	content T
	err     error
}

// Loader holds content of type T that is either available, being loaded,
// or failed to load.
type Loader[T any] struct {
	state   State
	content T
	err     error
	pending chan result[T] // non-nil only while a worker owns the load
}

type options struct {
	delay time.Duration
}

// Option configures Load.
type Option func(*options)

// WithDelay makes the worker sleep before calling the load function.
// Used to simulate slow storage.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// New returns a Loader that is already Loaded with content. No goroutine is
// started.
func New[T any](content T) *Loader[T] {
	return &Loader[T]{state: Loaded, content: content}
}

// Load starts exactly one goroutine that calls fn(path), calls notify and
// then stores the result. The returned Loader is Loading until Update
// observes the result.
//
// A panic in fn becomes a Failed state wrapping ErrPanicked. An error from
// notify means nobody is left to receive the result; the worker panics.
func Load[T any](path string, notify func() error, fn func(string) (T, error), opts ...Option) *Loader[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	pending := make(chan result[T], 1)
	go func() {
		if o.delay > 0 {
			time.Sleep(o.delay)
		}

		var r result[T]
		var pc panics.Catcher
		pc.Try(func() {
			r.content, r.err = fn(path)
		})
		if rec := pc.Recovered(); rec != nil {
			var zero T
			r = result[T]{content: zero, err: fmt.Errorf("%w: %s: %v", ErrPanicked, path, rec.Value)}
		}

		if notify != nil {
			if err := notify(); err != nil {
				panic(fmt.Errorf("loader: notify after loading %s: %w", path, err))
			}
		}
		pending <- r
	}()

	return &Loader[T]{state: Loading, pending: pending}
}

// Update moves a Loading loader to its terminal state if the worker has
// finished. It never blocks and reports whether a transition happened.
func (l *Loader[T]) Update() bool {
	if l.state != Loading {
		return false
	}
	select {
	case r := <-l.pending:
		l.pending = nil
		if r.err != nil {
			l.state = Failed
			l.err = r.err
			return true
		}
		l.state = Loaded
		l.content = r.content
		return true
	default:
		return false
	}
}

// State returns the current state.
func (l *Loader[T]) State() State { return l.state }

// IsLoading reports whether the loader is still waiting for its worker.
func (l *Loader[T]) IsLoading() bool { return l.state == Loading }

// Content returns the loaded content. The second result is false unless the
// loader is Loaded.
func (l *Loader[T]) Content() (T, bool) {
	if l.state != Loaded {
		var zero T
		return zero, false
	}
	return l.content, true
}

// Err returns the load error of a Failed loader, nil otherwise.
func (l *Loader[T]) Err() error { return l.err }

// Mutate applies fn to the content of a Loaded loader. It reports false and
// does nothing in any other state.
func (l *Loader[T]) Mutate(fn func(*T)) bool {
	if l.state != Loaded {
		return false
	}
	fn(&l.content)
	return true
}
