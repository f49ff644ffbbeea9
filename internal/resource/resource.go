// Package resource tracks the loading state of an asynchronous data
// producer: the data it last returned, whether a call is in flight and the
// message of the last failure.
package resource

import (
	"context"
	"reflect"
	"slices"
	"sync"
)

const defaultErrorMessage = "An error occurred"

type Producer[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a Resource. Error holds only the failure message.
type State[T any] struct {
	Data    T      `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type Option[T any] func(*Resource[T])

// WithObserver registers fn to receive every state transition.
func WithObserver[T any](fn func(State[T])) Option[T] {
	return func(r *Resource[T]) {
		r.observer = fn
	}
}

// Resource wraps a Producer. Every invocation is a fresh call: results are
// not cached between invocations and concurrent invocations are not merged.
type Resource[T any] struct {
	producer Producer[T]
	observer func(State[T])

	mu      sync.Mutex
	state   State[T]
	deps    []any
	mounted bool
	closed  bool
}

func New[T any](producer Producer[T], opts ...Option[T]) *Resource[T] {
	r := &Resource[T]{
		producer: producer,
		state:    State[T]{Loading: true},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Load runs the producer on the first call and whenever deps differ from the
// deps of the previous call. Otherwise it returns the current state.
func (r *Resource[T]) Load(ctx context.Context, deps ...any) State[T] {
	r.mu.Lock()

	if r.closed || (r.mounted && reflect.DeepEqual(r.deps, deps)) {
		state := r.state
		r.mu.Unlock()
		return state
	}

	r.mounted = true
	r.deps = slices.Clone(deps)
	r.mu.Unlock()

	return r.run(ctx)
}

// Refetch runs the producer again regardless of deps.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	return r.run(ctx)
}

// Close tears the resource down. Invocations still in flight finish, but
// their results are discarded.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Resource[T]) run(ctx context.Context) State[T] {

	started := r.update(func(s *State[T]) {
		s.Loading = true
		s.Error = ""
	})
	if !started {
		return r.State()
	}

	data, err := r.producer(ctx)

	r.update(func(s *State[T]) {
		if err != nil {
			s.Error = message(err)
		} else {
			s.Data = data
		}
		s.Loading = false
	})

	return r.State()
}

// update applies fn unless the resource is closed and notifies the observer.
func (r *Resource[T]) update(fn func(*State[T])) bool {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return false
	}

	fn(&r.state)
	state := r.state
	observer := r.observer
	r.mu.Unlock()

	if observer != nil {
		observer(state)
	}

	return true
}

func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}

	return defaultErrorMessage
}
