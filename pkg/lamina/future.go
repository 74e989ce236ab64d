package lamina

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type state int32

const (
	statePending state = iota
	stateSucceeded
	stateFailed
)

type subscriber[T any] struct {
	onSuccess func(T)
	onError   func(error)
}

// Future is a single-assignment container for an eventual value or error.
// It starts pending and transitions at most once to succeeded or failed;
// the transition is guarded so concurrent Succeed/Fail calls race safely.
type Future[T any] struct {
	id        uuid.UUID
	createdAt time.Time

	mu    sync.Mutex
	state state
	value T
	err   error
	subs  []subscriber[T]
	done  chan struct{}
}

func Create[T any]() *Future[T] {
	return &Future[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		done:      make(chan struct{}),
	}
}

func Success[T any](v T) *Future[T] {
	f := Create[T]()
	f.Succeed(v)
	return f
}

func Fail[T any](err error) *Future[T] {
	f := Create[T]()
	f.Fail(err)
	return f
}

// Succeed resolves the future with v. It reports whether this call performed
// the resolution; once resolved, later calls are no-ops returning false.
func (f *Future[T]) Succeed(v T) bool {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return false
	}
	f.state = stateSucceeded
	f.value = v
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	close(f.done)
	for _, s := range subs {
		s.onSuccess(v)
	}
	return true
}

// Fail resolves the future with err, with the same at-most-once contract as
// Succeed.
func (f *Future[T]) Fail(err error) bool {
	f.mu.Lock()
	if f.state != statePending {
		f.mu.Unlock()
		return false
	}
	f.state = stateFailed
	f.err = err
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	close(f.done)
	for _, s := range subs {
		s.onError(err)
	}
	return true
}

// Subscribe registers success and error callbacks. If the future is already
// resolved the matching callback runs inline, exactly once; otherwise it is
// queued and invoked on the resolving goroutine, in subscription order.
// Nil callbacks are allowed and skipped on delivery.
func (f *Future[T]) Subscribe(onSuccess func(T), onError func(error)) {
	if onSuccess == nil {
		onSuccess = func(T) {}
	}
	if onError == nil {
		onError = func(error) {}
	}

	f.mu.Lock()
	switch f.state {
	case statePending:
		f.subs = append(f.subs, subscriber[T]{onSuccess: onSuccess, onError: onError})
		f.mu.Unlock()
	case stateSucceeded:
		v := f.value
		f.mu.Unlock()
		onSuccess(v)
	case stateFailed:
		err := f.err
		f.mu.Unlock()
		onError(err)
	}
}

func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != statePending
}

func (f *Future[T]) IsSuccess() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == stateSucceeded
}

// Value returns the success value, or the zero value while pending or failed.
func (f *Future[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Future[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Peek is the type-erased fast path for already-resolved futures. While
// pending it returns (nil, nil); callers must check IsResolved first.
func (f *Future[T]) Peek() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == stateFailed {
		return nil, f.err
	}
	return f.value, nil
}

// Observe is the type-erased subscription used by the engine: fn receives
// either (value, nil) or (nil, err), exactly once.
func (f *Future[T]) Observe(fn func(v any, err error)) {
	f.Subscribe(
		func(v T) { fn(v, nil) },
		func(err error) { fn(nil, err) },
	)
}

// Wait blocks the calling goroutine until the future resolves or ctx is done.
// The engine never calls Wait; it exists for callers at the edge of the
// asynchronous world.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == stateFailed {
			var zero T
			return zero, f.err
		}
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Id() uuid.UUID {
	return f.id
}

func (f *Future[T]) CreatedAt() time.Time {
	return f.createdAt
}
