package pipeline

import (
	"context"
	"time"

	"github.com/forkall/lamina/pkg/lamina"
)

// completed is the identity pipeline Complete redirects to.
var completed = New(func(ctx context.Context, v any) (any, error) {
	return v, nil
})

// Complete short-circuits the enclosing run: the destination future resolves
// to v and no remaining stage executes.
func Complete(v any) Directive {
	return Redirect(completed, v)
}

// ReadMerge builds a stage that starts a nested run: invoke read, then merge
// its resolved result with the stage's input. The nested run's destination
// future is what the enclosing pipeline suspends on, so an asynchronous read
// suspends the outer run transparently.
func ReadMerge(read func(ctx context.Context) (any, error),
	merge func(ctx context.Context, acc, v any) (any, error)) Stage {

	return func(ctx context.Context, val any) (any, error) {
		nested := New(
			func(ctx context.Context, _ any) (any, error) {
				return read(ctx)
			},
			func(ctx context.Context, v any) (any, error) {
				return merge(ctx, val, v)
			},
		)
		return nested.Run(ctx, val), nil
	}
}

// WaitStage passes its input through unchanged after d, as a future the
// engine suspends on.
func WaitStage(d time.Duration) Stage {
	return func(ctx context.Context, v any) (any, error) {
		fut := lamina.Create[any]()
		time.AfterFunc(d, func() {
			fut.Succeed(v)
		})
		return fut, nil
	}
}
