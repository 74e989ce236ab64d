package pipeline

import (
	"context"
	"fmt"
)

// Map lifts a pure typed transformation into a Stage. An input of the wrong
// dynamic type is a stage error routed through the normal error path.
func Map[In, Out any](onSuccess func(ctx context.Context, in In) Out) Stage {
	return func(ctx context.Context, v any) (any, error) {
		in, ok := v.(In)
		if !ok {
			return nil, fmt.Errorf("map stage: expected %T, got %T", in, v)
		}
		return onSuccess(ctx, in), nil
	}
}

// Try lifts a typed error-returning function into a Stage.
func Try[In, Out any](onTryExecute func(ctx context.Context, in In) (Out, error)) Stage {
	return func(ctx context.Context, v any) (any, error) {
		in, ok := v.(In)
		if !ok {
			return nil, fmt.Errorf("try stage: expected %T, got %T", in, v)
		}
		return onTryExecute(ctx, in)
	}
}

// Tee runs a typed side effect and passes the input through unchanged.
func Tee[In any](onSuccess func(ctx context.Context, in In)) Stage {
	return func(ctx context.Context, v any) (any, error) {
		in, ok := v.(In)
		if !ok {
			return nil, fmt.Errorf("tee stage: expected %T, got %T", in, v)
		}
		onSuccess(ctx, in)
		return v, nil
	}
}
