package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/forkall/lamina/pkg/lamina"
)

// Stage is a unary transformation. The returned value may be a plain value,
// an Awaitable the engine suspends on, or a Directive; a non-nil error routes
// to the pipeline's error handling.
type Stage func(ctx context.Context, v any) (any, error)

// ErrorHandler recovers from a failed run. Its result is interpreted exactly
// like a stage's output: a Directive restarts or redirects, any other value
// finalizes the run as success, and a non-nil error re-raises.
type ErrorHandler func(ctx context.Context, cause error) (any, error)

// Pipeline is an immutable ordered sequence of stages plus optional error
// handler, destination future, executor, run timeout, and logger. The builder
// methods derive copies; a constructed Pipeline is safe for repeated and
// concurrent invocation.
type Pipeline struct {
	stages  []Stage
	onError ErrorHandler
	dest    *lamina.Future[any]
	exec    lamina.Executor
	timeout time.Duration
	log     *slog.Logger
}

// New constructs a Pipeline from stages. It panics on a nil stage; this is
// the only way a pipeline surfaces a problem synchronously.
func New(stages ...Stage) *Pipeline {
	for _, s := range stages {
		if s == nil {
			panic("pipeline: nil stage")
		}
	}
	return &Pipeline{stages: stages}
}

// OnError derives a pipeline with h as its error handler. It panics on a nil
// handler.
func (p *Pipeline) OnError(h ErrorHandler) *Pipeline {
	if h == nil {
		panic("pipeline: nil error handler")
	}
	d := *p
	d.onError = h
	return &d
}

// Into derives a pipeline whose runs finalize into dst instead of a future
// created by the engine.
func (p *Pipeline) Into(dst *lamina.Future[any]) *Pipeline {
	d := *p
	d.dest = dst
	return &d
}

// Via derives a pipeline whose resumptions are dispatched through x instead
// of running on the goroutine that resolved the awaited future.
func (p *Pipeline) Via(x lamina.Executor) *Pipeline {
	d := *p
	d.exec = x
	return &d
}

// WithTimeout derives a pipeline whose suspended runs fail with ErrTimeout
// if they have not finalized within timeout of the first suspension.
func (p *Pipeline) WithTimeout(timeout time.Duration) *Pipeline {
	d := *p
	d.timeout = timeout
	return &d
}

func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	d := *p
	d.log = l
	return &d
}

func (p *Pipeline) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return slog.Default()
}
