package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forkall/lamina/pkg/lamina"
)

// ErrTimeout finalizes a suspended run that outlived its WithTimeout budget.
var ErrTimeout = errors.New("pipeline: run timed out")

var errNilRedirect = errors.New("pipeline: redirect to nil pipeline")

// frame is the state of one logical run. It lives on the stack of whichever
// goroutine is currently stepping; on suspension its fields are captured by
// the resumption closure, which owns them until it fires exactly once.
// pl rebinds on a directive; exec, timeout, and log stay those of the
// pipeline the caller invoked.
type frame struct {
	pl      *Pipeline
	dest    *lamina.Future[any]
	initial any
	current any
	step    int

	exec    lamina.Executor
	timeout time.Duration
	log     *slog.Logger
	armed   bool
}

// Run drives v through the pipeline. It returns a future that is either
// already resolved (every stage completed synchronously) or pending with a
// resumption registered; the calling goroutine is never blocked.
func (p *Pipeline) Run(ctx context.Context, v any) *lamina.Future[any] {
	return advance(ctx, frame{
		pl:      p,
		dest:    p.dest,
		initial: v,
		current: v,
		exec:    p.exec,
		timeout: p.timeout,
		log:     p.logger(),
	})
}

// advance steps the frame until the run finalizes or suspends. Directives and
// already-resolved futures are handled by continuing the loop in place, never
// by recursion, so neither restarts nor long resolved chains grow the stack.
func advance(ctx context.Context, f frame) *lamina.Future[any] {
	for {
		// a stray resumption after the run finalized through another
		// path (e.g. the timeout watchdog) must do nothing
		if f.dest != nil && f.dest.IsResolved() {
			return f.dest
		}

		if f.step == len(f.pl.stages) {
			return f.finalize(f.current)
		}

		out, err := f.pl.stages[f.step](ctx, f.current)
		if err != nil {
			nf, done, rebound := f.fault(ctx, err)
			if !rebound {
				return done
			}
			f = nf
			continue
		}

		switch out := out.(type) {
		case Directive:
			nf, derr := f.rebind(out)
			if derr != nil {
				nf, done, rebound := f.fault(ctx, derr)
				if !rebound {
					return done
				}
				f = nf
				continue
			}
			f = nf

		case lamina.Awaitable:
			if lamina.IsNil(out) {
				f.current = nil
				f.step++
				continue
			}

			if out.IsResolved() {
				v, perr := out.Peek()
				if perr != nil {
					nf, done, rebound := f.fault(ctx, perr)
					if !rebound {
						return done
					}
					f = nf
					continue
				}
				f.current = v
				f.step++
				continue
			}

			return f.suspend(ctx, out)

		default:
			f.current = out
			f.step++
		}
	}
}

// suspend registers the resumption on the pending awaitable and returns the
// (still pending) destination future immediately. Both continuations close
// over the ctx active right now, so resumed stages observe the context of the
// call site that initiated this step, not that of whatever completes the
// future.
func (f frame) suspend(ctx context.Context, a lamina.Awaitable) *lamina.Future[any] {
	if f.dest == nil {
		f.dest = lamina.Create[any]()
	}

	if f.timeout > 0 && !f.armed {
		f.armed = true
		dest := f.dest
		time.AfterFunc(f.timeout, func() {
			dest.Fail(ErrTimeout)
		})
	}

	next := f
	next.step++

	a.Observe(func(v any, err error) {
		resume := func() {
			if err != nil {
				nf, _, rebound := next.fault(ctx, err)
				if rebound {
					advance(ctx, nf)
				}
				return
			}
			nf := next
			nf.current = v
			advance(ctx, nf)
		}

		if next.exec != nil {
			next.exec.Execute(resume)
		} else {
			resume()
		}
	})

	return f.dest
}

// fault routes an error through the pipeline's error handling: stage errors,
// upstream future failures, and malformed directives are indistinguishable
// here. It either finalizes the run (rebound false) or hands back a rebound
// frame for the caller to keep stepping (rebound true).
func (f frame) fault(ctx context.Context, cause error) (frame, *lamina.Future[any], bool) {
	if f.dest != nil && f.dest.IsResolved() {
		return frame{}, f.dest, false
	}

	if f.pl.onError != nil {
		out, err := f.pl.onError(ctx, cause)
		if err != nil {
			return frame{}, f.failWith(err), false
		}
		if d, ok := out.(Directive); ok {
			nf, derr := f.rebind(d)
			if derr != nil {
				return frame{}, f.failWith(derr), false
			}
			return nf, nil, true
		}
		// any other handler result is a recovery value; remaining
		// stages never run
		return frame{}, f.finalize(out), false
	}

	fut := f.failWith(cause)
	f.log.Error("pipeline: unhandled run failure",
		"run", fut.Id(), "step", f.step, "err", cause)
	return frame{}, fut, false
}

// rebind applies a directive: step 0 on the restart/redirect target, with the
// directive's value (or this run's initial value) as both initial and current.
func (f frame) rebind(d Directive) (frame, error) {
	if d.redirect && d.target == nil {
		return frame{}, errNilRedirect
	}

	nf := f
	if d.redirect {
		nf.pl = d.target
	}

	v := d.value
	if d.useInitial {
		v = f.initial
	}
	nf.initial = v
	nf.current = v
	nf.step = 0
	return nf, nil
}

func (f frame) finalize(v any) *lamina.Future[any] {
	if f.dest == nil {
		return lamina.Success[any](v)
	}
	f.dest.Succeed(v)
	return f.dest
}

func (f frame) failWith(err error) *lamina.Future[any] {
	if f.dest == nil {
		return lamina.Fail[any](err)
	}
	f.dest.Fail(err)
	return f.dest
}
