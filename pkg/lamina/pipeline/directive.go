package pipeline

// Directive is a tagged control value a stage (or error handler) returns to
// jump execution instead of producing a plain result. It is consumed by the
// engine and never surfaces to a caller.
type Directive struct {
	// target pipeline; nil means "the currently executing one"
	target *Pipeline
	// redirect distinguishes an explicit redirect from a restart, so a
	// redirect with a nil target can be rejected as malformed
	redirect bool
	value    any
	// useInitial substitutes the run's original initial value for value
	useInitial bool
}

// Restart re-runs the currently executing pipeline from step 0 with the
// run's original initial value.
func Restart() Directive {
	return Directive{useInitial: true}
}

// RestartWith re-runs the currently executing pipeline from step 0, seeded
// with v.
func RestartWith(v any) Directive {
	return Directive{value: v}
}

// Redirect continues execution on target at step 0 with v, reusing the same
// destination future. After a redirect, target is "the currently executing
// pipeline" for any later Restart.
func Redirect(target *Pipeline, v any) Directive {
	return Directive{target: target, redirect: true, value: v}
}

// RedirectInitial redirects to target reusing the run's original initial
// value.
func RedirectInitial(target *Pipeline) Directive {
	return Directive{target: target, redirect: true, useInitial: true}
}
