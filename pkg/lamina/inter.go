package lamina

// Awaitable is the view of a future the engine consumes: enough to unwrap an
// already-resolved value synchronously or to register a one-shot resumption.
// Every *Future[T] satisfies it.
type Awaitable interface {
	// IsResolved reports whether the outcome is already known
	IsResolved() bool
	// Peek returns the resolved (value, nil) or (nil, err); (nil, nil) while pending
	Peek() (any, error)
	// Observe registers fn to run exactly once with the outcome
	Observe(fn func(v any, err error))
}

// Executor dispatches resumption callbacks off the goroutine that resolved
// the awaited future
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a plain function to the Executor interface
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) {
	f(task)
}
