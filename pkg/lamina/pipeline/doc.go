// Package pipeline drives a value through an ordered sequence of stages,
// suspending without blocking when a stage produces a not-yet-resolved
// future and resuming from the future's callback.
//
// - New/OnError/Into/Via/WithTimeout/WithLogger: build an immutable Pipeline
// - Run: invoke it with one value, returning a pending or resolved future
// - Restart/Redirect: directives that jump execution to step 0 of the
//   current or another pipeline
// - Complete/ReadMerge/WaitStage: small stages built on the engine
// - Map/Try/Tee: typed bridges into the dynamic stage signature
//
// A Pipeline value may be invoked repeatedly and concurrently; every
// invocation is independent. Already-resolved futures are unwrapped in place,
// so long chains of synchronous stages never grow the call stack.
package pipeline
