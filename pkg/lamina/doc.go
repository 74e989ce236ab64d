// Package lamina provides the single-assignment Future[T] container and the
// small contracts the pipeline engine is built on.
//
// - Create/Success/Fail: construct pending or already-resolved futures
// - Succeed/Fail/Subscribe: at-most-once resolution with exactly-once delivery
// - Awaitable: the type-erased view the engine suspends on
// - Executor/Pool: optional dispatch of resumptions off the completing goroutine
//
// A Future resolves at most once; every subscriber observes exactly one
// delivery, inline when the future is already resolved.
package lamina
