// Package threaded provides a fixed-capacity worker pool: a bounded set of
// long-lived worker goroutines consuming jobs from a shared unbounded queue,
// with coordinated, blocking shutdown.
//
// The pool exists to let callers submit many short-lived jobs without paying
// spawn cost per job, and to guarantee that no submitted job is dropped
// before the pool is torn down.
//
// # Quick Start
//
//	pool := threaded.New(4) // 4 workers
//	defer pool.Stop()
//
//	pool.Submit(func() {
//		// Your code here
//	})
//
// Stop blocks until every queued and in-flight job has finished and every
// worker has exited, so a plain `defer pool.Stop()` gives a full drain.
//
// # Key Concepts
//
// Job: a zero-argument, zero-result closure executed exactly once on
// whichever worker dequeues it first.
//
// Pool: owns a fixed set of workers created at construction and the
// submission end of the shared queue. Capacity is immutable; Resize is
// explicitly rejected.
//
// Worker: one goroutine blocked on the shared queue, running jobs to
// completion until it receives a terminate message during Stop. A panicking
// job is recovered and routed to the configured PanicHandler; it never kills
// the worker.
//
// # Observability
//
// NewWithConfig accepts a core.PoolConfig with pluggable Logger, Metrics,
// PanicHandler and RejectedJobHandler implementations. The
// observability/prometheus package exports pool metrics to Prometheus, and
// logging/zaplog adapts go.uber.org/zap to the pool's Logger interface.
//
// # Example
//
//	import (
//		"sync/atomic"
//
//		threaded "github.com/gregl83/threaded"
//	)
//
//	func main() {
//		pool := threaded.New(2)
//
//		var executed int32
//		pool.Submit(func() {
//			atomic.AddInt32(&executed, 1)
//		})
//
//		pool.Stop() // blocks until the job has finished
//	}
package threaded
