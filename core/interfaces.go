package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling job panics
// =============================================================================

// PanicHandler is called when a job panics during execution. The worker
// recovers the panic before it can kill the worker goroutine, then hands it
// here for logging or custom recovery strategies.
//
// Implementations must be safe for concurrent use.
type PanicHandler interface {
	// HandlePanic is called with the pool name, the identifier of the worker
	// that ran the job, the recovered panic value, and the stack trace
	// captured at the time of the panic.
	HandlePanic(poolID string, workerID string, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler prints panic information to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints the panic value and stack trace.
func (h *DefaultPanicHandler) HandlePanic(poolID string, workerID string, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %s @ %s] Panic: %v\nStack trace:\n%s",
		workerID, poolID, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting pool execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus,
// StatsD, etc.). Methods should be non-blocking and fast so they do not
// impact job execution.
type Metrics interface {
	// RecordJobDuration records how long a job took to execute.
	RecordJobDuration(poolID string, duration time.Duration)

	// RecordJobPanic records that a job panicked during execution.
	RecordJobPanic(poolID string, panicInfo any)

	// RecordQueueDepth records the current queue depth.
	RecordQueueDepth(poolID string, depth int)

	// RecordJobRejected records that a job was rejected (e.g., after the
	// pool was stopped).
	RecordJobRejected(poolID string, reason string)
}

// NilMetrics provides a no-op metrics implementation. This is the default
// when no metrics interface is provided.
type NilMetrics struct{}

// RecordJobDuration is a no-op.
func (m *NilMetrics) RecordJobDuration(poolID string, duration time.Duration) {}

// RecordJobPanic is a no-op.
func (m *NilMetrics) RecordJobPanic(poolID string, panicInfo any) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(poolID string, depth int) {}

// RecordJobRejected is a no-op.
func (m *NilMetrics) RecordJobRejected(poolID string, reason string) {}

// =============================================================================
// RejectedJobHandler: Interface for handling rejected jobs
// =============================================================================

// RejectedJobHandler is called when a job submission is refused, which
// happens once the pool has been stopped.
//
// Implementations must be safe for concurrent use.
type RejectedJobHandler interface {
	// HandleRejectedJob is called with the pool name and the rejection
	// reason (e.g., "stopped").
	HandleRejectedJob(poolID string, reason string)
}

// DefaultRejectedJobHandler logs rejected jobs to stdout.
type DefaultRejectedJobHandler struct{}

// HandleRejectedJob logs the rejected job.
func (h *DefaultRejectedJobHandler) HandleRejectedJob(poolID string, reason string) {
	fmt.Printf("[Pool %s] Job rejected: %s\n", poolID, reason)
}

// =============================================================================
// PoolConfig: Configuration for a worker pool
// =============================================================================

// PoolConfig holds optional collaborators for a pool. All fields may be nil;
// defaults are applied at pool construction.
type PoolConfig struct {
	// Logger receives pool and worker lifecycle logs. Defaults to DefaultLogger.
	Logger Logger

	// PanicHandler is called when a job panics. Defaults to DefaultPanicHandler.
	PanicHandler PanicHandler

	// Metrics records job execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// RejectedJobHandler is called when a job is rejected. Defaults to
	// DefaultRejectedJobHandler.
	RejectedJobHandler RejectedJobHandler
}

// DefaultPoolConfig returns a config with default collaborators.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Logger:             NewDefaultLogger(),
		PanicHandler:       &DefaultPanicHandler{},
		Metrics:            &NilMetrics{},
		RejectedJobHandler: &DefaultRejectedJobHandler{},
	}
}
