package threaded

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gregl83/threaded/core"
)

var (
	// ErrPoolClosed is returned by Submit once Stop has begun. Submission
	// after teardown is a reported failure, never a silent no-op.
	ErrPoolClosed = errors.New("pool is stopped")

	// ErrResizeUnsupported is returned by Resize. The pool's worker set is
	// fixed at construction; resizing is explicitly rejected rather than
	// accepted as a no-op.
	ErrResizeUnsupported = errors.New("resize is not supported")
)

// Pool owns a fixed set of workers and the submission end of the shared
// message queue. Workers are spawned at construction and live until Stop
// tears the pool down.
//
// Submit may be called concurrently from multiple goroutines. Jobs are made
// available to workers in submission order, but which worker receives which
// job is first-idle-wins, and execution start order across workers is not
// guaranteed.
type Pool struct {
	id      string
	queue   *core.MessageQueue
	workers []*Worker

	logger          core.Logger
	panicHandler    core.PanicHandler
	metrics         core.Metrics
	rejectedHandler core.RejectedJobHandler

	active   int32 // jobs currently executing
	closed   int32 // atomic flag, set when Stop begins
	stopOnce sync.Once
}

// New creates a pool with the given number of workers, each immediately
// started and blocked on the shared queue.
//
// New panics if capacity is not positive: a zero-capacity pool could accept
// submissions that would never run.
func New(capacity int) *Pool {
	return NewWithConfig("pool", capacity, nil)
}

// NewWithConfig creates a named pool with custom collaborators. A nil config
// or nil config fields fall back to defaults.
//
// NewWithConfig panics if capacity is not positive.
func NewWithConfig(id string, capacity int, config *core.PoolConfig) *Pool {
	if capacity <= 0 {
		panic("threaded: pool capacity must be positive")
	}
	if config == nil {
		config = core.DefaultPoolConfig()
	}

	p := &Pool{
		id:              id,
		queue:           core.NewMessageQueue(capacity),
		logger:          config.Logger,
		panicHandler:    config.PanicHandler,
		metrics:         config.Metrics,
		rejectedHandler: config.RejectedJobHandler,
	}

	// Use defaults if not provided
	if p.logger == nil {
		p.logger = core.NewDefaultLogger()
	}
	if p.panicHandler == nil {
		p.panicHandler = &core.DefaultPanicHandler{}
	}
	if p.metrics == nil {
		p.metrics = &core.NilMetrics{}
	}
	if p.rejectedHandler == nil {
		p.rejectedHandler = &core.DefaultRejectedJobHandler{}
	}

	p.workers = make([]*Worker, 0, capacity)
	for i := 0; i < capacity; i++ {
		p.workers = append(p.workers, p.startWorker())
	}

	p.logger.Info("pool started",
		core.F("pool", p.id),
		core.F("workers", capacity))

	return p
}

// ID returns the pool name used in logs and metric labels.
func (p *Pool) ID() string {
	return p.id
}

// Capacity returns the number of workers owned by the pool. It equals the
// construction-time capacity for the pool's entire lifetime.
func (p *Pool) Capacity() int {
	return len(p.workers)
}

// Submit wraps the job in a control message and pushes it onto the shared
// queue. It returns immediately; it does not wait for execution and there is
// no result handle. Each submitted job runs on exactly one worker, exactly
// once.
//
// Submit returns ErrPoolClosed once Stop has begun.
func (p *Pool) Submit(job Job) error {
	if job == nil {
		return errors.New("threaded: nil job")
	}

	if atomic.LoadInt32(&p.closed) == 1 {
		p.rejectedHandler.HandleRejectedJob(p.id, "stopped")
		p.metrics.RecordJobRejected(p.id, "stopped")
		return ErrPoolClosed
	}

	if err := p.queue.Push(core.NewJobMessage(job)); err != nil {
		// Stop closed the queue between the flag check and the push.
		p.rejectedHandler.HandleRejectedJob(p.id, "stopped")
		p.metrics.RecordJobRejected(p.id, "stopped")
		return fmt.Errorf("submit: %w", ErrPoolClosed)
	}

	p.metrics.RecordQueueDepth(p.id, p.queue.Len())
	return nil
}

// Stop tears the pool down: it pushes one terminate message per worker, then
// joins every worker in creation order. Because workers finish their current
// job and drain queued messages before terminating, Stop does not return
// until every submitted job has completed.
//
// Stop is safe to call repeatedly; later callers block until the first
// teardown has finished.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		atomic.StoreInt32(&p.closed, 1)

		// One terminate per worker. Any worker may consume more than one
		// run message before another wakes, but by pigeonhole every worker
		// eventually receives a terminate.
		for range p.workers {
			if err := p.queue.Push(core.NewTerminateMessage()); err != nil {
				p.logger.Error("failed to push terminate message",
					core.F("pool", p.id),
					core.F("error", err))
			}
		}

		for _, w := range p.workers {
			w.Join()
		}

		p.queue.Close()

		p.logger.Info("pool stopped",
			core.F("pool", p.id),
			core.F("workers", len(p.workers)))
	})
}

// Resize is explicitly rejected: the worker set is fixed at construction.
// It panics if capacity is not positive, mirroring New, and otherwise
// returns ErrResizeUnsupported.
func (p *Pool) Resize(capacity int) error {
	if capacity <= 0 {
		panic("threaded: pool capacity must be positive")
	}
	return ErrResizeUnsupported
}

// Stats returns a snapshot of the pool's runtime state for observability
// pollers.
func (p *Pool) Stats() core.PoolStats {
	return core.PoolStats{
		ID:      p.id,
		Workers: len(p.workers),
		Queued:  p.queue.Len(),
		Active:  int(atomic.LoadInt32(&p.active)),
		Running: atomic.LoadInt32(&p.closed) == 0,
	}
}

// =============================================================================
// Global Pool Helper (Singleton)
// =============================================================================

var (
	globalPool *Pool
	globalMu   sync.Mutex
)

// InitGlobalPool initializes the global pool with the specified number of
// workers. Calling it again while the global pool exists is a no-op.
func InitGlobalPool(capacity int) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		return // Already initialized
	}

	globalPool = NewWithConfig("global-pool", capacity, nil)
}

// GetGlobalPool returns the global pool instance. It panics if
// InitGlobalPool has not been called.
func GetGlobalPool() *Pool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool == nil {
		panic("threaded: global pool not initialized, call InitGlobalPool() first")
	}
	return globalPool
}

// ShutdownGlobalPool stops the global pool and releases it.
func ShutdownGlobalPool() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		globalPool.Stop()
		globalPool = nil
	}
}
