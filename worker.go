package threaded

import (
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gregl83/threaded/core"
)

// Worker is one long-lived execution goroutine owned by a Pool. It holds a
// unique identifier and creation timestamp for diagnostics; messages are
// never routed to a specific worker.
type Worker struct {
	id      uuid.UUID
	created time.Time
	done    chan struct{}
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() uuid.UUID {
	return w.id
}

// CreatedAt returns when the worker was spawned.
func (w *Worker) CreatedAt() time.Time {
	return w.created
}

// Join blocks until the worker goroutine has exited.
func (w *Worker) Join() {
	<-w.done
}

func (p *Pool) startWorker() *Worker {
	w := &Worker{
		id:      uuid.New(),
		created: time.Now(),
		done:    make(chan struct{}),
	}
	go p.workerLoop(w)
	return w
}

// workerLoop pulls messages from the shared queue until it dequeues a
// terminate message. A failed Pop means the queue was closed underneath a
// live worker, which breaks a pool invariant; the worker reports it and
// exits rather than retrying.
func (p *Pool) workerLoop(w *Worker) {
	defer close(w.done)

	p.logger.Debug("worker started",
		core.F("pool", p.id),
		core.F("worker", w.id.String()))

	for {
		msg, err := p.queue.Pop()
		if err != nil {
			p.logger.Error("worker receive failed",
				core.F("pool", p.id),
				core.F("worker", w.id.String()),
				core.F("error", err))
			return
		}

		switch msg.Kind {
		case core.MessageRunJob:
			p.runJob(w, msg.Job)
		case core.MessageTerminate:
			p.logger.Debug("worker terminating",
				core.F("pool", p.id),
				core.F("worker", w.id.String()),
				core.F("uptime", time.Since(w.created)))
			return
		}
	}
}

// runJob executes one job synchronously with panic isolation, so a
// panicking job cannot kill its worker and silently shrink the pool.
func (p *Pool) runJob(w *Worker, job core.Job) {
	atomic.AddInt32(&p.active, 1)
	start := time.Now()

	defer func() {
		p.metrics.RecordJobDuration(p.id, time.Since(start))
		atomic.AddInt32(&p.active, -1)

		if r := recover(); r != nil {
			p.metrics.RecordJobPanic(p.id, r)
			p.panicHandler.HandlePanic(p.id, w.id.String(), r, debug.Stack())
		}
	}()

	job()
}
