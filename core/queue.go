package core

import (
	"errors"
	"sync"
)

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// ErrQueueClosed is returned by Push once the queue has been closed, and by
// Pop once the queue has been closed and fully drained.
var ErrQueueClosed = errors.New("message queue closed")

// MessageQueue is the unbounded multi-producer/multi-consumer queue carrying
// control messages between a pool and its workers. Push never blocks; Pop
// blocks the calling goroutine until a message is available. Each message is
// removed atomically, so no two consumers ever receive the same message.
// Which consumer receives which message is first-idle-wins.
//
// The queue's internal synchronization is the only concurrency-control
// primitive the pool relies on; pool and workers share no other mutable
// state.
type MessageQueue struct {
	mu       sync.Mutex
	messages []Message
	closed   bool

	// signal is a wakeup hint for blocked consumers. Dropped signals are
	// harmless: a full buffer means enough wakeups are already pending,
	// and every consumer re-polls the slice before blocking again.
	signal   chan struct{}
	closedCh chan struct{}
}

// NewMessageQueue creates a queue sized for the given number of consumers.
func NewMessageQueue(consumers int) *MessageQueue {
	if consumers < 1 {
		consumers = 1
	}
	return &MessageQueue{
		messages: make([]Message, 0, defaultQueueCap),
		signal:   make(chan struct{}, consumers*2),
		closedCh: make(chan struct{}),
	}
}

// Push appends a message to the queue. It never blocks; the only failure is
// pushing onto a closed queue.
func (q *MessageQueue) Push(msg Message) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.messages = append(q.messages, msg)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return nil
}

// Pop blocks until a message is available and returns exactly one message.
// After Close, buffered messages are still delivered; once the queue is
// drained Pop returns ErrQueueClosed.
func (q *MessageQueue) Pop() (Message, error) {
	for {
		q.mu.Lock()
		if len(q.messages) > 0 {
			msg := q.messages[0]
			// Zero out the element in the underlying array to release the
			// job reference.
			q.messages[0] = Message{}
			q.messages = q.messages[1:]
			q.maybeCompactLocked()
			q.mu.Unlock()
			return msg, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Message{}, ErrQueueClosed
		}

		select {
		case <-q.signal:
		case <-q.closedCh:
		}
	}
}

// Len returns the number of queued messages.
func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Close marks the queue closed and wakes every blocked consumer. Repeated
// calls are no-ops.
func (q *MessageQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	close(q.closedCh)
}

func (q *MessageQueue) maybeCompactLocked() {
	n := len(q.messages)
	c := cap(q.messages)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.messages = make([]Message, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]Message, n, newCap)
	copy(newSlice, q.messages)
	q.messages = newSlice
}
