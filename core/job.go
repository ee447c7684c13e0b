package core

// Job is the unit of work: a zero-argument, zero-result closure submitted to
// a pool and executed exactly once on whichever worker dequeues it. A Job
// must be safe to run on a goroutine other than its creator; it is never
// re-enqueued and never inspected after execution.
type Job func()

// MessageKind tags the payload carried on the message queue.
type MessageKind int

const (
	// MessageRunJob carries exactly one Job to execute.
	MessageRunJob MessageKind = iota

	// MessageTerminate carries no payload and signals the receiving worker
	// to exit its loop.
	MessageTerminate
)

// Message is the control message exchanged between a pool and its workers.
// Messages are consumed destructively: once a worker dequeues a message, no
// other worker ever sees it.
type Message struct {
	Kind MessageKind
	Job  Job
}

// NewJobMessage wraps a job for delivery to a single worker.
func NewJobMessage(job Job) Message {
	return Message{Kind: MessageRunJob, Job: job}
}

// NewTerminateMessage builds the stop sentinel.
func NewTerminateMessage() Message {
	return Message{Kind: MessageTerminate}
}
