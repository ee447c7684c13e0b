package core

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMessageQueue_FIFOOrder(t *testing.T) {
	q := NewMessageQueue(1)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		if err := q.Push(NewJobMessage(func() { order = append(order, i) })); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}

	for i := 0; i < 5; i++ {
		msg, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if msg.Kind != MessageRunJob {
			t.Fatalf("message kind = %v, want MessageRunJob", msg.Kind)
		}
		msg.Job()
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("execution order = %v, want ascending", order)
		}
	}
}

func TestMessageQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewMessageQueue(1)

	got := make(chan Message, 1)
	go func() {
		msg, err := q.Pop()
		if err != nil {
			t.Errorf("Pop failed: %v", err)
			return
		}
		got <- msg
	}()

	select {
	case <-got:
		t.Fatal("Pop returned before any message was pushed")
	case <-time.After(50 * time.Millisecond):
	}

	if err := q.Push(NewTerminateMessage()); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	select {
	case msg := <-got:
		if msg.Kind != MessageTerminate {
			t.Fatalf("message kind = %v, want MessageTerminate", msg.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after Push")
	}
}

func TestMessageQueue_CloseWakesBlockedPop(t *testing.T) {
	q := NewMessageQueue(2)

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Pop()
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrQueueClosed) {
			t.Fatalf("Pop after Close = %v, want ErrQueueClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Pop was not woken by Close")
	}
}

func TestMessageQueue_DrainsBufferedMessagesAfterClose(t *testing.T) {
	q := NewMessageQueue(1)

	for i := 0; i < 3; i++ {
		if err := q.Push(NewTerminateMessage()); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	q.Close()

	for i := 0; i < 3; i++ {
		if _, err := q.Pop(); err != nil {
			t.Fatalf("Pop of buffered message %d failed: %v", i, err)
		}
	}

	if _, err := q.Pop(); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Pop on drained closed queue = %v, want ErrQueueClosed", err)
	}
}

func TestMessageQueue_PushAfterCloseFails(t *testing.T) {
	q := NewMessageQueue(1)
	q.Close()

	if err := q.Push(NewTerminateMessage()); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Push after Close = %v, want ErrQueueClosed", err)
	}
}

func TestMessageQueue_CloseIdempotent(t *testing.T) {
	q := NewMessageQueue(1)
	q.Close()
	q.Close() // must not panic
}

func TestMessageQueue_ExactlyOnceDelivery(t *testing.T) {
	const (
		consumers = 4
		jobs      = 200
	)

	q := NewMessageQueue(consumers)

	var mu sync.Mutex
	delivered := make(map[int]int)

	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				msg, err := q.Pop()
				if err != nil {
					return
				}
				if msg.Kind == MessageTerminate {
					return
				}
				msg.Job()
			}
		}()
	}

	for i := 0; i < jobs; i++ {
		i := i
		if err := q.Push(NewJobMessage(func() {
			mu.Lock()
			delivered[i]++
			mu.Unlock()
		})); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	for i := 0; i < consumers; i++ {
		if err := q.Push(NewTerminateMessage()); err != nil {
			t.Fatalf("Push terminate failed: %v", err)
		}
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != jobs {
		t.Fatalf("delivered %d distinct jobs, want %d", len(delivered), jobs)
	}
	for i, count := range delivered {
		if count != 1 {
			t.Fatalf("job %d delivered %d times, want 1", i, count)
		}
	}
}

func TestMessageQueue_Len(t *testing.T) {
	q := NewMessageQueue(1)

	if got := q.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}

	for i := 0; i < 3; i++ {
		_ = q.Push(NewTerminateMessage())
	}
	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	if _, err := q.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if got := q.Len(); got != 2 {
		t.Fatalf("Len() after Pop = %d, want 2", got)
	}
}

func TestMessageQueue_CompactionKeepsMessages(t *testing.T) {
	q := NewMessageQueue(1)

	// Grow the backing array well past the compaction threshold, then drain
	// most of it so compaction triggers mid-stream.
	const total = 256
	for i := 0; i < total; i++ {
		_ = q.Push(NewTerminateMessage())
	}
	for i := 0; i < total-8; i++ {
		if _, err := q.Pop(); err != nil {
			t.Fatalf("Pop %d failed: %v", i, err)
		}
	}

	if got := q.Len(); got != 8 {
		t.Fatalf("Len() after drain = %d, want 8", got)
	}
	for i := 0; i < 8; i++ {
		if _, err := q.Pop(); err != nil {
			t.Fatalf("Pop of remaining message failed: %v", err)
		}
	}
}
