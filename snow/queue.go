package snow

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned when posting to a closed queue
var ErrQueueClosed = errors.New("frame queue closed")

// Scheduler runs a step on the next frame
type Scheduler interface {
	Schedule(step func())
}

// SchedulerFunc adapts a function to Scheduler
type SchedulerFunc func(step func())

// Schedule calls f(step)
func (f SchedulerFunc) Schedule(step func()) { f(step) }

// FrameQueue is a single-threaded task queue. Ticks and host events are
// posted from anywhere and run only inside RunFrame on the frame goroutine,
// so no two tasks ever run at the same time.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
}

// NewFrameQueue creates an empty queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule queues step for the next frame. Steps scheduled after Close are dropped.
func (q *FrameQueue) Schedule(step func()) {
	_ = q.Post(step)
}

// Post queues fn for the next frame
func (q *FrameQueue) Post(fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, fn)
	return nil
}

// RunFrame runs the tasks queued before the call and returns how many ran.
// Tasks queued while running wait for the next frame.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	tasks := q.pending
	q.pending = nil
	q.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		if q.Closed() {
			break
		}
		task()
		ran++
	}
	return ran
}

// Len returns the number of pending tasks
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending tasks and refuses new ones
func (q *FrameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.pending = nil
}

// Closed reports whether Close was called
func (q *FrameQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
