package device

import (
	"sync"
	"time"

	"github.com/arnegue/seatalk-mux/message"
)

const defaultQueueCapacity = 100

// boundedQueue is the per-observer inbound queue spec.md §4.5 describes: a
// bounded, head-drop FIFO. push is safe to call from any number of
// goroutines (every device that lists this one as an observer pushes into
// the same queue); popAll is meant to be called from a single writer
// goroutine.
type boundedQueue struct {
	mu    sync.Mutex
	items []message.Envelope
	cap   int
	wake  chan struct{}
}

func newBoundedQueue(capacity int) *boundedQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &boundedQueue{cap: capacity, wake: make(chan struct{}, 1)}
}

// push appends env, dropping the oldest queued item first if the queue is
// already at capacity. It reports whether a drop occurred so the caller can
// account it against metrics.Counters.OverflowDropped.
func (q *boundedQueue) push(env message.Envelope) (dropped bool) {
	q.mu.Lock()
	if len(q.items) >= q.cap {
		q.items = q.items[1:]
		dropped = true
	}
	q.items = append(q.items, env)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return dropped
}

// popAll atomically takes every currently queued item, in FIFO order,
// leaving the queue empty.
func (q *boundedQueue) popAll() []message.Envelope {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

func (q *boundedQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// expired reports whether env has aged out, per spec.md §4.5's
// now - enqueued_at > max_item_age rule, evaluated on dequeue.
func expired(env message.Envelope, maxAge time.Duration, now time.Time) bool {
	return now.Sub(env.EnqueuedAt) > maxAge
}
