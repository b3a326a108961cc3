// Package queue defines the contract for enqueuing and consuming audit
// events. The request path enqueues and never blocks; a full queue
// drops the event and counts the drop.
package queue

import (
	"context"
	"sync"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 4096
)

// Event represents the payload type flowing through the queue.
type Event = model.AuditEvent

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event to the queue.
	// Returns false if the queue is full or closed and the event was dropped.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel that will receive events as they become available.
	// The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new events can be enqueued and the dequeue channel drains.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.events = make(chan Event, q.capacity)

	metrics.UpdateAuditQueueSize(0)

	return q
}

// Enqueue adds an event to the queue without blocking the caller.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordAuditDrop()
		metrics.RecordErrorByComponent("audit_queue", "closed")
		return false
	}

	select {
	case q.events <- e:
		metrics.UpdateAuditQueueSize(len(q.events))
		return true
	case <-ctx.Done():
		metrics.RecordAuditDrop()
		metrics.RecordErrorByComponent("audit_queue", "context_cancelled")
		return false
	default:
		metrics.RecordAuditDrop()
		metrics.RecordErrorByComponent("audit_queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive events as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	dequeueChan := make(chan Event)
	go func() {
		defer close(dequeueChan)
		for event := range q.events {
			select {
			case dequeueChan <- event:
				metrics.UpdateAuditQueueSize(len(q.events))
			case <-ctx.Done():
				return
			}
		}
	}()
	return dequeueChan
}

// Len returns the current number of queued events.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.events)
	metrics.UpdateAuditQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.events)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
