// Package worker defines worker contracts for asynchronous audit
// recording. Workers drain the audit queue so the evaluate path never
// waits on the activity feed.
package worker

import (
	"context"
	"fmt"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/mq/queue"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// Event abstracts what workers read off the queue.
type Event = queue.Event

// Sink persists audit events drained from the queue.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes audit events using the provided sink.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining events before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for recording audit events.
type InMemoryWorker struct {
	queue Queue
	sink  Sink
	name  string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		sink:     sink,
		name:     "audit-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("audit-worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	eventChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-eventChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error recording audit event", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent handles a single audit event.
func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) error {
	if err := w.sink.Record(ctx, event); err != nil {
		metrics.RecordErrorByComponent("audit_worker", "record_error")
		w.logger.Error(ctx, "failed to record audit event",
			logger.String("eventID", event.ID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to record audit event %s: %w", event.ID, err)
	}

	metrics.RecordAuditEvent(string(event.Kind))
	return nil
}
