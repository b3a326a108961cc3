package queue_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/mq/queue"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
)

func auditEvent(id string) queue.Event {
	return queue.Event{
		ID:         id,
		Kind:       model.AuditSubmitted,
		WorkItemID: "wi-" + id,
		ActorID:    7,
		At:         time.Now(),
	}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory audit queue", t, func() {
		ctx := context.Background()

		Convey("When enqueuing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			defer func() { _ = q.Close() }()

			So(q.Enqueue(ctx, auditEvent("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, auditEvent("b")), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1))
			defer func() { _ = q.Close() }()

			So(q.Enqueue(ctx, auditEvent("a")), ShouldBeTrue)

			Convey("Then the overflow event is dropped, not blocked on", func() {
				So(q.Enqueue(ctx, auditEvent("b")), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When dequeuing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))

			So(q.Enqueue(ctx, auditEvent("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, auditEvent("b")), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then events arrive in order and the channel drains", func() {
				var got []string
				for e := range q.Dequeue(ctx) {
					got = append(got, e.ID)
				}
				So(got, ShouldResemble, []string{"a", "b"})
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue()
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue refuses new events", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, auditEvent("a")), ShouldBeFalse)
			})

			Convey("And closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
