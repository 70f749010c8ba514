package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()

		Convey("When enqueueing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2), queue.WithBufferSize(2))

			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r2"}), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1), queue.WithBufferSize(1))

			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r1"}), ShouldBeTrue)

			Convey("Then further enqueues report backpressure", func() {
				So(q.Enqueue(ctx, queue.RawResult{ResultID: "r2"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When dequeueing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4), queue.WithBufferSize(4))

			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r2"}), ShouldBeTrue)

			out := q.Dequeue(ctx)

			Convey("Then results arrive in order", func() {
				first := <-out
				second := <-out
				So(first.ResultID, ShouldEqual, "r1")
				So(second.ResultID, ShouldEqual, "r2")
			})
		})

		Convey("When the queue closes", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4), queue.WithBufferSize(4))

			So(q.Enqueue(ctx, queue.RawResult{ResultID: "r1"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues are refused", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, queue.RawResult{ResultID: "r2"}), ShouldBeFalse)
			})

			Convey("Then the dequeue channel drains and closes", func() {
				out := q.Dequeue(ctx)
				r, ok := <-out
				So(ok, ShouldBeTrue)
				So(r.ResultID, ShouldEqual, "r1")

				select {
				case _, ok := <-out:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close")
				}
			})

			Convey("Then a second close is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
