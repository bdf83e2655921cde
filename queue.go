// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import "code.hybscloud.com/atomix"

// MessageQueue is the bounded, single-producer single-consumer channel that
// backs every edge in a flow graph: one OutputPort writes, one InputPort
// reads. It wraps the lock-free ring with the two properties the teacher's
// queue family never needed: a closed flag, observed by the reader once the
// producer side is gone, and a reference to the reader's wakeTarget, rung on
// every successful push so a blocked InputPort.Receive wakes promptly instead
// of polling.
//
// MessageQueue never blocks itself — TryPush/TryPop are the same
// non-blocking primitives the teacher's algorithms expose. Blocking with a
// deadline and wake notification is layered on top by OutputPort.Send and
// InputPort.Receive.
type MessageQueue[T any] struct {
	r      *ring[T]
	closed atomix.Bool
	reader *wakeTarget
}

// NewMessageQueue creates a queue of the given capacity (rounded up to a
// power of 2, minimum 2) whose reader is woken via target on every
// successful push. target is typically the owning Component's wakeTarget.
func NewMessageQueue[T any](capacity int, target *wakeTarget) *MessageQueue[T] {
	if capacity < 2 {
		capacity = 2
	}
	return &MessageQueue[T]{
		r:      newRing[T](capacity),
		reader: target,
	}
}

// TryPush attempts a single non-blocking enqueue. Returns ErrWouldBlock if
// the queue is full, and ErrClosed if Close was already called — a closed
// queue never accepts more messages, even if space exists.
func (q *MessageQueue[T]) TryPush(elem T) error {
	if q.closed.LoadAcquire() {
		return ErrClosed
	}
	if err := q.r.tryPush(elem); err != nil {
		return err
	}
	if q.reader != nil {
		q.reader.wake(evMessageArrival)
	}
	return nil
}

// TryPop attempts a single non-blocking dequeue. Returns ErrWouldBlock if
// the queue is empty. Closing a queue does not discard messages already
// buffered: TryPop continues to drain them after Close, only returning
// ErrClosed once the buffer is empty too (see IsClosed/HasMessage for the
// distinction a draining reader needs).
func (q *MessageQueue[T]) TryPop() (T, error) {
	elem, err := q.r.tryPop()
	if err == nil {
		return elem, nil
	}
	if q.closed.LoadAcquire() {
		var zero T
		return zero, ErrClosed
	}
	return elem, err
}

// HasMessage reports whether a TryPop would currently succeed.
func (q *MessageQueue[T]) HasMessage() bool {
	return q.r.len() > 0
}

// MessageCount returns the instantaneous number of buffered messages.
func (q *MessageQueue[T]) MessageCount() int {
	return q.r.len()
}

// Capacity returns the queue's fixed physical capacity.
func (q *MessageQueue[T]) Capacity() int {
	return q.r.cap()
}

// IsClosed reports whether Close has been called. A closed queue may still
// have buffered messages a reader hasn't drained yet.
func (q *MessageQueue[T]) IsClosed() bool {
	return q.closed.LoadAcquire()
}

// Close marks the queue closed: no further TryPush calls succeed, and wakes
// the reader so a blocked Receive observes the closure instead of waiting
// for a message that will never come. Idempotent — storing true twice is a
// no-op, so the teardown of both components on an edge may close the same
// queue.
func (q *MessageQueue[T]) Close() {
	q.closed.StoreRelease(true)
	if q.reader != nil {
		q.reader.wake(evProcessShutdown)
	}
}
