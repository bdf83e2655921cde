// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import "code.hybscloud.com/atomix"

// ring is a single-producer single-consumer bounded FIFO, grounded on the
// Lamport ring buffer with cached-index optimization: the producer caches
// the consumer's dequeue index, and vice versa, to reduce cross-core cache
// line traffic. Every flowrt MessageQueue is exactly one of these, never a
// multi-producer or multi-consumer variant — spec.md's port model connects
// at most one OutputPort to one InputPort, so SPSC is the only algorithm a
// queue ever needs.
//
// ring does not block and does not know about closing; MessageQueue layers
// both on top.
type ring[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// newRing creates a ring whose capacity is n rounded up to the next power
// of 2. Panics if n < 2.
func newRing[T any](n int) *ring[T] {
	if n < 2 {
		panic("flowrt: queue capacity must be >= 2")
	}
	size := uint64(roundToPow2(n))
	return &ring[T]{
		buffer: make([]T, size),
		mask:   size - 1,
	}
}

// tryPush adds an element (producer goroutine only).
// Returns ErrWouldBlock if the ring is full.
func (r *ring[T]) tryPush(elem T) error {
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.mask {
			return ErrWouldBlock
		}
	}
	r.buffer[tail&r.mask] = elem
	r.tail.StoreRelease(tail + 1)
	return nil
}

// tryPop removes and returns an element (consumer goroutine only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *ring[T]) tryPop() (T, error) {
	head := r.head.LoadRelaxed()
	if head >= r.cachedTail {
		r.cachedTail = r.tail.LoadAcquire()
		if head >= r.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}
	elem := r.buffer[head&r.mask]
	var zero T
	r.buffer[head&r.mask] = zero
	r.head.StoreRelease(head + 1)
	return elem, nil
}

// len returns an instantaneous count of queued elements. Exact for SPSC
// (unlike the multi-producer/multi-consumer algorithms, where an accurate
// count needs expensive cross-core synchronization): tail and head each
// have exactly one writer, so a single acquire-load of each is enough.
func (r *ring[T]) len() int {
	tail := r.tail.LoadAcquire()
	head := r.head.LoadAcquire()
	return int(tail - head)
}

// cap returns the ring's physical capacity.
func (r *ring[T]) cap() int {
	return int(r.mask + 1)
}
