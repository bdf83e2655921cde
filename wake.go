// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"context"

	"code.hybscloud.com/atomix"
)

// wakeTarget is a per-component execution-context notification channel, in
// the spirit of an RTOS task-notification word: events are bits that
// accumulate (OR together) rather than queue, and a blocking wait clears
// only the bits it was asked about and observed set.
//
// A queue's reader side holds a reference to its owning Component's
// wakeTarget and signals evMessageArrival into it on every successful
// push; the Component itself signals evProcessStart/evProcessShutdown at
// the matching lifecycle transitions. This is the "cross-component wake-up
// and ordering protocol" from spec.md §1 — one doorbell per component,
// shared by every queue whose reader is that component.
type wakeTarget struct {
	_      pad
	bits   atomix.Uint64
	_      pad
	signal chan struct{} // capacity 1, used as a doorbell
}

func newWakeTarget() *wakeTarget {
	return &wakeTarget{signal: make(chan struct{}, 1)}
}

// wake ORs event into the bitmask and rings the doorbell. Safe to call
// from any goroutine, any number of times; spurious or repeated wakes are
// harmless since waiters re-check the mask before blocking again.
func (w *wakeTarget) wake(event uint64) {
	for {
		old := w.bits.LoadAcquire()
		if old&event == event {
			break
		}
		if w.bits.CompareAndSwapAcqRel(old, old|event) {
			break
		}
	}
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// wait blocks until at least one bit in mask is set, then clears the
// matched bits and returns them. Returns ctx.Err() if ctx is canceled
// first, leaving the mask untouched.
//
// Spurious wakes are expected (the doorbell fires for every wake() call,
// including ones for bits outside mask) — wait re-checks the mask itself
// before reporting a wake, rather than trusting the doorbell alone.
func (w *wakeTarget) wait(ctx context.Context, mask uint64) (uint64, error) {
	for {
		bits := w.bits.LoadAcquire()
		if matched := bits & mask; matched != 0 {
			for {
				old := w.bits.LoadAcquire()
				next := old &^ matched
				if w.bits.CompareAndSwapAcqRel(old, next) {
					break
				}
			}
			return matched, nil
		}
		select {
		case <-w.signal:
			continue
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}
