// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"context"
	"testing"
	"time"
)

func TestWakeTargetMatchesOnlyRequestedMask(t *testing.T) {
	w := newWakeTarget()
	w.wake(evProcessStart)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := w.wait(ctx, evMessageArrival); err == nil {
		t.Fatal("wait: want timeout, evProcessStart should not satisfy an evMessageArrival mask")
	}
}

func TestWakeTargetClearsOnlyMatchedBits(t *testing.T) {
	w := newWakeTarget()
	w.wake(evProcessStart)
	w.wake(evMessageArrival)

	got, err := w.wait(context.Background(), evProcessStart)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got != evProcessStart {
		t.Fatalf("wait: got matched bits %d, want %d", got, evProcessStart)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	got, err = w.wait(ctx, evMessageArrival)
	if err != nil {
		t.Fatalf("wait for still-pending bit: %v", err)
	}
	if got != evMessageArrival {
		t.Fatalf("wait: got %d, want %d", got, evMessageArrival)
	}
}

func TestWakeTargetCanceledContext(t *testing.T) {
	w := newWakeTarget()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.wait(ctx, evProcessStart); err == nil {
		t.Fatal("wait on a canceled context: want an error")
	}
}

func TestWakeTargetConcurrentWake(t *testing.T) {
	w := newWakeTarget()
	done := make(chan struct{})
	go func() {
		time.Sleep(5 * time.Millisecond)
		w.wake(evProcessShutdown)
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := w.wait(ctx, evProcessShutdown); err != nil {
		t.Fatalf("wait: %v", err)
	}
	<-done
}
