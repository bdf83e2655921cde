// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package components_test

import (
	"context"
	"testing"
	"time"

	"code.hybscloud.com/flowrt"
	"code.hybscloud.com/flowrt/components"
)

func TestPulseSink(t *testing.T) {
	rt := flowrt.NewRuntime()

	var sink *components.Sink
	rt.RegisterComponent("pulse", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewPulse(c, time.Millisecond, 5)
		if err != nil {
			return nil, err
		}
		return c, c.SetLogic(logic)
	})
	rt.RegisterComponent("sink", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewSink(c, 8)
		if err != nil {
			return nil, err
		}
		sink = logic
		return c, c.SetLogic(logic)
	})

	if _, err := rt.AddNode("pulse", "p"); err != nil {
		t.Fatalf("AddNode(pulse): %v", err)
	}
	if _, err := rt.AddNode("sink", "s"); err != nil {
		t.Fatalf("AddNode(sink): %v", err)
	}
	if err := rt.AddEdge("p", 0, "s", 0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	ctx := context.Background()
	rt.StartNetwork(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if values := sink.Values(); len(values) == 5 {
			for i, v := range values {
				if v != float64(i+1) {
					t.Fatalf("Values()[%d]: got %v, want %v", i, v, float64(i+1))
				}
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for 5 pulses, got %v", sink.Values())
		case <-time.After(5 * time.Millisecond):
		}
	}

	rt.StopNetwork()
}

func TestMovingAverage(t *testing.T) {
	rt := flowrt.NewRuntime()

	var sink *components.Sink
	rt.RegisterComponent("avg", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewMovingAverage(c, 2, 8)
		if err != nil {
			return nil, err
		}
		return c, c.SetLogic(logic)
	})
	rt.RegisterComponent("sink", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewSink(c, 8)
		if err != nil {
			return nil, err
		}
		sink = logic
		return c, c.SetLogic(logic)
	})

	if _, err := rt.AddNode("avg", "a"); err != nil {
		t.Fatalf("AddNode(avg): %v", err)
	}
	if _, err := rt.AddNode("sink", "s"); err != nil {
		t.Fatalf("AddNode(sink): %v", err)
	}
	if err := rt.AddEdge("a", 0, "s", 0); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	ctx := context.Background()
	rt.StartNetwork(ctx)

	if status := flowrt.AddInitial[float64](ctx, rt, "a", 0, 2); status != flowrt.StatusOkay {
		t.Fatalf("AddInitial(2): %v", status)
	}
	if status := flowrt.AddInitial[float64](ctx, rt, "a", 0, 4); status != flowrt.StatusOkay {
		t.Fatalf("AddInitial(4): %v", status)
	}
	if status := flowrt.AddInitial[float64](ctx, rt, "a", 0, 6); status != flowrt.StatusOkay {
		t.Fatalf("AddInitial(6): %v", status)
	}

	deadline := time.After(2 * time.Second)
	want := []float64{2, 3, 5} // avg([2]), avg([2,4]), avg([4,6]) with window 2
	for {
		if values := sink.Values(); len(values) == len(want) {
			for i, v := range values {
				if v != want[i] {
					t.Fatalf("Values()[%d]: got %v, want %v", i, v, want[i])
				}
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for moving averages, got %v", sink.Values())
		case <-time.After(5 * time.Millisecond):
		}
	}

	rt.StopNetwork()
}
