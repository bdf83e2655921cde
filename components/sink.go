// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package components

import (
	"context"
	"sync"

	"code.hybscloud.com/flowrt"
)

// Sink appends every value it receives on input 0 to a test-visible
// slice. Used by end-to-end tests (spec.md §8 scenario S1) to assert on
// delivery order without a real downstream consumer.
type Sink struct {
	in *flowrt.InputPort[float64]

	mu     sync.Mutex
	values []float64
}

// NewSink wires a Sink's input port (capacity slots) onto c.
func NewSink(c *flowrt.Component, capacity int) (*Sink, error) {
	s := &Sink{}
	in, err := flowrt.AddInput[float64](c, 0, capacity)
	if err != nil {
		return nil, err
	}
	s.in = in
	return s, nil
}

func (s *Sink) Initialize(ctx context.Context, c *flowrt.Component) error { return nil }

func (s *Sink) Process(ctx context.Context, c *flowrt.Component) error {
	v := s.in.Receive(ctx)
	if !v.Ok() {
		c.StopProcess()
		return nil
	}
	s.mu.Lock()
	s.values = append(s.values, v.Value())
	s.mu.Unlock()
	return nil
}

// Values returns a copy of the values received so far, safe to call
// concurrently with Process.
func (s *Sink) Values() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
