// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package components

import (
	"context"

	"code.hybscloud.com/flowrt"
)

// MovingAverage reads float64 samples on input 0 and writes the running
// average of the last Window samples on output 0, one output per input
// received. Window must be >= 1.
type MovingAverage struct {
	Window int

	in  *flowrt.InputPort[float64]
	out *flowrt.OutputPort[float64]

	buf []float64
	sum float64
	pos int
	n   int
}

// NewMovingAverage wires input/output ports (index 0 on both) onto c.
func NewMovingAverage(c *flowrt.Component, window, capacity int) (*MovingAverage, error) {
	if window < 1 {
		window = 1
	}
	m := &MovingAverage{Window: window, buf: make([]float64, window)}
	in, err := flowrt.AddInput[float64](c, 0, capacity)
	if err != nil {
		return nil, err
	}
	out, err := flowrt.AddOutput[float64](c, 0)
	if err != nil {
		return nil, err
	}
	m.in, m.out = in, out
	return m, nil
}

func (m *MovingAverage) Initialize(ctx context.Context, c *flowrt.Component) error { return nil }

func (m *MovingAverage) Process(ctx context.Context, c *flowrt.Component) error {
	v := m.in.Receive(ctx)
	if !v.Ok() {
		c.StopProcess()
		return nil
	}

	m.sum -= m.buf[m.pos]
	m.buf[m.pos] = v.Value()
	m.sum += v.Value()
	m.pos = (m.pos + 1) % len(m.buf)
	if m.n < len(m.buf) {
		m.n++
	}

	m.out.Send(ctx, m.sum/float64(m.n))
	return nil
}
