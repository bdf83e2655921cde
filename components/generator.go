// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package components holds a few minimal component implementations used
// by flowrt's tests and the cmd/flowdemo example. They stand in for the
// sine-generator/plotter/I²C-driver examples spec.md treats as external
// collaborators: only the Logic contract matters here, not the payload.
package components

import (
	"context"
	"time"

	"code.hybscloud.com/flowrt"
)

// Pulse produces an increasing sequence of float64 values on its single
// output (index 0), one per Process call, pausing Interval between sends.
// A zero Interval sends as fast as the downstream queue allows — the
// shape S2's backpressure scenario needs. Count bounds the sequence
// length; zero means unbounded (Pulse runs until stopped).
type Pulse struct {
	Interval time.Duration
	Count    int

	out *flowrt.OutputPort[float64]
	n   int
}

// NewPulse wires a Pulse's output port onto c and returns the Logic.
// Callers use this from a Runtime Factory, before StartProcess — port
// declaration is construction-time, per spec.md §3.
func NewPulse(c *flowrt.Component, interval time.Duration, count int) (*Pulse, error) {
	p := &Pulse{Interval: interval, Count: count}
	out, err := flowrt.AddOutput[float64](c, 0)
	if err != nil {
		return nil, err
	}
	p.out = out
	return p, nil
}

func (p *Pulse) Initialize(ctx context.Context, c *flowrt.Component) error { return nil }

func (p *Pulse) Process(ctx context.Context, c *flowrt.Component) error {
	if p.Count > 0 && p.n >= p.Count {
		c.StopProcess()
		return nil
	}
	if p.Interval > 0 {
		select {
		case <-time.After(p.Interval):
		case <-ctx.Done():
			return nil
		}
	}
	p.n++
	p.out.Send(ctx, float64(p.n))
	return nil
}
