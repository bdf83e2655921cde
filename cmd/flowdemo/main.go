// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command flowdemo wires a Pulse generator through a MovingAverage into a
// Sink, runs the network briefly, and prints what the sink collected. It
// exists to exercise Runtime end-to-end, not as a production tool.
package main

import (
	"context"
	"fmt"
	"time"

	"code.hybscloud.com/flowrt"
	"code.hybscloud.com/flowrt/components"
)

func main() {
	rt := flowrt.NewRuntime()

	var sink *components.Sink
	rt.RegisterComponent("pulse", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewPulse(c, 5*time.Millisecond, 20)
		if err != nil {
			return nil, err
		}
		return c, c.SetLogic(logic)
	})
	rt.RegisterComponent("movingaverage", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewMovingAverage(c, 4, 16)
		if err != nil {
			return nil, err
		}
		return c, c.SetLogic(logic)
	})
	rt.RegisterComponent("sink", func(name string) (*flowrt.Component, error) {
		c := flowrt.NewComponent(name)
		logic, err := components.NewSink(c, 32)
		if err != nil {
			return nil, err
		}
		sink = logic
		return c, c.SetLogic(logic)
	})

	if _, err := rt.AddNode("pulse", "src"); err != nil {
		panic(err)
	}
	if _, err := rt.AddNode("movingaverage", "avg"); err != nil {
		panic(err)
	}
	if _, err := rt.AddNode("sink", "snk"); err != nil {
		panic(err)
	}
	if err := rt.AddEdge("src", 0, "avg", 0); err != nil {
		panic(err)
	}
	if err := rt.AddEdge("avg", 0, "snk", 0); err != nil {
		panic(err)
	}

	ctx := context.Background()
	rt.StartNetwork(ctx)
	time.Sleep(300 * time.Millisecond)
	rt.StopNetwork()

	fmt.Println(sink.Values())
}
