// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flowrt is a small flow-based programming runtime for
// concurrent and embedded execution.
//
// Applications assemble a graph of independent [Component]s that exchange
// typed messages over [Port]s linked by bounded [MessageQueue]s. Each
// component runs on its own goroutine, repeatedly reading inputs,
// computing, and writing outputs, until the [Runtime] signals shutdown.
//
// # Quick Start
//
//	type Doubler struct{ in *flowrt.InputPort[int]; out *flowrt.OutputPort[int] }
//
//	func (d *Doubler) Initialize(ctx context.Context, c *flowrt.Component) error { return nil }
//
//	func (d *Doubler) Process(ctx context.Context, c *flowrt.Component) error {
//	    v := d.in.Receive(ctx)
//	    if !v.Ok() {
//	        return nil // Terminated; Process returns, run loop exits
//	    }
//	    d.out.Send(ctx, v.Value()*2)
//	    return nil
//	}
//
//	rt := flowrt.NewRuntime()
//	rt.RegisterComponent("doubler", func(name string) (*flowrt.Component, error) {
//	    c := flowrt.NewComponent(name)
//	    d := &Doubler{}
//	    var err error
//	    if d.in, err = flowrt.AddInput[int](c, 0, 16); err != nil {
//	        return nil, err
//	    }
//	    if d.out, err = flowrt.AddOutput[int](c, 0); err != nil {
//	        return nil, err
//	    }
//	    _ = c.SetLogic(d)
//	    return c, nil
//	})
//	src, _ := rt.AddNode("doubler", "src")
//	snk, _ := rt.AddNode("doubler", "snk")
//	_ = rt.AddEdge("src", 0, "snk", 0)
//	rt.StartNetwork(context.Background())
//	defer rt.StopNetwork()
//
// # Ports and queues
//
// An [InputPort] creates its queue at construction time; an [OutputPort]
// starts unconnected and is bound to an input's queue by [Connect]. Every
// queue is single-producer single-consumer — spec fan-in/fan-out is
// modeled with multiple ports, not multiple writers on one queue (see
// SPEC_FULL.md §9).
//
//	in, _ := flowrt.AddInput[Event](c, 0, 1024)
//	out, _ := flowrt.AddOutput[Event](otherC, 0)
//	_ = flowrt.Connect(out, in)
//
// Send retries for a bounded window and re-checks the component's
// should_run flag between attempts, so termination is always observed
// within roughly [DefaultPushAttemptTimeout]. Receive blocks until a
// message arrives or the component is asked to stop.
//
//	status := out.Send(ctx, ev)       // MessageStatus
//	opt := in.Receive(ctx)            // Optional[Event]
//	if opt.Ok() { handle(opt.Value()) }
//
// # Lifecycle
//
// A [Component] moves through constructed → started → initializing →
// running → stopping → stopped. [Component.StartProcess] spawns the
// execution goroutine and runs Logic.Initialize once before the first
// Logic.Process call; [Component.StopProcess] flips should_run and wakes
// any blocked call so it returns [StatusTerminated] promptly.
//
//	c.StartProcess(ctx)
//	// ...
//	c.StopProcess()
//	<-c.Done()
//
// # Wake events and Await
//
// Receive and Await wait on the component's [wakeTarget], a bitmask
// doorbell in the spirit of an RTOS task-notification word: ProcessStart,
// ProcessShutdown, and MessageArrival accumulate as bits rather than
// queue. [Component.Await] polls several [InputPort]s and returns the
// first ready one, tie-broken by argument order.
//
//	idx := c.Await(ctx, portA, portB, portC)
//
// # Error handling
//
// The queue layer returns [ErrWouldBlock] ([code.hybscloud.com/iox] for
// ecosystem consistency) and [ErrClosed] as non-fatal control flow
// signals; the Component/Port layer absorbs both internally and only
// ever surfaces a [MessageStatus] to Logic authors. Orchestration
// mistakes — unknown names, double registration, wiring after start —
// use ordinary sentinel errors matched with errors.Is.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/iox] for semantic
// errors, [code.hybscloud.com/spin] for CPU pause
// instructions, and [github.com/joeycumines/logiface] with
// [github.com/joeycumines/stumpy] for structured JSON logging.
package flowrt
