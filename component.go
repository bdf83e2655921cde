// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
)

// componentState is the lifecycle state machine from constructed through
// stopped. It only ever moves forward; a Component is never recycled.
type componentState int32

const (
	stateConstructed componentState = iota
	stateStarted
	stateInitializing
	stateRunning
	stateStopping
	stateStopped
)

func (s componentState) String() string {
	switch s {
	case stateConstructed:
		return "constructed"
	case stateStarted:
		return "started"
	case stateInitializing:
		return "initializing"
	case stateRunning:
		return "running"
	case stateStopping:
		return "stopping"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Logic is the pair of extension points every component author implements.
// Ports are declared separately, via AddInput/AddOutput on the Component
// that wraps a Logic value — the "builder method returning a fully-wired
// component" rendering spec.md §9 calls for in place of a language-specific
// vtable.
type Logic interface {
	// Initialize runs exactly once, after ProcessStart is consumed and
	// before the first Process call. It may block on Receive to read
	// initial configuration messages.
	Initialize(ctx context.Context, c *Component) error
	// Process runs repeatedly while should_run holds. It is expected to
	// return in bounded time once it observes StatusTerminated from any
	// blocking call.
	Process(ctx context.Context, c *Component) error
}

// Component hosts a Logic value, owns its input/output port arrays, and
// runs them on a dedicated goroutine with the lifecycle spec.md §4.5
// describes: constructed → started → initializing → running → stopping →
// stopped.
type Component struct {
	name   string
	logic  Logic
	cfg    componentConfig
	wake   *wakeTarget
	should atomix.Bool
	state  atomix.Int32

	mu      sync.Mutex
	inputs  map[int]Port
	outputs map[int]Port
	started bool

	done chan struct{}
	err  error
}

// NewComponent creates a Component named name. Ports are added afterward
// via AddInput/AddOutput, and the hosting Logic via SetLogic, all before
// StartProcess is called — the usual order inside a Runtime Factory is
// NewComponent, then a Logic constructor that both adds ports and returns
// itself, then SetLogic.
func NewComponent(name string, opts ...ComponentOption) *Component {
	return &Component{
		name:    name,
		cfg:     newComponentConfig(opts),
		wake:    newWakeTarget(),
		inputs:  make(map[int]Port),
		outputs: make(map[int]Port),
		done:    make(chan struct{}),
	}
}

// SetLogic attaches the Logic a Component runs. Returns ErrAfterStart if
// called once StartProcess has run.
func (c *Component) SetLogic(logic Logic) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAfterStart
	}
	c.logic = logic
	return nil
}

// Name returns the component's registry instance name.
func (c *Component) Name() string { return c.name }

// State returns the component's current lifecycle state, mainly useful for
// diagnostics and tests asserting on shutdown behavior.
func (c *Component) State() string {
	return componentState(c.state.Load()).String()
}

// reservePort validates and records a port index against c's input or
// output array under lock. Go forbids type-parameterized methods, so the
// actual typed port construction happens in the free functions AddInput
// and AddOutput (port.go); reservePort is the shared, type-erased half of
// that logic.
func (c *Component) reservePort(outputs bool, index int, p Port) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAfterStart
	}
	arr := c.inputs
	if outputs {
		arr = c.outputs
	}
	if _, exists := arr[index]; exists {
		return wrapf(ErrPortInUse, "%s index %d", c.name, index)
	}
	arr[index] = p
	return nil
}

func (c *Component) shouldRun() bool {
	return c.should.LoadAcquire()
}

// StartProcess transitions the component from Constructed to Started,
// spawns its execution goroutine, and signals ProcessStart — mirroring
// spec.md §4.5's start_process exactly: flip should_run, spawn, signal.
func (c *Component) StartProcess(ctx context.Context) {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	c.should.StoreRelease(true)
	c.state.Store(int32(stateStarted))
	go c.run(ctx)
	c.wake.wake(evProcessStart)
}

// run is the component's dedicated execution context: block for
// ProcessStart, run Initialize once, then loop Process while should_run
// holds.
func (c *Component) run(ctx context.Context) {
	defer close(c.done)

	if _, err := c.wake.wait(ctx, evProcessStart); err != nil {
		c.err = err
		c.state.Store(int32(stateStopped))
		return
	}

	c.state.Store(int32(stateInitializing))
	if err := c.logic.Initialize(ctx, c); err != nil {
		c.cfg.logger.Err().Err(err).Log("component initialize failed")
		c.err = err
		c.should.StoreRelease(false)
		c.state.Store(int32(stateStopped))
		return
	}

	c.state.Store(int32(stateRunning))
	for c.shouldRun() {
		if err := c.logic.Process(ctx, c); err != nil {
			if !IsWouldBlock(err) {
				c.cfg.logger.Err().Err(err).Log("component process failed")
				c.err = err
				break
			}
		}
	}

	c.state.Store(int32(stateStopping))
	// Close every queue this component touches, in both directions: its
	// own inputs (so an upstream producer blocked in Send learns there is
	// no longer a reader and unblocks with StatusTerminated instead of
	// waiting out its push-attempt window) and its own outputs (so a
	// downstream consumer blocked in Receive learns there is no longer a
	// writer, drains whatever is already buffered, and then unblocks too).
	for _, p := range c.inputs {
		if q, ok := p.(closer); ok {
			q.closeQueue()
		}
	}
	for _, p := range c.outputs {
		if q, ok := p.(closer); ok {
			q.closeQueue()
		}
	}
	c.state.Store(int32(stateStopped))
}

// closer is implemented by InputPort[T] and OutputPort[T]; used internally
// by run's teardown loop to close every queue a component touches without
// needing the element type.
type closer interface {
	closeQueue()
}

func (p *InputPort[T]) closeQueue() { p.queue.Close() }

// closeQueue closes the queue an OutputPort writes to, if it was ever
// connected. An unconnected OutputPort has nothing to close.
func (p *OutputPort[T]) closeQueue() {
	if p.queue != nil {
		p.queue.Close()
	}
}

// StopProcess sets should_run false and signals ProcessShutdown, matching
// spec.md §4.5's stop_process. Blocked receivers/senders observe the flag
// (or the shutdown event directly) and return StatusTerminated.
func (c *Component) StopProcess() {
	c.should.StoreRelease(false)
	c.wake.wake(evProcessShutdown)
}

// Await blocks until the Component's should_run clears or one of the given
// Awaitable ports has a message, returning the index of the first ready
// port in declaration order (spec.md §4.5 await, tie-break = argument
// order).
func (c *Component) Await(ctx context.Context, ports ...Awaitable) Optional[int] {
	for {
		if !c.shouldRun() {
			return failOptional[int](StatusTerminated)
		}
		for i, p := range ports {
			if p.HasMessage() {
				return okOptional(i)
			}
		}
		if _, err := c.wake.wait(ctx, evMessageArrival|evProcessShutdown); err != nil {
			return failOptional[int](StatusTerminated)
		}
	}
}

// Awaitable is satisfied by InputPort[T] for any T, the minimal surface
// Await needs to poll readiness without erasing the element type for
// callers that don't need Await.
type Awaitable interface {
	HasMessage() bool
}

// Done returns a channel closed once the component's execution goroutine
// has fully exited (state Stopped). Useful in tests asserting S3's "no
// leaked execution context".
func (c *Component) Done() <-chan struct{} { return c.done }

// Err returns the error, if any, that caused Initialize or Process to
// abort the run loop early. Nil on a clean Terminated shutdown.
func (c *Component) Err() error { return c.err }
