// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"context"
	"strconv"
	"time"

	"code.hybscloud.com/spin"
)

// Port is the type-erased interface every InputPort[T]/OutputPort[T]
// satisfies. The Runtime registry's name-based wiring (AddEdge, AddInitial)
// only ever holds a Port, recovering the element type by type-asserting
// against Port's typed counterpart at connection time — the same place a
// type mismatch between two named ports surfaces as ErrTypeMismatch
// instead of a compile error, since the registry's API necessarily trades
// static typing for string-keyed flexibility.
type Port interface {
	// TypeID identifies the port's element type, for diagnostics and for
	// the registry to reject mismatched edges early, with a clear error,
	// rather than waiting for a runtime SendTyped/ReceiveTyped mismatch.
	TypeID() TypeID
	// Name is the "component/index" label used in diagnostics.
	Name() string
}

// InputPort is the typed read side of a queue. A Component owns one per
// declared input; only that Component's Process goroutine may call
// Receive.
type InputPort[T any] struct {
	owner *Component
	index int
	queue *MessageQueue[T]
}

func (p *InputPort[T]) TypeID() TypeID { return TypeOf[T]() }

func (p *InputPort[T]) Name() string { return portName(p.owner, p.index) }

// Receive blocks until a message is available, the deadline in ctx expires,
// or the Component's should_run flag clears. It never returns
// StatusTypeMismatch — Go's type system has already guaranteed T at compile
// time; SendTyped/ReceiveTyped carry that possibility for the dynamic path.
func (p *InputPort[T]) Receive(ctx context.Context) Optional[T] {
	for {
		v, err := p.queue.TryPop()
		if err == nil {
			return okOptional(v)
		}
		if IsClosed(err) {
			return failOptional[T](StatusTerminated)
		}
		if !p.owner.shouldRun() {
			return failOptional[T](StatusTerminated)
		}
		select {
		case <-ctx.Done():
			return failOptional[T](StatusTerminated)
		default:
		}
		if _, werr := p.owner.wake.wait(ctx, evMessageArrival|evProcessShutdown); werr != nil {
			return failOptional[T](StatusTerminated)
		}
	}
}

// HasMessage reports whether a Receive would currently return immediately.
func (p *InputPort[T]) HasMessage() bool { return p.queue.HasMessage() }

// OutputPort is the typed write side of a queue. A Component owns one per
// declared output; only that Component's Process goroutine may call Send.
// queue is nil until Connect binds it — an unconnected OutputPort is a
// valid, permanent state, not a construction error (spec.md §4.3: "a
// disconnected output is not an error").
type OutputPort[T any] struct {
	owner   *Component
	index   int
	queue   *MessageQueue[T]
	timeout time.Duration
}

func (p *OutputPort[T]) TypeID() TypeID { return TypeOf[T]() }

func (p *OutputPort[T]) Name() string { return portName(p.owner, p.index) }

// Send retries TryPush for up to the Component's configured
// pushAttemptTimeout per attempt, re-checking should_run between attempts
// so a slow or stalled consumer can never prevent termination from being
// observed (spec.md §8 invariant 5). Returns StatusTerminated if
// should_run clears, the target queue closes, or ctx is canceled before a
// slot opens.
//
// If the port was never connected, Send silently discards v and returns
// StatusOkay — spec.md §4.3's silent-discard law (invariant 6): a missing
// downstream consumer is not a failure.
func (p *OutputPort[T]) Send(ctx context.Context, v T) MessageStatus {
	if p.queue == nil {
		return StatusOkay
	}
	sw := spin.Wait{}
	deadline := time.Now().Add(p.timeout)
	for {
		err := p.queue.TryPush(v)
		if err == nil {
			return StatusOkay
		}
		if IsClosed(err) {
			return StatusTerminated
		}
		if !p.owner.shouldRun() {
			return StatusTerminated
		}
		select {
		case <-ctx.Done():
			return StatusTerminated
		default:
		}
		if time.Now().After(deadline) {
			// One push-attempt window has elapsed with should_run still
			// true; start a fresh window rather than escalating sw
			// indefinitely, so a stalled consumer never starves the
			// should_run recheck above.
			deadline = time.Now().Add(p.timeout)
			sw = spin.Wait{}
		}
		sw.Once()
	}
}

// IsClosed reports whether err is ErrClosed, the queue-level closure
// signal distinct from ErrWouldBlock.
func IsClosed(err error) bool {
	return err == ErrClosed
}

func portName(owner *Component, index int) string {
	if owner == nil {
		return "?"
	}
	return owner.name + "/" + strconv.Itoa(index)
}

// AddInput declares input port index on c, creating its queue with the
// given capacity and wiring the queue's reader wake-target to c — exactly
// spec.md §4.4's "InputPort creates its queue at construction". Go forbids
// type-parameterized methods, so this is a free function rather than a
// method on Component.
func AddInput[T any](c *Component, index int, capacity int) (*InputPort[T], error) {
	p := &InputPort[T]{owner: c, index: index}
	p.queue = NewMessageQueue[T](capacity, c.wake)
	if err := c.reservePort(false, index, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddOutput declares output port index on c. The returned port has no
// queue until Connect binds one.
func AddOutput[T any](c *Component, index int) (*OutputPort[T], error) {
	p := &OutputPort[T]{owner: c, index: index, timeout: c.cfg.pushAttemptTimeout}
	if err := c.reservePort(true, index, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Connect binds out's queue reference to in's queue, per spec.md §4.4.
// Returns ErrSelfConnection if out and in belong to the same Component —
// a single-threaded self-loop has no scheduling opportunity to ever
// unblock it, so the core refuses it outright rather than building a
// graph that deadlocks by construction — and ErrAfterStart if either
// Component has already had StartProcess called on it. Type agreement between out and in
// is guaranteed at compile time by sharing T, unlike the dynamic
// name-resolved path the Runtime registry uses for AddEdge.
func Connect[T any](out *OutputPort[T], in *InputPort[T]) error {
	if out.owner == in.owner {
		return ErrSelfConnection
	}
	for _, c := range []*Component{out.owner, in.owner} {
		if c == nil {
			continue
		}
		c.mu.Lock()
		started := c.started
		c.mu.Unlock()
		if started {
			return ErrAfterStart
		}
	}
	out.queue = in.queue
	return nil
}

// connectableOutput is implemented only by *OutputPort[T]. The Runtime
// registry's AddEdge holds two type-erased Ports resolved by name and
// needs to bind them without knowing T statically; it type-asserts the
// source Port against this interface and delegates the actual typed
// connection to connectTo, which in turn type-asserts the target Port
// against *InputPort[T] — the one place a name-resolved edge can discover
// a TypeMismatch between its endpoints.
type connectableOutput interface {
	connectTo(in Port) error
}

func (p *OutputPort[T]) connectTo(in Port) error {
	target, ok := in.(*InputPort[T])
	if !ok {
		return ErrTypeMismatch
	}
	return Connect(p, target)
}

// SendTyped is the dynamic, name-resolved counterpart to OutputPort.Send:
// it takes a type-erased Port (as produced by Runtime's registry lookups)
// and type-asserts it against *OutputPort[T], returning StatusTypeMismatch
// rather than failing to compile when T disagrees with the port's
// declared element type (spec.md §4.4 OutputPort::send<T>, step 1).
func SendTyped[T any](ctx context.Context, p Port, v T) MessageStatus {
	out, ok := p.(*OutputPort[T])
	if !ok {
		return StatusTypeMismatch
	}
	return out.Send(ctx, v)
}

// ReceiveTyped is the dynamic counterpart to InputPort.Receive, used by
// code that only holds a type-erased Port (e.g. resolved by name from a
// Runtime). Returns StatusTypeMismatch if p is not an *InputPort[T].
func ReceiveTyped[T any](ctx context.Context, p Port) Optional[T] {
	in, ok := p.(*InputPort[T])
	if !ok {
		return failOptional[T](StatusTypeMismatch)
	}
	return in.Receive(ctx)
}

// SendMessage is spec.md §4.4's top-level send_message<T>: external
// injection used for initial messages, distinct from OutputPort.Send in
// that it observes only the target queue's closed state, never a
// sender's should_run (there is no sender component — the orchestrator
// calls this directly). Retries until the push succeeds (StatusOkay) or
// the target closes (StatusTerminated).
func SendMessage[T any](ctx context.Context, p Port, v T) MessageStatus {
	in, ok := p.(*InputPort[T])
	if !ok {
		return StatusTypeMismatch
	}
	sp := spin.Wait{}
	for {
		err := in.queue.TryPush(v)
		if err == nil {
			return StatusOkay
		}
		if IsClosed(err) {
			return StatusTerminated
		}
		select {
		case <-ctx.Done():
			return StatusTerminated
		default:
		}
		sp.Once()
	}
}
