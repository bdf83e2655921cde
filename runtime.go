// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"context"
	"sort"
	"sync"
)

// Factory builds one new, fully-ported Component instance. Registered
// under a textual component-type id, and invoked by AddNode with the new
// instance's name — spec.md §4.6's component factory.
type Factory func(name string) (*Component, error)

// Runtime is the process-local registry spec.md §9 calls for in place of
// the source's process-global s_nodes/s_factories maps: an explicit object
// owning both, so tests get independent instances instead of hidden
// shared state.
type Runtime struct {
	cfg runtimeConfig

	mu        sync.Mutex
	factories map[string]Factory
	nodes     map[string]*Component
}

// NewRuntime creates an empty registry.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	return &Runtime{
		cfg:       newRuntimeConfig(opts),
		factories: make(map[string]Factory),
		nodes:     make(map[string]*Component),
	}
}

// RegisterComponent records factory under id. A second call with the same
// id replaces the previous factory, matching spec.md §4.6 exactly —
// registration is not an append-only ledger.
func (rt *Runtime) RegisterComponent(id string, factory Factory) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.factories[id] = factory
}

// AddNode instantiates the factory registered under componentID and
// stores the result under name. Returns ErrUnknownComponentType if no
// factory is registered, or ErrNameInUse if name is already taken.
func (rt *Runtime) AddNode(componentID, name string) (*Component, error) {
	rt.mu.Lock()
	factory, ok := rt.factories[componentID]
	if !ok {
		rt.mu.Unlock()
		return nil, wrapf(ErrUnknownComponentType, "%q", componentID)
	}
	if _, exists := rt.nodes[name]; exists {
		rt.mu.Unlock()
		return nil, wrapf(ErrNameInUse, "%q", name)
	}
	rt.mu.Unlock()

	c, err := factory(name)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if _, exists := rt.nodes[name]; exists {
		return nil, wrapf(ErrNameInUse, "%q", name)
	}
	rt.nodes[name] = c
	return c, nil
}

// RemoveNode stops and forgets the named instance. Once its run loop exits,
// the component closes its input queues, which unblocks any upstream sender
// writing to them, and the queues its outputs write to, which lets any
// downstream receiver drain them and then observe termination. RemoveNode
// does not wait for that to happen.
func (rt *Runtime) RemoveNode(name string) error {
	rt.mu.Lock()
	c, ok := rt.nodes[name]
	if !ok {
		rt.mu.Unlock()
		return wrapf(ErrUnknownNode, "%q", name)
	}
	delete(rt.nodes, name)
	rt.mu.Unlock()

	c.StopProcess()
	return nil
}

// node resolves name to a *Component, or reports ok=false.
func (rt *Runtime) node(name string) (*Component, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	c, ok := rt.nodes[name]
	return c, ok
}

// AddEdge resolves srcName/tgtName to registered nodes and connects
// srcName's output outIdx to tgtName's input inIdx. Per spec.md §4.6/§9,
// an unresolved name is documented legacy behavior, not a hard failure:
// AddEdge returns an error a caller can check (the idiomatic Go rendering
// of "silently no-op"), but does not panic, and leaves both endpoints
// untouched — callers replicating the original silent-discard behavior
// are free to ignore the returned error, same as the source.
func (rt *Runtime) AddEdge(srcName string, outIdx int, tgtName string, inIdx int) error {
	src, ok := rt.node(srcName)
	if !ok {
		err := wrapf(ErrUnknownNode, "edge source %q", srcName)
		rt.cfg.logger.Warning().Err(err).Log("add_edge: unresolved source")
		return err
	}
	tgt, ok := rt.node(tgtName)
	if !ok {
		err := wrapf(ErrUnknownNode, "edge target %q", tgtName)
		rt.cfg.logger.Warning().Err(err).Log("add_edge: unresolved target")
		return err
	}

	src.mu.Lock()
	outPort, ok := src.outputs[outIdx]
	src.mu.Unlock()
	if !ok {
		return wrapf(ErrPortInUse, "missing output %s/%d", srcName, outIdx)
	}
	tgt.mu.Lock()
	inPort, ok := tgt.inputs[inIdx]
	tgt.mu.Unlock()
	if !ok {
		return wrapf(ErrPortInUse, "missing input %s/%d", tgtName, inIdx)
	}

	connectable, ok := outPort.(connectableOutput)
	if !ok {
		return ErrTypeMismatch
	}
	return connectable.connectTo(inPort)
}

// AddInitial injects value into the named component's input port inIdx,
// using SendMessage — spec.md §4.6's add_initial, typically used before
// StartNetwork to supply configuration a component's Initialize reads.
func AddInitial[T any](ctx context.Context, rt *Runtime, name string, inIdx int, value T) MessageStatus {
	c, ok := rt.node(name)
	if !ok {
		return StatusTerminated
	}
	c.mu.Lock()
	inPort, ok := c.inputs[inIdx]
	c.mu.Unlock()
	if !ok {
		return StatusTerminated
	}
	return SendMessage(ctx, inPort, value)
}

// StartNetwork calls StartProcess on every registered node. There is no
// ordering guarantee across nodes (spec.md §4.6) — components tolerate
// being started before their upstreams because blocking receives simply
// wait for the first message.
func (rt *Runtime) StartNetwork(ctx context.Context) {
	rt.mu.Lock()
	nodes := make([]*Component, 0, len(rt.nodes))
	for _, c := range rt.nodes {
		nodes = append(nodes, c)
	}
	rt.mu.Unlock()

	for _, c := range nodes {
		c.StartProcess(ctx)
	}
}

// StopNetwork calls StopProcess on every registered node and waits for
// each execution context to exit, so a caller that returns from
// StopNetwork can assume no node goroutine remains running.
func (rt *Runtime) StopNetwork() {
	rt.mu.Lock()
	nodes := make([]*Component, 0, len(rt.nodes))
	for _, c := range rt.nodes {
		nodes = append(nodes, c)
	}
	rt.mu.Unlock()

	for _, c := range nodes {
		c.StopProcess()
	}
	for _, c := range nodes {
		<-c.Done()
	}
}

// Graph returns the names of every registered node in sorted order, and
// for each a snapshot of its lifecycle state — a supplemented
// introspection helper (SPEC_FULL.md §6) with no equivalent in spec.md's
// minimal registry, useful for tests and operational tooling that want to
// assert on network shape without reaching into Runtime internals.
func (rt *Runtime) Graph() []NodeSnapshot {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]NodeSnapshot, 0, len(rt.nodes))
	for name, c := range rt.nodes {
		out = append(out, NodeSnapshot{Name: name, State: c.State()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NodeSnapshot is one Runtime.Graph() entry.
type NodeSnapshot struct {
	Name  string
	State string
}
