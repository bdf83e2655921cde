// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking queue operation cannot proceed
// immediately: the ring is full on TryPush, or empty on TryPop.
//
// ErrWouldBlock is a control flow signal, not a failure — callers in this
// package retry with code.hybscloud.com/spin's Wait rather than propagating it. It is an
// alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a failure.
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// ErrClosed indicates a MessageQueue has been closed: TryPush always fails
// with it, and TryPop fails with it only once the buffered backlog has
// been fully drained. Like ErrWouldBlock it is a control flow signal
// rather than a failure.
var ErrClosed = errors.New("flowrt: queue closed")

// Sentinel errors for the Component/Runtime layer. These are orchestration
// mistakes (unknown names, double registration, wiring after start) rather
// than per-message control flow, so they use the standard error interface
// and are matched with errors.Is, not MessageStatus.
var (
	// ErrUnknownComponentType is returned by AddNode when no factory was
	// registered under the requested component id.
	ErrUnknownComponentType = errors.New("flowrt: unknown component type")

	// ErrNameInUse is returned by AddNode when the instance name is already
	// registered.
	ErrNameInUse = errors.New("flowrt: node name already in use")

	// ErrUnknownNode is returned by RemoveNode and AddEdge for a name with
	// no registered instance.
	ErrUnknownNode = errors.New("flowrt: unknown node")

	// ErrPortInUse is returned by AddInput/AddOutput when the given index
	// is already occupied. AddEdge also returns it, wrapped with a
	// "missing output"/"missing input" message, when the named component
	// declares no port at the requested index; there is no separate
	// sentinel for a missing port.
	ErrPortInUse = errors.New("flowrt: port index already in use")

	// ErrAfterStart is returned by AddInput/AddOutput/Connect once the
	// owning Component has had StartProcess called on it.
	ErrAfterStart = errors.New("flowrt: cannot modify ports after start")

	// ErrSelfConnection is returned by Connect when both ports belong to
	// the same Component — a single-threaded self-loop with no scheduling
	// opportunity to unblock it.
	ErrSelfConnection = errors.New("flowrt: output and input belong to the same component")

	// ErrTypeMismatch is returned by the Runtime's name-resolved AddEdge
	// when the source and target ports declare different element types.
	// Distinct from StatusTypeMismatch, which is a per-message send/receive
	// outcome rather than a graph-construction error.
	ErrTypeMismatch = errors.New("flowrt: connected ports declare different element types")
)

// wrapf is a small helper for attaching a sentinel to a named context,
// e.g. wrapf(ErrUnknownNode, "edge target %q", name).
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
