// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt

import "reflect"

// TypeID is a process-wide identifier for a message element type.
//
// Two TypeID values compare equal iff they were captured from the same
// type. TypeID is comparable and totally ordered (Less), so it can be used
// as a map key or sorted for deterministic diagnostics.
//
// TypeOf calls [reflect.TypeOf] each time it runs (a port's TypeID method
// calls TypeOf on every call). The resulting reflect.Type values are
// process-wide interned, so once two TypeIDs exist, comparing them is a
// single interface equality, the same cost as comparing the source's
// type-parameterized static address.
type TypeID struct {
	rt reflect.Type
}

// TypeOf returns the TypeID for T. Calling TypeOf[T]() twice for the same T
// (including across goroutines) always yields equal TypeIDs.
func TypeOf[T any]() TypeID {
	var zero T
	return TypeID{rt: reflect.TypeOf(&zero).Elem()}
}

// Equal reports whether id and other identify the same type.
func (id TypeID) Equal(other TypeID) bool {
	return id.rt == other.rt
}

// Less imposes a total order over TypeIDs, by the underlying type's name.
// The order has no meaning beyond being stable and total; it exists to
// satisfy diagnostics and tests that want deterministic iteration, not for
// any hot-path decision.
func (id TypeID) Less(other TypeID) bool {
	return id.rt.String() < other.rt.String()
}

// String returns the underlying type's name, for logs and test failures.
func (id TypeID) String() string {
	if id.rt == nil {
		return "<untyped>"
	}
	return id.rt.String()
}
