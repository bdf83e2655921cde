// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowrt_test

import (
	"context"
	"testing"

	"code.hybscloud.com/flowrt"
)

func TestSendTypedReceiveTypedRoundTrip(t *testing.T) {
	src := flowrt.NewComponent("src")
	out, err := flowrt.AddOutput[int](src, 0)
	if err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	if err := src.SetLogic(noopLogic{}); err != nil {
		t.Fatalf("SetLogic: %v", err)
	}

	snk := flowrt.NewComponent("snk")
	in, err := flowrt.AddInput[int](snk, 0, 4)
	if err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	if err := snk.SetLogic(noopLogic{}); err != nil {
		t.Fatalf("SetLogic: %v", err)
	}
	if err := flowrt.Connect(out, in); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	ctx := context.Background()
	var srcPort flowrt.Port = out
	var snkPort flowrt.Port = in

	if status := flowrt.SendTyped[int](ctx, srcPort, 5); status != flowrt.StatusOkay {
		t.Fatalf("SendTyped: got %v, want StatusOkay", status)
	}
	opt := flowrt.ReceiveTyped[int](ctx, snkPort)
	if !opt.Ok() || opt.Value() != 5 {
		t.Fatalf("ReceiveTyped: got (%v, ok=%v), want (5, true)", opt.Value(), opt.Ok())
	}
}

func TestSendTypedTypeMismatch(t *testing.T) {
	c := flowrt.NewComponent("c")
	out, err := flowrt.AddOutput[int](c, 0)
	if err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	var p flowrt.Port = out

	if status := flowrt.SendTyped[string](context.Background(), p, "nope"); status != flowrt.StatusTypeMismatch {
		t.Fatalf("SendTyped with wrong type: got %v, want StatusTypeMismatch", status)
	}
}

func TestReceiveTypedTypeMismatch(t *testing.T) {
	c := flowrt.NewComponent("c")
	in, err := flowrt.AddInput[int](c, 0, 4)
	if err != nil {
		t.Fatalf("AddInput: %v", err)
	}
	var p flowrt.Port = in

	opt := flowrt.ReceiveTyped[string](context.Background(), p)
	if opt.Status() != flowrt.StatusTypeMismatch {
		t.Fatalf("ReceiveTyped with wrong type: got %v, want StatusTypeMismatch", opt.Status())
	}
}

func TestTypeIDEquality(t *testing.T) {
	if !flowrt.TypeOf[int]().Equal(flowrt.TypeOf[int]()) {
		t.Fatal("TypeOf[int]() should equal itself across calls")
	}
	if flowrt.TypeOf[int]().Equal(flowrt.TypeOf[string]()) {
		t.Fatal("TypeOf[int]() should not equal TypeOf[string]()")
	}
}

func TestPortNameIncludesIndex(t *testing.T) {
	c := flowrt.NewComponent("named")
	out0, err := flowrt.AddOutput[int](c, 0)
	if err != nil {
		t.Fatalf("AddOutput(0): %v", err)
	}
	out1, err := flowrt.AddOutput[int](c, 1)
	if err != nil {
		t.Fatalf("AddOutput(1): %v", err)
	}
	if out0.Name() == out1.Name() {
		t.Fatalf("distinct port indices produced the same name %q", out0.Name())
	}
}

func TestAddPortDuplicateIndexRejected(t *testing.T) {
	c := flowrt.NewComponent("dup")
	if _, err := flowrt.AddOutput[int](c, 0); err != nil {
		t.Fatalf("first AddOutput: %v", err)
	}
	if _, err := flowrt.AddOutput[int](c, 0); err == nil {
		t.Fatal("second AddOutput at the same index: want an error")
	}
}
