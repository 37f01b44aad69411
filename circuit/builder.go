//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
)

// Builder constructs circuits gate by gate.
type Builder struct {
	inputs IO
	next   Wire
	gates  []Gate
}

// NewBuilder creates a new builder for a circuit with the argument
// inputs.
func NewBuilder(inputs IO) *Builder {
	return &Builder{
		inputs: inputs,
		next:   Wire(inputs.Size()),
	}
}

// Input returns the wires of the input argument idx.
func (b *Builder) Input(idx int) []Wire {
	var offset int
	for i := 0; i < idx; i++ {
		offset += b.inputs[i].Size
	}
	result := make([]Wire, b.inputs[idx].Size)
	for i := range result {
		result[i] = Wire(offset + i)
	}
	return result
}

func (b *Builder) gate(op Operation, i0, i1 Wire) Wire {
	o := b.next
	b.next++
	b.gates = append(b.gates, Gate{
		Input0: i0,
		Input1: i1,
		Output: o,
		Op:     op,
	})
	return o
}

// XOR adds an XOR gate.
func (b *Builder) XOR(i0, i1 Wire) Wire {
	return b.gate(XOR, i0, i1)
}

// AND adds an AND gate.
func (b *Builder) AND(i0, i1 Wire) Wire {
	return b.gate(AND, i0, i1)
}

// INV adds an INV gate.
func (b *Builder) INV(i0 Wire) Wire {
	return b.gate(INV, i0, 0)
}

// XNOR adds an XNOR function as INV(XOR).
func (b *Builder) XNOR(i0, i1 Wire) Wire {
	return b.INV(b.XOR(i0, i1))
}

// Zero returns a constant zero wire computed from the wire w.
func (b *Builder) Zero(w Wire) Wire {
	return b.XOR(w, w)
}

// Build creates the circuit with the argument outputs and their
// wires. The output wires are renumbered to be the last wires of the
// circuit.
func (b *Builder) Build(outputs IO, wires []Wire) (*Circuit, error) {
	if len(wires) != outputs.Size() {
		return nil, fmt.Errorf("got %d output wires, expected %d",
			len(wires), outputs.Size())
	}
	numInputs := Wire(b.inputs.Size())

	// Outputs must be distinct gate outputs.
	seen := make(map[Wire]bool)
	outs := make([]Wire, len(wires))
	for i, w := range wires {
		if w >= b.next {
			return nil, fmt.Errorf("unknown output wire %v", w)
		}
		if w < numInputs || seen[w] {
			w = b.INV(b.INV(w))
		}
		seen[w] = true
		outs[i] = w
	}

	numWires := int(b.next)
	mapping := make([]Wire, numWires)
	for i := Wire(0); i < numInputs; i++ {
		mapping[i] = i
	}
	for i, w := range outs {
		mapping[w] = Wire(numWires - len(outs) + i)
	}
	next := numInputs
	for _, g := range b.gates {
		if !seen[g.Output] {
			mapping[g.Output] = next
			next++
		}
	}

	var stats Stats
	gates := make([]Gate, len(b.gates))
	for idx, g := range b.gates {
		gates[idx] = Gate{
			Input0: mapping[g.Input0],
			Output: mapping[g.Output],
			Op:     g.Op,
		}
		if g.Op != INV {
			gates[idx].Input1 = mapping[g.Input1]
		}
		stats[g.Op]++
	}

	return &Circuit{
		NumGates: len(gates),
		NumWires: numWires,
		Inputs:   b.inputs,
		Outputs:  outputs,
		Gates:    gates,
		Stats:    stats,
	}, nil
}

func newFullAdder(b *Builder, x, y, cin Wire, carry bool) (s, cout Wire) {
	// s = x XOR y XOR cin
	// cout = cin XOR ((x XOR cin) AND (y XOR cin)).
	w1 := b.XOR(y, cin)
	s = b.XOR(x, w1)
	if carry {
		w2 := b.XOR(x, cin)
		w3 := b.AND(w1, w2)
		cout = b.XOR(cin, w3)
	}
	return
}

// NewAdder creates a bits-bit adder circuit computing z=x+y. The
// carry out of the most significant bit is dropped.
func NewAdder(bits int) (*Circuit, error) {
	if bits < 1 {
		return nil, fmt.Errorf("invalid adder size %d", bits)
	}
	b := NewBuilder(IO{
		{Name: "x", Size: bits},
		{Name: "y", Size: bits},
	})
	x := b.Input(0)
	y := b.Input(1)
	z := make([]Wire, bits)

	// Half adder.
	z[0] = b.XOR(x[0], y[0])
	var cin Wire
	if bits > 1 {
		cin = b.AND(x[0], y[0])
	}
	for i := 1; i < bits; i++ {
		z[i], cin = newFullAdder(b, x[i], y[i], cin, i+1 < bits)
	}

	return b.Build(IO{{Name: "z", Size: bits}}, z)
}

func newFullSubtractor(b *Builder, x, y, cin Wire, borrow bool) (
	d, cout Wire) {

	w1 := b.XNOR(y, cin)
	d = b.XNOR(x, w1)
	if borrow {
		w2 := b.XOR(x, cin)
		w3 := b.AND(w1, w2)
		cout = b.XOR(w3, cin)
	}
	return
}

// NewSubtractor creates a bits-bit subtractor circuit computing
// z=x-y. The borrow out of the most significant bit is dropped.
func NewSubtractor(bits int) (*Circuit, error) {
	if bits < 1 {
		return nil, fmt.Errorf("invalid subtractor size %d", bits)
	}
	b := NewBuilder(IO{
		{Name: "x", Size: bits},
		{Name: "y", Size: bits},
	})
	x := b.Input(0)
	y := b.Input(1)
	z := make([]Wire, bits)

	cin := b.Zero(x[0])
	for i := 0; i < bits; i++ {
		// Note y-x here.
		z[i], cin = newFullSubtractor(b, y[i], x[i], cin, i+1 < bits)
	}

	return b.Build(IO{{Name: "z", Size: bits}}, z)
}
