//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements Bristol-Fashion boolean circuits: parsing,
// marshalling, plaintext evaluation, and construction of arithmetic
// circuits.
package circuit

import (
	"fmt"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	AND
	INV
)

// Stats holds statistics about circuit operations.
type Stats [INV + 1]int

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case AND:
		return "AND"
	case INV:
		return "INV"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// IOArg describes circuit input or output value.
type IOArg struct {
	Name string
	Size int
}

func (io IOArg) String() string {
	if len(io.Name) > 0 {
		return fmt.Sprintf("%s:%d", io.Name, io.Size)
	}
	return fmt.Sprintf("%d", io.Size)
}

// IO specifies circuit input and output values.
type IO []IOArg

// Size computes the size of the circuit input and output values in
// bits.
func (io IO) Size() int {
	var sum int
	for _, a := range io {
		sum += a.Size
	}
	return sum
}

func (io IO) String() string {
	var str = ""
	for i, a := range io {
		if i > 0 {
			str += ", "
		}
		str += a.String()
	}
	return str
}

// Circuit specifies a boolean circuit. The circuit input bits are
// wires 0...Inputs.Size()-1 and the output bits are the last
// Outputs.Size() wires.
type Circuit struct {
	NumGates int
	NumWires int
	Inputs   IO
	Outputs  IO
	Gates    []Gate
	Stats    Stats
}

func (c *Circuit) String() string {
	var stats string

	for k := XOR; k <= INV; k++ {
		v := c.Stats[k]
		if len(stats) > 0 {
			stats += " "
		}
		stats += fmt.Sprintf("%s=%d", k, v)
	}
	return fmt.Sprintf("#gates=%d (%s) #w=%d", c.NumGates, stats, c.NumWires)
}

// NumANDs returns the number of AND gates.
func (c *Circuit) NumANDs() int {
	return c.Stats[AND]
}

// ANDOutputs returns the output wires of the AND gates in gate order.
func (c *Circuit) ANDOutputs() []Wire {
	result := make([]Wire, 0, c.Stats[AND])
	for _, g := range c.Gates {
		if g.Op == AND {
			result = append(result, g.Output)
		}
	}
	return result
}

// OutputWires returns the circuit output wires.
func (c *Circuit) OutputWires() []Wire {
	n := c.Outputs.Size()
	result := make([]Wire, n)
	for i := 0; i < n; i++ {
		result[i] = Wire(c.NumWires - n + i)
	}
	return result
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	fmt.Printf(" - inputs : %s\n", c.Inputs)
	fmt.Printf(" - outputs: %s\n", c.Outputs)
	for id, gate := range c.Gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}
}

// Gate specifies a boolean gate.
type Gate struct {
	Input0 Wire
	Input1 Wire
	Output Wire
	Op     Operation
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %v", g.Inputs(), g.Op, g.Output)
}

// Inputs returns gate input wires.
func (g Gate) Inputs() []Wire {
	switch g.Op {
	case XOR, AND:
		return []Wire{g.Input0, g.Input1}
	case INV:
		return []Wire{g.Input0}
	default:
		panic(fmt.Sprintf("unsupported gate type %s", g.Op))
	}
}

// Wire specifies a wire ID.
type Wire uint32

// ID returns the wire ID as integer.
func (w Wire) ID() int {
	return int(w)
}

func (w Wire) String() string {
	return fmt.Sprintf("w%d", w)
}
