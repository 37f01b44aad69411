//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
)

// Compute evaluates the circuit in plaintext. The inputs are the
// circuit input bits in wire order and the result holds the output
// bits in wire order.
func (c *Circuit) Compute(inputs []bool) ([]bool, error) {
	if len(inputs) != c.Inputs.Size() {
		return nil, fmt.Errorf("invalid inputs: got %d bits, expected %d",
			len(inputs), c.Inputs.Size())
	}
	wires := make([]bool, c.NumWires)
	copy(wires, inputs)

	for _, gate := range c.Gates {
		var result bool

		switch gate.Op {
		case XOR:
			result = wires[gate.Input0] != wires[gate.Input1]

		case AND:
			result = wires[gate.Input0] && wires[gate.Input1]

		case INV:
			result = !wires[gate.Input0]

		default:
			return nil, fmt.Errorf("invalid gate %s", gate.Op)
		}

		wires[gate.Output] = result
	}

	result := make([]bool, c.Outputs.Size())
	copy(result, wires[c.NumWires-len(result):])

	return result, nil
}
