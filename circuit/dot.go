//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the circuit. Input and output
// wires are labeled with their argument names and bit indices, and
// internal wires are drawn as points. AND gates are filled and
// labeled with their AND ordinal and the garbled table rows they
// occupy.
func (c *Circuit) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")

	labels := make([]string, c.NumWires)
	for i, l := range wireLabels(c.Inputs, "in") {
		labels[i] = l
	}
	outputs := c.OutputWires()
	for i, l := range wireLabels(c.Outputs, "out") {
		labels[outputs[i]] = l
	}
	fmt.Fprintf(out, "  {\n")
	for w, l := range labels {
		if len(l) == 0 {
			fmt.Fprintf(out, "    w%d\t[shape=point];\n", w)
		} else {
			fmt.Fprintf(out, "    w%d\t[shape=plaintext label=%q];\n", w, l)
		}
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n")
	var ord int
	for idx, gate := range c.Gates {
		switch gate.Op {
		case AND:
			fmt.Fprintf(out,
				"    g%d\t[shape=box style=filled label=\"AND %d\\nrows %d-%d\"];\n",
				idx, ord, 4*ord, 4*ord+3)
			ord++
		case INV:
			fmt.Fprintf(out, "    g%d\t[shape=invtriangle label=\"INV\"];\n",
				idx)
		default:
			fmt.Fprintf(out, "    g%d\t[shape=box label=\"%s\"];\n",
				idx, gate.Op)
		}
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for w := 0; w < c.Inputs.Size(); w++ {
		fmt.Fprintf(out, "; w%d", w)
	}
	fmt.Fprintf(out, ";}\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, w := range outputs {
		fmt.Fprintf(out, "; w%d", w)
	}
	fmt.Fprintf(out, ";}\n")

	for idx, gate := range c.Gates {
		for _, i := range gate.Inputs() {
			fmt.Fprintf(out, "  w%d -> g%d;\n", i, idx)
		}
		fmt.Fprintf(out, "  g%d -> w%d;\n", idx, gate.Output)
	}
	fmt.Fprintf(out, "}\n")
}

// wireLabels returns name[bit] labels for the bits of the arguments.
// Unnamed arguments are named by prefix and argument index.
func wireLabels(args IO, prefix string) []string {
	var result []string
	for i, arg := range args {
		name := arg.Name
		if len(name) == 0 {
			name = fmt.Sprintf("%s%d", prefix, i)
		}
		for bit := 0; bit < arg.Size; bit++ {
			result = append(result, fmt.Sprintf("%s[%d]", name, bit))
		}
	}
	return result
}
