//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MAGIC is a magic number for the binary circuit format version 0.
	MAGIC = 0x62726300 // brc0
)

var (
	bo = binary.BigEndian
)

// MarshalFormat marshals circuit in the specified format.
func (c *Circuit) MarshalFormat(out io.Writer, format string) error {
	switch format {
	case "brc":
		return c.Marshal(out)
	case "bristol":
		return c.MarshalBristol(out)
	default:
		return fmt.Errorf("unsupported circuit format: %s", format)
	}
}

// Marshal marshals circuit in the binary circuit format. The encoding
// is deterministic and it identifies the circuit in protocol
// transcripts.
func (c *Circuit) Marshal(out io.Writer) error {
	var data = []interface{}{
		uint32(MAGIC),
		uint32(c.NumGates),
		uint32(c.NumWires),
		uint32(len(c.Inputs)),
		uint32(len(c.Outputs)),
	}
	for _, v := range data {
		if err := binary.Write(out, bo, v); err != nil {
			return err
		}
	}
	for _, input := range c.Inputs {
		if err := binary.Write(out, bo, uint32(input.Size)); err != nil {
			return err
		}
	}
	for _, output := range c.Outputs {
		if err := binary.Write(out, bo, uint32(output.Size)); err != nil {
			return err
		}
	}

	var buf [13]byte
	for _, g := range c.Gates {
		var n int
		switch g.Op {
		case XOR, AND:
			buf[0] = byte(g.Op)
			bo.PutUint32(buf[1:], uint32(g.Input0))
			bo.PutUint32(buf[5:], uint32(g.Input1))
			bo.PutUint32(buf[9:], uint32(g.Output))
			n = 13

		case INV:
			buf[0] = byte(g.Op)
			bo.PutUint32(buf[1:], uint32(g.Input0))
			bo.PutUint32(buf[5:], uint32(g.Output))
			n = 9

		default:
			return fmt.Errorf("unsupported gate type %s", g.Op)
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalBristol marshals the circuit in the Bristol-Fashion format.
func (c *Circuit) MarshalBristol(out io.Writer) error {
	fmt.Fprintf(out, "%d %d\n", c.NumGates, c.NumWires)
	fmt.Fprintf(out, "%d", len(c.Inputs))
	for _, input := range c.Inputs {
		fmt.Fprintf(out, " %d", input.Size)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d", len(c.Outputs))
	for _, ret := range c.Outputs {
		fmt.Fprintf(out, " %d", ret.Size)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	for _, g := range c.Gates {
		fmt.Fprintf(out, "%d 1", len(g.Inputs()))
		for _, w := range g.Inputs() {
			fmt.Fprintf(out, " %d", w)
		}
		fmt.Fprintf(out, " %d", g.Output)
		_, err := fmt.Fprintf(out, " %s\n", g.Op)
		if err != nil {
			return err
		}
	}

	return nil
}
