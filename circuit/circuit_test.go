//
// Copyright (c) 2022-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

func compute64(t *testing.T, circ *Circuit, x, y uint64) uint64 {
	var inputs []bool
	inputs = append(inputs, Uint64ToBits(x, 64)...)
	inputs = append(inputs, Uint64ToBits(y, 64)...)

	out, err := circ.Compute(inputs)
	if err != nil {
		t.Fatal(err)
	}
	return BitsToUint64(out)
}

func TestAdder(t *testing.T) {
	circ, err := NewAdder(64)
	if err != nil {
		t.Fatal(err)
	}
	if circ.NumANDs() != 63 {
		t.Errorf("adder has %d AND gates, expected 63", circ.NumANDs())
	}
	rnd := rand.New(rand.NewSource(1))
	tests := [][2]uint64{
		{0, 0},
		{1, 1},
		{0xffffffffffffffff, 1},
		{0x8000000000000000, 0x8000000000000000},
	}
	for i := 0; i < 100; i++ {
		tests = append(tests, [2]uint64{rnd.Uint64(), rnd.Uint64()})
	}
	for _, test := range tests {
		result := compute64(t, circ, test[0], test[1])
		if result != test[0]+test[1] {
			t.Errorf("%d+%d=%d, expected %d",
				test[0], test[1], result, test[0]+test[1])
		}
	}
}

func TestSubtractor(t *testing.T) {
	circ, err := NewSubtractor(64)
	if err != nil {
		t.Fatal(err)
	}
	if circ.Stats[INV] == 0 {
		t.Errorf("subtractor has no INV gates")
	}
	rnd := rand.New(rand.NewSource(2))
	tests := [][2]uint64{
		{0, 0},
		{0, 1},
		{5, 7},
		{0x8000000000000000, 1},
	}
	for i := 0; i < 100; i++ {
		tests = append(tests, [2]uint64{rnd.Uint64(), rnd.Uint64()})
	}
	for _, test := range tests {
		result := compute64(t, circ, test[0], test[1])
		if result != test[0]-test[1] {
			t.Errorf("%d-%d=%d, expected %d",
				test[0], test[1], result, test[0]-test[1])
		}
	}
}

func TestSmallCircuits(t *testing.T) {
	for bits := 1; bits <= 4; bits++ {
		adder, err := NewAdder(bits)
		if err != nil {
			t.Fatal(err)
		}
		sub, err := NewSubtractor(bits)
		if err != nil {
			t.Fatal(err)
		}
		mask := uint64(1)<<bits - 1
		for x := uint64(0); x <= mask; x++ {
			for y := uint64(0); y <= mask; y++ {
				var inputs []bool
				inputs = append(inputs, Uint64ToBits(x, bits)...)
				inputs = append(inputs, Uint64ToBits(y, bits)...)

				out, err := adder.Compute(inputs)
				if err != nil {
					t.Fatal(err)
				}
				if BitsToUint64(out) != (x+y)&mask {
					t.Errorf("%d-bit: %d+%d=%d", bits, x, y, BitsToUint64(out))
				}
				out, err = sub.Compute(inputs)
				if err != nil {
					t.Fatal(err)
				}
				if BitsToUint64(out) != (x-y)&mask {
					t.Errorf("%d-bit: %d-%d=%d", bits, x, y, BitsToUint64(out))
				}
			}
		}
	}
}

func TestBuilderOutputs(t *testing.T) {
	b := NewBuilder(IO{{Name: "a", Size: 2}})
	in := b.Input(0)
	and := b.AND(in[0], in[1])

	// Input wire and duplicate output.
	circ, err := b.Build(IO{{Name: "r", Size: 3}},
		[]Wire{in[1], and, and})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		a0 := i&1 != 0
		a1 := i&2 != 0
		out, err := circ.Compute([]bool{a0, a1})
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != a1 || out[1] != (a0 && a1) || out[2] != (a0 && a1) {
			t.Errorf("inputs %v,%v: outputs %v", a0, a1, out)
		}
	}
	if _, err := b.Build(IO{{Size: 1}}, []Wire{and, and}); err == nil {
		t.Errorf("Build accepted wrong number of outputs")
	}
}

func TestSplit(t *testing.T) {
	io := IO{{Size: 4}, {Size: 8}}
	bits := append(Uint64ToBits(0xa, 4), BigToBits(big.NewInt(0x81), 8)...)
	values := io.Split(bits)
	if len(values) != 2 || values[0].Uint64() != 0xa ||
		values[1].Uint64() != 0x81 {
		t.Errorf("Split: %v", values)
	}
}

func TestDot(t *testing.T) {
	circ, err := NewAdder(4)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	circ.Dot(&buf)
	dot := buf.String()

	for _, label := range []string{`label="x[0]"`, `label="y[3]"`,
		`label="z[2]"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("missing wire %s", label)
		}
	}
	for ord := 0; ord < circ.NumANDs(); ord++ {
		label := fmt.Sprintf(`label="AND %d\nrows %d-%d"`,
			ord, 4*ord, 4*ord+3)
		if !strings.Contains(dot, label) {
			t.Errorf("missing AND gate %s", label)
		}
	}
	if n := strings.Count(dot, "shape=point"); n !=
		circ.NumWires-circ.Inputs.Size()-circ.Outputs.Size() {
		t.Errorf("got %d internal wires", n)
	}
}
