//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/markkurossi/pa2pc/circuit"
	"github.com/markkurossi/pa2pc/vc"
)

var (
	bo = binary.BigEndian
)

// Party identifies the simulated protocol party.
type Party int

// Protocol parties.
const (
	PA Party = iota
	PB
)

func (p Party) String() string {
	switch p {
	case PA:
		return "PA"
	case PB:
		return "PB"
	default:
		return fmt.Sprintf("{Party %d}", int(p))
	}
}

// Peer returns the other party.
func (p Party) Peer() Party {
	return 1 - p
}

// NOTConvention specifies how INV gates update the wire masks.
type NOTConvention int

// NOT gate conventions.
const (
	// NOTFlipMask negates PA's mask share. The masked value and the
	// wire label pass through unchanged.
	NOTFlipMask NOTConvention = iota

	// NOTFlipValue keeps the mask shares and negates the public masked
	// value. PA's zero label absorbs its global difference.
	NOTFlipValue
)

var notConventions = map[NOTConvention]string{
	NOTFlipMask:  "flip-mask",
	NOTFlipValue: "flip-value",
}

func (conv NOTConvention) String() string {
	name, ok := notConventions[conv]
	if ok {
		return name
	}
	return fmt.Sprintf("{NOTConvention %d}", int(conv))
}

// ParseNOTConvention parses the NOT convention name.
func ParseNOTConvention(name string) (NOTConvention, error) {
	for conv, n := range notConventions {
		if n == name {
			return conv, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown NOT convention '%s'", ErrConfig, name)
}

// Params define the public protocol parameters.
type Params struct {
	Circuit *circuit.Circuit
	Tau     int
	Kappa   int
	BS      int
	RM      int
	NOT     NOTConvention

	// InputsA and InputsB list the input wires of PA and PB.
	InputsA []int
	InputsB []int

	NumAND int
	BigL   int
	BigN   int
	Layout Layout
}

// NewParams creates the protocol parameters for the circuit. The
// vector commitment depth is tau, kappa is the number of soundness
// repetitions, bs is the number of triples consumed by each AND gate
// check, and rm is the number of opened leftover triples. By default,
// the first circuit input value belongs to PA and the rest to PB.
func NewParams(circ *circuit.Circuit, tau, kappa, bs, rm int,
	conv NOTConvention) (*Params, error) {

	if circ == nil {
		return nil, fmt.Errorf("%w: no circuit", ErrConfig)
	}
	if tau < 0 || tau > vc.MaxTau {
		return nil, fmt.Errorf("%w: tau %d out of range [0,%d]",
			ErrConfig, tau, vc.MaxTau)
	}
	if kappa < 1 {
		return nil, fmt.Errorf("%w: invalid kappa %d", ErrConfig, kappa)
	}
	if bs < 1 {
		return nil, fmt.Errorf("%w: invalid bs %d", ErrConfig, bs)
	}
	if rm < 0 {
		return nil, fmt.Errorf("%w: invalid rm %d", ErrConfig, rm)
	}
	if _, ok := notConventions[conv]; !ok {
		return nil, fmt.Errorf("%w: invalid NOT convention %d",
			ErrConfig, int(conv))
	}
	if circ.Outputs.Size() > circ.NumWires {
		return nil, fmt.Errorf("%w: circuit has %d output bits and %d wires",
			ErrConfig, circ.Outputs.Size(), circ.NumWires)
	}

	numInputs := circ.Inputs.Size()
	numAND := circ.NumANDs()
	bigL := bs*numAND + rm

	params := &Params{
		Circuit: circ,
		Tau:     tau,
		Kappa:   kappa,
		BS:      bs,
		RM:      rm,
		NOT:     conv,
		NumAND:  numAND,
		BigL:    bigL,
		Layout:  NewLayout(numInputs, numAND, bigL),
	}
	params.BigN = params.Layout.Size()

	var first int
	if len(circ.Inputs) > 0 {
		first = circ.Inputs[0].Size
	}
	for i := 0; i < numInputs; i++ {
		if i < first {
			params.InputsA = append(params.InputsA, i)
		} else {
			params.InputsB = append(params.InputsB, i)
		}
	}

	return params, nil
}

// WithPartition sets the input wire partition between the parties.
// The partitions must be disjoint and cover all input wires.
func (params *Params) WithPartition(ia, ib []int) error {
	numInputs := params.Circuit.Inputs.Size()
	if len(ia)+len(ib) != numInputs {
		return fmt.Errorf("%w: partition has %d wires, circuit has %d inputs",
			ErrConfig, len(ia)+len(ib), numInputs)
	}
	seen := make([]bool, numInputs)
	for _, set := range [][]int{ia, ib} {
		for _, w := range set {
			if w < 0 || w >= numInputs {
				return fmt.Errorf("%w: input wire %d out of range",
					ErrConfig, w)
			}
			if seen[w] {
				return fmt.Errorf("%w: input wire %d assigned twice",
					ErrConfig, w)
			}
			seen[w] = true
		}
	}
	params.InputsA = append([]int(nil), ia...)
	params.InputsB = append([]int(nil), ib...)

	return nil
}

// Inputs returns the circuit input bits in wire order.
func (params *Params) Inputs(inputA, inputB []bool) ([]bool, error) {
	if len(inputA) != len(params.InputsA) {
		return nil, fmt.Errorf("%w: PA input: got %d bits, expected %d",
			ErrConfig, len(inputA), len(params.InputsA))
	}
	if len(inputB) != len(params.InputsB) {
		return nil, fmt.Errorf("%w: PB input: got %d bits, expected %d",
			ErrConfig, len(inputB), len(params.InputsB))
	}
	result := make([]bool, params.Circuit.Inputs.Size())
	for i, w := range params.InputsA {
		result[w] = inputA[i]
	}
	for i, w := range params.InputsB {
		result[w] = inputB[i]
	}
	return result, nil
}

func (params *Params) String() string {
	return fmt.Sprintf("tau=%d, kappa=%d, bs=%d, rm=%d, not=%s, L=%d, N=%d",
		params.Tau, params.Kappa, params.BS, params.RM, params.NOT,
		params.BigL, params.BigN)
}

// Bytes returns the deterministic encoding of the parameters.
func (params *Params) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	if err := params.Circuit.Marshal(&buf); err != nil {
		return nil, err
	}
	var data = []interface{}{
		uint32(params.Tau),
		uint32(params.Kappa),
		uint32(params.BS),
		uint32(params.RM),
		uint32(params.NOT),
	}
	for _, v := range data {
		if err := binary.Write(&buf, bo, v); err != nil {
			return nil, err
		}
	}
	for _, set := range [][]int{params.InputsA, params.InputsB} {
		if err := binary.Write(&buf, bo, uint32(len(set))); err != nil {
			return nil, err
		}
		for _, w := range set {
			if err := binary.Write(&buf, bo, uint32(w)); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}
