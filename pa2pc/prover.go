//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/markkurossi/pa2pc/circuit"
	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/prg"
	"github.com/markkurossi/text/symbols"
)

// andGate holds the prover's state of an AND gate.
type andGate struct {
	gate    int
	lambdaL shares
	lambdaR shares
	prime   shares
	out     shares
}

// Prover implements the PA2PC prover simulating both parties.
type Prover struct {
	// Timing records the prover phases if set.
	Timing *circuit.Timing

	config  *env.Config
	params  *Params
	dealer  Dealer
	vole    *svole2PC
	deltas  Deltas
	masks   []shares
	labels  []field.GF128
	ands    []andGate
	triples []triple
	seed    prg.Seed
	pre     *Preprocessing
}

// NewProver creates a new prover. If dealer is nil, the prover uses
// an InsecureDealer with the configured random source.
func NewProver(config *env.Config, params *Params, dealer Dealer) (
	*Prover, error) {

	if dealer == nil {
		dealer = NewInsecureDealer(config.GetRandom())
	}
	vole, err := newSVOLE2PC(config, params)
	if err != nil {
		return nil, err
	}
	return &Prover{
		config: config,
		params: params,
		dealer: dealer,
		vole:   vole,
	}, nil
}

func (prover *Prover) sample(label string) *circuit.Sample {
	if prover.Timing == nil {
		return nil
	}
	return prover.Timing.Sample(label, nil)
}

// Preprocess runs the input-independent preprocessing and returns the
// preprocessing transcript.
func (prover *Prover) Preprocess() (*Preprocessing, error) {
	if prover.pre != nil {
		return nil, fmt.Errorf("%w: already preprocessed", ErrState)
	}
	params := prover.params
	circ := params.Circuit

	if err := prover.vole.commit(); err != nil {
		return nil, err
	}
	prover.sample("SVOLE")

	var err error
	for p := PA; p <= PB; p++ {
		prover.deltas[p], err = prover.dealer.GenerateDelta()
		if err != nil {
			return nil, err
		}
	}
	d := prover.deltas

	inputs, err := prover.random(SegInputMask, circ.Inputs.Size())
	if err != nil {
		return nil, err
	}
	outs, err := prover.random(SegANDOutputMask, params.NumAND)
	if err != nil {
		return nil, err
	}
	ta, err := prover.random(SegTripleA, params.BigL)
	if err != nil {
		return nil, err
	}
	tb, err := prover.random(SegTripleB, params.BigL)
	if err != nil {
		return nil, err
	}
	tc, err := prover.dealer.GenerateRandomANDTuples(d, ta, tb)
	if err != nil {
		return nil, err
	}
	prover.attach(SegTripleC, tc)

	prover.triples = make([]triple, params.BigL)
	for i := range prover.triples {
		prover.triples[i] = triple{
			a: shares{ta.A[i], ta.B[i]},
			b: shares{tb.A[i], tb.B[i]},
			c: shares{tc.A[i], tc.B[i]},
		}
	}
	prover.sample("Dealer")

	prover.masks = make([]shares, circ.NumWires)
	prover.labels = make([]field.GF128, circ.NumWires)
	for i := 0; i < circ.Inputs.Size(); i++ {
		prover.masks[i] = shares{inputs.A[i], inputs.B[i]}
		prover.labels[i], err = field.RandomGF128(prover.config.GetRandom())
		if err != nil {
			return nil, err
		}
	}

	garbled := make([][]byte, 4*params.NumAND)
	for idx, g := range circ.Gates {
		switch g.Op {
		case circuit.XOR:
			prover.masks[g.Output] =
				prover.masks[g.Input0].xor(prover.masks[g.Input1])
			prover.labels[g.Output] =
				prover.labels[g.Input0].Add(prover.labels[g.Input1])

		case circuit.INV:
			mask := prover.masks[g.Input0]
			label := prover.labels[g.Input0]
			switch params.NOT {
			case NOTFlipMask:
				mask[PA] = mask[PA].Not()
				mask[PB].Key = mask[PB].Key.Add(d[PB])
			case NOTFlipValue:
				label = label.Add(d[PA])
			}
			prover.masks[g.Output] = mask
			prover.labels[g.Output] = label

		case circuit.AND:
			ord := len(prover.ands)
			gate := andGate{
				gate:    idx,
				lambdaL: prover.masks[g.Input0],
				lambdaR: prover.masks[g.Input1],
				out:     shares{outs.A[ord], outs.B[ord]},
			}
			prime, err := prover.dealer.GenerateRandomANDTuples(d,
				Tuples{
					A: []AuthBit{gate.lambdaL[PA]},
					B: []AuthBit{gate.lambdaL[PB]},
				},
				Tuples{
					A: []AuthBit{gate.lambdaR[PA]},
					B: []AuthBit{gate.lambdaR[PB]},
				})
			if err != nil {
				return nil, err
			}
			gate.prime = shares{prime.A[0], prime.B[0]}
			for p := PA; p <= PB; p++ {
				gate.prime[p].VMAC = prover.vole.vmac(p, SegANDPrime, ord)
			}
			prover.ands = append(prover.ands, gate)

			label, err := field.RandomGF128(prover.config.GetRandom())
			if err != nil {
				return nil, err
			}
			prover.masks[g.Output] = gate.out
			prover.labels[g.Output] = label

			prover.garble(garbled, ord, g)

		default:
			return nil, fmt.Errorf("%w: unsupported gate %s", ErrConfig, g.Op)
		}
	}
	prover.sample("Garble")

	var masked [2][][]byte
	for p := PA; p <= PB; p++ {
		masked[p] = prover.vole.fixes(p, prover.secretBits(p, inputs, outs,
			ta, tb, tc))
	}

	prover.seed, err = prg.RandomSeed(prover.config.GetRandom())
	if err != nil {
		return nil, err
	}
	prover.pre = &Preprocessing{
		Digests:        prover.vole.digests,
		Masked:         masked,
		Garbled:        garbled,
		PermCommitment: permCommitment(prover.seed, prover.vole.digests[PB]),
	}
	prover.sample("Fix")

	return prover.pre, nil
}

// random creates random authenticated bits for the segment.
func (prover *Prover) random(seg Segment, n int) (Tuples, error) {
	t, err := prover.dealer.GenerateRandomTuples(prover.deltas, n)
	if err != nil {
		return t, err
	}
	if t.Len() != n || len(t.B) != n {
		return t, fmt.Errorf("%w: dealer returned %d tuples, expected %d",
			ErrConfig, t.Len(), n)
	}
	prover.attach(seg, t)
	return t, nil
}

func (prover *Prover) attach(seg Segment, t Tuples) {
	prover.vole.attach(PA, seg, t.A)
	prover.vole.attach(PB, seg, t.B)
}

// garble creates the four garbled rows of the AND gate ord.
func (prover *Prover) garble(garbled [][]byte, ord int, g circuit.Gate) {
	gate := prover.ands[ord]
	deltaA := prover.deltas[PA]
	l0 := prover.labels[g.Input0]
	r0 := prover.labels[g.Input1]
	o0 := prover.labels[g.Output]

	for sel := 0; sel < 4; sel++ {
		k0 := sel&0x2 != 0
		k1 := sel&0x1 != 0

		ga := gamma(gate.prime[PA], gate.out[PA], gate.lambdaL[PA],
			gate.lambdaR[PA], k0, k1)
		row := garbledRow{
			Bit:  ga.Bit,
			MAC:  ga.MAC,
			VMAC: ga.VMAC,
			Label: o0.Add(deltaA.MulBit(ga.Bit != (k0 && k1))).
				Add(ga.Key),
		}
		garbled[rowIndex(ord, sel)] = row.encrypt(
			l0.Add(deltaA.MulBit(k0)), r0.Add(deltaA.MulBit(k1)),
			uint32(gate.gate), sel)
	}
}

// secretBits collects the party's dealer bits in the VOLE layout.
func (prover *Prover) secretBits(p Party, inputs, outs, ta, tb,
	tc Tuples) *bitset.BitSet {

	l := prover.params.Layout
	result := bitset.New(uint(l.Size()))

	set := func(seg Segment, bits []AuthBit) {
		for i, b := range bits {
			if b.Bit {
				result.Set(uint(l.Index(seg, i)))
			}
		}
	}
	set(SegInputMask, inputs.Party(p))
	set(SegANDOutputMask, outs.Party(p))
	for ord, gate := range prover.ands {
		if gate.prime[p].Bit {
			result.Set(uint(l.Index(SegANDPrime, ord)))
		}
	}
	set(SegTripleA, ta.Party(p))
	set(SegTripleB, tb.Party(p))
	set(SegTripleC, tc.Party(p))

	return result
}

// Prove evaluates the circuit on the parties' inputs and creates the
// proof. The inputs are ordered as the parameters' input partition.
func (prover *Prover) Prove(inputA, inputB []bool) (*Proof, error) {
	if prover.pre == nil {
		return nil, fmt.Errorf("%w: not preprocessed", ErrState)
	}
	params := prover.params
	circ := params.Circuit
	d := prover.deltas

	x, err := params.Inputs(inputA, inputB)
	if err != nil {
		return nil, err
	}

	proof := &Proof{
		PermSeed: prover.seed,
		Inputs:   make([]InputReveal, len(x)),
		ANDs:     make([]ANDReveal, params.NumAND),
	}

	masked := make([]bool, circ.NumWires)
	active := make([]field.GF128, circ.NumWires)
	for i := range x {
		masked[i] = x[i] != prover.masks[i].value()
		active[i] = prover.labels[i].Add(d[PA].MulBit(masked[i]))
		proof.Inputs[i] = InputReveal{
			Masked: masked[i],
			Label:  active[i],
		}
	}

	// Evaluate as PB.
	var ord int
	for idx, g := range circ.Gates {
		switch g.Op {
		case circuit.XOR:
			masked[g.Output] = masked[g.Input0] != masked[g.Input1]
			active[g.Output] = active[g.Input0].Add(active[g.Input1])

		case circuit.INV:
			masked[g.Output] = masked[g.Input0]
			if params.NOT == NOTFlipValue {
				masked[g.Output] = !masked[g.Input0]
			}
			active[g.Output] = active[g.Input0]

		case circuit.AND:
			gate := prover.ands[ord]
			k0 := masked[g.Input0]
			k1 := masked[g.Input1]
			sel := selector(k0, k1)

			row, err := decryptRow(prover.pre.Garbled[rowIndex(ord, sel)],
				active[g.Input0], active[g.Input1], uint32(idx), sel,
				params.Kappa)
			if err != nil {
				return nil, err
			}
			gb := gamma(gate.prime[PB], gate.out[PB], gate.lambdaL[PB],
				gate.lambdaR[PB], k0, k1)
			if row.MAC != gb.Key.Add(d[PB].MulBit(row.Bit)) {
				return nil, fmt.Errorf("%w: gate %d: PA MAC check failed",
					ErrGarbledRow, idx)
			}
			masked[g.Output] = (k0 && k1) != (row.Bit != gb.Bit)
			active[g.Output] = row.Label.Add(gb.MAC)

			proof.ANDs[ord] = ANDReveal{
				Bit:  gb.Bit,
				MAC:  gb.MAC,
				VMAC: append([]field.GF8(nil), gb.VMAC...),
			}
			ord++

		default:
			return nil, fmt.Errorf("%w: unsupported gate %s", ErrConfig, g.Op)
		}
	}
	prover.sample("Eval")

	ph, err := preHash(params, prover.pre)
	if err != nil {
		return nil, err
	}
	perm := Permutation(permutationKey(ph, prover.seed), params.BigL)

	for ord, gate := range prover.ands {
		for t := 0; t < params.BS; t++ {
			proof.Checks = append(proof.Checks,
				proveCheckAND(gate.lambdaL, gate.lambdaR, gate.prime,
					prover.triples[perm[ord*params.BS+t]]))
		}
	}
	for i := 0; i < params.RM; i++ {
		proof.Leftovers = append(proof.Leftovers,
			proveTriple(prover.triples[perm[params.BS*params.NumAND+i]]))
	}
	for _, w := range circ.OutputWires() {
		mask := prover.masks[w]
		prover.config.Debugf("%c%v: %v\n", symbols.Lambda, w, mask.value())
		proof.Outputs = append(proof.Outputs, mask.reveal())
	}
	prover.sample("Check-AND")

	full := proofHash(ph, proof)
	for p := PA; p <= PB; p++ {
		ch := challenges(params, full, p, prover.pre.Digests[p])
		proof.Openings[p], err = prover.vole.open(p, ch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	prover.sample("Open")

	return proof, nil
}
