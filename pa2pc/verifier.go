//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"

	"github.com/markkurossi/pa2pc/circuit"
	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/field"
	"golang.org/x/sync/errgroup"
)

// Verifier implements the PA2PC verifier.
type Verifier struct {
	// Timing records the verifier phases if set.
	Timing *circuit.Timing

	config *env.Config
	params *Params
}

// NewVerifier creates a new verifier.
func NewVerifier(config *env.Config, params *Params) *Verifier {
	return &Verifier{
		config: config,
		params: params,
	}
}

func (v *Verifier) sample(label string) {
	if v.Timing != nil {
		v.Timing.Sample(label, nil)
	}
}

// Verify verifies the proof against the preprocessing transcript and
// returns the circuit output bits.
func (v *Verifier) Verify(pre *Preprocessing, proof *Proof) ([]bool, error) {
	params := v.params
	circ := params.Circuit

	if err := v.validate(pre, proof); err != nil {
		return nil, err
	}

	ph, err := preHash(params, pre)
	if err != nil {
		return nil, err
	}
	if permCommitment(proof.PermSeed, pre.Digests[PB]) != pre.PermCommitment {
		return nil, ErrCommitment
	}
	full := proofHash(ph, proof)

	var nabla [2][]field.GF8
	var vk [2]voleVectors

	var eg errgroup.Group
	for p := PA; p <= PB; p++ {
		p := p
		nabla[p] = challenges(params, full, p, pre.Digests[p])
		eg.Go(func() error {
			vecs, err := reconstructVOLE(v.config, params, nabla[p],
				pre.Digests[p], pre.Masked[p], proof.Openings[p])
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			vk[p] = vecs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	v.sample("SVOLE")

	segKeys := func(seg Segment, i int) keys {
		return keys{vk[PA].at(seg, i), vk[PB].at(seg, i)}
	}

	wk := make([]keys, circ.NumWires)
	masked := make([]bool, circ.NumWires)
	active := make([]field.GF128, circ.NumWires)

	for i, in := range proof.Inputs {
		wk[i] = segKeys(SegInputMask, i)
		masked[i] = in.Masked
		active[i] = in.Label
	}

	type andKeys struct {
		x, y, z keys
	}
	ands := make([]andKeys, 0, params.NumAND)

	for idx, g := range circ.Gates {
		switch g.Op {
		case circuit.XOR:
			wk[g.Output] = wk[g.Input0].xor(wk[g.Input1])
			masked[g.Output] = masked[g.Input0] != masked[g.Input1]
			active[g.Output] = active[g.Input0].Add(active[g.Input1])

		case circuit.INV:
			switch params.NOT {
			case NOTFlipMask:
				wk[g.Output] = wk[g.Input0].addConst(true, nabla)
				masked[g.Output] = masked[g.Input0]
			case NOTFlipValue:
				wk[g.Output] = wk[g.Input0]
				masked[g.Output] = !masked[g.Input0]
			}
			active[g.Output] = active[g.Input0]

		case circuit.AND:
			ord := len(ands)
			k0 := masked[g.Input0]
			k1 := masked[g.Input1]
			sel := selector(k0, k1)

			row, err := decryptRow(pre.Garbled[rowIndex(ord, sel)],
				active[g.Input0], active[g.Input1], uint32(idx), sel,
				params.Kappa)
			if err != nil {
				return nil, err
			}
			reveal := proof.ANDs[ord]

			kl := wk[g.Input0]
			kr := wk[g.Input1]
			kPrime := segKeys(SegANDPrime, ord)
			kOut := segKeys(SegANDOutputMask, ord)
			kg := kPrime.xor(kOut).xor(kr.mulBit(k0)).xor(kl.mulBit(k1))

			err = checkBit(kg[PA], nabla[PA], BitReveal{
				Bit:  row.Bit,
				VMAC: row.VMAC,
			})
			if err != nil {
				return nil, fmt.Errorf("gate %d: PA: %w", idx, err)
			}
			err = checkBit(kg[PB], nabla[PB], BitReveal{
				Bit:  reveal.Bit,
				VMAC: reveal.VMAC,
			})
			if err != nil {
				return nil, fmt.Errorf("gate %d: PB: %w", idx, err)
			}

			wk[g.Output] = kOut
			masked[g.Output] = (k0 && k1) != (row.Bit != reveal.Bit)
			active[g.Output] = row.Label.Add(reveal.MAC)

			ands = append(ands, andKeys{
				x: kl,
				y: kr,
				z: kPrime,
			})

		default:
			return nil, fmt.Errorf("%w: unsupported gate %s", ErrConfig, g.Op)
		}
	}
	v.sample("Eval")

	perm := Permutation(permutationKey(ph, proof.PermSeed), params.BigL)
	tripleKeys := func(i int) (a, b, c keys) {
		return segKeys(SegTripleA, i), segKeys(SegTripleB, i),
			segKeys(SegTripleC, i)
	}
	for ord, and := range ands {
		for t := 0; t < params.BS; t++ {
			a, b, c := tripleKeys(perm[ord*params.BS+t])
			err := verifyCheckAND(and.x, and.y, and.z, a, b, c, nabla,
				proof.Checks[ord*params.BS+t])
			if err != nil {
				return nil, fmt.Errorf("AND %d check %d: %w", ord, t, err)
			}
		}
	}
	for i, tr := range proof.Leftovers {
		a, b, c := tripleKeys(perm[params.BS*params.NumAND+i])
		if err := verifyTriple(a, b, c, nabla, tr); err != nil {
			return nil, fmt.Errorf("leftover %d: %w", i, err)
		}
	}
	v.sample("Check-AND")

	var result []bool
	for i, w := range circ.OutputWires() {
		mask, err := checkBits(wk[w], nabla, proof.Outputs[i])
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		result = append(result, masked[w] != mask)
	}
	v.sample("Output")

	return result, nil
}

// validate checks the transcript shapes against the parameters.
func (v *Verifier) validate(pre *Preprocessing, proof *Proof) error {
	params := v.params
	circ := params.Circuit
	kappa := params.Kappa

	if pre == nil || proof == nil {
		return fmt.Errorf("%w: missing transcript", ErrConfig)
	}
	for p := PA; p <= PB; p++ {
		if len(pre.Digests[p]) != kappa {
			return fmt.Errorf("%w: %s: got %d digests, expected %d",
				ErrConfig, p, len(pre.Digests[p]), kappa)
		}
		if len(pre.Masked[p]) != kappa {
			return fmt.Errorf("%w: %s: got %d fixes, expected %d",
				ErrConfig, p, len(pre.Masked[p]), kappa)
		}
		for r, fix := range pre.Masked[p] {
			if len(fix) != (params.BigN+7)/8 {
				return fmt.Errorf("%w: %s: fix %d: got %d bytes, expected %d",
					ErrConfig, p, r, len(fix), (params.BigN+7)/8)
			}
		}
		if len(proof.Openings[p]) != kappa {
			return fmt.Errorf("%w: %s: got %d openings, expected %d",
				ErrConfig, p, len(proof.Openings[p]), kappa)
		}
		for r, decom := range proof.Openings[p] {
			if decom == nil || len(decom.Trace) != params.Tau {
				return fmt.Errorf("%w: %s: invalid opening %d",
					ErrConfig, p, r)
			}
		}
	}
	if len(pre.Garbled) != 4*params.NumAND {
		return fmt.Errorf("%w: got %d garbled rows, expected %d",
			ErrConfig, len(pre.Garbled), 4*params.NumAND)
	}
	for i, row := range pre.Garbled {
		if len(row) != rowSize(kappa) {
			return fmt.Errorf("%w: garbled row %d: got %d bytes, expected %d",
				ErrConfig, i, len(row), rowSize(kappa))
		}
	}

	if len(proof.Inputs) != circ.Inputs.Size() {
		return fmt.Errorf("%w: got %d inputs, expected %d",
			ErrConfig, len(proof.Inputs), circ.Inputs.Size())
	}
	if len(proof.ANDs) != params.NumAND {
		return fmt.Errorf("%w: got %d AND reveals, expected %d",
			ErrConfig, len(proof.ANDs), params.NumAND)
	}
	for i, and := range proof.ANDs {
		if len(and.VMAC) != kappa {
			return fmt.Errorf("%w: AND reveal %d: got %d MACs, expected %d",
				ErrConfig, i, len(and.VMAC), kappa)
		}
	}
	if len(proof.Checks) != params.BS*params.NumAND {
		return fmt.Errorf("%w: got %d checks, expected %d",
			ErrConfig, len(proof.Checks), params.BS*params.NumAND)
	}
	if len(proof.Leftovers) != params.RM {
		return fmt.Errorf("%w: got %d leftover triples, expected %d",
			ErrConfig, len(proof.Leftovers), params.RM)
	}
	if len(proof.Outputs) != circ.Outputs.Size() {
		return fmt.Errorf("%w: got %d outputs, expected %d",
			ErrConfig, len(proof.Outputs), circ.Outputs.Size())
	}

	var reveals [][2]BitReveal
	for _, check := range proof.Checks {
		reveals = append(reveals, check.D, check.E, check.Z)
	}
	for _, triple := range proof.Leftovers {
		reveals = append(reveals, triple.A, triple.B, triple.C)
	}
	reveals = append(reveals, proof.Outputs...)
	for _, r := range reveals {
		if len(r[PA].VMAC) != kappa || len(r[PB].VMAC) != kappa {
			return fmt.Errorf("%w: invalid reveal MAC count", ErrConfig)
		}
	}
	return nil
}
