//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
	"github.com/markkurossi/pa2pc/svole"
	"github.com/markkurossi/pa2pc/vc"
	"github.com/markkurossi/text/superscript"
	"golang.org/x/sync/errgroup"
)

// voleVectors hold the VOLE MAC or key vectors of one party,
// distributed into segments, one entry per repetition.
type voleVectors []Segments[field.GF8]

// at returns the kappa MACs or keys of the element i of the segment.
func (v voleVectors) at(seg Segment, i int) []field.GF8 {
	result := make([]field.GF8, len(v))
	for r := range v {
		result[r] = v[r][seg][i]
	}
	return result
}

func distributeVOLE(l Layout, vecs [][]field.GF8) (voleVectors, error) {
	result := make(voleVectors, len(vecs))
	for r, vec := range vecs {
		segs, err := Distribute(l, vec)
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", r, err)
		}
		result[r] = segs
	}
	return result, nil
}

// svole2PC runs the SVOLE prover for both parties.
type svole2PC struct {
	config  *env.Config
	params  *Params
	provers [2]*svole.Prover
	digests [2][]hasher.Digest
	macs    [2]voleVectors
}

func newSVOLE2PC(config *env.Config, params *Params) (*svole2PC, error) {
	result := &svole2PC{
		config: config,
		params: params,
	}
	for p := PA; p <= PB; p++ {
		prover, err := svole.NewProver(config, params.Tau, params.Kappa,
			params.BigN)
		if err != nil {
			return nil, err
		}
		result.provers[p] = prover
	}
	return result, nil
}

// commit commits the VOLE correlations of both parties and
// distributes their MACs into segments.
func (s *svole2PC) commit() error {
	var masters [2]prg.Seed
	for p := PA; p <= PB; p++ {
		seed, err := prg.RandomSeed(s.config.GetRandom())
		if err != nil {
			return err
		}
		masters[p] = seed
	}

	var g errgroup.Group
	for p := PA; p <= PB; p++ {
		p := p
		g.Go(func() error {
			digests, err := s.provers[p].Commit(masters[p])
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			s.digests[p] = digests
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for p := PA; p <= PB; p++ {
		macs := make([][]field.GF8, s.params.Kappa)
		for r := range macs {
			macs[r] = s.provers[p].MAC(r)
		}
		vecs, err := distributeVOLE(s.params.Layout, macs)
		if err != nil {
			return err
		}
		s.macs[p] = vecs
	}
	return nil
}

// attach sets the VOLE MACs of the party's bits of the segment.
func (s *svole2PC) attach(p Party, seg Segment, bits []AuthBit) {
	for i := range bits {
		bits[i].VMAC = s.vmac(p, seg, i)
	}
}

// vmac returns the party's VOLE MACs of the element i of the segment.
func (s *svole2PC) vmac(p Party, seg Segment, i int) []field.GF8 {
	return s.macs[p].at(seg, i)
}

// fixes computes the party's mask-and-publish corrections that fix
// the VOLE messages to the secret bits.
func (s *svole2PC) fixes(p Party, secret *bitset.BitSet) [][]byte {
	result := make([][]byte, s.params.Kappa)
	for r := range result {
		fix := s.provers[p].Message(r).SymmetricDifference(secret)
		result[r] = packBits(fix, s.params.BigN)

		s.config.Debugf("svole2pc: %s fix%s: %x\n",
			p, superscript.Itoa(r), result[r])
	}
	return result
}

func (s *svole2PC) open(p Party, challenges []field.GF8) (
	[]*vc.Decommitment, error) {
	return s.provers[p].Open(challenges)
}

// packBits packs the n first bits LSB first into bytes.
func packBits(bits *bitset.BitSet, n int) []byte {
	result := make([]byte, (n+7)/8)
	for i, ok := bits.NextSet(0); ok && int(i) < n; i, ok = bits.NextSet(i + 1) {
		result[i/8] |= 1 << (i % 8)
	}
	return result
}

// testPacked tests the bit i of the packed bits.
func testPacked(data []byte, i int) bool {
	return data[i/8]&(1<<(i%8)) != 0
}

// reconstructVOLE reconstructs the VOLE keys of the party, corrects
// them with the published fixes, and distributes them into segments.
func reconstructVOLE(config *env.Config, params *Params,
	challenges []field.GF8, digests []hasher.Digest, fixes [][]byte,
	decoms []*vc.Decommitment) (voleVectors, error) {

	verifier, err := svole.NewVerifier(config, params.Tau, params.Kappa,
		params.BigN)
	if err != nil {
		return nil, err
	}
	keys, err := verifier.Reconstruct(challenges, digests, decoms)
	if err != nil {
		return nil, err
	}
	for r := range keys {
		for j := 0; j < params.BigN; j++ {
			if testPacked(fixes[r], j) {
				keys[r][j] = keys[r][j].Add(challenges[r])
			}
		}
	}
	return distributeVOLE(params.Layout, keys)
}
