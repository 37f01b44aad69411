//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package svole

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
	"github.com/markkurossi/pa2pc/vc"
	"github.com/markkurossi/text/superscript"
	"golang.org/x/sync/errgroup"
)

// Prover implements the prover side of the SVOLE protocol.
type Prover struct {
	config     *env.Config
	tau        int
	messageLen int
	reps       []*vc.Prover
	digests    []hasher.Digest
}

// NewProver creates a new prover with kappa repetitions of vector
// commitments of depth tau and message length messageLen.
func NewProver(config *env.Config, tau, kappa, messageLen int) (
	*Prover, error) {

	if err := checkParams(kappa); err != nil {
		return nil, err
	}
	reps := make([]*vc.Prover, kappa)
	for r := range reps {
		p, err := vc.NewProver(tau, messageLen)
		if err != nil {
			return nil, err
		}
		reps[r] = p
	}
	return &Prover{
		config:     config,
		tau:        tau,
		messageLen: messageLen,
		reps:       reps,
	}, nil
}

// Kappa returns the number of repetitions.
func (p *Prover) Kappa() int {
	return len(p.reps)
}

// Commit commits all repetitions with tree seeds derived from master
// and returns the commitment digests in repetition order.
func (p *Prover) Commit(master prg.Seed) ([]hasher.Digest, error) {
	seeds := Seeds(master, len(p.reps))
	digests := make([]hasher.Digest, len(p.reps))

	var g errgroup.Group
	g.SetLimit(p.config.GetWorkers())

	for r, rep := range p.reps {
		r, rep := r, rep
		g.Go(func() error {
			digest, err := rep.Commit(seeds[r])
			if err != nil {
				return fmt.Errorf("repetition %d: %w", r, err)
			}
			digests[r] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for r, digest := range digests {
		p.config.Debugf("svole: commit%s: %v\n", superscript.Itoa(r), digest)
	}
	p.digests = digests

	return digests, nil
}

// Digests returns the commitment digests.
func (p *Prover) Digests() []hasher.Digest {
	return p.digests
}

// Message returns the message bits of the repetition rep.
func (p *Prover) Message(rep int) *bitset.BitSet {
	return p.reps[rep].Message()
}

// MAC returns the MAC vector of the repetition rep.
func (p *Prover) MAC(rep int) []field.GF8 {
	return p.reps[rep].MAC()
}

// Open opens every repetition at its challenge.
func (p *Prover) Open(challenges []field.GF8) ([]*vc.Decommitment, error) {
	if len(challenges) != len(p.reps) {
		return nil, fmt.Errorf("svole: got %d challenges, expected %d",
			len(challenges), len(p.reps))
	}
	result := make([]*vc.Decommitment, len(p.reps))
	for r, rep := range p.reps {
		decom, err := rep.Open(challenges[r])
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", r, err)
		}
		result[r] = decom
	}
	return result, nil
}
