//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package svole

import (
	"fmt"

	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/vc"
	"golang.org/x/sync/errgroup"
)

// Verifier implements the verifier side of the SVOLE protocol.
type Verifier struct {
	config *env.Config
	tau    int
	kappa  int
	vc     *vc.Verifier
}

// NewVerifier creates a new verifier for kappa repetitions of vector
// commitments of depth tau and message length messageLen.
func NewVerifier(config *env.Config, tau, kappa, messageLen int) (
	*Verifier, error) {

	if err := checkParams(kappa); err != nil {
		return nil, err
	}
	v, err := vc.NewVerifier(tau, messageLen)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		config: config,
		tau:    tau,
		kappa:  kappa,
		vc:     v,
	}, nil
}

// Reconstruct reconstructs the key vectors of all repetitions and
// verifies that the reconstructed commitment digests match the
// published digests.
func (v *Verifier) Reconstruct(challenges []field.GF8,
	digests []hasher.Digest, decoms []*vc.Decommitment) (
	[][]field.GF8, error) {

	if len(challenges) != v.kappa || len(digests) != v.kappa ||
		len(decoms) != v.kappa {
		return nil, fmt.Errorf("svole: invalid repetition count: "+
			"challenges=%d, digests=%d, decommitments=%d, expected %d",
			len(challenges), len(digests), len(decoms), v.kappa)
	}
	keys := make([][]field.GF8, v.kappa)

	var g errgroup.Group
	g.SetLimit(v.config.GetWorkers())

	for r := 0; r < v.kappa; r++ {
		r := r
		g.Go(func() error {
			digest, key, err := v.vc.Reconstruct(challenges[r], decoms[r])
			if err != nil {
				return fmt.Errorf("repetition %d: %w", r, err)
			}
			if digest != digests[r] {
				return fmt.Errorf("%w: repetition %d", ErrDigestMismatch, r)
			}
			keys[r] = key
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
