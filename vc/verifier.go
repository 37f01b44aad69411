//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vc

import (
	"fmt"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
)

// Verifier implements the reconstructing side of the vector
// commitment.
type Verifier struct {
	tau        int
	messageLen int
	prg        *prg.PRG
}

// NewVerifier creates a verifier for a tree of depth tau and messages
// of messageLen bits.
func NewVerifier(tau, messageLen int) (*Verifier, error) {
	if err := checkParams(tau, messageLen); err != nil {
		return nil, err
	}
	return &Verifier{
		tau:        tau,
		messageLen: messageLen,
		prg:        prg.Default(),
	}, nil
}

// Reconstruct reconstructs the commitment digest and the key vector
// from the decommitment for the challenge nabla. The caller must
// compare the returned digest with the prover's published digest.
func (v *Verifier) Reconstruct(nabla field.GF8, decom *Decommitment) (
	hasher.Digest, []field.GF8, error) {

	excluded, err := checkChallenge(v.tau, nabla)
	if err != nil {
		return hasher.Digest{}, nil, err
	}
	if decom == nil || len(decom.Trace) != v.tau {
		return hasher.Digest{}, nil, fmt.Errorf("%w: expected %d seeds",
			ErrInvalidDecommitment, v.tau)
	}

	commitments := make([]prg.Seed, 1<<v.tau)
	key := make([]field.GF8, v.messageLen)

	for level := 0; level < v.tau; level++ {
		from, count := siblingRange(excluded, level)
		sub := v.prg.Tree(decom.Trace[level], level)
		leaves := sub[len(sub)-count:]

		for i, seed := range leaves {
			leaf := from + i
			msg, com := v.prg.Message(seed, v.messageLen)
			commitments[leaf] = com

			w := nabla.Add(field.GF8(leaf))
			for j, ok := msg.NextSet(0); ok; j, ok = msg.NextSet(j + 1) {
				key[j] = key[j].Add(w)
			}
		}
	}
	commitments[excluded] = decom.Commitment

	return hasher.Commitments(commitments), key, nil
}
