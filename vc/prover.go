//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package vc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
)

// Prover implements the committing side of the vector commitment.
type Prover struct {
	tau         int
	messageLen  int
	prg         *prg.PRG
	tree        []prg.Seed
	commitments []prg.Seed
	digest      hasher.Digest
	message     *bitset.BitSet
	mac         []field.GF8
}

// NewProver creates a prover for a tree of depth tau and messages of
// messageLen bits.
func NewProver(tau, messageLen int) (*Prover, error) {
	if err := checkParams(tau, messageLen); err != nil {
		return nil, err
	}
	return &Prover{
		tau:        tau,
		messageLen: messageLen,
		prg:        prg.Default(),
	}, nil
}

// Commit commits to the tree expanded from seed and returns the
// commitment digest.
func (p *Prover) Commit(seed prg.Seed) (hasher.Digest, error) {
	if p.tree != nil {
		return hasher.Digest{}, ErrCommitted
	}
	tree := p.prg.Tree(seed, p.tau)
	if len(tree) != 2*(1<<p.tau)-1 {
		panic(fmt.Sprintf("vc: tree size %d, expected %d",
			len(tree), 2*(1<<p.tau)-1))
	}

	numLeaves := 1 << p.tau
	commitments := make([]prg.Seed, numLeaves)
	message := bitset.New(uint(p.messageLen))
	mac := make([]field.GF8, p.messageLen)

	for i := 0; i < numLeaves; i++ {
		msg, com := p.prg.Message(tree[leafNode(p.tau, i)], p.messageLen)
		commitments[i] = com

		message.InPlaceSymmetricDifference(msg)

		idx := field.GF8(i)
		for j, ok := msg.NextSet(0); ok; j, ok = msg.NextSet(j + 1) {
			mac[j] = mac[j].Add(idx)
		}
	}

	p.tree = tree
	p.commitments = commitments
	p.digest = hasher.Commitments(commitments)
	p.message = message
	p.mac = mac

	return p.digest, nil
}

// Digest returns the commitment digest.
func (p *Prover) Digest() hasher.Digest {
	return p.digest
}

// Message returns the aggregate message bits.
func (p *Prover) Message() *bitset.BitSet {
	return p.message
}

// MAC returns the aggregate MAC vector.
func (p *Prover) MAC() []field.GF8 {
	return p.mac
}

// Open opens all leaves except the one named by nabla. Open can be
// called multiple times with different challenges.
func (p *Prover) Open(nabla field.GF8) (*Decommitment, error) {
	if p.tree == nil {
		return nil, ErrNotCommitted
	}
	excluded, err := checkChallenge(p.tau, nabla)
	if err != nil {
		return nil, err
	}

	trace := make([]prg.Seed, p.tau)
	node := leafNode(p.tau, excluded)
	for level := 0; level < p.tau; level++ {
		trace[level] = p.tree[sibling(node)]
		node = parent(node)
	}

	return &Decommitment{
		Commitment: p.commitments[excluded],
		Trace:      trace,
	}, nil
}
