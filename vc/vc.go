//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package vc implements the all-but-one vector commitment that
// underlies the VOLE-in-the-head correlations.
//
// The prover expands a root seed into a GGM tree with 1<<tau leaves.
// Every leaf seed yields a message bit-vector and a commitment. The
// prover publishes the hash of all leaf commitments and keeps the
// aggregate message
//
//	message[j] = XOR_i leaf[i].message[j]
//
// together with the MAC vector
//
//	mac[j] = SUM_i leaf[i].message[j] * i
//
// where the leaf index i is interpreted as a GF8 element. On challenge
// nabla the prover opens every leaf except leaf nabla by revealing the
// sibling seeds on the path from the excluded leaf to the root. The
// verifier reconstructs all other leaves and computes the key vector
//
//	key[j] = SUM_{i != nabla} leaf[i].message[j] * (nabla + i)
//
// which satisfies key[j] = mac[j] + message[j] * nabla.
package vc

import (
	"errors"
	"fmt"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/prg"
)

// MaxTau is the maximum tree depth. The GF8 challenge names the
// excluded leaf so the tree can have at most 256 leaves.
const MaxTau = 8

var (
	// ErrCommitted is returned when Commit is called for a committed
	// prover.
	ErrCommitted = errors.New("vc: already committed")

	// ErrNotCommitted is returned when Open is called before Commit.
	ErrNotCommitted = errors.New("vc: not committed")

	// ErrInvalidChallenge is returned when the challenge does not name
	// a leaf of the tree.
	ErrInvalidChallenge = errors.New("vc: invalid challenge")

	// ErrInvalidDecommitment is returned when the decommitment does
	// not match the tree shape.
	ErrInvalidDecommitment = errors.New("vc: invalid decommitment")
)

// Decommitment opens all leaves but the excluded one.
type Decommitment struct {
	// Commitment is the commitment of the excluded leaf.
	Commitment prg.Seed

	// Trace contains the sibling seeds on the path from the excluded
	// leaf to the root, ordered from the leaf level up.
	Trace []prg.Seed
}

func checkParams(tau, messageLen int) error {
	if tau < 0 || tau > MaxTau {
		return fmt.Errorf("vc: invalid tau %d", tau)
	}
	if messageLen < 0 {
		return fmt.Errorf("vc: invalid message length %d", messageLen)
	}
	return nil
}

// leafNode returns the heap index of the leaf i in a tree of depth
// tau.
func leafNode(tau, i int) int {
	return (1 << tau) - 1 + i
}

// sibling returns the heap index of the sibling of node.
func sibling(node int) int {
	if node%2 == 1 {
		return node + 1
	}
	return node - 1
}

// parent returns the heap index of the parent of node.
func parent(node int) int {
	return (node - 1) / 2
}

// siblingRange returns the leaf range [from, from+count) covered by
// the sibling subtree of the excluded leaf's ancestor at level.
func siblingRange(excluded, level int) (from, count int) {
	return ((excluded >> level) ^ 1) << level, 1 << level
}

func checkChallenge(tau int, nabla field.GF8) (int, error) {
	idx := nabla.Index()
	if idx >= 1<<tau {
		return 0, fmt.Errorf("%w: %v for tau %d", ErrInvalidChallenge,
			nabla, tau)
	}
	return idx, nil
}
