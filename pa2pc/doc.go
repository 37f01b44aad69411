//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package pa2pc implements a publicly auditable two-party computation
// protocol over boolean circuits. The prover simulates both parties
// PA (garbler) and PB (evaluator) of an authenticated garbling
// protocol and produces a non-interactive proof that a public verifier
// checks against the circuit.
//
// Every secret bit of both parties is authenticated twice: with a
// pairwise information-theoretic MAC under the peer's global GF(2^128)
// difference, and with kappa VOLE-in-the-head MACs under the
// verifier's GF(2^8) challenges. The preprocessing transcript commits
// to the VOLE correlations, the mask corrections, and the garbled AND
// tables. The proof reveals the masked circuit evaluation, Check-AND
// transcripts for every AND gate, opened leftover triples, the output
// masks, and finally the vector commitment openings at the
// Fiat-Shamir challenges.
package pa2pc

import (
	"errors"
)

var (
	// ErrConfig is returned for invalid parameters and for vectors
	// whose lengths do not match the public parameters.
	ErrConfig = errors.New("pa2pc: invalid configuration")

	// ErrMACCheck is returned when a revealed bit does not match its
	// VOLE key.
	ErrMACCheck = errors.New("pa2pc: MAC check failed")

	// ErrANDCheck is returned when the Check-AND sub-protocol fails.
	ErrANDCheck = errors.New("pa2pc: AND check failed")

	// ErrTripleCheck is returned when an opened leftover triple is not
	// a valid multiplication triple.
	ErrTripleCheck = errors.New("pa2pc: triple check failed")

	// ErrCommitment is returned when the permutation seed does not
	// match its commitment.
	ErrCommitment = errors.New("pa2pc: commitment mismatch")

	// ErrGarbledRow is returned when a garbled row does not decrypt
	// into a valid row.
	ErrGarbledRow = errors.New("pa2pc: invalid garbled row")

	// ErrState is returned when the prover operations are called in
	// invalid order.
	ErrState = errors.New("pa2pc: invalid prover state")
)
