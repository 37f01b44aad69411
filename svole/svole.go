//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package svole implements the VOLE-in-the-head subfield VOLE
// functionality on top of the all-but-one vector commitment.
//
// The prover commits to kappa independent vector commitments, each
// expanded from its own tree seed. All tree seeds are derived from
// one master seed. The verifier derives one challenge per repetition
// by hashing public auxiliary data together with the repetition's
// commitment digest, the prover opens every repetition at its
// challenge, and the verifier reconstructs the key vectors. For every
// repetition r and position j the correlation
//
//	key[r][j] = mac[r][j] + message[r][j] * nabla[r]
//
// holds.
//
// Repetitions are independent and run concurrently on a bounded
// worker pool. Their order is preserved end-to-end.
package svole

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
)

var (
	// ErrDigestMismatch is returned when a reconstructed commitment
	// digest does not match the published digest.
	ErrDigestMismatch = errors.New("svole: commitment digest mismatch")
)

// Seeds derives kappa tree seeds from the master seed.
func Seeds(master prg.Seed, kappa int) []prg.Seed {
	g := prg.Default()

	seeds := make([]prg.Seed, kappa)
	state := master
	for r := 0; r < kappa; r++ {
		seeds[r], state = g.Double(state)
	}
	return seeds
}

// Challenge derives the challenge of the repetition rep from the
// auxiliary data aux and the repetition's commitment digest.
func Challenge(aux []byte, rep int, digest hasher.Digest, tau int) field.GF8 {
	data := make([]byte, 0, len(aux)+4)
	data = append(data, aux...)
	data = binary.BigEndian.AppendUint32(data, uint32(rep))

	return hasher.Challenge(data, digest, tau)
}

// Challenges derives the challenges of all repetitions.
func Challenges(aux []byte, digests []hasher.Digest, tau int) []field.GF8 {
	result := make([]field.GF8, len(digests))
	for r, digest := range digests {
		result[r] = Challenge(aux, r, digest, tau)
	}
	return result
}

func checkParams(kappa int) error {
	if kappa < 1 {
		return fmt.Errorf("svole: invalid kappa %d", kappa)
	}
	return nil
}
