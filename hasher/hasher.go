//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package hasher implements the hash oracle of the protocols. All
// hashes are BLAKE3 instances with a separate key derivation context
// for every purpose.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/prg"
	"github.com/zeebo/blake3"
)

// Domain separation contexts.
const (
	domainCommitments = "pa2pc 2026 leaf commitments"
	domainChallenge   = "pa2pc 2026 svole challenge"
	domainRowPad      = "pa2pc 2026 garbled row pad"
	domainCommit      = "pa2pc 2026 secret commitment"

	// DomainTranscript is the domain of protocol transcript hashes.
	DomainTranscript = "pa2pc 2026 transcript"

	// DomainPermutation is the domain of permutation key derivation.
	DomainPermutation = "pa2pc 2026 permutation"
)

// DigestSize specifies the digest size in bytes.
const DigestSize = 32

// Digest is a hash output.
type Digest [DigestSize]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Hasher implements a streaming hash with domain separation.
type Hasher struct {
	h *blake3.Hasher
}

// New creates a new hasher for the domain.
func New(domain string) *Hasher {
	return &Hasher{
		h: blake3.NewDeriveKey(domain),
	}
}

// Write implements io.Writer. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum returns the digest of the data written so far.
func (h *Hasher) Sum() Digest {
	var d Digest
	h.h.Sum(d[:0])
	return d
}

// Read fills out from the extendable output of the data written so
// far.
func (h *Hasher) Read(out []byte) {
	if _, err := io.ReadFull(h.h.Digest(), out); err != nil {
		panic(fmt.Sprintf("hasher: XOF read failed: %v", err))
	}
}

// Commitments hashes the leaf commitments in leaf order.
func Commitments(commitments []prg.Seed) Digest {
	h := New(domainCommitments)
	for i := range commitments {
		h.Write(commitments[i][:])
	}
	return h.Sum()
}

// Challenge derives the challenge for the commitment digest and the
// public auxiliary data aux. The challenge is reduced to tau bits so
// that its index names a leaf of a depth tau tree.
func Challenge(aux []byte, digest Digest, tau int) field.GF8 {
	if tau < 0 || tau > 8 {
		panic(fmt.Sprintf("hasher.Challenge: invalid tau %d", tau))
	}
	h := New(domainChallenge)
	h.Write(aux)
	h.Write(digest[:])
	d := h.Sum()

	return field.GF8(d[0] & byte((1<<tau)-1))
}

// RowPad derives the n-byte pad for the garbled row sel of gate from
// the gate's input labels a and b.
func RowPad(a, b field.GF128, gate uint32, sel int, n int) []byte {
	var buf [2*16 + 4 + 1]byte
	data := a.AppendBytes(buf[:0])
	data = b.AppendBytes(data)
	data = binary.BigEndian.AppendUint32(data, gate)
	data = append(data, byte(sel))

	h := New(domainRowPad)
	h.Write(data)

	pad := make([]byte, n)
	h.Read(pad)
	return pad
}

// Commit creates a hiding commitment to data with the randomness
// seed.
func Commit(seed prg.Seed, data []byte) Digest {
	h := New(domainCommit)
	h.Write(seed[:])
	h.Write(data)
	return h.Sum()
}
