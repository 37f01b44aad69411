//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"encoding/binary"

	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
	"golang.org/x/crypto/chacha20"
)

// stream implements a deterministic io.Reader from the ChaCha20
// keystream.
type stream struct {
	c *chacha20.Cipher
}

func newStream(key hasher.Digest) *stream {
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		panic(err)
	}
	return &stream{
		c: c,
	}
}

// Read implements io.Reader.
func (s *stream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.c.XORKeyStream(p, p)
	return len(p), nil
}

// uint32n returns a uniform random integer in [0,n).
func (s *stream) uint32n(n uint32) uint32 {
	var buf [4]byte
	limit := ^uint32(0) - ^uint32(0)%n
	for {
		s.Read(buf[:])
		v := binary.BigEndian.Uint32(buf[:])
		if v < limit {
			return v % n
		}
	}
}

// permutationKey derives the permutation key from the preprocessing
// transcript hash and PB's permutation seed.
func permutationKey(preHash hasher.Digest, seed prg.Seed) hasher.Digest {
	h := hasher.New(hasher.DomainPermutation)
	h.Write(preHash[:])
	h.Write(seed[:])
	return h.Sum()
}

// Permutation creates a uniformly random permutation of [0,n) with
// the Fisher-Yates shuffle keyed by key.
func Permutation(key hasher.Digest, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	s := newStream(key)
	for i := n - 1; i > 0; i-- {
		j := int(s.uint32n(uint32(i + 1)))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
