//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"github.com/bits-and-blooms/bitset"
)

// Message derives the n-bit leaf message and the leaf commitment from
// the leaf seed. The first expansion splits seed into an intermediate
// seed and the commitment. The intermediate seed is then re-expanded
// one block at a time and every block contributes the low bits of its
// 16 bytes to the message until n bits have been produced.
func (prg *PRG) Message(seed Seed, n int) (*bitset.BitSet, Seed) {
	msg := bitset.New(uint(n))

	state, commitment := prg.Double(seed)

	var block Seed
	for produced := 0; produced < n; {
		block, state = prg.Double(state)
		for i := 0; i < SeedSize && produced < n; i++ {
			if block[i]&1 != 0 {
				msg.Set(uint(produced))
			}
			produced++
		}
	}
	return msg, commitment
}
