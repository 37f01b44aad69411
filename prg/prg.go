//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package prg implements the AES-based one-to-two pseudorandom
// generator, the GGM tree expansion built on it, and the per-leaf
// message and commitment generator of the vector commitment.
package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
)

const (
	// SeedSize specifies the seed size in bytes.
	SeedSize = 16

	// MaxDepth is the maximum supported GGM tree depth.
	MaxDepth = 30
)

// Seed is a 128-bit PRG seed. The zero value is a valid seed.
type Seed [SeedSize]byte

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// RandomSeed creates a random seed.
func RandomSeed(rand io.Reader) (Seed, error) {
	var seed Seed
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return seed, err
	}
	return seed, nil
}

// PRG implements a length-doubling PRG with two AES-128 instances.
// The PRG is safe for concurrent use.
type PRG struct {
	left  cipher.Block
	right cipher.Block
}

var (
	// DefaultKey is the public key of the default PRG.
	DefaultKey = Seed{}

	defaultOnce sync.Once
	defaultPRG  *PRG
)

// Default returns the shared PRG for DefaultKey.
func Default() *PRG {
	defaultOnce.Do(func() {
		defaultPRG = New(DefaultKey)
	})
	return defaultPRG
}

// New creates a new PRG for the key. The left and right sub-keys are
// the encryptions of the constant blocks 0xff.. and 0xfe.. under key.
func New(key Seed) *PRG {
	block := newCipher(key[:])

	var k0, k1 Seed
	for i := 0; i < SeedSize; i++ {
		k0[i] = 0xff
		k1[i] = 0xfe
	}
	block.Encrypt(k0[:], k0[:])
	block.Encrypt(k1[:], k1[:])

	return &PRG{
		left:  newCipher(k0[:]),
		right: newCipher(k1[:]),
	}
}

func newCipher(key []byte) cipher.Block {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	return block
}

// Double expands seed into two seeds.
func (prg *PRG) Double(seed Seed) (left, right Seed) {
	prg.left.Encrypt(left[:], seed[:])
	prg.right.Encrypt(right[:], seed[:])
	return
}

// TreeSize returns the number of nodes in a GGM tree of depth.
func TreeSize(depth int) int {
	return (1 << (depth + 1)) - 1
}

// Tree expands seed into a complete GGM tree of depth. The tree is
// returned in heap order: the root is at index 0 and the children of
// node i are at 2i+1 and 2i+2. The leaves are the last 1<<depth
// nodes.
func (prg *PRG) Tree(seed Seed, depth int) []Seed {
	if depth < 0 || depth > MaxDepth {
		panic(fmt.Sprintf("prg.Tree: invalid depth %d", depth))
	}
	tree := make([]Seed, TreeSize(depth))
	tree[0] = seed

	inner := (1 << depth) - 1
	for i := 0; i < inner; i++ {
		tree[2*i+1], tree[2*i+2] = prg.Double(tree[i])
	}
	return tree
}
