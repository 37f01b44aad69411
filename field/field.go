//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package field implements the two binary extension fields used by
// the VOLE-in-the-head correlations: GF8 is the challenge and leaf
// index field, and GF128 is the wide field for pairwise MACs and
// garbling labels.
//
// Both fields have characteristic 2 so addition and subtraction are
// the same XOR operation. The protocols only ever multiply field
// elements by bits, which is why the Element constraint does not
// define a general multiplication.
package field

import (
	"fmt"
)

// Element defines the operations the protocols need from a field
// element type E.
type Element[E any] interface {
	comparable

	// Add returns the sum of the element and o.
	Add(o E) E

	// MulBit returns the element if b is set and zero otherwise.
	MulBit(b bool) E

	// IsZero tests if the element is the additive identity.
	IsZero() bool

	// Bytes returns the canonical encoding of the element.
	Bytes() []byte
}

// AddVec returns the element-wise sum of the vectors a and b.
func AddVec[E Element[E]](a, b []E) []E {
	if len(a) != len(b) {
		panic(fmt.Sprintf("field.AddVec: length mismatch: %d != %d",
			len(a), len(b)))
	}
	result := make([]E, len(a))
	for i := range a {
		result[i] = a[i].Add(b[i])
	}
	return result
}

// MulBitVec multiplies every element of a by the bit b.
func MulBitVec[E Element[E]](a []E, b bool) []E {
	result := make([]E, len(a))
	if b {
		copy(result, a)
	}
	return result
}

// EqualVec tests if the vectors a and b are equal.
func EqualVec[E Element[E]](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
