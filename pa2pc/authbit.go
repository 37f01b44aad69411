//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"

	"github.com/markkurossi/pa2pc/field"
)

// Deltas hold the global differences of both parties.
type Deltas [2]field.GF128

// AuthBit is one party's share of an authenticated bit. For the
// shares a of PA and b of PB at the same position:
//
//	a.MAC = b.Key + a.Bit * Delta_B
//	b.MAC = a.Key + b.Bit * Delta_A
//
// and for every repetition r the verifier's VOLE key of the share s is
// s.VMAC[r] + s.Bit * nabla_r.
type AuthBit struct {
	Bit  bool
	MAC  field.GF128
	Key  field.GF128
	VMAC []field.GF8
}

func (a AuthBit) String() string {
	var bit int
	if a.Bit {
		bit = 1
	}
	return fmt.Sprintf("%d M=%v K=%v", bit, a.MAC, a.Key)
}

// Xor returns the share of the XOR of the argument bits.
func (a AuthBit) Xor(o AuthBit) AuthBit {
	return AuthBit{
		Bit:  a.Bit != o.Bit,
		MAC:  a.MAC.Add(o.MAC),
		Key:  a.Key.Add(o.Key),
		VMAC: field.AddVec(a.VMAC, o.VMAC),
	}
}

// MulBit returns the share multiplied by the public bit b.
func (a AuthBit) MulBit(b bool) AuthBit {
	return AuthBit{
		Bit:  a.Bit && b,
		MAC:  a.MAC.MulBit(b),
		Key:  a.Key.MulBit(b),
		VMAC: field.MulBitVec(a.VMAC, b),
	}
}

// Not returns the share with its bit negated. The MACs are unchanged
// so the peer's key and the verifier's keys must absorb the
// constant.
func (a AuthBit) Not() AuthBit {
	a.Bit = !a.Bit
	return a
}

// Tuples hold authenticated bit shares of both parties.
type Tuples struct {
	A []AuthBit
	B []AuthBit
}

// Len returns the number of tuples.
func (t Tuples) Len() int {
	return len(t.A)
}

// Party returns the shares of the party.
func (t Tuples) Party(p Party) []AuthBit {
	if p == PA {
		return t.A
	}
	return t.B
}

// Value returns the shared value of the tuple i.
func (t Tuples) Value(i int) bool {
	return t.A[i].Bit != t.B[i].Bit
}

// Verify verifies the pairwise MACs of the tuples.
func (t Tuples) Verify(d Deltas) error {
	if len(t.A) != len(t.B) {
		return fmt.Errorf("%w: tuples: %d PA shares, %d PB shares",
			ErrConfig, len(t.A), len(t.B))
	}
	for i := range t.A {
		if err := verifyPair(d, t.A[i], t.B[i]); err != nil {
			return fmt.Errorf("tuple %d: %w", i, err)
		}
	}
	return nil
}

func verifyPair(d Deltas, a, b AuthBit) error {
	if a.MAC != b.Key.Add(d[PB].MulBit(a.Bit)) {
		return fmt.Errorf("%w: PA share", ErrMACCheck)
	}
	if b.MAC != a.Key.Add(d[PA].MulBit(b.Bit)) {
		return fmt.Errorf("%w: PB share", ErrMACCheck)
	}
	return nil
}
