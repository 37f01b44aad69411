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

// shares hold both parties' shares of an authenticated bit.
type shares [2]AuthBit

func (s shares) xor(o shares) shares {
	return shares{s[PA].Xor(o[PA]), s[PB].Xor(o[PB])}
}

func (s shares) mulBit(b bool) shares {
	return shares{s[PA].MulBit(b), s[PB].MulBit(b)}
}

func (s shares) value() bool {
	return s[PA].Bit != s[PB].Bit
}

func (s shares) reveal() [2]BitReveal {
	return [2]BitReveal{newBitReveal(s[PA]), newBitReveal(s[PB])}
}

// keys hold the verifier's VOLE keys for both parties' shares of an
// authenticated bit.
type keys [2][]field.GF8

func (k keys) xor(o keys) keys {
	return keys{field.AddVec(k[PA], o[PA]), field.AddVec(k[PB], o[PB])}
}

func (k keys) mulBit(b bool) keys {
	return keys{field.MulBitVec(k[PA], b), field.MulBitVec(k[PB], b)}
}

// addConst returns the keys of the bit whose PA share is XORed with
// the public constant b.
func (k keys) addConst(b bool, nabla [2][]field.GF8) keys {
	if !b {
		return k
	}
	return keys{field.AddVec(k[PA], nabla[PA]), k[PB]}
}

// checkBit verifies the revealed share against its VOLE keys.
func checkBit(key, nabla []field.GF8, r BitReveal) error {
	if len(key) != len(r.VMAC) || len(nabla) != len(r.VMAC) {
		return fmt.Errorf("%w: got %d MACs, expected %d",
			ErrConfig, len(r.VMAC), len(key))
	}
	for i := range key {
		if key[i] != r.VMAC[i].Add(nabla[i].MulBit(r.Bit)) {
			return fmt.Errorf("%w: repetition %d", ErrMACCheck, i)
		}
	}
	return nil
}

// checkBits verifies both parties' revealed shares and returns the
// shared value.
func checkBits(k keys, nabla [2][]field.GF8, r [2]BitReveal) (bool, error) {
	for p := PA; p <= PB; p++ {
		if err := checkBit(k[p], nabla[p], r[p]); err != nil {
			return false, fmt.Errorf("%s: %w", p, err)
		}
	}
	return r[PA].Bit != r[PB].Bit, nil
}

// triple holds the authenticated shares of a multiplication triple.
type triple struct {
	a, b, c shares
}

// proveCheckAND creates the Check-AND transcript proving z = x*y with
// the triple t.
func proveCheckAND(x, y, z shares, t triple) CheckANDTranscript {
	d := x.xor(t.a)
	e := y.xor(t.b)
	dv := d.value()
	ev := e.value()

	tz := z.xor(t.c).xor(t.b.mulBit(dv)).xor(t.a.mulBit(ev))
	if dv && ev {
		tz[PA] = tz[PA].Not()
	}
	return CheckANDTranscript{
		D: d.reveal(),
		E: e.reveal(),
		Z: tz.reveal(),
	}
}

// verifyCheckAND verifies the Check-AND transcript for the keys of x,
// y, z, and the triple a, b, c.
func verifyCheckAND(x, y, z, a, b, c keys, nabla [2][]field.GF8,
	tr CheckANDTranscript) error {

	dv, err := checkBits(x.xor(a), nabla, tr.D)
	if err != nil {
		return fmt.Errorf("d: %w", err)
	}
	ev, err := checkBits(y.xor(b), nabla, tr.E)
	if err != nil {
		return fmt.Errorf("e: %w", err)
	}
	kz := z.xor(c).xor(b.mulBit(dv)).xor(a.mulBit(ev)).
		addConst(dv && ev, nabla)
	zv, err := checkBits(kz, nabla, tr.Z)
	if err != nil {
		return fmt.Errorf("z: %w", err)
	}
	if zv {
		return ErrANDCheck
	}
	return nil
}

func proveTriple(t triple) TripleReveal {
	return TripleReveal{
		A: t.a.reveal(),
		B: t.b.reveal(),
		C: t.c.reveal(),
	}
}

func verifyTriple(a, b, c keys, nabla [2][]field.GF8, tr TripleReveal) error {
	av, err := checkBits(a, nabla, tr.A)
	if err != nil {
		return fmt.Errorf("a: %w", err)
	}
	bv, err := checkBits(b, nabla, tr.B)
	if err != nil {
		return fmt.Errorf("b: %w", err)
	}
	cv, err := checkBits(c, nabla, tr.C)
	if err != nil {
		return fmt.Errorf("c: %w", err)
	}
	if (av && bv) != cv {
		return ErrTripleCheck
	}
	return nil
}
