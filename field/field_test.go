//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"crypto/rand"
	"testing"
)

func TestGF8(t *testing.T) {
	for i := 0; i < 256; i++ {
		e := GF8(i)
		if !e.Add(e).IsZero() {
			t.Errorf("%v+%v != 0", e, e)
		}
		if e.MulBit(true) != e {
			t.Errorf("%v*1 != %v", e, e)
		}
		if !e.MulBit(false).IsZero() {
			t.Errorf("%v*0 != 0", e)
		}
		if e.Index() != i {
			t.Errorf("%v.Index()=%v, expected %v", e, e.Index(), i)
		}
		d, err := GF8FromBytes(e.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if d != e {
			t.Errorf("decode: got %v, expected %v", d, e)
		}
	}
	if _, err := GF8FromBytes(nil); err == nil {
		t.Errorf("empty GF8 encoding accepted")
	}
}

func TestGF128(t *testing.T) {
	for i := 0; i < 32; i++ {
		a, err := RandomGF128(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		b, err := RandomGF128(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if a.Add(b).Add(b) != a {
			t.Errorf("(a+b)+b != a")
		}
		if a.Add(b) != b.Add(a) {
			t.Errorf("a+b != b+a")
		}
		if !a.MulBit(false).IsZero() {
			t.Errorf("a*0 != 0")
		}
		d, err := GF128FromBytes(a.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if d != a {
			t.Errorf("decode: got %v, expected %v", d, a)
		}
	}
}

func testElement[E Element[E]](t *testing.T, a, b E) {
	var zero E
	if !zero.IsZero() {
		t.Errorf("%T: zero value is not zero", zero)
	}
	if !a.Add(a).IsZero() {
		t.Errorf("%T: a+a != 0", a)
	}
	if a.Add(b) != b.Add(a) {
		t.Errorf("%T: addition does not commute", a)
	}
	if a.MulBit(true) != a || !a.MulBit(false).IsZero() {
		t.Errorf("%T: MulBit", a)
	}
	if !EqualVec(AddVec([]E{a, b}, []E{b, a}), []E{a.Add(b), a.Add(b)}) {
		t.Errorf("%T: AddVec", a)
	}
}

func TestElements(t *testing.T) {
	testElement[GF8](t, 0x53, 0xca)
	testElement(t, GF128{D0: 1, D1: 0x8000000000000000}, GF128{D0: 7})
}

func TestVectors(t *testing.T) {
	a := []GF8{1, 2, 3, 4}
	b := []GF8{4, 3, 2, 1}

	sum := AddVec(a, b)
	if !EqualVec(sum, []GF8{5, 1, 1, 5}) {
		t.Errorf("AddVec: %v", sum)
	}
	if !EqualVec(MulBitVec(a, true), a) {
		t.Errorf("MulBitVec(a, 1) != a")
	}
	if !EqualVec(MulBitVec(a, false), make([]GF8, len(a))) {
		t.Errorf("MulBitVec(a, 0) != 0")
	}
	if EqualVec(a, a[:3]) {
		t.Errorf("EqualVec accepted vectors of different length")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("AddVec did not panic on length mismatch")
		}
	}()
	AddVec(a, b[:2])
}
