//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
)

func newTestDealer(t *testing.T) (*InsecureDealer, Deltas) {
	dealer := NewInsecureDealer(newStream(hasher.Digest{42}))
	var d Deltas
	var err error
	for p := PA; p <= PB; p++ {
		d[p], err = dealer.GenerateDelta()
		if err != nil {
			t.Fatal(err)
		}
	}
	return dealer, d
}

func TestDealer(t *testing.T) {
	dealer, d := newTestDealer(t)

	const n = 200
	x, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	y, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	z, err := dealer.GenerateRandomANDTuples(d, x, y)
	if err != nil {
		t.Fatal(err)
	}
	for _, tuples := range []Tuples{x, y, z} {
		if tuples.Len() != n {
			t.Fatalf("got %d tuples, expected %d", tuples.Len(), n)
		}
		if err := tuples.Verify(d); err != nil {
			t.Fatal(err)
		}
	}
	var ones int
	for i := 0; i < n; i++ {
		if (x.Value(i) && y.Value(i)) != z.Value(i) {
			t.Fatalf("tuple %d: invalid AND", i)
		}
		if z.Value(i) {
			ones++
		}
	}
	if ones == 0 {
		t.Errorf("no AND tuple has value 1")
	}

	_, err = dealer.GenerateRandomANDTuples(d, x, Tuples{})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("mismatched AND tuples: %v", err)
	}
}

func TestAuthBit(t *testing.T) {
	dealer, d := newTestDealer(t)

	tuples, err := dealer.GenerateRandomTuples(d, 2)
	if err != nil {
		t.Fatal(err)
	}
	a := shares{tuples.A[0], tuples.B[0]}
	b := shares{tuples.A[1], tuples.B[1]}

	sum := a.xor(b)
	if sum.value() != (a.value() != b.value()) {
		t.Errorf("xor value")
	}
	if err := verifyPair(d, sum[PA], sum[PB]); err != nil {
		t.Errorf("xor MACs: %v", err)
	}
	for _, bit := range []bool{false, true} {
		m := a.mulBit(bit)
		if err := verifyPair(d, m[PA], m[PB]); err != nil {
			t.Errorf("mulBit(%v) MACs: %v", bit, err)
		}
	}

	// Negating PA's share keeps the MACs valid after PB's key absorbs
	// Delta_B.
	n := shares{a[PA].Not(), a[PB]}
	if err := verifyPair(d, n[PA], n[PB]); err == nil {
		t.Errorf("negated share verified without key update")
	}
	n[PB].Key = n[PB].Key.Add(d[PB])
	if err := verifyPair(d, n[PA], n[PB]); err != nil {
		t.Errorf("negated share: %v", err)
	}
	if n.value() == a.value() {
		t.Errorf("negation did not change value")
	}
}

func TestCheckAND(t *testing.T) {
	dealer, d := newTestDealer(t)

	const n = 32
	x, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	y, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	z, err := dealer.GenerateRandomANDTuples(d, x, y)
	if err != nil {
		t.Fatal(err)
	}
	ta, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	tb, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	tc, err := dealer.GenerateRandomANDTuples(d, ta, tb)
	if err != nil {
		t.Fatal(err)
	}

	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < n; i++ {
		tr := triple{
			a: withVMACs(rnd, ta, i),
			b: withVMACs(rnd, tb, i),
			c: withVMACs(rnd, tc, i),
		}
		xs := withVMACs(rnd, x, i)
		ys := withVMACs(rnd, y, i)
		zs := withVMACs(rnd, z, i)

		check := proveCheckAND(xs, ys, zs, tr)
		if check.Z[PA].Bit != check.Z[PB].Bit {
			t.Fatalf("check %d: valid AND rejected", i)
		}
		err := verifyCheckAND(testKeys(xs), testKeys(ys), testKeys(zs),
			testKeys(tr.a), testKeys(tr.b), testKeys(tr.c), testNabla,
			check)
		if err != nil {
			t.Fatalf("check %d: verify: %v", i, err)
		}

		zs[PB] = zs[PB].Not()
		check = proveCheckAND(xs, ys, zs, tr)
		if check.Z[PA].Bit == check.Z[PB].Bit {
			t.Fatalf("check %d: invalid AND accepted", i)
		}
		err = verifyCheckAND(testKeys(xs), testKeys(ys), testKeys(zs),
			testKeys(tr.a), testKeys(tr.b), testKeys(tr.c), testNabla,
			check)
		if !errors.Is(err, ErrANDCheck) {
			t.Fatalf("check %d: got %v, expected %v", i, err, ErrANDCheck)
		}
	}
}

var testNabla = [2][]field.GF8{
	{0x35, 0xc1, 0x07},
	{0x9a, 0x02, 0x66},
}

// withVMACs returns the tuple i with random VOLE MACs for the
// repetitions of testNabla.
func withVMACs(rnd *rand.Rand, t Tuples, i int) shares {
	s := shares{t.A[i], t.B[i]}
	for p := PA; p <= PB; p++ {
		s[p].VMAC = make([]field.GF8, len(testNabla[p]))
		for r := range s[p].VMAC {
			s[p].VMAC[r] = field.GF8(rnd.Intn(256))
		}
	}
	return s
}

// testKeys returns the verifier's keys of the shares under testNabla.
func testKeys(s shares) keys {
	var k keys
	for p := PA; p <= PB; p++ {
		k[p] = field.AddVec(s[p].VMAC, field.MulBitVec(testNabla[p], s[p].Bit))
	}
	return k
}

func TestTripleCheck(t *testing.T) {
	dealer, d := newTestDealer(t)
	rnd := rand.New(rand.NewSource(3))

	const n = 16
	ta, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	tb, err := dealer.GenerateRandomTuples(d, n)
	if err != nil {
		t.Fatal(err)
	}
	tc, err := dealer.GenerateRandomANDTuples(d, ta, tb)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		tr := triple{
			a: withVMACs(rnd, ta, i),
			b: withVMACs(rnd, tb, i),
			c: withVMACs(rnd, tc, i),
		}
		err := verifyTriple(testKeys(tr.a), testKeys(tr.b), testKeys(tr.c),
			testNabla, proveTriple(tr))
		if err != nil {
			t.Fatalf("triple %d: %v", i, err)
		}

		// Keys follow the corrupted share so only the product check
		// can catch it.
		bad := tr
		bad.c[PA] = bad.c[PA].Not()
		err = verifyTriple(testKeys(bad.a), testKeys(bad.b),
			testKeys(bad.c), testNabla, proveTriple(bad))
		if !errors.Is(err, ErrTripleCheck) {
			t.Fatalf("triple %d: got %v, expected %v",
				i, err, ErrTripleCheck)
		}

		reveal := proveTriple(tr)
		reveal.B[PB].VMAC[2] ^= 0x01
		err = verifyTriple(testKeys(tr.a), testKeys(tr.b), testKeys(tr.c),
			testNabla, reveal)
		if !errors.Is(err, ErrMACCheck) {
			t.Fatalf("triple %d: got %v, expected %v", i, err, ErrMACCheck)
		}
	}
}

// cheatingDealer flips PB's shares of the AND tuples of one call and
// keeps their pairwise MACs valid.
type cheatingDealer struct {
	*InsecureDealer
	cheat int
	calls int
}

func (dealer *cheatingDealer) GenerateRandomANDTuples(d Deltas,
	x, y Tuples) (Tuples, error) {

	result, err := dealer.InsecureDealer.GenerateRandomANDTuples(d, x, y)
	if err != nil {
		return result, err
	}
	if dealer.calls == dealer.cheat {
		for i := range result.B {
			result.B[i].Bit = !result.B[i].Bit
			result.B[i].MAC = result.B[i].MAC.Add(d[PA])
		}
	}
	dealer.calls++
	return result, nil
}

func TestCheatingDealer(t *testing.T) {
	circ := testCircuits(t, 4)["subtractor"]
	params, err := NewParams(circ, 8, 2, 2, 2, NOTFlipMask)
	if err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(11))

	// Call 0 creates the triples and the following calls the AND gates'
	// output tuples.
	for _, cheat := range []int{0, 1, params.NumAND} {
		dealer := &cheatingDealer{
			InsecureDealer: NewInsecureDealer(newStream(hasher.Digest{7})),
			cheat:          cheat,
		}
		prover, err := NewProver(testConfig(5), params, dealer)
		if err != nil {
			t.Fatal(err)
		}
		pre, err := prover.Preprocess()
		if err != nil {
			t.Fatal(err)
		}
		proof, err := prover.Prove(randomBits(rnd, len(params.InputsA)),
			randomBits(rnd, len(params.InputsB)))
		if err != nil {
			t.Fatalf("call %d: Prove: %v", cheat, err)
		}
		_, err = NewVerifier(nil, params).Verify(pre, proof)
		if !errors.Is(err, ErrANDCheck) {
			t.Errorf("call %d: got %v, expected %v", cheat, err, ErrANDCheck)
		}
	}
}

func TestGarbledRow(t *testing.T) {
	row := garbledRow{
		Bit:   true,
		MAC:   field.GF128{D0: 1, D1: 2},
		VMAC:  []field.GF8{3, 4, 5},
		Label: field.GF128{D0: 6, D1: 7},
	}
	a := field.GF128{D0: 8}
	b := field.GF128{D1: 9}

	data := row.encrypt(a, b, 10, 3)
	if len(data) != rowSize(3) {
		t.Fatalf("row size %d, expected %d", len(data), rowSize(3))
	}
	plain, err := decryptRow(data, a, b, 10, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Bit != row.Bit || plain.MAC != row.MAC ||
		plain.Label != row.Label || !field.EqualVec(plain.VMAC, row.VMAC) {
		t.Errorf("decrypt: got %v, expected %v", plain, row)
	}

	other, err := decryptRow(data, a, b, 11, 3, 3)
	if err == nil && other.Label == row.Label {
		t.Errorf("row decrypted under wrong gate index")
	}
	if _, err := decryptRow(data[1:], a, b, 10, 3, 3); !errors.Is(err,
		ErrGarbledRow) {
		t.Errorf("short row: %v", err)
	}
}
