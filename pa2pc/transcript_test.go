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

	"github.com/markkurossi/pa2pc/svole"
)

func newTamperRun(t *testing.T, conv NOTConvention) *testRun {
	circ := testCircuits(t, 4)["subtractor"]
	params, err := NewParams(circ, 8, 2, 2, 2, conv)
	if err != nil {
		t.Fatal(err)
	}
	return run(t, testConfig(9), params, rand.New(rand.NewSource(9)))
}

// clone returns a copy of the transcripts through their CBOR encoding.
func (r *testRun) clone(t *testing.T) (*Preprocessing, *Proof) {
	data, err := r.pre.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	pre := new(Preprocessing)
	if err := pre.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	data, err = r.proof.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	proof := new(Proof)
	if err := proof.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	return pre, proof
}

func TestMarshal(t *testing.T) {
	r := newTamperRun(t, NOTFlipMask)
	pre, proof := r.clone(t)

	if string(pre.Bytes()) != string(r.pre.Bytes()) {
		t.Fatalf("preprocessing changed in CBOR roundtrip")
	}
	if string(proof.bodyBytes()) != string(r.proof.bodyBytes()) {
		t.Fatalf("proof changed in CBOR roundtrip")
	}
	r.pre = pre
	r.proof = proof
	r.verify(t)
}

// reopen recomputes the challenges of the transcripts and replaces the
// proof's openings with ones matching them.
func (r *testRun) reopen(t *testing.T, pre *Preprocessing, proof *Proof) {
	ph, err := preHash(r.params, pre)
	if err != nil {
		t.Fatal(err)
	}
	full := proofHash(ph, proof)
	for p := PA; p <= PB; p++ {
		ch := challenges(r.params, full, p, pre.Digests[p])
		proof.Openings[p], err = r.prover.vole.open(p, ch)
		if err != nil {
			t.Fatal(err)
		}
	}
}

type tamper func(pre *Preprocessing, proof *Proof)

var revealTampers = []struct {
	name   string
	tamper tamper
}{
	{
		name: "AND reveal MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.ANDs[0].VMAC[0] ^= 0x01
		},
	},
	{
		name: "AND reveal bit",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.ANDs[1].Bit = !proof.ANDs[1].Bit
		},
	},
	{
		name: "check d MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Checks[1].D[PA].VMAC[1] ^= 0x80
		},
	},
	{
		name: "check e MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Checks[0].E[PB].VMAC[0] ^= 0x04
		},
	},
	{
		name: "check z MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Checks[2].Z[PA].VMAC[1] ^= 0x10
		},
	},
	{
		name: "check z bit",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Checks[0].Z[PB].Bit = !proof.Checks[0].Z[PB].Bit
		},
	},
	{
		name: "leftover MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Leftovers[1].C[PB].VMAC[0] ^= 0x02
		},
	},
	{
		name: "leftover bit",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Leftovers[0].A[PA].Bit = !proof.Leftovers[0].A[PA].Bit
		},
	},
	{
		name: "output MAC",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Outputs[3][PA].VMAC[1] ^= 0x40
		},
	},
	{
		name: "output bit",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Outputs[0][PB].Bit = !proof.Outputs[0][PB].Bit
		},
	},
}

// TestTamperReveals corrupts single revealed bits and MACs and opens
// the commitments at the challenges of the corrupted transcript. The
// VOLE MAC checks must reject every case.
func TestTamperReveals(t *testing.T) {
	for _, conv := range []NOTConvention{NOTFlipMask, NOTFlipValue} {
		r := newTamperRun(t, conv)
		for _, test := range revealTampers {
			pre, proof := r.clone(t)
			test.tamper(pre, proof)
			r.reopen(t, pre, proof)
			_, err := NewVerifier(nil, r.params).Verify(pre, proof)
			if !errors.Is(err, ErrMACCheck) {
				t.Errorf("%s: %s: got %v, expected %v",
					conv, test.name, err, ErrMACCheck)
			}
		}
	}
}

var bindingTampers = []struct {
	name   string
	tamper tamper
	err    error
}{
	{
		name: "garbled rows",
		tamper: func(pre *Preprocessing, proof *Proof) {
			for sel := 0; sel < 4; sel++ {
				pre.Garbled[rowIndex(0, sel)][0] ^= 0x01
			}
		},
		err: svole.ErrDigestMismatch,
	},
	{
		name: "mask fix",
		tamper: func(pre *Preprocessing, proof *Proof) {
			pre.Masked[PA][1][0] ^= 0x01
		},
		err: svole.ErrDigestMismatch,
	},
	{
		name: "PA digest",
		tamper: func(pre *Preprocessing, proof *Proof) {
			pre.Digests[PA][1][7] ^= 0x01
		},
		err: svole.ErrDigestMismatch,
	},
	{
		name: "PB digest",
		tamper: func(pre *Preprocessing, proof *Proof) {
			pre.Digests[PB][0][5] ^= 0x01
		},
		err: ErrCommitment,
	},
	{
		name: "opening",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Openings[PA][0].Trace[3][0] ^= 0x01
		},
		err: svole.ErrDigestMismatch,
	},
	{
		name: "opening commitment",
		tamper: func(pre *Preprocessing, proof *Proof) {
			proof.Openings[PB][1].Commitment[15] ^= 0x01
		},
		err: svole.ErrDigestMismatch,
	},
}

// TestTamperBinding changes the transcripts without reopening the
// commitments. The openings no longer match the derived challenges.
func TestTamperBinding(t *testing.T) {
	for _, conv := range []NOTConvention{NOTFlipMask, NOTFlipValue} {
		r := newTamperRun(t, conv)
		for _, test := range bindingTampers {
			pre, proof := r.clone(t)
			test.tamper(pre, proof)
			_, err := NewVerifier(nil, r.params).Verify(pre, proof)
			if !errors.Is(err, test.err) {
				t.Errorf("%s: %s: got %v, expected %v",
					conv, test.name, err, test.err)
			}
		}
		for _, test := range revealTampers {
			pre, proof := r.clone(t)
			test.tamper(pre, proof)
			_, err := NewVerifier(nil, r.params).Verify(pre, proof)
			if !errors.Is(err, svole.ErrDigestMismatch) {
				t.Errorf("%s: %s: got %v, expected %v",
					conv, test.name, err, svole.ErrDigestMismatch)
			}
		}
	}
}

func TestVerifyErrors(t *testing.T) {
	r := newTamperRun(t, NOTFlipValue)
	v := NewVerifier(nil, r.params)

	pre, proof := r.clone(t)
	proof.PermSeed[0] ^= 0x01
	if _, err := v.Verify(pre, proof); !errors.Is(err, ErrCommitment) {
		t.Errorf("permutation seed: %v", err)
	}

	pre, proof = r.clone(t)
	proof.Checks = proof.Checks[1:]
	if _, err := v.Verify(pre, proof); !errors.Is(err, ErrConfig) {
		t.Errorf("missing check: %v", err)
	}

	pre, proof = r.clone(t)
	proof.ANDs[1].VMAC = proof.ANDs[1].VMAC[:1]
	if _, err := v.Verify(pre, proof); !errors.Is(err, ErrConfig) {
		t.Errorf("short MAC vector: %v", err)
	}

	pre, proof = r.clone(t)
	pre.Garbled[0] = pre.Garbled[0][1:]
	if _, err := v.Verify(pre, proof); !errors.Is(err, ErrConfig) {
		t.Errorf("short garbled row: %v", err)
	}

	pre, proof = r.clone(t)
	proof.Openings[PA] = proof.Openings[PA][:1]
	if _, err := v.Verify(pre, proof); !errors.Is(err, ErrConfig) {
		t.Errorf("missing opening: %v", err)
	}

	if _, err := v.Verify(nil, proof); !errors.Is(err, ErrConfig) {
		t.Errorf("missing preprocessing: %v", err)
	}
}
