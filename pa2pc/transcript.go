//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
	"github.com/markkurossi/pa2pc/prg"
	"github.com/markkurossi/pa2pc/svole"
	"github.com/markkurossi/pa2pc/vc"
)

// Preprocessing is the input-independent preprocessing transcript.
type Preprocessing struct {
	// Digests hold the VOLE commitment digests of both parties, one
	// per repetition.
	Digests [2][]hasher.Digest

	// Masked hold the packed mask-and-publish corrections of both
	// parties, one per repetition.
	Masked [2][][]byte

	// Garbled holds four garbled rows for each AND gate.
	Garbled [][]byte

	// PermCommitment commits to PB's permutation seed.
	PermCommitment hasher.Digest
}

// BitReveal reveals one party's share of an authenticated bit with
// its VOLE MACs.
type BitReveal struct {
	Bit  bool
	VMAC []field.GF8
}

func newBitReveal(a AuthBit) BitReveal {
	return BitReveal{
		Bit:  a.Bit,
		VMAC: append([]field.GF8(nil), a.VMAC...),
	}
}

// InputReveal holds the masked value and the active label of an input
// wire.
type InputReveal struct {
	Masked bool
	Label  field.GF128
}

// ANDReveal holds PB's share of the masked output bit Gamma of an AND
// gate with its pairwise MAC and VOLE MACs.
type ANDReveal struct {
	Bit  bool
	MAC  field.GF128
	VMAC []field.GF8
}

// CheckANDTranscript holds both parties' Check-AND reveals for one
// AND gate and triple.
type CheckANDTranscript struct {
	D [2]BitReveal
	E [2]BitReveal
	Z [2]BitReveal
}

// TripleReveal opens both parties' shares of a leftover triple.
type TripleReveal struct {
	A [2]BitReveal
	B [2]BitReveal
	C [2]BitReveal
}

// Proof is the proof transcript.
type Proof struct {
	PermSeed  prg.Seed
	Inputs    []InputReveal
	ANDs      []ANDReveal
	Checks    []CheckANDTranscript
	Leftovers []TripleReveal
	Outputs   [][2]BitReveal
	Openings  [2][]*vc.Decommitment
}

type preprocessingMarshal Preprocessing

type proofMarshal Proof

// MarshalBinary encodes the preprocessing transcript in CBOR.
func (pre *Preprocessing) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*preprocessingMarshal)(pre))
}

// UnmarshalBinary decodes the CBOR preprocessing transcript.
func (pre *Preprocessing) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*preprocessingMarshal)(pre))
}

// MarshalBinary encodes the proof in CBOR.
func (proof *Proof) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*proofMarshal)(proof))
}

// UnmarshalBinary decodes the CBOR proof.
func (proof *Proof) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*proofMarshal)(proof))
}

// Bytes returns the deterministic encoding of the preprocessing
// transcript: the commitment digests of both parties, the masked
// corrections of both parties, the garbled table, and the permutation
// seed commitment.
func (pre *Preprocessing) Bytes() []byte {
	var buf bytes.Buffer

	for p := PA; p <= PB; p++ {
		writeUint32(&buf, len(pre.Digests[p]))
		for _, d := range pre.Digests[p] {
			buf.Write(d[:])
		}
	}
	for p := PA; p <= PB; p++ {
		writeUint32(&buf, len(pre.Masked[p]))
		for _, m := range pre.Masked[p] {
			writeChunk(&buf, m)
		}
	}
	writeUint32(&buf, len(pre.Garbled))
	for _, row := range pre.Garbled {
		writeChunk(&buf, row)
	}
	buf.Write(pre.PermCommitment[:])

	return buf.Bytes()
}

// bodyBytes returns the deterministic encoding of the proof without
// the vector commitment openings.
func (proof *Proof) bodyBytes() []byte {
	var buf bytes.Buffer

	buf.Write(proof.PermSeed[:])

	writeUint32(&buf, len(proof.Inputs))
	for _, in := range proof.Inputs {
		writeBit(&buf, in.Masked)
		buf.Write(in.Label.Bytes())
	}
	writeUint32(&buf, len(proof.ANDs))
	for _, and := range proof.ANDs {
		writeBit(&buf, and.Bit)
		buf.Write(and.MAC.Bytes())
		writeVMAC(&buf, and.VMAC)
	}
	writeUint32(&buf, len(proof.Checks))
	for _, check := range proof.Checks {
		writeBitReveals(&buf, check.D[:])
		writeBitReveals(&buf, check.E[:])
		writeBitReveals(&buf, check.Z[:])
	}
	writeUint32(&buf, len(proof.Leftovers))
	for _, triple := range proof.Leftovers {
		writeBitReveals(&buf, triple.A[:])
		writeBitReveals(&buf, triple.B[:])
		writeBitReveals(&buf, triple.C[:])
	}
	writeUint32(&buf, len(proof.Outputs))
	for _, out := range proof.Outputs {
		writeBitReveals(&buf, out[:])
	}

	return buf.Bytes()
}

func writeUint32(buf *bytes.Buffer, v int) {
	var scratch [4]byte
	bo.PutUint32(scratch[:], uint32(v))
	buf.Write(scratch[:])
}

// writeChunk writes a length-prefixed byte slice.
func writeChunk(w io.Writer, data []byte) {
	var scratch [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scratch[:], uint64(len(data)))
	w.Write(scratch[:n])
	w.Write(data)
}

func writeBit(buf *bytes.Buffer, bit bool) {
	if bit {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeVMAC(buf *bytes.Buffer, vmac []field.GF8) {
	data := make([]byte, len(vmac))
	for i, m := range vmac {
		data[i] = byte(m)
	}
	writeChunk(buf, data)
}

func writeBitReveals(buf *bytes.Buffer, reveals []BitReveal) {
	for _, r := range reveals {
		writeBit(buf, r.Bit)
		writeVMAC(buf, r.VMAC)
	}
}

// preHash computes the hash of the public parameters and the
// preprocessing transcript.
func preHash(params *Params, pre *Preprocessing) (hasher.Digest, error) {
	data, err := params.Bytes()
	if err != nil {
		return hasher.Digest{}, err
	}
	h := hasher.New(hasher.DomainTranscript)
	writeChunk(h, data)
	writeChunk(h, pre.Bytes())
	return h.Sum(), nil
}

// proofHash computes the transcript hash that seeds the vector
// commitment challenges.
func proofHash(pre hasher.Digest, proof *Proof) hasher.Digest {
	h := hasher.New(hasher.DomainTranscript)
	h.Write(pre[:])
	writeChunk(h, proof.bodyBytes())
	return h.Sum()
}

// challenges derives the VOLE challenges of the party.
func challenges(params *Params, full hasher.Digest, p Party,
	digests []hasher.Digest) []field.GF8 {

	aux := make([]byte, 0, len(full)+1)
	aux = append(aux, full[:]...)
	aux = append(aux, byte(p))

	return svole.Challenges(aux, digests, params.Tau)
}

// permCommitment commits to PB's permutation seed and binds it to
// PB's VOLE commitments.
func permCommitment(seed prg.Seed, digests []hasher.Digest) hasher.Digest {
	var buf bytes.Buffer
	for _, d := range digests {
		buf.Write(d[:])
	}
	return hasher.Commit(seed, buf.Bytes())
}
