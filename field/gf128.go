//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"encoding/binary"
	"fmt"
	"io"
)

// GF128 implements a 128-bit element of GF(2^128). It is used for
// global deltas, pairwise MACs and keys, and garbling labels.
type GF128 struct {
	D0 uint64
	D1 uint64
}

// RandomGF128 creates a random GF128 element.
func RandomGF128(rand io.Reader) (GF128, error) {
	var buf [16]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return GF128{}, err
	}
	return GF128FromBytes(buf[:])
}

// GF128FromBytes decodes a GF128 element from its 16 byte big-endian
// encoding.
func GF128FromBytes(data []byte) (GF128, error) {
	if len(data) != 16 {
		return GF128{}, fmt.Errorf("field: invalid GF128 encoding length %d",
			len(data))
	}
	return GF128{
		D0: binary.BigEndian.Uint64(data[0:8]),
		D1: binary.BigEndian.Uint64(data[8:16]),
	}, nil
}

func (e GF128) String() string {
	return fmt.Sprintf("%016x%016x", e.D0, e.D1)
}

// Add implements Element.Add.
func (e GF128) Add(o GF128) GF128 {
	return GF128{
		D0: e.D0 ^ o.D0,
		D1: e.D1 ^ o.D1,
	}
}

// MulBit implements Element.MulBit.
func (e GF128) MulBit(b bool) GF128 {
	if b {
		return e
	}
	return GF128{}
}

// IsZero implements Element.IsZero.
func (e GF128) IsZero() bool {
	return e.D0 == 0 && e.D1 == 0
}

// Bytes implements Element.Bytes.
func (e GF128) Bytes() []byte {
	var buf [16]byte
	return e.AppendBytes(buf[:0])
}

// AppendBytes appends the element encoding to buf.
func (e GF128) AppendBytes(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint64(buf, e.D0)
	return binary.BigEndian.AppendUint64(buf, e.D1)
}
