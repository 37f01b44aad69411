//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"fmt"
	"io"
)

// GF8 implements an element of GF(2^8). The element doubles as a leaf
// index of the GGM tree through Index.
type GF8 uint8

// RandomGF8 creates a random GF8 element.
func RandomGF8(rand io.Reader) (GF8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return 0, err
	}
	return GF8(buf[0]), nil
}

// GF8FromBytes decodes a GF8 element from its encoding.
func GF8FromBytes(data []byte) (GF8, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("field: invalid GF8 encoding length %d",
			len(data))
	}
	return GF8(data[0]), nil
}

// Add implements Element.Add.
func (e GF8) Add(o GF8) GF8 {
	return e ^ o
}

// MulBit implements Element.MulBit.
func (e GF8) MulBit(b bool) GF8 {
	if b {
		return e
	}
	return 0
}

// IsZero implements Element.IsZero.
func (e GF8) IsZero() bool {
	return e == 0
}

// Bytes implements Element.Bytes.
func (e GF8) Bytes() []byte {
	return []byte{byte(e)}
}

// Index maps the element to the leaf index it names. The mapping is
// the identity; challenges for trees shallower than 8 levels are
// masked to tau bits when derived so the index is always in range.
func (e GF8) Index() int {
	return int(e)
}

func (e GF8) String() string {
	return fmt.Sprintf("%02x", uint8(e))
}
