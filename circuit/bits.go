//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"math/big"
)

// Uint64ToBits returns the size least significant bits of v in
// little-endian order.
func Uint64ToBits(v uint64, size int) []bool {
	result := make([]bool, size)
	for i := 0; i < size && i < 64; i++ {
		result[i] = v&(1<<i) != 0
	}
	return result
}

// BitsToUint64 converts the little-endian bits into an integer. Bits
// above 64 are ignored.
func BitsToUint64(bits []bool) uint64 {
	var result uint64
	for i := 0; i < len(bits) && i < 64; i++ {
		if bits[i] {
			result |= 1 << i
		}
	}
	return result
}

// BigToBits returns the size least significant bits of v in
// little-endian order.
func BigToBits(v *big.Int, size int) []bool {
	result := make([]bool, size)
	for i := 0; i < size; i++ {
		result[i] = v.Bit(i) == 1
	}
	return result
}

// BitsToBig converts the little-endian bits into an integer.
func BitsToBig(bits []bool) *big.Int {
	result := new(big.Int)
	for i, bit := range bits {
		if bit {
			result.SetBit(result, i, 1)
		}
	}
	return result
}

// Split splits the bits into the values of the I/O arguments.
func (io IO) Split(bits []bool) []*big.Int {
	var result []*big.Int
	var offset int
	for _, arg := range io {
		end := offset + arg.Size
		if end > len(bits) {
			end = len(bits)
		}
		result = append(result, BitsToBig(bits[offset:end]))
		offset = end
	}
	return result
}
