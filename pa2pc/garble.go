//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"

	"github.com/markkurossi/pa2pc/field"
	"github.com/markkurossi/pa2pc/hasher"
)

// garbledRow is the plaintext of one garbled AND gate row. It holds
// PA's share of the masked output bit Gamma, its pairwise and VOLE
// MACs, and PA's output label material.
type garbledRow struct {
	Bit   bool
	MAC   field.GF128
	VMAC  []field.GF8
	Label field.GF128
}

// rowSize returns the byte size of a garbled row.
func rowSize(kappa int) int {
	return 1 + 16 + kappa + 16
}

// rowIndex returns the garbled table index of the row sel of the AND
// gate and.
func rowIndex(and, sel int) int {
	return 4*and + sel
}

// selector returns the row selector for the masked input values.
func selector(k0, k1 bool) int {
	var sel int
	if k0 {
		sel |= 0x2
	}
	if k1 {
		sel |= 0x1
	}
	return sel
}

func (row garbledRow) encrypt(a, b field.GF128, gate uint32, sel int) []byte {
	data := make([]byte, 0, rowSize(len(row.VMAC)))
	if row.Bit {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	data = row.MAC.AppendBytes(data)
	for _, m := range row.VMAC {
		data = append(data, byte(m))
	}
	data = row.Label.AppendBytes(data)

	pad := hasher.RowPad(a, b, gate, sel, len(data))
	for i := range data {
		data[i] ^= pad[i]
	}
	return data
}

func decryptRow(data []byte, a, b field.GF128, gate uint32, sel,
	kappa int) (garbledRow, error) {

	var row garbledRow
	if len(data) != rowSize(kappa) {
		return row, fmt.Errorf("%w: gate %d: row length %d, expected %d",
			ErrGarbledRow, gate, len(data), rowSize(kappa))
	}
	pad := hasher.RowPad(a, b, gate, sel, len(data))
	plain := make([]byte, len(data))
	for i := range data {
		plain[i] = data[i] ^ pad[i]
	}
	switch plain[0] {
	case 0:
	case 1:
		row.Bit = true
	default:
		return row, fmt.Errorf("%w: gate %d: invalid bit %d",
			ErrGarbledRow, gate, plain[0])
	}
	var err error
	row.MAC, err = field.GF128FromBytes(plain[1:17])
	if err != nil {
		return row, err
	}
	row.VMAC = make([]field.GF8, kappa)
	for r := range row.VMAC {
		row.VMAC[r] = field.GF8(plain[17+r])
	}
	row.Label, err = field.GF128FromBytes(plain[17+kappa:])
	if err != nil {
		return row, err
	}
	return row, nil
}

// gamma computes party's share of the masked output bit Gamma for the
// row selector (k0, k1):
//
//	Gamma = prime + out + k0*lambdaR + k1*lambdaL
func gamma(prime, out, lambdaL, lambdaR AuthBit, k0, k1 bool) AuthBit {
	return prime.Xor(out).Xor(lambdaR.MulBit(k0)).Xor(lambdaL.MulBit(k1))
}
