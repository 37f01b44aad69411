//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"
	"io"

	"github.com/markkurossi/pa2pc/field"
)

// Dealer implements the preprocessing functionality producing
// authenticated random bits and AND tuples for both parties.
type Dealer interface {
	// GenerateDelta creates a random global difference.
	GenerateDelta() (field.GF128, error)

	// GenerateRandomTuples creates n random authenticated bits.
	GenerateRandomTuples(d Deltas, n int) (Tuples, error)

	// GenerateRandomANDTuples creates authenticated bits z with
	// z = x * y for the shared values of the argument tuples.
	GenerateRandomANDTuples(d Deltas, x, y Tuples) (Tuples, error)
}

// InsecureDealer implements the Dealer in the clear from a random
// source. Both parties' secrets pass through the same process so it is
// suitable only for the simulated prover.
type InsecureDealer struct {
	rand io.Reader
}

// NewInsecureDealer creates a new dealer reading randomness from
// rand.
func NewInsecureDealer(rand io.Reader) *InsecureDealer {
	return &InsecureDealer{
		rand: rand,
	}
}

// GenerateDelta implements Dealer.GenerateDelta.
func (dealer *InsecureDealer) GenerateDelta() (field.GF128, error) {
	return field.RandomGF128(dealer.rand)
}

func (dealer *InsecureDealer) randomBits(n int) ([]bool, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(dealer.rand, buf); err != nil {
		return nil, err
	}
	result := make([]bool, n)
	for i := range result {
		result[i] = buf[i/8]&(1<<(i%8)) != 0
	}
	return result, nil
}

// authenticate creates the shares a and b with the pairwise MACs.
func (dealer *InsecureDealer) authenticate(d Deltas, a, b bool) (
	AuthBit, AuthBit, error) {

	keyA, err := field.RandomGF128(dealer.rand)
	if err != nil {
		return AuthBit{}, AuthBit{}, err
	}
	keyB, err := field.RandomGF128(dealer.rand)
	if err != nil {
		return AuthBit{}, AuthBit{}, err
	}
	return AuthBit{
			Bit: a,
			MAC: keyB.Add(d[PB].MulBit(a)),
			Key: keyA,
		}, AuthBit{
			Bit: b,
			MAC: keyA.Add(d[PA].MulBit(b)),
			Key: keyB,
		}, nil
}

// GenerateRandomTuples implements Dealer.GenerateRandomTuples.
func (dealer *InsecureDealer) GenerateRandomTuples(d Deltas, n int) (
	Tuples, error) {

	bitsA, err := dealer.randomBits(n)
	if err != nil {
		return Tuples{}, err
	}
	bitsB, err := dealer.randomBits(n)
	if err != nil {
		return Tuples{}, err
	}
	result := Tuples{
		A: make([]AuthBit, n),
		B: make([]AuthBit, n),
	}
	for i := 0; i < n; i++ {
		result.A[i], result.B[i], err = dealer.authenticate(d,
			bitsA[i], bitsB[i])
		if err != nil {
			return Tuples{}, err
		}
	}
	return result, nil
}

// GenerateRandomANDTuples implements Dealer.GenerateRandomANDTuples.
func (dealer *InsecureDealer) GenerateRandomANDTuples(d Deltas,
	x, y Tuples) (Tuples, error) {

	n := x.Len()
	if y.Len() != n || len(x.B) != n || len(y.B) != n {
		return Tuples{}, fmt.Errorf("%w: AND tuples: x=%d, y=%d",
			ErrConfig, x.Len(), y.Len())
	}
	bitsA, err := dealer.randomBits(n)
	if err != nil {
		return Tuples{}, err
	}
	result := Tuples{
		A: make([]AuthBit, n),
		B: make([]AuthBit, n),
	}
	for i := 0; i < n; i++ {
		z := x.Value(i) && y.Value(i)
		result.A[i], result.B[i], err = dealer.authenticate(d,
			bitsA[i], bitsA[i] != z)
		if err != nil {
			return Tuples{}, err
		}
	}
	return result, nil
}
