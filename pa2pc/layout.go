//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pa2pc

import (
	"fmt"
)

// Segment identifies a named part of the VOLE vectors.
type Segment int

// VOLE vector segments in their layout order.
const (
	SegInputMask Segment = iota
	SegANDOutputMask
	SegANDPrime
	SegTripleA
	SegTripleB
	SegTripleC
	NumSegments
)

var segmentNames = map[Segment]string{
	SegInputMask:     "input-mask",
	SegANDOutputMask: "and-output-mask",
	SegANDPrime:      "and-prime",
	SegTripleA:       "triple-a",
	SegTripleB:       "triple-b",
	SegTripleC:       "triple-c",
}

func (seg Segment) String() string {
	name, ok := segmentNames[seg]
	if ok {
		return name
	}
	return fmt.Sprintf("{Segment %d}", int(seg))
}

// Layout defines the sizes of the VOLE vector segments.
type Layout struct {
	Sizes [NumSegments]int
}

// NewLayout creates the layout for a circuit with numInputs input
// wires and numAND AND gates, and for bigL multiplication triples.
func NewLayout(numInputs, numAND, bigL int) Layout {
	return Layout{
		Sizes: [NumSegments]int{
			SegInputMask:     numInputs,
			SegANDOutputMask: numAND,
			SegANDPrime:      numAND,
			SegTripleA:       bigL,
			SegTripleB:       bigL,
			SegTripleC:       bigL,
		},
	}
}

// Size returns the total length of the layout.
func (l Layout) Size() int {
	var sum int
	for _, size := range l.Sizes {
		sum += size
	}
	return sum
}

// Offset returns the start index of the segment.
func (l Layout) Offset(seg Segment) int {
	var offset int
	for s := Segment(0); s < seg; s++ {
		offset += l.Sizes[s]
	}
	return offset
}

// Index returns the vector index of the element i of the
// segment. This is the only mapping between segment elements and VOLE
// vector positions.
func (l Layout) Index(seg Segment, i int) int {
	if i < 0 || i >= l.Sizes[seg] {
		panic(fmt.Sprintf("%s index %d out of range [0,%d)",
			seg, i, l.Sizes[seg]))
	}
	return l.Offset(seg) + i
}

// Segments holds a vector split into its segments.
type Segments[T any] [NumSegments][]T

// Distribute splits the vector into the layout's segments in layout
// order. The vector must be consumed exactly.
func Distribute[T any](l Layout, vec []T) (Segments[T], error) {
	var result Segments[T]
	if len(vec) != l.Size() {
		return result, fmt.Errorf("%w: distribute %d elements, layout has %d",
			ErrConfig, len(vec), l.Size())
	}
	for seg := Segment(0); seg < NumSegments; seg++ {
		size := l.Sizes[seg]
		result[seg] = vec[:size:size]
		vec = vec[size:]
	}
	return result, nil
}
