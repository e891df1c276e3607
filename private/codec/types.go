// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package codec

import (
	"fmt"
)

// Fragment is one member of a stripe. The payload is backend defined and
// carries whatever the backend needs to describe itself.
type Fragment struct {
	Index   int
	Payload []byte
}

// Metadata is an opaque, backend-defined description of one fragment.
type Metadata []byte

// VerifyResult is the verdict on a set of fragment metadata.
type VerifyResult struct {
	OK           bool
	BadFragments []int
	Reason       string
}

// String implements fmt.Stringer.
func (r VerifyResult) String() string {
	if r.OK {
		return "ok"
	}
	return fmt.Sprintf("bad fragments %v: %s", r.BadFragments, r.Reason)
}

// SegmentInfo describes how an object is cut into segments and how large the
// fragments of each segment will be.
type SegmentInfo struct {
	SegmentSize      int64
	LastSegmentSize  int64
	FragmentSize     int64
	LastFragmentSize int64
	NumSegments      int64
}

// ByteRange is an inclusive range of absolute byte offsets.
type ByteRange struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the range.
func (r ByteRange) Len() int64 { return r.End - r.Start + 1 }

// String implements fmt.Stringer.
func (r ByteRange) String() string { return fmt.Sprintf("(%d, %d)", r.Start, r.End) }

// SegmentRange is an inclusive range of offsets relative to the start of
// segment Segment.
type SegmentRange struct {
	Segment int64
	Start   int64
	End     int64
}

// RangeRecipe lists the segments and the ranges within them needed to
// satisfy Range.
type RangeRecipe struct {
	Range    ByteRange
	Segments []SegmentRange
}

// Lookup returns the relative range for segment, if the recipe touches it.
func (r RangeRecipe) Lookup(segment int64) (SegmentRange, bool) {
	for _, s := range r.Segments {
		if s.Segment == segment {
			return s, true
		}
	}
	return SegmentRange{}, false
}
