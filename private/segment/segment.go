// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package segment implements the backend independent segmentation
// arithmetic: cutting an object into fixed size segments and mapping
// absolute byte ranges onto them.
package segment

import (
	"storj.io/eclib/private/codec"
)

// FragmentSizer returns the size of every fragment produced by encoding a
// segment of segmentLen bytes.
type FragmentSizer func(segmentLen int64) int64

// Info computes the segmentation of an object of dataLen bytes cut into
// segments of segmentSize bytes.
//
// An object that fits in a single segment is encoded whole, so the returned
// SegmentSize is dataLen in that case. For every valid input
// (NumSegments-1)*SegmentSize + LastSegmentSize == dataLen.
func Info(dataLen, segmentSize int64, fragmentSize FragmentSizer) (codec.SegmentInfo, error) {
	if segmentSize <= 0 {
		return codec.SegmentInfo{}, codec.ErrInvalidParameter.New("segment size must be > 0, not %d", segmentSize)
	}
	if dataLen < 0 {
		return codec.SegmentInfo{}, codec.ErrInvalidParameter.New("data length must be >= 0, not %d", dataLen)
	}

	numSegments := dataLen / segmentSize
	if dataLen%segmentSize != 0 {
		numSegments++
	}

	if numSegments == 1 {
		segmentSize = dataLen
	}
	lastSegmentSize := dataLen - (numSegments-1)*segmentSize

	info := codec.SegmentInfo{
		SegmentSize:     segmentSize,
		LastSegmentSize: lastSegmentSize,
		NumSegments:     numSegments,
	}
	if fragmentSize != nil {
		info.FragmentSize = fragmentSize(info.SegmentSize)
		info.LastFragmentSize = fragmentSize(info.LastSegmentSize)
	}
	return info, nil
}

// ByteRanges maps every range onto the segments of size segmentSize it
// touches. Ranges are independent of one another and the recipes are
// returned in input order.
func ByteRanges(ranges []codec.ByteRange, segmentSize int64) ([]codec.RangeRecipe, error) {
	if segmentSize <= 0 {
		return nil, codec.ErrInvalidParameter.New("segment size must be > 0, not %d", segmentSize)
	}

	recipes := make([]codec.RangeRecipe, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 || r.End < r.Start {
			return nil, codec.ErrInvalidParameter.New("invalid byte range %v", r)
		}

		beginSegment := r.Start / segmentSize
		endSegment := r.End / segmentSize
		beginOffset := r.Start % segmentSize
		endOffset := r.End % segmentSize

		recipe := codec.RangeRecipe{
			Range:    r,
			Segments: make([]codec.SegmentRange, 0, endSegment-beginSegment+1),
		}

		if beginSegment == endSegment {
			recipe.Segments = append(recipe.Segments, codec.SegmentRange{
				Segment: beginSegment,
				Start:   beginOffset,
				End:     endOffset,
			})
			recipes = append(recipes, recipe)
			continue
		}

		recipe.Segments = append(recipe.Segments, codec.SegmentRange{
			Segment: beginSegment,
			Start:   beginOffset,
			End:     segmentSize - 1,
		})
		for middle := beginSegment + 1; middle < endSegment; middle++ {
			recipe.Segments = append(recipe.Segments, codec.SegmentRange{
				Segment: middle,
				Start:   0,
				End:     segmentSize - 1,
			})
		}
		recipe.Segments = append(recipe.Segments, codec.SegmentRange{
			Segment: endSegment,
			Start:   0,
			End:     endOffset,
		})
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
