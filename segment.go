// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"context"

	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/segment"
)

// SegmentInfo returns how an object of dataLen bytes is cut into segments
// of segmentSize bytes and how large their fragments are.
func (d *Driver) SegmentInfo(ctx context.Context, dataLen, segmentSize int64) (_ SegmentInfo, err error) {
	defer mon.Task()(&ctx)(&err)

	if segmentSize <= 0 {
		return SegmentInfo{}, Error.Wrap(codec.ErrInvalidParameter.New("segment_size must be > 0, got %d", segmentSize))
	}
	if dataLen < 0 {
		return SegmentInfo{}, Error.Wrap(codec.ErrInvalidParameter.New("data_len must be >= 0, got %d", dataLen))
	}

	info, err := d.codec.SegmentInfo(dataLen, segmentSize)
	return info, Error.Wrap(err)
}

// SegmentInfoByteRange maps each absolute byte range of an object of
// dataLen bytes onto the segments that hold it. Recipes are returned in the
// order of ranges and every range is mapped on its own, so ranges may
// overlap or be unsorted.
func (d *Driver) SegmentInfoByteRange(ctx context.Context, ranges []ByteRange, dataLen, segmentSize int64) (_ []RangeRecipe, err error) {
	defer mon.Task()(&ctx)(&err)

	info, err := d.SegmentInfo(ctx, dataLen, segmentSize)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		if r.End >= dataLen {
			return nil, Error.Wrap(codec.ErrInvalidParameter.New("byte range %v is outside of %d bytes", r, dataLen))
		}
	}

	recipes, err := segment.ByteRanges(ranges, info.SegmentSize)
	return recipes, Error.Wrap(err)
}
