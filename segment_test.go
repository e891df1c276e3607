// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/common/memory"
	"storj.io/common/testcontext"
	"storj.io/eclib"
)

func TestSegmentInfo(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 4, M: 2, Type: "jerasure_rs_vand"})
	require.NoError(t, err)

	info, err := driver.SegmentInfo(ctx, 10*memory.MiB.Int64(), memory.MiB.Int64())
	require.NoError(t, err)
	require.Equal(t, eclib.SegmentInfo{
		SegmentSize:      memory.MiB.Int64(),
		LastSegmentSize:  memory.MiB.Int64(),
		NumSegments:      10,
		FragmentSize:     32 + memory.MiB.Int64()/4,
		LastFragmentSize: 32 + memory.MiB.Int64()/4,
	}, info)

	// a single segment is encoded whole.
	info, err = driver.SegmentInfo(ctx, 1000, memory.MiB.Int64())
	require.NoError(t, err)
	require.EqualValues(t, 1000, info.SegmentSize)
	require.EqualValues(t, 1, info.NumSegments)

	stripe, err := driver.Encode(ctx, make([]byte, 1000))
	require.NoError(t, err)
	require.EqualValues(t, info.FragmentSize, len(stripe[0].Payload))

	_, err = driver.SegmentInfo(ctx, 1000, 0)
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	_, err = driver.SegmentInfo(ctx, -1, 1000)
	require.True(t, eclib.ErrInvalidParameter.Has(err))
}

func TestSegmentInfoByteRange(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 6, M: 4, Type: "flat_xor_hd_3"})
	require.NoError(t, err)

	const segmentSize = 3 * 1024
	dataLen := memory.MB.Int64()

	ranges := []eclib.ByteRange{
		{Start: 0, End: 1},
		{Start: 1, End: 12},
		{Start: 10, End: 1000},
		{Start: 0, End: segmentSize - 1},
		{Start: 1, End: segmentSize + 1},
		{Start: segmentSize - 1, End: 2 * segmentSize},
	}
	recipes, err := driver.SegmentInfoByteRange(ctx, ranges, dataLen, segmentSize)
	require.NoError(t, err)
	require.Len(t, recipes, len(ranges))

	require.Equal(t, []eclib.SegmentRange{{Segment: 0, Start: 10, End: 1000}}, recipes[2].Segments)
	require.Equal(t, []eclib.SegmentRange{
		{Segment: 0, Start: 3071, End: 3071},
		{Segment: 1, Start: 0, End: 3071},
		{Segment: 2, Start: 0, End: 0},
	}, recipes[5].Segments)

	// the effective segment size of a single segment object is its length.
	recipes, err = driver.SegmentInfoByteRange(ctx, []eclib.ByteRange{{Start: 100, End: 1999}}, 2000, segmentSize)
	require.NoError(t, err)
	require.Equal(t, []eclib.SegmentRange{{Segment: 0, Start: 100, End: 1999}}, recipes[0].Segments)

	_, err = driver.SegmentInfoByteRange(ctx, []eclib.ByteRange{{Start: 0, End: dataLen}}, dataLen, segmentSize)
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	_, err = driver.SegmentInfoByteRange(ctx, []eclib.ByteRange{{Start: 10, End: 5}}, dataLen, segmentSize)
	require.True(t, eclib.ErrInvalidParameter.Has(err))
}
