// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package fragment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/common/testrand"
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
)

const backendID = 7

var scheme = codec.Scheme{K: 3, M: 2, HD: 2, Checksum: codec.ChecksumInlineCRC32}

func buildStripe(t *testing.T, data []byte) []codec.Fragment {
	t.Helper()

	blocks := fragment.Split(data, scheme.K, scheme.Total())
	fragments := make([]codec.Fragment, len(blocks))
	for i, block := range blocks {
		fragments[i] = codec.Fragment{
			Index: i,
			Payload: fragment.Build(fragment.Header{
				Index:        i,
				OrigDataSize: int64(len(data)),
				ChecksumType: scheme.Checksum,
				BackendID:    backendID,
			}, block),
		}
	}
	return fragments
}

func TestHeaderRoundTrip(t *testing.T) {
	block := testrand.BytesInt(100)
	payload := fragment.Build(fragment.Header{
		Index:        4,
		OrigDataSize: 290,
		ChecksumType: codec.ChecksumInlineCRC32,
		BackendID:    backendID,
	}, block)
	require.Len(t, payload, fragment.HeaderSize+len(block))

	h, got, err := fragment.Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, block, got)
	assert.Equal(t, 4, h.Index)
	assert.Equal(t, 100, h.Size)
	assert.Equal(t, int64(290), h.OrigDataSize)
	assert.Equal(t, fragment.Version, h.Version)
	assert.True(t, h.ChecksumOK(got))

	got[0] ^= 0xff
	assert.False(t, h.ChecksumOK(got))
}

func TestParseInvalid(t *testing.T) {
	_, _, err := fragment.Parse(make([]byte, fragment.HeaderSize-1))
	require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))

	_, _, err = fragment.Parse(make([]byte, fragment.HeaderSize+4))
	require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))

	payload := fragment.Build(fragment.Header{Index: 1}, []byte{1, 2, 3})
	_, _, err = fragment.Parse(payload[:len(payload)-1])
	require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))
}

func TestSplitJoin(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 100, 1000, 1001} {
		data := testrand.BytesInt(size)
		blocks := fragment.Split(data, scheme.K, scheme.Total())
		require.Len(t, blocks, scheme.Total())
		for _, block := range blocks {
			require.Len(t, block, fragment.BlockSize(int64(size), scheme.K))
		}
		require.Equal(t, data, fragment.Join(blocks[:scheme.K], int64(size)))
	}
}

func TestGather(t *testing.T) {
	data := testrand.BytesInt(1000)
	fragments := buildStripe(t, data)

	stripe, err := fragment.Gather(scheme, backendID, []codec.Fragment{fragments[4], fragments[0], fragments[2], fragments[0]}, true)
	require.NoError(t, err)
	require.Equal(t, 3, stripe.Present)
	require.Equal(t, int64(1000), stripe.OrigDataSize)
	require.Nil(t, stripe.Blocks[1])
	require.NotNil(t, stripe.Blocks[4])
	require.True(t, stripe.DataMissing(scheme.K))

	t.Run("index mismatch", func(t *testing.T) {
		moved := fragments[1]
		moved.Index = 3
		_, err := fragment.Gather(scheme, backendID, []codec.Fragment{fragments[0], moved}, false)
		require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))
	})

	t.Run("other backend", func(t *testing.T) {
		_, err := fragment.Gather(scheme, backendID+1, fragments, false)
		require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))
	})

	t.Run("other stripe", func(t *testing.T) {
		other := buildStripe(t, testrand.BytesInt(999))
		_, err := fragment.Gather(scheme, backendID, []codec.Fragment{fragments[0], other[1]}, false)
		require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))
	})

	t.Run("checksum", func(t *testing.T) {
		corrupted := append([]byte(nil), fragments[2].Payload...)
		corrupted[fragment.HeaderSize] ^= 1
		list := []codec.Fragment{fragments[0], {Index: 2, Payload: corrupted}, fragments[3]}

		_, err := fragment.Gather(scheme, backendID, list, false)
		require.NoError(t, err)

		_, err = fragment.Gather(scheme, backendID, list, true)
		require.True(t, codec.ErrBadFragmentChecksum.Has(err))
		require.Contains(t, err.Error(), "[2]")
	})
}

func TestNeededMDS(t *testing.T) {
	needed, err := fragment.NeededMDS(scheme, []int{1}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3}, needed)

	needed, err = fragment.NeededMDS(scheme, []int{4}, []int{0})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, needed)

	_, err = fragment.NeededMDS(scheme, []int{0}, []int{1, 3})
	require.True(t, codec.ErrInsufficientFragments.Has(err))

	_, err = fragment.NeededMDS(scheme, []int{5}, nil)
	require.True(t, codec.ErrInvalidParameter.Has(err))
}

func TestMetadata(t *testing.T) {
	data := testrand.BytesInt(300)
	fragments := buildStripe(t, data)

	metadata := make([]codec.Metadata, len(fragments))
	for i, f := range fragments {
		var err error
		metadata[i], err = fragment.Metadata(f, false)
		require.NoError(t, err)
		require.Len(t, metadata[i], fragment.MetadataSize)

		info, err := fragment.ParseMetadata(metadata[i])
		require.NoError(t, err)
		require.Equal(t, i, info.Index)
		require.False(t, info.ChecksumMismatch)
	}

	result, err := fragment.CheckStripe(scheme, backendID, metadata)
	require.NoError(t, err)
	require.True(t, result.OK)

	formatted, err := fragment.Metadata(fragments[1], true)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(formatted), "index=1 "))

	t.Run("checksum mismatch", func(t *testing.T) {
		corrupted := append([]byte(nil), fragments[3].Payload...)
		corrupted[len(corrupted)-1] ^= 1
		blob, err := fragment.Metadata(codec.Fragment{Index: 3, Payload: corrupted}, false)
		require.NoError(t, err)

		list := append([]codec.Metadata(nil), metadata...)
		list[3] = blob
		result, err := fragment.CheckStripe(scheme, backendID, list)
		require.NoError(t, err)
		require.False(t, result.OK)
		require.Equal(t, []int{3}, result.BadFragments)
		require.Contains(t, result.Reason, "checksum")
	})

	t.Run("foreign stripe", func(t *testing.T) {
		other := buildStripe(t, testrand.BytesInt(600))
		blob, err := fragment.Metadata(other[4], false)
		require.NoError(t, err)

		list := append([]codec.Metadata(nil), metadata[:4]...)
		list = append(list, blob)
		result, err := fragment.CheckStripe(scheme, backendID, list)
		require.NoError(t, err)
		require.Equal(t, []int{4}, result.BadFragments)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := fragment.CheckStripe(scheme, backendID, []codec.Metadata{metadata[0], formatted})
		require.True(t, codec.ErrInvalidFragmentMetadata.Has(err))
	})
}
