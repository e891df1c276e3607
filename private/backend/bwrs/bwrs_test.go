// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package bwrs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/common/testrand"
	"storj.io/eclib/private/backend/bwrs"
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
)

func TestCorrectsCorruption(t *testing.T) {
	scheme := codec.Scheme{K: 4, M: 4, HD: 4, Type: codec.LibErasureCodeRSVand}
	backend, err := bwrs.Open("test", scheme)
	require.NoError(t, err)

	data := testrand.BytesInt(10_000)
	fragments, err := backend.Encode(data)
	require.NoError(t, err)
	fragmentLen := len(fragments[0].Payload)

	// without a checksum the corruption is only visible to the decoder.
	corrupted := append([]byte(nil), fragments[1].Payload...)
	corrupted[fragment.HeaderSize+7] ^= 0x55
	fragments[1].Payload = corrupted

	out, err := backend.Decode(fragments, fragmentLen, nil, false)
	require.NoError(t, err)
	require.Equal(t, data, out[0])

	// the decoder must not repair the caller's payload in place.
	require.Equal(t, byte(0x55), corrupted[fragment.HeaderSize+7]^data[fragment.BlockSize(int64(len(data)), scheme.K)+7])
}

func TestNotEnoughShares(t *testing.T) {
	scheme := codec.Scheme{K: 4, M: 2, HD: 2, Type: codec.LibErasureCodeRSVand}
	backend, err := bwrs.Open("test", scheme)
	require.NoError(t, err)

	fragments, err := backend.Encode(testrand.BytesInt(100))
	require.NoError(t, err)
	fragmentLen := len(fragments[0].Payload)

	_, err = backend.Decode(fragments[:3], fragmentLen, nil, false)
	require.True(t, codec.ErrInsufficientFragments.Has(err))

	_, err = backend.ReconstructOne(fragments[2:5], fragmentLen, 0)
	require.True(t, codec.ErrInsufficientFragments.Has(err))
}

func TestOpenInvalid(t *testing.T) {
	_, err := bwrs.Open("test", codec.Scheme{K: 200, M: 100})
	require.True(t, codec.ErrBackendInitialization.Has(err))
}
