// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/common/testcontext"
	"storj.io/common/testrand"
	"storj.io/eclib"
)

func TestVerifyStripeMetadata(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 4, M: 2, Type: "jerasure_rs_vand", Checksum: "inline_crc32"})
	require.NoError(t, err)

	stripe, err := driver.Encode(ctx, testrand.BytesInt(4000))
	require.NoError(t, err)

	metadata := make([]eclib.Metadata, len(stripe))
	for i, f := range stripe {
		metadata[i], err = driver.Metadata(ctx, f, false)
		require.NoError(t, err)
	}

	result, err := driver.VerifyStripeMetadata(ctx, metadata)
	require.NoError(t, err)
	require.True(t, result.OK)
	require.Equal(t, "ok", result.String())

	formatted, err := driver.Metadata(ctx, stripe[5], true)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(formatted), "index=5 "), string(formatted))

	t.Run("corrupted fragment", func(t *testing.T) {
		payload := append([]byte(nil), stripe[4].Payload...)
		payload[len(payload)/2] ^= 1

		bad, err := driver.Metadata(ctx, eclib.Fragment{Index: 4, Payload: payload}, false)
		require.NoError(t, err)

		list := append([]eclib.Metadata(nil), metadata...)
		list[4] = bad
		result, err := driver.VerifyStripeMetadata(ctx, list)
		require.NoError(t, err)
		require.False(t, result.OK)
		require.Equal(t, []int{4}, result.BadFragments)
		require.Contains(t, result.Reason, "checksum mismatch")
	})

	t.Run("foreign fragment", func(t *testing.T) {
		other, err := driver.Encode(ctx, testrand.BytesInt(100))
		require.NoError(t, err)
		foreign, err := driver.Metadata(ctx, other[1], false)
		require.NoError(t, err)

		list := append([]eclib.Metadata(nil), metadata...)
		list[1] = foreign
		result, err := driver.VerifyStripeMetadata(ctx, list)
		require.NoError(t, err)
		require.Equal(t, []int{1}, result.BadFragments)
	})

	t.Run("shape", func(t *testing.T) {
		_, err := driver.VerifyStripeMetadata(ctx, nil)
		require.True(t, eclib.ErrInvalidParameter.Has(err))

		_, err = driver.VerifyStripeMetadata(ctx, []eclib.Metadata{metadata[0], metadata[1][:8]})
		require.True(t, eclib.ErrInvalidFragmentMetadata.Has(err))

		_, err = driver.VerifyStripeMetadata(ctx, []eclib.Metadata{{}, {}})
		require.True(t, eclib.ErrInvalidFragmentMetadata.Has(err))

		_, err = driver.Metadata(ctx, eclib.Fragment{Index: 0}, false)
		require.True(t, eclib.ErrInvalidParameter.Has(err))

		_, err = driver.Metadata(ctx, eclib.Fragment{Index: 0, Payload: []byte("garbage")}, false)
		require.True(t, eclib.ErrInvalidFragmentMetadata.Has(err))
	})
}
