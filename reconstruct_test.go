// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/common/testcontext"
	"storj.io/common/testrand"
	"storj.io/eclib"
)

func without(stripe eclib.Stripe, lost ...int) []eclib.Fragment {
	drop := make(map[int]bool, len(lost))
	for _, idx := range lost {
		drop[idx] = true
	}
	var out []eclib.Fragment
	for _, f := range stripe {
		if !drop[f.Index] {
			out = append(out, f)
		}
	}
	return out
}

func TestReconstructOrder(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 6, M: 4, Backend: "counting"})
	require.NoError(t, err)
	counter := latestCounting()

	stripe, err := driver.Encode(ctx, testrand.BytesInt(3000))
	require.NoError(t, err)

	available := without(stripe, 1, 4, 7)
	rebuilt, err := driver.Reconstruct(ctx, available, []int{7, 1, 4})
	require.NoError(t, err)
	require.Len(t, rebuilt, 3)

	// ascending order, each rebuilt fragment handed to the next step.
	require.Equal(t, []int{1, 4, 7}, counter.order)
	require.Equal(t, []int{7, 8, 9}, counter.seen)
	for i, idx := range []int{1, 4, 7} {
		require.Equal(t, stripe[idx], rebuilt[i])
	}

	// the caller's slice is left alone.
	require.Len(t, available, 7)
}

func TestReconstructDataAndParity(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 6, M: 4, Type: "flat_xor_hd_3"})
	require.NoError(t, err)

	stripe, err := driver.Encode(ctx, testrand.BytesInt(10_000))
	require.NoError(t, err)

	// every {data, parity} pair, which hd 3 guarantees to survive.
	for data := range 6 {
		for parity := 6; parity < 10; parity++ {
			rebuilt, err := driver.Reconstruct(ctx, without(stripe, data, parity), []int{parity, data})
			require.NoError(t, err, "data %d parity %d", data, parity)
			require.Equal(t, []eclib.Fragment{stripe[data], stripe[parity]}, rebuilt)
		}
	}
}

func TestReconstructAborts(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 4, M: 2, Type: "jerasure_rs_vand"})
	require.NoError(t, err)

	stripe, err := driver.Encode(ctx, testrand.BytesInt(1000))
	require.NoError(t, err)

	rebuilt, err := driver.Reconstruct(ctx, without(stripe, 0, 1, 2), []int{0, 1, 2})
	require.True(t, eclib.ErrInsufficientFragments.Has(err))
	require.Contains(t, err.Error(), "fragment 0")
	require.Nil(t, rebuilt)
}

func TestReconstructInvalid(t *testing.T) {
	ctx := testcontext.New(t)

	driver, err := eclib.NewDriver(ctx, eclib.Config{K: 4, M: 2, Type: "jerasure_rs_cauchy"})
	require.NoError(t, err)

	stripe, err := driver.Encode(ctx, testrand.BytesInt(1000))
	require.NoError(t, err)
	available := without(stripe, 1)

	_, err = driver.Reconstruct(ctx, available, []int{6})
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	_, err = driver.Reconstruct(ctx, available, []int{1, 1})
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	_, err = driver.Reconstruct(ctx, nil, []int{1})
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	mixed := append([]eclib.Fragment(nil), available...)
	mixed[0] = eclib.Fragment{Index: mixed[0].Index, Payload: mixed[0].Payload[1:]}
	_, err = driver.Reconstruct(ctx, mixed, []int{1})
	require.True(t, eclib.ErrInvalidParameter.Has(err))

	rebuilt, err := driver.Reconstruct(ctx, available, nil)
	require.NoError(t, err)
	require.Empty(t, rebuilt)
}
