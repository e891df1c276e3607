// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package backendtest contains the compliance suite every bundled backend
// is run against.
package backendtest

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/eclib/private/codec"
)

// Factory opens the backend under test for k data and m parity fragments.
type Factory func(t *testing.T, k, m int) codec.Codec

// Params is one (k, m) configuration and the number of arbitrary erasures
// the backend guarantees to survive with it.
type Params struct {
	K, M      int
	Tolerance int
}

// DataSizes are the input sizes every configuration is exercised with.
var DataSizes = []int{
	0, 1, 300, 1000, 4096, 25_000, 100_000, 1024 * 1024,
}

// RunCompliance checks encode, decode, reconstruct, fragments needed and
// metadata handling of the backend produced by f.
func RunCompliance(t *testing.T, params []Params, f Factory) {
	t.Helper()

	for _, p := range params {
		t.Run(fmt.Sprintf("k=%d m=%d", p.K, p.M), func(t *testing.T) {
			backend := f(t, p.K, p.M)

			for _, dataSize := range DataSizes {
				t.Run(fmt.Sprintf("data size = %d", dataSize), func(t *testing.T) {
					t.Parallel()

					// seed on the configuration so each case has different data.
					seed := [32]byte{}
					binary.LittleEndian.PutUint32(seed[0:], uint32(p.K))
					binary.LittleEndian.PutUint32(seed[8:], uint32(p.M))
					binary.LittleEndian.PutUint64(seed[16:], uint64(dataSize))
					chacha := rand.NewChaCha8(seed)

					data := make([]byte, dataSize)
					_, _ = chacha.Read(data)

					checkStripe(t, backend, p, data, rand.New(chacha))
				})
			}
		})
	}
}

func checkStripe(t *testing.T, backend codec.Codec, p Params, data []byte, rng *rand.Rand) {
	fragments, err := backend.Encode(data)
	require.NoError(t, err)
	require.Len(t, fragments, p.K+p.M)

	fragmentLen := len(fragments[0].Payload)
	for i, f := range fragments {
		require.Equal(t, i, f.Index)
		require.Len(t, f.Payload, fragmentLen)
	}

	info, err := backend.SegmentInfo(int64(len(data)), int64(len(data))+1)
	require.NoError(t, err)
	if len(data) > 0 {
		require.EqualValues(t, fragmentLen, info.FragmentSize)
	}

	t.Run("decode", func(t *testing.T) {
		out, err := backend.Decode(fragments, fragmentLen, nil, true)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, data, out[0])
	})

	t.Run("decode ranges", func(t *testing.T) {
		if len(data) == 0 {
			return
		}
		ranges := []codec.ByteRange{
			{Start: 0, End: 0},
			{Start: int64(len(data)) / 2, End: int64(len(data)) - 1},
		}
		out, err := backend.Decode(fragments, fragmentLen, ranges, false)
		require.NoError(t, err)
		require.Len(t, out, len(ranges))
		for i, r := range ranges {
			require.Equal(t, data[r.Start:r.End+1], out[i])
		}
	})

	lost := rng.Perm(p.K + p.M)[:p.Tolerance]
	missing := make(map[int]bool, len(lost))
	for _, idx := range lost {
		missing[idx] = true
	}
	var remaining []codec.Fragment
	for _, f := range fragments {
		if !missing[f.Index] {
			remaining = append(remaining, f)
		}
	}

	t.Run("decode with erasures", func(t *testing.T) {
		out, err := backend.Decode(remaining, fragmentLen, nil, false)
		require.NoError(t, err)
		require.Equal(t, data, out[0])
	})

	t.Run("reconstruct", func(t *testing.T) {
		available := append([]codec.Fragment(nil), remaining...)
		for idx := range p.K + p.M {
			if !missing[idx] {
				continue
			}
			rebuilt, err := backend.ReconstructOne(available, fragmentLen, idx)
			require.NoError(t, err, "index %d", idx)
			require.Equal(t, fragments[idx], rebuilt, "index %d", idx)
			available = append(available, rebuilt)
		}
	})

	t.Run("fragments needed", func(t *testing.T) {
		if len(lost) == 0 {
			return
		}
		target := lost[0]
		needed, err := backend.FragmentsNeeded([]int{target}, lost[1:])
		require.NoError(t, err)

		var subset []codec.Fragment
		for _, idx := range needed {
			require.False(t, missing[idx], "needs lost fragment %d", idx)
			subset = append(subset, fragments[idx])
		}
		rebuilt, err := backend.ReconstructOne(subset, fragmentLen, target)
		require.NoError(t, err)
		require.Equal(t, fragments[target], rebuilt)
	})

	t.Run("metadata", func(t *testing.T) {
		metadata := make([]codec.Metadata, len(fragments))
		for i, f := range fragments {
			metadata[i], err = backend.Metadata(f, false)
			require.NoError(t, err)
		}
		result, err := backend.CheckMetadata(metadata)
		require.NoError(t, err)
		require.True(t, result.OK, result.String())
	})
}
