// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/eclib"
	"storj.io/eclib/private/codec"
)

func TestParseType(t *testing.T) {
	for _, typ := range eclib.AllTypes() {
		parsed, ok := eclib.ParseType(typ.String())
		require.True(t, ok, typ.String())
		require.Equal(t, typ, parsed)
	}

	parsed, ok := eclib.ParseType("flat_xor_hd")
	require.True(t, ok)
	require.Equal(t, eclib.FlatXorHD3, parsed)

	_, ok = eclib.ParseType("rs_vand_but_faster")
	require.False(t, ok)

	require.Len(t, eclib.AllTypes(), 11)
}

func TestValidTypes(t *testing.T) {
	valid := eclib.ValidTypes()
	for _, typ := range []eclib.EcType{
		eclib.JerasureRSVand,
		eclib.JerasureRSCauchy,
		eclib.LibErasureCodeRSVand,
		eclib.FlatXorHD3,
		eclib.FlatXorHD4,
		eclib.Null,
		eclib.Striping,
	} {
		require.Contains(t, valid, typ)
		require.True(t, eclib.Available(typ))
	}
	require.False(t, eclib.Available(eclib.SHSS))
	require.False(t, eclib.Available(eclib.LibPhazr))

	// the result is a copy.
	valid[0] = eclib.SHSS
	require.NotEqual(t, eclib.SHSS, eclib.ValidTypes()[0])
}

func TestRegisterBackend(t *testing.T) {
	require.Subset(t, eclib.Backends(), []string{"broken", "counting", "partial"})

	open := func(codec.Scheme) (codec.Backend, error) { return nil, nil }
	require.Panics(t, func() { eclib.RegisterBackend("counting", open) })
	require.Panics(t, func() { eclib.RegisterBackend("", open) })
	require.Panics(t, func() { eclib.RegisterBackend("nil opener", nil) })
}
