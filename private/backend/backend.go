// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package backend maps codec families to the bundled backends.
package backend

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/klauspost/reedsolomon"

	"storj.io/eclib/private/backend/bwrs"
	"storj.io/eclib/private/backend/flatxor"
	"storj.io/eclib/private/backend/null"
	"storj.io/eclib/private/backend/rs"
	"storj.io/eclib/private/backend/striping"
	"storj.io/eclib/private/codec"
)

type family struct {
	open func(name string, scheme codec.Scheme) (codec.Backend, error)
	// hd is the fixed Hamming distance of the family, zero when it follows m.
	hd int
	// simd marks families that are only offered on hosts with vector
	// instructions.
	simd bool
	// probeM is the parity count used by Probe.
	probeM int
}

const probeK = 10

var families = map[codec.EcType]family{
	codec.JerasureRSVand: {
		open:   rsOpener(reedsolomon.WithJerasureMatrix()),
		probeM: 4,
	},
	codec.JerasureRSCauchy: {
		open:   rsOpener(reedsolomon.WithCauchyMatrix()),
		probeM: 4,
	},
	codec.ISALRSVand: {
		open:   rsOpener(),
		simd:   true,
		probeM: 4,
	},
	codec.ISALRSCauchy: {
		open:   rsOpener(reedsolomon.WithCauchyMatrix()),
		simd:   true,
		probeM: 4,
	},
	codec.LibErasureCodeRSVand: {
		open: func(name string, scheme codec.Scheme) (codec.Backend, error) {
			return bwrs.Open(name, scheme)
		},
		probeM: 4,
	},
	codec.FlatXorHD3: {
		open:   flatXorOpener,
		hd:     3,
		probeM: 5,
	},
	codec.FlatXorHD4: {
		open:   flatXorOpener,
		hd:     4,
		probeM: 5,
	},
	codec.Null: {
		open: func(name string, scheme codec.Scheme) (codec.Backend, error) {
			return null.Open(name, scheme)
		},
		probeM: 4,
	},
	codec.Striping: {
		open: func(name string, scheme codec.Scheme) (codec.Backend, error) {
			return striping.Open(name, scheme)
		},
		probeM: 0,
	},
	codec.SHSS: {
		open: unavailable("shss requires the proprietary NTT library"),
	},
	codec.LibPhazr: {
		open: unavailable("libphazr requires the proprietary Phazr.IO library"),
		hd:   1,
	},
}

func rsOpener(opts ...reedsolomon.Option) func(string, codec.Scheme) (codec.Backend, error) {
	return func(name string, scheme codec.Scheme) (codec.Backend, error) {
		return rs.Open(name, scheme, opts...)
	}
}

func flatXorOpener(name string, scheme codec.Scheme) (codec.Backend, error) {
	return flatxor.Open(name, scheme)
}

func unavailable(reason string) func(string, codec.Scheme) (codec.Backend, error) {
	return func(name string, scheme codec.Scheme) (codec.Backend, error) {
		return nil, codec.ErrBackendInitialization.New("%s: %s", name, reason)
	}
}

// FixedHD returns the Hamming distance forced by family t, if any.
func FixedHD(t codec.EcType) (int, bool) {
	f, ok := families[t]
	if !ok || f.hd == 0 {
		return 0, false
	}
	return f.hd, true
}

// HasSIMD reports whether the host has the vector instructions the
// accelerated families are offered on.
func HasSIMD() bool {
	return cpuid.CPU.Supports(cpuid.SSSE3) || cpuid.CPU.Supports(cpuid.ASIMD)
}

// Open opens the bundled backend for scheme.Type.
func Open(scheme codec.Scheme) (codec.Backend, error) {
	f, ok := families[scheme.Type]
	if !ok {
		return nil, codec.ErrBackendNotSupported.New("%v", scheme.Type)
	}
	if f.simd && !HasSIMD() {
		return nil, codec.ErrBackendInitialization.New("%v: host CPU lacks SIMD support", scheme.Type)
	}
	return f.open(scheme.Type.String(), scheme)
}

// Probe reports whether family t can be opened on this host.
func Probe(t codec.EcType) bool {
	f, ok := families[t]
	if !ok {
		return false
	}

	scheme := codec.Scheme{K: probeK, M: f.probeM, HD: f.probeM, Type: t}
	if f.hd != 0 {
		scheme.HD = f.hd
	}
	_, err := Open(scheme)
	return err == nil
}
