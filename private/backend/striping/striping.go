// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package striping implements the family that only splits data into k
// fragments without any parity.
package striping

import (
	"storj.io/eclib/private/backend/blockcodec"
	"storj.io/eclib/private/codec"
)

// Open returns a striping backend. scheme.M must be zero.
func Open(name string, scheme codec.Scheme) (*blockcodec.Backend, error) {
	if scheme.M != 0 {
		return nil, codec.ErrBackendInitialization.New("%s: m must be 0, got %d", name, scheme.M)
	}
	return blockcodec.New(name, scheme, stripes{}), nil
}

type stripes struct{}

func (stripes) Encode(blocks [][]byte) error { return nil }

func (stripes) ReconstructData(blocks [][]byte) error {
	for i, block := range blocks {
		if block == nil {
			return codec.ErrInsufficientFragments.New("fragment %d is missing and striping has no parity", i)
		}
	}
	return nil
}

func (stripes) Reconstruct(blocks [][]byte, index int) error {
	return codec.ErrInsufficientFragments.New("fragment %d is missing and striping has no parity", index)
}

// FragmentsNeeded returns targets: without parity a fragment can only be
// read back from itself.
func (stripes) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	return append([]int(nil), targets...), nil
}

func (stripes) MinParityFragmentsNeeded() int { return 0 }
