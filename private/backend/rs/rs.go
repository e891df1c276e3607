// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package rs implements the Reed-Solomon families on
// github.com/klauspost/reedsolomon.
package rs

import (
	"errors"

	"github.com/klauspost/reedsolomon"

	"storj.io/eclib/private/backend/blockcodec"
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
)

// Open returns a Reed-Solomon backend for scheme. opts select the coding
// matrix.
func Open(name string, scheme codec.Scheme, opts ...reedsolomon.Option) (*blockcodec.Backend, error) {
	enc, err := reedsolomon.New(scheme.K, scheme.M, opts...)
	if err != nil {
		return nil, codec.ErrBackendInitialization.New("%s: k=%d m=%d: %v", name, scheme.K, scheme.M, err)
	}
	return blockcodec.New(name, scheme, &math{scheme: scheme, enc: enc}), nil
}

type math struct {
	scheme codec.Scheme
	enc    reedsolomon.Encoder
}

func (m *math) Encode(blocks [][]byte) error {
	return convertError(m.enc.Encode(blocks))
}

func (m *math) ReconstructData(blocks [][]byte) error {
	return convertError(m.enc.ReconstructData(blocks))
}

func (m *math) Reconstruct(blocks [][]byte, index int) error {
	required := make([]bool, len(blocks))
	required[index] = true
	return convertError(m.enc.ReconstructSome(blocks, required))
}

func (m *math) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	return fragment.NeededMDS(m.scheme, targets, excludes)
}

func (m *math) MinParityFragmentsNeeded() int { return 1 }

func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reedsolomon.ErrTooFewShards):
		return codec.ErrInsufficientFragments.Wrap(err)
	default:
		return codec.ErrInvalidFragmentMetadata.Wrap(err)
	}
}
