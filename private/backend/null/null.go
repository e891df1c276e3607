// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package null implements the no-op family. Data fragments carry the data,
// parity is never computed and missing fragments come back zeroed. It
// measures the overhead of the surrounding layers.
package null

import (
	"storj.io/eclib/private/backend/blockcodec"
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
)

// Open returns a null backend for scheme.
func Open(name string, scheme codec.Scheme) (*blockcodec.Backend, error) {
	return blockcodec.New(name, scheme, noop{scheme: scheme}), nil
}

type noop struct {
	scheme codec.Scheme
}

func (noop) Encode(blocks [][]byte) error { return nil }

func (noop) ReconstructData(blocks [][]byte) error {
	zeroFill(blocks)
	return nil
}

func (noop) Reconstruct(blocks [][]byte, index int) error {
	zeroFill(blocks)
	return nil
}

func (n noop) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	return fragment.NeededMDS(n.scheme, targets, excludes)
}

func (noop) MinParityFragmentsNeeded() int { return 0 }

func zeroFill(blocks [][]byte) {
	size := 0
	for _, block := range blocks {
		if block != nil {
			size = len(block)
			break
		}
	}
	for i, block := range blocks {
		if block == nil {
			blocks[i] = make([]byte, size)
		}
	}
}
