// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package bwrs implements the error correcting Reed-Solomon family on
// storj.io/infectious. Decoding runs Berlekamp-Welch over every supplied
// fragment, so corrupted blocks are repaired when enough fragments are
// present.
package bwrs

import (
	"errors"

	"storj.io/common/sync2/race2"
	"storj.io/eclib/private/backend/blockcodec"
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
	"storj.io/infectious"
)

// Open returns an infectious backed backend for scheme.
func Open(name string, scheme codec.Scheme) (*blockcodec.Backend, error) {
	fc, err := infectious.NewFEC(scheme.K, scheme.Total())
	if err != nil {
		return nil, codec.ErrBackendInitialization.New("%s: k=%d m=%d: %v", name, scheme.K, scheme.M, err)
	}
	return blockcodec.New(name, scheme, &math{scheme: scheme, fc: fc}), nil
}

type math struct {
	scheme codec.Scheme
	fc     *infectious.FEC
}

func (m *math) Encode(blocks [][]byte) error {
	input := joinData(blocks[:m.scheme.K])
	return m.fc.Encode(input, func(share infectious.Share) {
		if share.Number >= m.scheme.K {
			copy(blocks[share.Number], share.Data)
		}
	})
}

// ReconstructData rebuilds missing data blocks without error correction.
func (m *math) ReconstructData(blocks [][]byte) error {
	shares := collect(blocks)
	err := m.fc.Rebuild(shares, func(share infectious.Share) {
		if blocks[share.Number] == nil {
			blocks[share.Number] = append([]byte(nil), share.Data...)
		}
	})
	return convertError(err)
}

// Correct decodes with error correction and replaces every data block with
// the corrected copy.
func (m *math) Correct(blocks [][]byte) error {
	shares := collect(blocks)
	if len(shares) == 0 {
		return codec.ErrInsufficientFragments.New("no fragments given")
	}
	blockSize := len(shares[0].Data)

	out, err := m.fc.Decode(nil, shares)
	if err != nil {
		return convertError(err)
	}
	for i := range m.scheme.K {
		blocks[i] = out[i*blockSize : (i+1)*blockSize : (i+1)*blockSize]
	}
	return nil
}

func (m *math) Reconstruct(blocks [][]byte, index int) error {
	if err := m.ReconstructData(blocks); err != nil {
		return err
	}
	if index < m.scheme.K {
		return nil
	}

	input := joinData(blocks[:m.scheme.K])
	output := make([]byte, len(input)/m.scheme.K)
	if err := m.fc.EncodeSingle(input, output, index); err != nil {
		return convertError(err)
	}
	blocks[index] = output
	return nil
}

func (m *math) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	return fragment.NeededMDS(m.scheme, targets, excludes)
}

func (m *math) MinParityFragmentsNeeded() int { return 1 }

// collect returns copies of the present blocks as shares. infectious sorts
// and corrects shares in place.
func collect(blocks [][]byte) []infectious.Share {
	shares := make([]infectious.Share, 0, len(blocks))
	for i, block := range blocks {
		if block == nil {
			continue
		}
		race2.ReadSlice(block)
		shares = append(shares, infectious.Share{
			Number: i,
			Data:   append([]byte(nil), block...),
		})
	}
	return shares
}

func joinData(blocks [][]byte) []byte {
	if len(blocks) == 0 {
		return nil
	}
	blockSize := len(blocks[0])
	input := make([]byte, 0, blockSize*len(blocks))
	for _, block := range blocks {
		input = append(input, block...)
	}
	return input
}

func needsMoreShares(err error) bool {
	return errors.Is(err, infectious.NotEnoughShares) ||
		errors.Is(err, infectious.TooManyErrors)
}

func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case needsMoreShares(err):
		return codec.ErrInsufficientFragments.Wrap(err)
	default:
		return codec.ErrInvalidFragmentMetadata.Wrap(err)
	}
}
