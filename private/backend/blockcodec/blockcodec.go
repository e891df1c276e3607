// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package blockcodec adapts block level erasure math to the codec
// interface using the fragment layout.
package blockcodec

import (
	"storj.io/eclib/private/codec"
	"storj.io/eclib/private/fragment"
	"storj.io/eclib/private/segment"
)

// Math is the erasure code over a stripe of equally sized blocks. Blocks
// k and up are parity. Missing blocks are nil; implementations must
// allocate them instead of writing into present blocks.
type Math interface {
	// Encode fills the parity blocks from the data blocks.
	Encode(blocks [][]byte) error
	// ReconstructData fills every missing data block.
	ReconstructData(blocks [][]byte) error
	// Reconstruct fills the block at index.
	Reconstruct(blocks [][]byte, index int) error
	// FragmentsNeeded returns the indices that suffice to rebuild targets
	// without touching excludes.
	FragmentsNeeded(targets, excludes []int) ([]int, error)
	// MinParityFragmentsNeeded is the fewest parity fragments any rebuild
	// reads.
	MinParityFragmentsNeeded() int
}

// Corrector is implemented by Math that can repair corrupted blocks. When
// present, Decode always hands the full stripe to Correct instead of
// calling ReconstructData.
type Corrector interface {
	Correct(blocks [][]byte) error
}

// Backend implements codec.Codec on top of Math.
type Backend struct {
	name   string
	scheme codec.Scheme
	id     uint8
	math   Math
}

var _ codec.Codec = (*Backend)(nil)

// New returns a backend for scheme computing with math.
func New(name string, scheme codec.Scheme, math Math) *Backend {
	return &Backend{
		name:   name,
		scheme: scheme,
		id:     uint8(scheme.Type),
		math:   math,
	}
}

// Name implements codec.Backend.
func (b *Backend) Name() string { return b.name }

// Scheme returns the scheme the backend was opened with.
func (b *Backend) Scheme() codec.Scheme { return b.scheme }

// Encode implements codec.Encoder.
func (b *Backend) Encode(data []byte) ([]codec.Fragment, error) {
	blocks := fragment.Split(data, b.scheme.K, b.scheme.Total())
	if err := b.math.Encode(blocks); err != nil {
		return nil, err
	}

	fragments := make([]codec.Fragment, len(blocks))
	for i, block := range blocks {
		fragments[i] = codec.Fragment{
			Index:   i,
			Payload: fragment.Build(b.header(i, int64(len(data))), block),
		}
	}
	return fragments, nil
}

// Decode implements codec.Decoder.
func (b *Backend) Decode(fragments []codec.Fragment, fragmentLen int, ranges []codec.ByteRange, forceMetadataChecks bool) ([][]byte, error) {
	stripe, err := b.gather(fragments, fragmentLen, forceMetadataChecks)
	if err != nil {
		return nil, err
	}
	if stripe.Present < b.scheme.K {
		return nil, codec.ErrInsufficientFragments.New("%s: %d fragments given, %d are required", b.name, stripe.Present, b.scheme.K)
	}

	blocks := stripe.Blocks
	if corrector, ok := b.math.(Corrector); ok {
		blocks = append([][]byte(nil), blocks...)
		if err := corrector.Correct(blocks); err != nil {
			return nil, err
		}
	} else if stripe.DataMissing(b.scheme.K) {
		blocks = append([][]byte(nil), blocks...)
		if err := b.math.ReconstructData(blocks); err != nil {
			return nil, err
		}
	}

	return fragment.Extract(fragment.Join(blocks[:b.scheme.K], stripe.OrigDataSize), ranges)
}

// ReconstructOne implements codec.Reconstructor.
func (b *Backend) ReconstructOne(fragments []codec.Fragment, fragmentLen int, index int) (codec.Fragment, error) {
	if err := fragment.CheckIndices(b.scheme.Total(), []int{index}); err != nil {
		return codec.Fragment{}, err
	}

	stripe, err := b.gather(fragments, fragmentLen, false)
	if err != nil {
		return codec.Fragment{}, err
	}

	blocks := append([][]byte(nil), stripe.Blocks...)
	if blocks[index] == nil {
		if err := b.math.Reconstruct(blocks, index); err != nil {
			return codec.Fragment{}, err
		}
	}

	return codec.Fragment{
		Index:   index,
		Payload: fragment.Build(b.header(index, stripe.OrigDataSize), blocks[index]),
	}, nil
}

// FragmentsNeeded implements codec.FragmentsNeeder.
func (b *Backend) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	if err := fragment.CheckIndices(b.scheme.Total(), targets, excludes); err != nil {
		return nil, err
	}
	return b.math.FragmentsNeeded(targets, excludes)
}

// MinParityFragmentsNeeded implements codec.ParityCounter.
func (b *Backend) MinParityFragmentsNeeded() int {
	return b.math.MinParityFragmentsNeeded()
}

// Metadata implements codec.MetadataReader.
func (b *Backend) Metadata(f codec.Fragment, formatted bool) (codec.Metadata, error) {
	return fragment.Metadata(f, formatted)
}

// CheckMetadata implements codec.MetadataChecker.
func (b *Backend) CheckMetadata(metadata []codec.Metadata) (codec.VerifyResult, error) {
	return fragment.CheckStripe(b.scheme, b.id, metadata)
}

// SegmentInfo implements codec.SegmentInfoer.
func (b *Backend) SegmentInfo(dataLen, segmentSize int64) (codec.SegmentInfo, error) {
	return segment.Info(dataLen, segmentSize, func(n int64) int64 {
		return fragment.Size(n, b.scheme.K)
	})
}

func (b *Backend) header(index int, origDataSize int64) fragment.Header {
	return fragment.Header{
		Index:        index,
		OrigDataSize: origDataSize,
		ChecksumType: b.scheme.Checksum,
		BackendID:    b.id,
	}
}

func (b *Backend) gather(fragments []codec.Fragment, fragmentLen int, forceChecks bool) (*fragment.Stripe, error) {
	stripe, err := fragment.Gather(b.scheme, b.id, fragments, forceChecks)
	if err != nil {
		return nil, err
	}
	if fragment.HeaderSize+stripe.BlockSize != fragmentLen {
		return nil, codec.ErrInvalidFragmentMetadata.New("%s: fragments carry %d byte blocks, payloads are %d bytes", b.name, stripe.BlockSize, fragmentLen)
	}
	return stripe, nil
}
