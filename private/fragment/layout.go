// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package fragment

import (
	"storj.io/eclib/private/codec"
)

// BlockSize returns the size of each of the k blocks an input of dataLen
// bytes is cut into. Blocks are never empty, so an empty input still
// produces a decodable stripe.
func BlockSize(dataLen int64, k int) int {
	size := (dataLen + int64(k) - 1) / int64(k)
	if size < 1 {
		size = 1
	}
	return int(size)
}

// Size returns the payload size of every fragment of an input of dataLen
// bytes.
func Size(dataLen int64, k int) int64 {
	return HeaderSize + int64(BlockSize(dataLen, k))
}

// Split returns total zeroed blocks backed by a single allocation, with the
// first k holding data padded with zeros.
func Split(data []byte, k, total int) [][]byte {
	blockSize := BlockSize(int64(len(data)), k)
	backing := make([]byte, blockSize*total)
	copy(backing, data)

	blocks := make([][]byte, total)
	for i := range blocks {
		blocks[i] = backing[i*blockSize : (i+1)*blockSize : (i+1)*blockSize]
	}
	return blocks
}

// Join concatenates data blocks and trims the padding.
func Join(blocks [][]byte, origDataSize int64) []byte {
	data := make([]byte, 0, origDataSize)
	for _, block := range blocks {
		remaining := origDataSize - int64(len(data))
		if remaining <= 0 {
			break
		}
		if int64(len(block)) > remaining {
			block = block[:remaining]
		}
		data = append(data, block...)
	}
	return data
}

// Extract returns data as a single buffer when ranges is nil and one copy of
// every requested range otherwise.
func Extract(data []byte, ranges []codec.ByteRange) ([][]byte, error) {
	if ranges == nil {
		return [][]byte{data}, nil
	}

	out := make([][]byte, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 || r.End < r.Start || r.End >= int64(len(data)) {
			return nil, codec.ErrInvalidParameter.New("byte range %v is outside of %d decoded bytes", r, len(data))
		}
		out = append(out, append([]byte(nil), data[r.Start:r.End+1]...))
	}
	return out, nil
}

// Stripe is the parsed view of a set of fragments handed to a backend.
type Stripe struct {
	// Blocks has one entry per stripe position, nil where no fragment was
	// given. Present blocks alias the caller's payloads.
	Blocks       [][]byte
	Headers      []Header
	OrigDataSize int64
	BlockSize    int
	Present      int
}

// Gather parses fragments into a Stripe for scheme. Fragments must carry a
// header that agrees with their index and with each other. When
// forceChecks is set every checksum is verified and mismatches fail with
// ErrBadFragmentChecksum. Repeated indices after the first are ignored.
func Gather(scheme codec.Scheme, backendID uint8, fragments []codec.Fragment, forceChecks bool) (*Stripe, error) {
	if len(fragments) == 0 {
		return nil, codec.ErrInsufficientFragments.New("no fragments given")
	}

	total := scheme.Total()
	stripe := &Stripe{
		Blocks:  make([][]byte, total),
		Headers: make([]Header, total),
	}

	var bad []int
	for i, f := range fragments {
		h, block, err := Parse(f.Payload)
		if err != nil {
			return nil, err
		}
		if h.Index != f.Index {
			return nil, codec.ErrInvalidFragmentMetadata.New("fragment at index %d carries a header for index %d", f.Index, h.Index)
		}
		if h.Index < 0 || h.Index >= total {
			return nil, codec.ErrInvalidFragmentMetadata.New("fragment index %d is outside of [0, %d)", h.Index, total)
		}
		if h.BackendID != backendID {
			return nil, codec.ErrInvalidFragmentMetadata.New("fragment %d was written by backend %d, not %d", h.Index, h.BackendID, backendID)
		}

		if i == 0 {
			stripe.OrigDataSize = h.OrigDataSize
			stripe.BlockSize = h.Size
		} else if h.OrigDataSize != stripe.OrigDataSize || h.Size != stripe.BlockSize {
			return nil, codec.ErrInvalidFragmentMetadata.New("fragment %d does not belong to the same stripe as fragment %d", h.Index, fragments[0].Index)
		}

		if stripe.Blocks[h.Index] != nil {
			continue
		}
		if forceChecks && !h.ChecksumOK(block) {
			bad = append(bad, h.Index)
		}

		stripe.Blocks[h.Index] = block
		stripe.Headers[h.Index] = h
		stripe.Present++
	}

	if len(bad) > 0 {
		return nil, codec.ErrBadFragmentChecksum.New("fragments %v failed checksum verification", bad)
	}
	return stripe, nil
}

// DataMissing reports whether any of the first k blocks is absent.
func (s *Stripe) DataMissing(k int) bool {
	for _, block := range s.Blocks[:k] {
		if block == nil {
			return true
		}
	}
	return false
}

// CheckIndices verifies every index lies within a stripe of total fragments.
func CheckIndices(total int, indices ...[]int) error {
	for _, list := range indices {
		for _, idx := range list {
			if idx < 0 || idx >= total {
				return codec.ErrInvalidParameter.New("fragment index %d is outside of [0, %d)", idx, total)
			}
		}
	}
	return nil
}

// NeededMDS answers FragmentsNeeded for codes where any k fragments
// suffice: the k lowest indices that are neither targets nor excluded.
func NeededMDS(scheme codec.Scheme, targets, excludes []int) ([]int, error) {
	total := scheme.Total()
	if err := CheckIndices(total, targets, excludes); err != nil {
		return nil, err
	}

	skip := make([]bool, total)
	for _, idx := range targets {
		skip[idx] = true
	}
	for _, idx := range excludes {
		skip[idx] = true
	}

	needed := make([]int, 0, scheme.K)
	for idx := 0; idx < total && len(needed) < scheme.K; idx++ {
		if !skip[idx] {
			needed = append(needed, idx)
		}
	}
	if len(needed) < scheme.K {
		return nil, codec.ErrInsufficientFragments.New("only %d fragments remain, %d are required", len(needed), scheme.K)
	}
	return needed, nil
}
