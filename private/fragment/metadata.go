// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package fragment

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"storj.io/eclib/private/codec"
)

// MetadataSize is the size of the opaque metadata blob.
const MetadataSize = 32

// Info is the content of a metadata blob.
//
// Layout, little endian:
//
//	index u32 | size u32 | orig_data_size u64 | checksum u32 | checksum_type u8 |
//	checksum_mismatch u8 | backend_id u8 | reserved u8 | version u16 | reserved u16 | magic u32
type Info struct {
	Header
	ChecksumMismatch bool
}

// Marshal encodes the info as a metadata blob.
func (info Info) Marshal() codec.Metadata {
	blob := make([]byte, MetadataSize)
	binary.LittleEndian.PutUint32(blob[0:], uint32(info.Index))
	binary.LittleEndian.PutUint32(blob[4:], uint32(info.Size))
	binary.LittleEndian.PutUint64(blob[8:], uint64(info.OrigDataSize))
	binary.LittleEndian.PutUint32(blob[16:], info.Checksum)
	blob[20] = byte(info.ChecksumType)
	if info.ChecksumMismatch {
		blob[21] = 1
	}
	blob[22] = info.BackendID
	binary.LittleEndian.PutUint16(blob[24:], info.Version)
	binary.LittleEndian.PutUint32(blob[28:], Magic)
	return blob
}

// String renders the info as key=value pairs.
func (info Info) String() string {
	return fmt.Sprintf("index=%d size=%d orig_data_size=%d checksum_type=%s checksum=%#08x checksum_mismatch=%t backend_id=%d version=%d",
		info.Index, info.Size, info.OrigDataSize, info.ChecksumType, info.Checksum, info.ChecksumMismatch, info.BackendID, info.Version)
}

// ParseMetadata decodes a metadata blob.
func ParseMetadata(blob codec.Metadata) (Info, error) {
	if len(blob) != MetadataSize {
		return Info{}, codec.ErrInvalidFragmentMetadata.New("metadata is %d bytes, expected %d", len(blob), MetadataSize)
	}
	if magic := binary.LittleEndian.Uint32(blob[28:]); magic != Magic {
		return Info{}, codec.ErrInvalidFragmentMetadata.New("bad metadata magic %#x", magic)
	}
	return Info{
		Header: Header{
			Index:        int(binary.LittleEndian.Uint32(blob[0:])),
			Size:         int(binary.LittleEndian.Uint32(blob[4:])),
			OrigDataSize: int64(binary.LittleEndian.Uint64(blob[8:])),
			Checksum:     binary.LittleEndian.Uint32(blob[16:]),
			ChecksumType: codec.ChecksumKind(blob[20]),
			BackendID:    blob[22],
			Version:      binary.LittleEndian.Uint16(blob[24:]),
		},
		ChecksumMismatch: blob[21] != 0,
	}, nil
}

// Metadata returns the metadata blob of a fragment, or its rendering when
// formatted is set.
func Metadata(f codec.Fragment, formatted bool) (codec.Metadata, error) {
	h, block, err := Parse(f.Payload)
	if err != nil {
		return nil, err
	}
	info := Info{Header: h, ChecksumMismatch: !h.ChecksumOK(block)}
	if formatted {
		return codec.Metadata(info.String()), nil
	}
	return info.Marshal(), nil
}

// CheckStripe verifies that metadata describes intact fragments of a single
// stripe written by backendID for scheme. Inconsistencies are reported in
// the result; only malformed blobs are errors.
func CheckStripe(scheme codec.Scheme, backendID uint8, metadata []codec.Metadata) (codec.VerifyResult, error) {
	if len(metadata) == 0 {
		return codec.VerifyResult{}, codec.ErrInsufficientFragments.New("no metadata given")
	}

	infos := make([]Info, 0, len(metadata))
	for _, blob := range metadata {
		info, err := ParseMetadata(blob)
		if err != nil {
			return codec.VerifyResult{}, err
		}
		if info.Index < 0 || info.Index >= scheme.Total() {
			return codec.VerifyResult{}, codec.ErrInvalidFragmentMetadata.New("fragment index %d is outside of [0, %d)", info.Index, scheme.Total())
		}
		infos = append(infos, info)
	}

	// the most common (size, orig_data_size) pair defines the stripe.
	type shape struct {
		size int
		orig int64
	}
	votes := make(map[shape]int)
	var stripe shape
	for _, info := range infos {
		s := shape{info.Size, info.OrigDataSize}
		votes[s]++
		if votes[s] > votes[stripe] {
			stripe = s
		}
	}

	bad := make(map[int]string)
	seen := make(map[int]bool)
	for _, info := range infos {
		switch {
		case seen[info.Index]:
			bad[info.Index] = "duplicate index"
		case info.BackendID != backendID:
			bad[info.Index] = "written by another backend"
		case info.ChecksumMismatch:
			bad[info.Index] = "checksum mismatch"
		case (shape{info.Size, info.OrigDataSize}) != stripe:
			bad[info.Index] = "belongs to another stripe"
		}
		seen[info.Index] = true
	}

	if len(bad) == 0 {
		return codec.VerifyResult{OK: true}, nil
	}

	result := codec.VerifyResult{}
	for idx := range bad {
		result.BadFragments = append(result.BadFragments, idx)
	}
	sort.Ints(result.BadFragments)

	reasons := make([]string, 0, len(result.BadFragments))
	for _, idx := range result.BadFragments {
		reasons = append(reasons, fmt.Sprintf("%d: %s", idx, bad[idx]))
	}
	result.Reason = strings.Join(reasons, "; ")
	return result, nil
}
