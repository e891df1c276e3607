// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package fragment implements the self describing fragment layout shared by
// the bundled backends: a fixed size header followed by the coded block.
package fragment

import (
	"encoding/binary"
	"hash/crc32"

	"storj.io/eclib/private/codec"
)

const (
	// HeaderSize is the number of bytes preceding the block in a payload.
	HeaderSize = 32

	// Magic marks a payload written by this package.
	Magic uint32 = 0xb0c5ecc0

	// Version is the current header version.
	Version uint16 = 1
)

// Header describes the block that follows it.
//
// Layout, little endian:
//
//	magic u32 | index u32 | size u32 | orig_data_size u64 |
//	checksum u32 | checksum_type u8 | backend_id u8 | version u16 | reserved u32
type Header struct {
	Index        int
	Size         int
	OrigDataSize int64
	Checksum     uint32
	ChecksumType codec.ChecksumKind
	BackendID    uint8
	Version      uint16
}

// Marshal writes the header into the first HeaderSize bytes of dst.
func (h Header) Marshal(dst []byte) {
	_ = dst[HeaderSize-1]
	binary.LittleEndian.PutUint32(dst[0:], Magic)
	binary.LittleEndian.PutUint32(dst[4:], uint32(h.Index))
	binary.LittleEndian.PutUint32(dst[8:], uint32(h.Size))
	binary.LittleEndian.PutUint64(dst[12:], uint64(h.OrigDataSize))
	binary.LittleEndian.PutUint32(dst[20:], h.Checksum)
	dst[24] = byte(h.ChecksumType)
	dst[25] = h.BackendID
	binary.LittleEndian.PutUint16(dst[26:], h.Version)
	binary.LittleEndian.PutUint32(dst[28:], 0)
}

// Parse splits a payload into its header and block.
func Parse(payload []byte) (Header, []byte, error) {
	if len(payload) < HeaderSize {
		return Header{}, nil, codec.ErrInvalidFragmentMetadata.New("payload of %d bytes is shorter than the %d byte header", len(payload), HeaderSize)
	}
	if magic := binary.LittleEndian.Uint32(payload[0:]); magic != Magic {
		return Header{}, nil, codec.ErrInvalidFragmentMetadata.New("bad magic %#x", magic)
	}

	h := Header{
		Index:        int(binary.LittleEndian.Uint32(payload[4:])),
		Size:         int(binary.LittleEndian.Uint32(payload[8:])),
		OrigDataSize: int64(binary.LittleEndian.Uint64(payload[12:])),
		Checksum:     binary.LittleEndian.Uint32(payload[20:]),
		ChecksumType: codec.ChecksumKind(payload[24]),
		BackendID:    payload[25],
		Version:      binary.LittleEndian.Uint16(payload[26:]),
	}

	block := payload[HeaderSize:]
	if h.Size != len(block) {
		return Header{}, nil, codec.ErrInvalidFragmentMetadata.New("fragment %d: header size %d does not match block size %d", h.Index, h.Size, len(block))
	}
	if h.OrigDataSize < 0 {
		return Header{}, nil, codec.ErrInvalidFragmentMetadata.New("fragment %d: negative original data size", h.Index)
	}
	return h, block, nil
}

// ChecksumOK reports whether block matches the checksum in the header.
// Headers without a checksum always match.
func (h Header) ChecksumOK(block []byte) bool {
	switch h.ChecksumType {
	case codec.ChecksumInlineCRC32:
		return crc32.ChecksumIEEE(block) == h.Checksum
	default:
		return true
	}
}

// Build returns a payload holding a header for block followed by a copy of
// block.
func Build(h Header, block []byte) []byte {
	h.Size = len(block)
	h.Version = Version
	if h.ChecksumType == codec.ChecksumInlineCRC32 {
		h.Checksum = crc32.ChecksumIEEE(block)
	}

	payload := make([]byte, HeaderSize+len(block))
	h.Marshal(payload)
	copy(payload[HeaderSize:], block)
	return payload
}
