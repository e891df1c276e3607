// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"storj.io/eclib/private/codec"
)

type (
	// Scheme is the immutable parameter set a Driver is bound with.
	Scheme = codec.Scheme
	// EcType identifies a codec family.
	EcType = codec.EcType
	// ChecksumKind selects the per-fragment checksum.
	ChecksumKind = codec.ChecksumKind
	// Fragment is one member of a stripe.
	Fragment = codec.Fragment
	// Metadata is an opaque description of one fragment.
	Metadata = codec.Metadata
	// VerifyResult is the verdict on the metadata of a stripe.
	VerifyResult = codec.VerifyResult
	// SegmentInfo describes the segmentation of an object.
	SegmentInfo = codec.SegmentInfo
	// ByteRange is an inclusive range of absolute byte offsets.
	ByteRange = codec.ByteRange
	// SegmentRange is an inclusive range of offsets within one segment.
	SegmentRange = codec.SegmentRange
	// RangeRecipe lists the segment ranges covering one ByteRange.
	RangeRecipe = codec.RangeRecipe
)

// Stripe is the output of a single Encode: K data fragments followed by M
// parity fragments.
type Stripe []Fragment

// Codec families.
const (
	JerasureRSVand       = codec.JerasureRSVand
	JerasureRSCauchy     = codec.JerasureRSCauchy
	FlatXorHD3           = codec.FlatXorHD3
	FlatXorHD4           = codec.FlatXorHD4
	ISALRSVand           = codec.ISALRSVand
	SHSS                 = codec.SHSS
	LibErasureCodeRSVand = codec.LibErasureCodeRSVand
	ISALRSCauchy         = codec.ISALRSCauchy
	LibPhazr             = codec.LibPhazr
	Null                 = codec.Null
	Striping             = codec.Striping
)

// Checksum kinds.
const (
	ChecksumNone        = codec.ChecksumNone
	ChecksumInlineCRC32 = codec.ChecksumInlineCRC32
)
