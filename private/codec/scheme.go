// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package codec

import (
	"fmt"
)

// EcType identifies a codec family.
type EcType int

// List of codec families. The set is closed; the zero value is not a family.
const (
	TypeUnknown EcType = iota
	JerasureRSVand
	JerasureRSCauchy
	FlatXorHD3
	FlatXorHD4
	ISALRSVand
	SHSS
	LibErasureCodeRSVand
	ISALRSCauchy
	LibPhazr
	Null
	Striping
)

var typeNames = [...]string{
	TypeUnknown:          "unknown",
	JerasureRSVand:       "jerasure_rs_vand",
	JerasureRSCauchy:     "jerasure_rs_cauchy",
	FlatXorHD3:           "flat_xor_hd_3",
	FlatXorHD4:           "flat_xor_hd_4",
	ISALRSVand:           "isa_l_rs_vand",
	SHSS:                 "shss",
	LibErasureCodeRSVand: "liberasurecode_rs_vand",
	ISALRSCauchy:         "isa_l_rs_cauchy",
	LibPhazr:             "libphazr",
	Null:                 "null",
	Striping:             "striping",
}

// typeAliases are accepted by ParseType in addition to the canonical names.
var typeAliases = map[string]EcType{
	"flat_xor_hd": FlatXorHD3,
}

// String returns the stable name of the family.
func (t EcType) String() string {
	if t <= TypeUnknown || int(t) >= len(typeNames) {
		return fmt.Sprintf("EcType(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is a member of the closed family set.
func (t EcType) Valid() bool {
	return t > TypeUnknown && int(t) < len(typeNames)
}

// ParseType resolves a family name.
func ParseType(name string) (EcType, bool) {
	if t, ok := typeAliases[name]; ok {
		return t, true
	}
	for t := TypeUnknown + 1; int(t) < len(typeNames); t++ {
		if typeNames[t] == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// AllTypes returns every family in declaration order.
func AllTypes() []EcType {
	types := make([]EcType, 0, len(typeNames)-1)
	for t := TypeUnknown + 1; int(t) < len(typeNames); t++ {
		types = append(types, t)
	}
	return types
}

// ChecksumKind selects the per-fragment checksum embedded by a backend.
type ChecksumKind uint8

// List of checksum kinds.
const (
	ChecksumNone ChecksumKind = iota
	ChecksumInlineCRC32
)

// String returns the stable name of the checksum kind.
func (c ChecksumKind) String() string {
	switch c {
	case ChecksumNone:
		return "none"
	case ChecksumInlineCRC32:
		return "inline_crc32"
	default:
		return fmt.Sprintf("ChecksumKind(%d)", int(c))
	}
}

// ParseChecksum resolves a checksum kind name.
func ParseChecksum(name string) (ChecksumKind, bool) {
	switch name {
	case "none":
		return ChecksumNone, true
	case "inline_crc32":
		return ChecksumInlineCRC32, true
	default:
		return 0, false
	}
}

// Scheme is the immutable parameter set a backend is opened with.
type Scheme struct {
	// K is the number of data fragments.
	K int
	// M is the number of parity fragments.
	M int
	// HD is the guaranteed minimum Hamming distance.
	HD int

	Type     EcType
	Checksum ChecksumKind

	// Backend is the registered backend name when the scheme was not
	// selected by family.
	Backend string
}

// Total returns the number of fragments in a stripe.
func (s Scheme) Total() int { return s.K + s.M }

// Name returns the backend name when set and the family name otherwise.
func (s Scheme) Name() string {
	if s.Backend != "" {
		return s.Backend
	}
	return s.Type.String()
}
