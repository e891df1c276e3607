// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package codec

import (
	"github.com/zeebo/errs"
)

var (
	// ErrInvalidParameter is returned for a bad or missing construction or call argument.
	ErrInvalidParameter = errs.Class("invalid parameter")

	// ErrBackendNotSupported is returned when a codec family or backend name is unknown.
	ErrBackendNotSupported = errs.Class("backend not supported")

	// ErrBackendInitialization is returned when a backend exists but could not be
	// initialized or lacks a required capability.
	ErrBackendInitialization = errs.Class("backend initialization")

	// ErrInsufficientFragments is returned when fewer usable fragments than required
	// were given, or a reconstruction ran out of inputs.
	ErrInsufficientFragments = errs.Class("insufficient fragments")

	// ErrInvalidFragmentMetadata is returned for malformed or inconsistent fragment metadata.
	ErrInvalidFragmentMetadata = errs.Class("invalid fragment metadata")

	// ErrBadFragmentChecksum is returned when a fragment integrity check failed.
	ErrBadFragmentChecksum = errs.Class("bad fragment checksum")

	// ErrMethodNotImplemented is returned when an optional capability is absent.
	ErrMethodNotImplemented = errs.Class("method not implemented")
)
