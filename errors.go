// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"storj.io/eclib/private/codec"
)

// Error kinds. Each is shared with the backends, so a failure raised deep
// inside a codec is still detected with Has after the driver wraps it.
var (
	// ErrInvalidParameter is returned for a bad or missing construction or call argument.
	ErrInvalidParameter = &codec.ErrInvalidParameter

	// ErrBackendNotSupported is returned when the named codec family or backend is unknown.
	ErrBackendNotSupported = &codec.ErrBackendNotSupported

	// ErrBackendInitialization is returned when a backend exists but failed to
	// initialize or lacks required operations.
	ErrBackendInitialization = &codec.ErrBackendInitialization

	// ErrInsufficientFragments is returned when fewer usable fragments than
	// required were given, or reconstruction ran out of inputs.
	ErrInsufficientFragments = &codec.ErrInsufficientFragments

	// ErrInvalidFragmentMetadata is returned for malformed or inconsistent metadata.
	ErrInvalidFragmentMetadata = &codec.ErrInvalidFragmentMetadata

	// ErrBadFragmentChecksum is returned when a forced integrity check fails.
	ErrBadFragmentChecksum = &codec.ErrBadFragmentChecksum

	// ErrMethodNotImplemented is returned when an optional capability is absent.
	ErrMethodNotImplemented = &codec.ErrMethodNotImplemented
)
