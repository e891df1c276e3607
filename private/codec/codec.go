// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package codec defines the boundary between the driver and the erasure
// coding backends.
package codec

// Backend is an opened codec instance. A backend advertises each operation
// by implementing the matching capability interface; Codec is the full set
// the driver requires.
type Backend interface {
	// Name identifies the backend in errors and logs.
	Name() string
}

// Opener opens a backend for the given scheme.
type Opener func(scheme Scheme) (Backend, error)

// Encoder splits data into a stripe.
type Encoder interface {
	// Encode returns k+m fragments, data fragments first.
	Encode(data []byte) ([]Fragment, error)
}

// Decoder recombines a stripe.
type Decoder interface {
	// Decode recovers the original data from fragments whose payloads are all
	// fragmentLen bytes long. With nil ranges it returns a single buffer,
	// otherwise one buffer per requested range.
	Decode(fragments []Fragment, fragmentLen int, ranges []ByteRange, forceMetadataChecks bool) ([][]byte, error)
}

// Reconstructor rebuilds a single fragment.
type Reconstructor interface {
	// ReconstructOne rebuilds the fragment at index from fragments.
	ReconstructOne(fragments []Fragment, fragmentLen int, index int) (Fragment, error)
}

// FragmentsNeeder answers which fragments are needed for a rebuild.
type FragmentsNeeder interface {
	// FragmentsNeeded returns the fragment indices that suffice to rebuild
	// targets without reading any of excludes.
	FragmentsNeeded(targets, excludes []int) ([]int, error)
}

// ParityCounter reports the minimum parity fragments a rebuild requires.
type ParityCounter interface {
	MinParityFragmentsNeeded() int
}

// MetadataReader extracts fragment metadata.
type MetadataReader interface {
	// Metadata returns the metadata of a fragment. When formatted is set the
	// result is a human readable rendering rather than the opaque blob.
	Metadata(fragment Fragment, formatted bool) (Metadata, error)
}

// MetadataChecker verifies metadata of a stripe.
type MetadataChecker interface {
	CheckMetadata(metadata []Metadata) (VerifyResult, error)
}

// SegmentInfoer computes segmentation for an object.
type SegmentInfoer interface {
	SegmentInfo(dataLen, segmentSize int64) (SegmentInfo, error)
}

// Codec is the complete set of capabilities a driver binds to.
type Codec interface {
	Backend
	Encoder
	Decoder
	Reconstructor
	FragmentsNeeder
	ParityCounter
	MetadataReader
	MetadataChecker
	SegmentInfoer
}

// Capability names a required codec operation.
type Capability string

// Required capabilities, in the order they are reported.
const (
	CapEncode                   Capability = "encode"
	CapDecode                   Capability = "decode"
	CapReconstruct              Capability = "reconstruct"
	CapFragmentsNeeded          Capability = "fragments_needed"
	CapMinParityFragmentsNeeded Capability = "min_parity_fragments_needed"
	CapGetMetadata              Capability = "get_metadata"
	CapVerifyStripeMetadata     Capability = "verify_stripe_metadata"
	CapGetSegmentInfo           Capability = "get_segment_info"
)

var capabilities = []struct {
	name Capability
	has  func(Backend) bool
}{
	{CapEncode, func(b Backend) bool { _, ok := b.(Encoder); return ok }},
	{CapDecode, func(b Backend) bool { _, ok := b.(Decoder); return ok }},
	{CapReconstruct, func(b Backend) bool { _, ok := b.(Reconstructor); return ok }},
	{CapFragmentsNeeded, func(b Backend) bool { _, ok := b.(FragmentsNeeder); return ok }},
	{CapMinParityFragmentsNeeded, func(b Backend) bool { _, ok := b.(ParityCounter); return ok }},
	{CapGetMetadata, func(b Backend) bool { _, ok := b.(MetadataReader); return ok }},
	{CapVerifyStripeMetadata, func(b Backend) bool { _, ok := b.(MetadataChecker); return ok }},
	{CapGetSegmentInfo, func(b Backend) bool { _, ok := b.(SegmentInfoer); return ok }},
}

// MissingCapabilities returns every required capability b does not implement.
func MissingCapabilities(b Backend) (missing []Capability) {
	for _, c := range capabilities {
		if !c.has(b) {
			missing = append(missing, c.name)
		}
	}
	return missing
}
