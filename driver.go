// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storj.io/eclib/private/codec"
)

// Driver is an erasure coding scheme bound to a backend.
//
// A Driver is immutable and safe for concurrent use.
type Driver struct {
	scheme Scheme
	codec  codec.Codec
	log    *zap.Logger
}

// DecodeOptions configures Decode and DecodeRanges.
type DecodeOptions struct {
	// ForceMetadataChecks verifies the integrity of every fragment before
	// decoding and fails with ErrBadFragmentChecksum naming the corrupted
	// ones.
	ForceMetadataChecks bool
}

// Scheme returns the scheme the driver is bound with.
func (d *Driver) Scheme() Scheme { return d.scheme }

// String implements fmt.Stringer.
func (d *Driver) String() string {
	return fmt.Sprintf("Driver(ec_type=%s, k=%d, m=%d)", d.scheme.Name(), d.scheme.K, d.scheme.M)
}

// Encode splits data into a stripe of K data and M parity fragments.
func (d *Driver) Encode(ctx context.Context, data []byte) (_ Stripe, err error) {
	defer mon.Task()(&ctx)(&err)

	fragments, err := d.codec.Encode(data)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if len(fragments) != d.scheme.Total() {
		return nil, Error.New("backend %s returned %d fragments, expected %d", d.codec.Name(), len(fragments), d.scheme.Total())
	}

	mon.IntVal("encoded_bytes").Observe(int64(len(data)))
	return Stripe(fragments), nil
}

// Decode recovers the original data from at least K fragments of a stripe.
func (d *Driver) Decode(ctx context.Context, fragments []Fragment, opts DecodeOptions) (_ []byte, err error) {
	defer mon.Task()(&ctx)(&err)

	out, err := d.decode(fragments, nil, opts)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, Error.New("backend %s returned %d buffers, expected 1", d.codec.Name(), len(out))
	}

	mon.IntVal("decoded_bytes").Observe(int64(len(out[0])))
	return out[0], nil
}

// DecodeRanges recovers the given byte ranges of the original data, one
// buffer per range in input order.
func (d *Driver) DecodeRanges(ctx context.Context, fragments []Fragment, ranges []ByteRange, opts DecodeOptions) (_ [][]byte, err error) {
	defer mon.Task()(&ctx)(&err)

	if len(ranges) == 0 {
		return nil, Error.Wrap(codec.ErrInvalidParameter.New("decode: no byte ranges given"))
	}
	for _, r := range ranges {
		if r.Start < 0 || r.End < r.Start {
			return nil, Error.Wrap(codec.ErrInvalidParameter.New("decode: invalid byte range %v", r))
		}
	}

	out, err := d.decode(fragments, ranges, opts)
	if err != nil {
		return nil, err
	}
	if len(out) != len(ranges) {
		return nil, Error.New("backend %s returned %d buffers for %d ranges", d.codec.Name(), len(out), len(ranges))
	}
	return out, nil
}

func (d *Driver) decode(fragments []Fragment, ranges []ByteRange, opts DecodeOptions) ([][]byte, error) {
	fragmentLen, ok := fragmentSize(fragments)
	if !ok {
		return nil, Error.Wrap(codec.ErrInvalidParameter.New("decode: fragment payloads must have equal, non-zero length"))
	}
	if len(fragments) < d.scheme.K {
		return nil, Error.Wrap(codec.ErrInsufficientFragments.New("decode: %d fragments given, %d required", len(fragments), d.scheme.K))
	}

	out, err := d.codec.Decode(fragments, fragmentLen, ranges, opts.ForceMetadataChecks)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return out, nil
}

// FragmentsNeeded returns the fragment indices that suffice to rebuild
// targets without reading any of excludes.
func (d *Driver) FragmentsNeeded(ctx context.Context, targets, excludes []int) (_ []int, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := d.checkIndices("targets", targets); err != nil {
		return nil, err
	}
	if err := d.checkIndices("excludes", excludes); err != nil {
		return nil, err
	}

	needed, err := d.codec.FragmentsNeeded(targets, excludes)
	return needed, Error.Wrap(err)
}

// MinParityFragmentsNeeded returns the fewest parity fragments any rebuild
// reads.
func (d *Driver) MinParityFragmentsNeeded() int {
	return d.codec.MinParityFragmentsNeeded()
}

// Metadata returns the metadata of a fragment, or a human readable
// rendering of it when formatted is set.
func (d *Driver) Metadata(ctx context.Context, fragment Fragment, formatted bool) (_ Metadata, err error) {
	defer mon.Task()(&ctx)(&err)

	if len(fragment.Payload) == 0 {
		return nil, Error.Wrap(codec.ErrInvalidParameter.New("fragment %d has an empty payload", fragment.Index))
	}

	metadata, err := d.codec.Metadata(fragment, formatted)
	return metadata, Error.Wrap(err)
}

func (d *Driver) checkIndices(name string, indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= d.scheme.Total() {
			return Error.Wrap(codec.ErrInvalidParameter.New("%s: fragment index %d is outside of [0, %d)", name, idx, d.scheme.Total()))
		}
	}
	return nil
}

// fragmentSize returns the payload length shared by every fragment. It
// fails when there are no fragments, the payloads are empty or lengths
// differ.
func fragmentSize(fragments []Fragment) (int, bool) {
	if len(fragments) == 0 || len(fragments[0].Payload) == 0 {
		return 0, false
	}
	size := len(fragments[0].Payload)
	for _, f := range fragments[1:] {
		if len(f.Payload) != size {
			return 0, false
		}
	}
	return size, true
}
