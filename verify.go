// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"context"

	"storj.io/eclib/private/codec"
)

// VerifyStripeMetadata checks that metadata, as returned by Metadata,
// describes intact fragments of one stripe. Inconsistencies are reported in
// the result rather than as an error.
func (d *Driver) VerifyStripeMetadata(ctx context.Context, metadata []Metadata) (_ VerifyResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if len(metadata) == 0 {
		return VerifyResult{}, Error.Wrap(codec.ErrInvalidParameter.New("verify: no metadata given"))
	}
	size := len(metadata[0])
	for i, blob := range metadata {
		if len(blob) == 0 || len(blob) != size {
			return VerifyResult{}, Error.Wrap(codec.ErrInvalidFragmentMetadata.New("verify: metadata %d is %d bytes, expected %d", i, len(blob), size))
		}
	}

	result, err := d.codec.CheckMetadata(metadata)
	if err != nil {
		return VerifyResult{}, Error.Wrap(err)
	}
	if !result.OK {
		mon.Counter("stripes_failed_verification").Inc(1)
	}
	return result, nil
}
