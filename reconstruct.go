// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"context"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"storj.io/eclib/private/codec"
	"storj.io/eventkit"
)

// Reconstruct rebuilds the fragments at the missing indices from the
// available ones.
//
// Indices are rebuilt one at a time in ascending order, so every data
// fragment is rebuilt before any parity fragment, and each rebuilt fragment
// is available to the ones after it. The result follows that order. The
// call fails as a whole when any index cannot be rebuilt.
func (d *Driver) Reconstruct(ctx context.Context, available []Fragment, missing []int) (_ []Fragment, err error) {
	defer mon.Task()(&ctx)(&err)

	fragmentLen, ok := fragmentSize(available)
	if !ok {
		return nil, Error.Wrap(codec.ErrInvalidParameter.New("reconstruct: fragment payloads must have equal, non-zero length"))
	}

	order := slices.Clone(missing)
	slices.Sort(order)
	if err := d.checkIndices("missing", order); err != nil {
		return nil, err
	}
	for i := 1; i < len(order); i++ {
		if order[i] == order[i-1] {
			return nil, Error.Wrap(codec.ErrInvalidParameter.New("missing: fragment index %d repeated", order[i]))
		}
	}

	total := uint(d.scheme.Total())
	have := bitset.New(total)
	for _, f := range available {
		if f.Index >= 0 && uint(f.Index) < total {
			have.Set(uint(f.Index))
		}
	}

	working := slices.Clip(slices.Clone(available))
	rebuilt := make([]Fragment, 0, len(order))
	for _, idx := range order {
		f, err := d.codec.ReconstructOne(working, fragmentLen, idx)
		if err != nil {
			d.log.Debug("reconstruction failed",
				zap.Int("index", idx),
				zap.Uint("available", have.Count()),
				zap.Error(err))
			evs.Event("reconstruct-failure",
				eventkit.String("ec_type", d.scheme.Name()),
				eventkit.Int64("index", int64(idx)),
				eventkit.Int64("available", int64(have.Count())),
				eventkit.Int64("missing", int64(len(order))))
			return nil, Error.New("fragment %d: %w", idx, err)
		}
		if f.Index != idx || len(f.Payload) != fragmentLen {
			return nil, Error.New("backend %s rebuilt fragment %d as index %d with %d bytes, expected %d", d.codec.Name(), idx, f.Index, len(f.Payload), fragmentLen)
		}

		d.log.Debug("fragment rebuilt", zap.Int("index", idx), zap.Uint("available", have.Count()))
		mon.Counter("fragments_rebuilt").Inc(1)

		rebuilt = append(rebuilt, f)
		working = append(working, f)
		have.Set(uint(idx))
	}
	return rebuilt, nil
}
