// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"bytes"
	"context"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/common/memory"
	"storj.io/common/sync2"
	"storj.io/eclib"
)

func newVerifyCmd(env *env) *cobra.Command {
	var inst instance

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "decode every combination of fragments with some left out",
		Long:  "Exits with 3 when any decode returned wrong data and 1 when any decode failed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inst.segmentSize < 0 {
				return errs.New("segment size must be >= 0")
			}
			data := randomBytes(inst.segmentSize.Int())

			var totalFailures, totalCorrupt int64
			err := inst.drivers(cmd, env, func(name string, w int, driver *eclib.Driver) error {
				stripe, err := driver.Encode(cmd.Context(), data)
				if err != nil {
					return err
				}
				stats, err := checkDriver(cmd.Context(), env.log, driver, stripe, inst.unavailable, data)
				if err != nil {
					return err
				}
				totalFailures += stats.failures
				totalCorrupt += stats.corrupt

				printf(cmd.OutOrStdout(), "%-*s combinations=%d, failures=%d, corrupt=%d\n",
					w, name, stats.combinations, stats.failures, stats.corrupt)
				return nil
			})
			switch {
			case err != nil:
				return err
			case totalCorrupt > 0:
				return exitWith(3)
			case totalFailures > 0:
				return exitWith(1)
			}
			return nil
		},
	}
	inst.register(cmd, memory.KiB)
	return cmd
}

type verifyStats struct {
	combinations int64
	failures     int64
	corrupt      int64
}

// checkDriver decodes every subset of stripe with unavailable fragments
// left out and compares the result with data.
func checkDriver(ctx context.Context, log *zap.Logger, driver *eclib.Driver, stripe eclib.Stripe, unavailable int, data []byte) (verifyStats, error) {
	if unavailable < 0 || unavailable > len(stripe) {
		return verifyStats{}, errs.New("cannot leave out %d of %d fragments", unavailable, len(stripe))
	}

	var combinations, failures, corrupt atomic.Int64

	limiter := sync2.NewLimiter(runtime.GOMAXPROCS(0))
	eachCombination(len(stripe), len(stripe)-unavailable, func(indices []int) {
		subset := make([]eclib.Fragment, len(indices))
		for i, idx := range indices {
			subset[i] = stripe[idx]
		}

		limiter.Go(ctx, func() {
			combinations.Add(1)
			out, err := driver.Decode(ctx, subset, eclib.DecodeOptions{})
			switch {
			case err != nil:
				log.Debug("decode failed", zap.Ints("fragments", indices), zap.Error(err))
				failures.Add(1)
			case !bytes.Equal(out, data):
				log.Warn("decode returned wrong data", zap.Ints("fragments", indices))
				corrupt.Add(1)
			}
		})
	})
	limiter.Wait()

	return verifyStats{
		combinations: combinations.Load(),
		failures:     failures.Load(),
		corrupt:      corrupt.Load(),
	}, ctx.Err()
}

// eachCombination calls fn with every r element subset of [0, n) in
// lexicographic order. fn gets its own copy of the indices.
func eachCombination(n, r int, fn func([]int)) {
	if r < 0 || r > n {
		return
	}
	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}
	for {
		fn(append([]int(nil), indices...))

		i := r - 1
		for i >= 0 && indices[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < r; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
