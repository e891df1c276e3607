// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"github.com/zeebo/mwc"

	"storj.io/common/memory"
	"storj.io/eclib"
)

func newBenchCmd(env *env) *cobra.Command {
	var (
		inst       instance
		encode     bool
		decode     bool
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "measure encode and decode throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations <= 0 {
				return errs.New("iterations must be > 0")
			}
			if inst.segmentSize <= 0 {
				return errs.New("segment size must be > 0")
			}
			if inst.unavailable < 0 || inst.unavailable > inst.k {
				return errs.New("cannot leave out %d of %d data fragments", inst.unavailable, inst.k)
			}

			size := inst.segmentSize.Int()
			data := randomBytes(size + iterations)
			megabytes := float64(iterations) * float64(size) / float64(memory.MiB)

			return inst.drivers(cmd, env, func(name string, w int, driver *eclib.Driver) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()

				stripe, err := driver.Encode(ctx, data[:size])
				if err != nil {
					return err
				}

				if encode || !decode {
					start := time.Now()
					for i := range iterations {
						if _, err := driver.Encode(ctx, data[i:i+size]); err != nil {
							return err
						}
					}
					printf(out, "%s (encode): %.1fMB/s\n", name, megabytes/time.Since(start).Seconds())
				}

				if decode || !encode {
					start := time.Now()
					for range iterations {
						if _, err := driver.Decode(ctx, benchSubset(name, stripe, inst.k, inst.unavailable), eclib.DecodeOptions{}); err != nil {
							printf(out, "%s (decode): %v\n", name, err)
							return nil
						}
					}
					printf(out, "%s (decode): %.1fMB/s\n", name, megabytes/time.Since(start).Seconds())
				}
				return nil
			})
		},
	}
	inst.register(cmd, memory.MiB)
	cmd.Flags().BoolVarP(&encode, "encode", "e", false, "only measure encoding")
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "only measure decoding")
	cmd.Flags().IntVarP(&iterations, "iterations", "i", 200, "number of encodes and decodes")
	return cmd
}

// benchSubset picks k-unavailable random data fragments and enough parity to
// decode. Flat XOR gets every parity fragment since a random choice may not
// cover the lost data.
func benchSubset(name string, stripe eclib.Stripe, k, unavailable int) []eclib.Fragment {
	data := sample(stripe[:k], k-unavailable)
	parity := stripe[k:]
	if !strings.HasPrefix(name, "flat_xor") {
		parity = sample(parity, min(unavailable, len(parity)))
	}
	return append(data, parity...)
}

// sample returns n fragments of list chosen at random.
func sample(list []eclib.Fragment, n int) []eclib.Fragment {
	pool := append([]eclib.Fragment(nil), list...)
	for i := range n {
		j := i + mwc.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func randomBytes(n int) []byte {
	buf := make([]byte, (n+7)&^7)
	for i := 0; i < len(buf); i += 8 {
		binary.LittleEndian.PutUint64(buf[i:], mwc.Uint64())
	}
	return buf[:n]
}
