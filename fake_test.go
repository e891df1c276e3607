// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib_test

import (
	"sync"
	"sync/atomic"

	"storj.io/eclib"
	"storj.io/eclib/private/backend"
	"storj.io/eclib/private/codec"
)

// counting forwards to a real backend and counts the calls that reach it.
type counting struct {
	codec.Codec
	decodes      atomic.Int64
	reconstructs atomic.Int64

	mu    sync.Mutex
	order []int
	seen  []int
}

func (c *counting) Decode(fragments []codec.Fragment, fragmentLen int, ranges []codec.ByteRange, force bool) ([][]byte, error) {
	c.decodes.Add(1)
	return c.Codec.Decode(fragments, fragmentLen, ranges, force)
}

func (c *counting) ReconstructOne(fragments []codec.Fragment, fragmentLen int, index int) (codec.Fragment, error) {
	c.reconstructs.Add(1)

	c.mu.Lock()
	c.order = append(c.order, index)
	c.seen = append(c.seen, len(fragments))
	c.mu.Unlock()

	return c.Codec.ReconstructOne(fragments, fragmentLen, index)
}

// partial implements only part of the codec interface.
type partial struct{}

func (partial) Name() string { return "partial" }

func (partial) Encode(data []byte) ([]codec.Fragment, error) { return nil, nil }

func (partial) SegmentInfo(dataLen, segmentSize int64) (codec.SegmentInfo, error) {
	return codec.SegmentInfo{}, nil
}

var lastCounting struct {
	mu sync.Mutex
	c  *counting
}

func latestCounting() *counting {
	lastCounting.mu.Lock()
	defer lastCounting.mu.Unlock()
	return lastCounting.c
}

func init() {
	eclib.RegisterBackend("counting", func(scheme codec.Scheme) (codec.Backend, error) {
		scheme.Type = codec.FlatXorHD3
		scheme.HD = 3
		b, err := backend.Open(scheme)
		if err != nil {
			return nil, err
		}
		c := &counting{Codec: b.(codec.Codec)}

		lastCounting.mu.Lock()
		lastCounting.c = c
		lastCounting.mu.Unlock()
		return c, nil
	})

	eclib.RegisterBackend("partial", func(scheme codec.Scheme) (codec.Backend, error) {
		return partial{}, nil
	})

	eclib.RegisterBackend("broken", func(scheme codec.Scheme) (codec.Backend, error) {
		return nil, codec.ErrInvalidParameter.New("broken on purpose")
	})
}
