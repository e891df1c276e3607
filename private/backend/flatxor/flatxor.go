// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package flatxor implements flat XOR codes with a fixed Hamming distance.
//
// Every parity fragment is the XOR of a subset of the data fragments. Data
// fragment i is covered by the parities in its column. A code of distance
// hd survives any hd-1 erasures, which holds when every hd-1 columns of
// [columns | I] are linearly independent over GF(2):
//
//   - hd 3: columns are distinct with at least two parities each.
//   - hd 4: columns additionally have odd weight.
//
// Columns are chosen lightest first so that most rebuilds read few
// fragments.
package flatxor

import (
	"crypto/subtle"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"storj.io/eclib/private/backend/blockcodec"
	"storj.io/eclib/private/codec"
)

// Open returns a flat XOR backend for scheme. scheme.HD must be 3 or 4.
func Open(name string, scheme codec.Scheme) (*blockcodec.Backend, error) {
	code, err := NewCode(scheme.K, scheme.M, scheme.HD)
	if err != nil {
		return nil, codec.ErrBackendInitialization.New("%s: %v", name, err)
	}
	return blockcodec.New(name, scheme, code), nil
}

// Code is the parity layout of a flat XOR code.
type Code struct {
	k, m, hd int

	// columns[i] holds the parities covering data fragment i.
	columns []*bitset.BitSet
	// members[j] lists the data fragments XORed into parity j.
	members [][]int
}

// NewCode builds the code for k data and m parity fragments.
func NewCode(k, m, hd int) (*Code, error) {
	if hd != 3 && hd != 4 {
		return nil, codec.ErrInvalidParameter.New("hamming distance %d is not supported", hd)
	}
	if k < 1 || m < hd-1 {
		return nil, codec.ErrInvalidParameter.New("hd=%d needs k >= 1 and m >= %d, got k=%d m=%d", hd, hd-1, k, m)
	}

	c := &Code{k: k, m: m, hd: hd, members: make([][]int, m)}

	step := 1
	if hd == 4 {
		step = 2
	}
	for weight := hd - 1; weight <= m && len(c.columns) < k; weight += step {
		combinations(m, weight, func(parities []int) bool {
			column := bitset.New(uint(m))
			for _, j := range parities {
				column.Set(uint(j))
			}
			c.columns = append(c.columns, column)
			return len(c.columns) < k
		})
	}
	if len(c.columns) < k {
		return nil, codec.ErrInvalidParameter.New("hd=%d with m=%d supports at most %d data fragments, got k=%d", hd, m, len(c.columns), k)
	}

	for i, column := range c.columns {
		for j, ok := column.NextSet(0); ok; j, ok = column.NextSet(j + 1) {
			c.members[j] = append(c.members[j], i)
		}
	}
	return c, nil
}

// Column returns the parity indices, relative to k, covering data i.
func (c *Code) Column(i int) []int {
	return setIndices(c.columns[i])
}

// combinations calls fn with every weight sized subset of [0, n) in
// lexicographic order until fn returns false.
func combinations(n, weight int, fn func([]int) bool) {
	idx := make([]int, weight)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := weight - 1
		for i >= 0 && idx[i] == n-weight+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < weight; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Encode implements blockcodec.Math.
func (c *Code) Encode(blocks [][]byte) error {
	for j, members := range c.members {
		parity := blocks[c.k+j]
		clear(parity)
		for _, i := range members {
			subtle.XORBytes(parity, parity, blocks[i])
		}
	}
	return nil
}

// ReconstructData implements blockcodec.Math.
func (c *Code) ReconstructData(blocks [][]byte) error {
	c.solve(blocks)
	var missing []int
	for i, block := range blocks[:c.k] {
		if block == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return codec.ErrInsufficientFragments.New("data fragments %v cannot be recovered", missing)
	}
	return nil
}

// Reconstruct implements blockcodec.Math. Parity is recomputed from its
// data fragments, which are recovered first when missing.
func (c *Code) Reconstruct(blocks [][]byte, index int) error {
	if index < c.k {
		c.solve(blocks)
		if blocks[index] == nil {
			return codec.ErrInsufficientFragments.New("data fragment %d cannot be recovered", index)
		}
		return nil
	}

	j := index - c.k
	for _, i := range c.members[j] {
		if blocks[i] == nil {
			c.solve(blocks)
			break
		}
	}

	parity := make([]byte, blockSize(blocks))
	for _, i := range c.members[j] {
		if blocks[i] == nil {
			return codec.ErrInsufficientFragments.New("parity fragment %d needs data fragment %d", index, i)
		}
		subtle.XORBytes(parity, parity, blocks[i])
	}
	blocks[index] = parity
	return nil
}

// FragmentsNeeded implements blockcodec.Math. Each target is rebuilt from a
// single parity equation when one is fully readable. Otherwise every
// readable fragment is requested, provided the target is recoverable.
func (c *Code) FragmentsNeeded(targets, excludes []int) ([]int, error) {
	total := uint(c.k + c.m)
	unavailable := bitset.New(total)
	for _, idx := range targets {
		unavailable.Set(uint(idx))
	}
	for _, idx := range excludes {
		unavailable.Set(uint(idx))
	}

	needed := bitset.New(total)
	for t, ok := unavailable.NextSet(0); ok; t, ok = unavailable.NextSet(t + 1) {
		if !slices.Contains(targets, int(t)) {
			continue
		}
		if plan := c.localPlan(int(t), unavailable); plan != nil {
			needed.InPlaceUnion(plan)
			continue
		}
		if !c.recoverable(int(t), unavailable) {
			return nil, codec.ErrInsufficientFragments.New("fragment %d cannot be rebuilt without %v", t, setIndices(unavailable))
		}
		for idx := uint(0); idx < total; idx++ {
			if !unavailable.Test(idx) {
				needed.Set(idx)
			}
		}
	}
	return setIndices(needed), nil
}

// MinParityFragmentsNeeded implements blockcodec.Math.
func (c *Code) MinParityFragmentsNeeded() int { return 1 }

// localPlan returns the smallest single equation able to rebuild target
// from available fragments, or nil.
func (c *Code) localPlan(target int, unavailable *bitset.BitSet) *bitset.BitSet {
	total := uint(c.k + c.m)
	readable := func(plan *bitset.BitSet) bool {
		return plan.IntersectionCardinality(unavailable) == 0
	}

	if target >= c.k {
		plan := bitset.New(total)
		for _, i := range c.members[target-c.k] {
			plan.Set(uint(i))
		}
		if readable(plan) {
			return plan
		}
		return nil
	}

	var best *bitset.BitSet
	column := c.columns[target]
	for j, ok := column.NextSet(0); ok; j, ok = column.NextSet(j + 1) {
		plan := bitset.New(total)
		plan.Set(uint(c.k) + j)
		for _, i := range c.members[j] {
			if i != target {
				plan.Set(uint(i))
			}
		}
		if readable(plan) && (best == nil || plan.Count() < best.Count()) {
			best = plan
		}
	}
	return best
}

// recoverable reports whether target can be rebuilt when unavailable
// fragments are lost.
func (c *Code) recoverable(target int, unavailable *bitset.BitSet) bool {
	blocks := make([][]byte, c.k+c.m)
	present := []byte{}
	for i := range blocks {
		if !unavailable.Test(uint(i)) {
			blocks[i] = present
		}
	}
	solved := c.eliminate(blocks, false)

	if target < c.k {
		return blocks[target] != nil || solved[target]
	}
	for _, i := range c.members[target-c.k] {
		if blocks[i] == nil && !solved[i] {
			return false
		}
	}
	return true
}

// solve fills every missing data block that the present fragments
// determine.
func (c *Code) solve(blocks [][]byte) {
	c.eliminate(blocks, true)
}

type equation struct {
	unknowns *bitset.BitSet
	value    []byte
}

// eliminate runs Gauss-Jordan elimination over the erased data fragments
// using the equations of the present parities. It reports which data
// fragments are determined and, when fill is set, writes them into blocks.
func (c *Code) eliminate(blocks [][]byte, fill bool) []bool {
	var erased []int
	column := make(map[int]uint)
	for i, block := range blocks[:c.k] {
		if block == nil {
			column[i] = uint(len(erased))
			erased = append(erased, i)
		}
	}
	solved := make([]bool, c.k)
	if len(erased) == 0 {
		return solved
	}

	size := blockSize(blocks)
	var rows []equation
	for j, members := range c.members {
		parity := blocks[c.k+j]
		if parity == nil {
			continue
		}
		row := equation{unknowns: bitset.New(uint(len(erased)))}
		if fill {
			row.value = make([]byte, size)
			copy(row.value, parity)
		}
		for _, i := range members {
			if blocks[i] == nil {
				row.unknowns.Set(column[i])
			} else if fill {
				subtle.XORBytes(row.value, row.value, blocks[i])
			}
		}
		if row.unknowns.Any() {
			rows = append(rows, row)
		}
	}

	pivots := make([]int, len(erased))
	next := 0
	for col := range erased {
		pivots[col] = -1
		sel := -1
		for r := next; r < len(rows); r++ {
			if rows[r].unknowns.Test(uint(col)) {
				sel = r
				break
			}
		}
		if sel < 0 {
			continue
		}
		rows[next], rows[sel] = rows[sel], rows[next]
		for r := range rows {
			if r == next || !rows[r].unknowns.Test(uint(col)) {
				continue
			}
			rows[r].unknowns.InPlaceSymmetricDifference(rows[next].unknowns)
			if fill {
				subtle.XORBytes(rows[r].value, rows[r].value, rows[next].value)
			}
		}
		pivots[col] = next
		next++
	}

	for col, r := range pivots {
		if r < 0 || rows[r].unknowns.Count() != 1 {
			continue
		}
		solved[erased[col]] = true
		if fill {
			blocks[erased[col]] = rows[r].value
		}
	}
	return solved
}

func blockSize(blocks [][]byte) int {
	for _, block := range blocks {
		if block != nil {
			return len(block)
		}
	}
	return 0
}

func setIndices(set *bitset.BitSet) []int {
	indices := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		indices = append(indices, int(i))
	}
	return indices
}
