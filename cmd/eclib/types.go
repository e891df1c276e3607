// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"storj.io/common/memory"
	"storj.io/eclib"
)

// abbreviations maps shorthand names to the prefix of the families they
// stand for.
var abbreviations = map[string]string{
	"all":      "",
	"isa-l":    "isa_l_",
	"isa_l":    "isa_l_",
	"isal":     "isa_l_",
	"jerasure": "jerasure_",
	"flat-xor": "flat_xor_",
	"flat_xor": "flat_xor_",
	"flatxor":  "flat_xor_",
	"xor":      "flat_xor_",
}

// expandTypes resolves abbreviations and returns the sorted, deduplicated
// family names. No names means all of them.
func expandTypes(names []string) []string {
	if len(names) == 0 {
		names = []string{"all"}
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		prefix, ok := abbreviations[name]
		if !ok {
			set[name] = struct{}{}
			continue
		}
		for _, t := range eclib.AllTypes() {
			if strings.HasPrefix(t.String(), prefix) {
				set[t.String()] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// availability describes name as one of "unknown", "missing" or "available".
func availability(name string) string {
	t, ok := eclib.ParseType(name)
	switch {
	case !ok:
		return "unknown"
	case !eclib.Available(t):
		return "missing"
	default:
		return "available"
	}
}

func width(names []string) int {
	w := 0
	for _, name := range names {
		w = max(w, len(name))
	}
	return w
}

// instance holds the flags that describe the drivers a command binds.
type instance struct {
	types       []string
	k, m        int
	unavailable int
	segmentSize memory.Size
}

func (inst *instance) register(cmd *cobra.Command, segmentSize memory.Size) {
	inst.segmentSize = segmentSize

	flags := cmd.Flags()
	flags.StringArrayVar(&inst.types, "ec-type", nil, "codec family or abbreviation, may be repeated (default all)")
	flags.IntVarP(&inst.k, "n-data", "k", 10, "number of data fragments")
	flags.IntVarP(&inst.m, "n-parity", "m", 5, "number of parity fragments")
	flags.IntVarP(&inst.unavailable, "unavailable", "u", 2, "number of fragments to leave out")
	flags.VarP(&inst.segmentSize, "segment-size", "s", "size of the encoded data")
}

// drivers binds a driver for every requested family, reporting the ones
// that cannot be bound to w. fn is called with every bound driver.
func (inst *instance) drivers(cmd *cobra.Command, env *env, fn func(name string, w int, driver *eclib.Driver) error) error {
	names := expandTypes(inst.types)
	w := width(names)
	out := cmd.OutOrStdout()

	printf(out, "Using %d data + %d parity with %d unavailable frags\n", inst.k, inst.m, inst.unavailable)

	for _, name := range names {
		switch availability(name) {
		case "unknown":
			printf(out, "%-*s unknown\n", w, name)
			continue
		case "missing":
			printf(out, "%-*s not available\n", w, name)
			continue
		}

		driver, err := eclib.NewDriver(cmd.Context(), eclib.Config{
			K:    inst.k,
			M:    inst.m,
			Type: name,
			Log:  env.log,
		})
		if err != nil {
			env.log.Debug(err.Error())
			printf(out, "%-*s could not be instantiated\n", w, name)
			continue
		}
		if err := fn(name, w, driver); err != nil {
			return err
		}
	}
	return nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
