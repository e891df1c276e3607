// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"slices"
	"sort"
	"sync"

	"storj.io/eclib/private/backend"
	"storj.io/eclib/private/codec"
)

// ParseType resolves a codec family name.
func ParseType(name string) (EcType, bool) {
	return codec.ParseType(name)
}

// AllTypes returns every known codec family, available or not.
func AllTypes() []EcType {
	return codec.AllTypes()
}

var validTypes struct {
	once  sync.Once
	types []EcType
}

// ValidTypes returns the codec families that can be bound on this host.
// The families are probed once per process.
func ValidTypes() []EcType {
	validTypes.once.Do(func() {
		for _, t := range codec.AllTypes() {
			if backend.Probe(t) {
				validTypes.types = append(validTypes.types, t)
			}
		}
	})
	return slices.Clone(validTypes.types)
}

// Available reports whether codec family t can be bound on this host.
func Available(t EcType) bool {
	return slices.Contains(ValidTypes(), t)
}

var backends struct {
	mu      sync.RWMutex
	openers map[string]codec.Opener
}

// RegisterBackend makes a backend available by name through
// Config.Backend. It panics when called twice with the same name, or with
// an empty name or nil opener.
func RegisterBackend(name string, open codec.Opener) {
	backends.mu.Lock()
	defer backends.mu.Unlock()

	if name == "" {
		panic("eclib: RegisterBackend with empty name")
	}
	if open == nil {
		panic("eclib: RegisterBackend opener is nil for " + name)
	}
	if _, dup := backends.openers[name]; dup {
		panic("eclib: RegisterBackend called twice for " + name)
	}
	if backends.openers == nil {
		backends.openers = make(map[string]codec.Opener)
	}
	backends.openers[name] = open
}

// Backends returns the sorted names of registered backends.
func Backends() []string {
	backends.mu.RLock()
	defer backends.mu.RUnlock()

	names := make([]string, 0, len(backends.openers))
	for name := range backends.openers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupBackend(name string) (codec.Opener, bool) {
	backends.mu.RLock()
	defer backends.mu.RUnlock()

	open, ok := backends.openers[name]
	return open, ok
}
