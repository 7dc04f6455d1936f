// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package smap

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// HashFunc maps a key to the integer that seeds its probe sequence.
// It must be deterministic for the lifetime of a Map.
type HashFunc func(key string) uint64

// DefaultHash is a multiplicative string hash, h = h*37 + b over the
// key's bytes.
func DefaultHash(key string) uint64 {
	var h uint64
	for i := 0; i < len(key); i++ {
		h = h*37 + uint64(key[i])
	}
	return h
}

// XXHash hashes key with xxHash64.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

var hashes = map[string]HashFunc{
	"default": DefaultHash,
	"xxhash":  XXHash,
}

// LookupHash returns the hash function registered under name
// ("default" or "xxhash").
func LookupHash(name string) (HashFunc, error) {
	if h, ok := hashes[name]; ok {
		return h, nil
	}
	names := maps.Keys(hashes)
	slices.Sort(names)
	return nil, fmt.Errorf("smap: unknown hash %q, expected one of %v", name, names)
}
