// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package smap

import (
	"testing"
)

func TestDefaultHash(t *testing.T) {
	for s, want := range map[string]uint64{
		"":    0,
		"a":   97,
		"ab":  97*37 + 98,
		"abc": (97*37+98)*37 + 99,
	} {
		if got := DefaultHash(s); got != want {
			t.Errorf("DefaultHash(%q) = %d, expected %d", s, got, want)
		}
	}
	if DefaultHash("bob") != DefaultHash(string([]byte{'b', 'o', 'b'})) {
		t.Error("DefaultHash is not deterministic")
	}
}

func TestLookupHash(t *testing.T) {
	for _, name := range []string{"default", "xxhash"} {
		h, err := LookupHash(name)
		if err != nil {
			t.Errorf("LookupHash(%q): %s", name, err)
			continue
		}
		if h("alice") != h("alice") {
			t.Errorf("%s is not deterministic", name)
		}
	}
	if _, err := LookupHash("md5"); err == nil {
		t.Error("LookupHash(md5) succeeded")
	}
}
