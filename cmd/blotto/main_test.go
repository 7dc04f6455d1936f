// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aristanetworks/blotto/blotto"
	"github.com/aristanetworks/blotto/logger"
	"github.com/kylelemons/godebug/pretty"
)

func TestConfig(t *testing.T) {
	if _, err := loadConfig("/nonexistent.yaml"); err == nil {
		t.Fatal("Managed to load a nonexistent config!")
	}
	cfg, err := parseConfig([]byte(`
matchups: games.txt
mode: win
worths: [1, 2, 3]
hash: xxhash
initial-capacity: 16
metrics-file: /tmp/blotto.prom
`))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Matchups:        "games.txt",
		Mode:            "win",
		Worths:          []int{1, 2, 3},
		Hash:            "xxhash",
		InitialCapacity: 16,
		MetricsFile:     "/tmp/blotto.prom",
	}
	if d := pretty.Compare(want, cfg); d != "" {
		t.Errorf("unexpected config (-want +got):\n%s", d)
	}

	if _, err := parseConfig([]byte("worth: [1]\n")); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestApplyArgs(t *testing.T) {
	cfg := &Config{Matchups: "a.txt", Mode: "win", Worths: []int{9}}
	if err := cfg.applyArgs([]string{"b.txt", "score", "1", "2"}); err != nil {
		t.Fatal(err)
	}
	want := &Config{Matchups: "b.txt", Mode: "score", Worths: []int{1, 2}}
	if d := pretty.Compare(want, cfg); d != "" {
		t.Errorf("unexpected config (-want +got):\n%s", d)
	}

	cfg = &Config{Matchups: "a.txt", Mode: "win", Worths: []int{9}}
	if err := cfg.applyArgs([]string{"b.txt"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "win" || len(cfg.Worths) != 1 {
		t.Errorf("config fields overridden by missing args: %+v", cfg)
	}

	if err := cfg.applyArgs([]string{"b.txt", "win", "one"}); err == nil {
		t.Error("non-numeric worth accepted")
	}
}

func TestSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{{
		name: "complete",
		cfg:  Config{Matchups: "m", Mode: "score", Worths: []int{1}},
		ok:   true,
	}, {
		name: "no matchups",
		cfg:  Config{Mode: "score", Worths: []int{1}},
	}, {
		name: "no worths",
		cfg:  Config{Matchups: "m", Mode: "score"},
	}, {
		name: "no mode",
		cfg:  Config{Matchups: "m", Worths: []int{1}},
	}, {
		name: "bad mode",
		cfg:  Config{Matchups: "m", Mode: "points", Worths: []int{1}},
	}, {
		name: "bad hash",
		cfg:  Config{Matchups: "m", Mode: "win", Worths: []int{1}, Hash: "md5"},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.settings()
			if (err == nil) != tc.ok {
				t.Errorf("settings() error = %v, expected ok=%t", err, tc.ok)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runWith(t *testing.T, cfg Config, entries string) (string, error) {
	t.Helper()
	s, err := cfg.settings()
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = run(s, strings.NewReader(entries), &out, logger.Nop)
	return out.String(), err
}

const testEntries = "alice,5,5,0\nbob,10,0,0\ncarol,0,0,10\ndave,4,3,3\n"

const testMatchups = "alice bob\nbob carol\ncarol dave\ndave alice\nalice carol\n"

func TestRun(t *testing.T) {
	dir := t.TempDir()
	matchups := writeFile(t, dir, "matchups.txt", testMatchups)

	// alice-bob 1.5-1.5, bob-carol 1.5-1.5, carol-dave 1-2,
	// dave-alice 1-2, alice-carol 2-1.
	tests := []struct {
		mode string
		hash string
		want string
	}{{
		mode: "score",
		want: "  1.833 alice\n" +
			"  1.500 bob\n" +
			"  1.500 dave\n" +
			"  1.167 carol\n",
	}, {
		mode: "win",
		hash: "xxhash",
		want: "  0.833 alice\n" +
			"  0.500 bob\n" +
			"  0.500 dave\n" +
			"  0.167 carol\n",
	}}
	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			cfg := Config{Matchups: matchups, Mode: tc.mode, Worths: []int{1, 1, 1},
				Hash: tc.hash}
			got, err := runWith(t, cfg, testEntries)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got:\n%s\nexpected:\n%s", got, tc.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	matchups := writeFile(t, dir, "matchups.txt", testMatchups)
	ghost := writeFile(t, dir, "ghost.txt", "alice ghost\n")
	cfg := Config{Matchups: matchups, Mode: "score", Worths: []int{1, 1, 1}}

	tests := []struct {
		name    string
		cfg     Config
		entries string
		err     error
	}{{
		name:    "inconsistent wallet",
		cfg:     cfg,
		entries: "alice,5,5,0\nbob,5,5,5\n",
		err:     blotto.ErrInconsistentWallet,
	}, {
		name:    "duplicate entry",
		cfg:     cfg,
		entries: testEntries + "alice,0,0,10\n",
		err:     blotto.ErrDuplicateEntry,
	}, {
		name:    "malformed entry",
		cfg:     cfg,
		entries: "alice,5,5\n",
		err:     blotto.ErrInvalidEntry,
	}, {
		name:    "unknown player",
		cfg:     Config{Matchups: ghost, Mode: "win", Worths: []int{1, 1, 1}},
		entries: testEntries,
		err:     blotto.ErrUnknownPlayer,
	}, {
		name:    "missing matchup file",
		cfg:     Config{Matchups: filepath.Join(dir, "nope"), Mode: "win", Worths: []int{1}},
		entries: testEntries,
		err:     os.ErrNotExist,
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runWith(t, tc.cfg, tc.entries)
			if err == nil {
				t.Fatal("run succeeded")
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}

	if _, err := runWith(t, cfg, ""); err == nil {
		t.Error("run succeeded without entries")
	}
}

func TestRunMetrics(t *testing.T) {
	dir := t.TempDir()
	matchups := writeFile(t, dir, "matchups.txt", testMatchups)
	metrics := filepath.Join(dir, "blotto.prom")
	cfg := Config{Matchups: matchups, Mode: "score", Worths: []int{1, 1, 1},
		InitialCapacity: 4, MetricsFile: metrics}
	if _, err := runWith(t, cfg, testEntries); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		`blotto_players 4`,
		`blotto_matchups_total 5`,
		`blotto_table_entries{table="records"} 4`,
		`blotto_table_capacity{table="allocations"} 8`,
		`blotto_table_resizes_total{kind="grow",table="allocations"} 1`,
	} {
		if !strings.Contains(string(b), line+"\n") {
			t.Errorf("metrics file is missing %q:\n%s", line, b)
		}
	}
}
