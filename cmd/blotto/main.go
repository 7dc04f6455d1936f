// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The blotto command scores a Colonel Blotto tournament. Player entries
// are read from standard input, one per line as "id,units,units,...", and
// matchups from a file with two player ids per line. Players are printed
// best first, ranked by average score or by win rate.
//
// Usage:
//
//	blotto [flags] <matchups-file> <score|win> <worth>... < entries.csv
//
// All positional arguments may instead come from a YAML file given with
// -config:
//
//	matchups: matchups.txt
//	mode: win
//	worths: [1, 2, 3, 4]
//	hash: xxhash
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aristanetworks/blotto/blotto"
	"github.com/aristanetworks/blotto/glog"
	"github.com/aristanetworks/blotto/logger"
	"github.com/aristanetworks/blotto/smap"

	aglog "github.com/aristanetworks/glog"
	"golang.org/x/sync/errgroup"
)

func main() {
	configFlag := flag.String("config", "", "YAML config `file` supplying matchups, mode and worths")
	hashFlag := flag.String("hash", "", "hash function of the player tables: default or xxhash")
	metricsFlag := flag.String("metrics-file", "",
		"write table statistics in Prometheus text format to `file`")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] <matchups-file> <score|win> <worth>... < entries\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := &Config{}
	if *configFlag != "" {
		var err error
		if cfg, err = loadConfig(*configFlag); err != nil {
			aglog.Fatal(err)
		}
	}
	if err := cfg.applyArgs(flag.Args()); err != nil {
		aglog.Fatal(err)
	}
	if *hashFlag != "" {
		cfg.Hash = *hashFlag
	}
	if *metricsFlag != "" {
		cfg.MetricsFile = *metricsFlag
	}
	s, err := cfg.settings()
	if err != nil {
		flag.Usage()
		aglog.Fatal(err)
	}
	if err := run(s, os.Stdin, os.Stdout, &glog.Glog{InfoLevel: 1}); err != nil {
		aglog.Fatal(err)
	}
	aglog.Flush()
}

func run(s *settings, entriesIn io.Reader, out io.Writer, log logger.Logger) error {
	f, err := os.Open(s.matchups)
	if err != nil {
		return fmt.Errorf("Could not open %s: %w", s.matchups, err)
	}
	defer f.Close()

	var (
		entries  []blotto.Entry
		matchups []blotto.Matchup
		g        errgroup.Group
	)
	g.Go(func() error {
		var err error
		entries, err = blotto.ReadEntries(entriesIn, len(s.worths))
		return err
	})
	g.Go(func() error {
		var err error
		matchups, err = blotto.ReadMatchups(f)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	opts := append([]smap.Option{smap.WithLogger(log)}, s.opts...)
	t, err := blotto.NewTournament(s.worths, s.hash, log, opts...)
	if err != nil {
		return err
	}
	defer t.Close()

	for _, e := range entries {
		if err := t.AddEntry(e); err != nil {
			return err
		}
	}
	if t.Players() == 0 {
		return errors.New("no entries")
	}
	for i, m := range matchups {
		if err := t.Play(m); err != nil {
			return fmt.Errorf("matchup %d: %w", i+1, err)
		}
	}
	log.Infof("played %d matchups between %d players", len(matchups), t.Players())

	records := t.Records()
	blotto.Rank(records, s.mode)
	if err := blotto.WriteRanking(out, records, s.mode); err != nil {
		return err
	}

	if s.metrics != "" {
		if err := writeMetrics(s.metrics, newCollector(t, len(matchups))); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
