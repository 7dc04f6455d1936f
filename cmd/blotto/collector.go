// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"github.com/aristanetworks/blotto/blotto"
	"github.com/aristanetworks/blotto/smap"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	capacityDesc = prometheus.NewDesc("blotto_table_capacity",
		"Number of slots in the player table.", []string{"table"}, nil)
	entriesDesc = prometheus.NewDesc("blotto_table_entries",
		"Number of live entries in the player table.", []string{"table"}, nil)
	tombstonesDesc = prometheus.NewDesc("blotto_table_tombstones",
		"Number of deleted slots awaiting compaction.", []string{"table"}, nil)
	resizesDesc = prometheus.NewDesc("blotto_table_resizes_total",
		"Number of times the player table was rehashed, by kind.", []string{"table", "kind"}, nil)
	probesDesc = prometheus.NewDesc("blotto_table_probes_total",
		"Number of slots examined by lookups and inserts.", []string{"table"}, nil)
	playersDesc = prometheus.NewDesc("blotto_players",
		"Number of players entered.", nil, nil)
	matchupsDesc = prometheus.NewDesc("blotto_matchups_total",
		"Number of matchups played.", nil, nil)
)

// collector exports the statistics of a tournament's tables.
type collector struct {
	tournament *blotto.Tournament
	matchups   int
}

func newCollector(t *blotto.Tournament, matchups int) *collector {
	return &collector{tournament: t, matchups: matchups}
}

// Describe implements prometheus.Collector.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{capacityDesc, entriesDesc, tombstonesDesc,
		resizesDesc, probesDesc, playersDesc, matchupsDesc} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.tournament.Stats()
	collectTable(ch, "allocations", stats.Allocations)
	collectTable(ch, "records", stats.Records)
	ch <- prometheus.MustNewConstMetric(playersDesc, prometheus.GaugeValue,
		float64(c.tournament.Players()))
	ch <- prometheus.MustNewConstMetric(matchupsDesc, prometheus.CounterValue,
		float64(c.matchups))
}

func collectTable(ch chan<- prometheus.Metric, table string, s smap.Stats) {
	ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue,
		float64(s.Capacity), table)
	ch <- prometheus.MustNewConstMetric(entriesDesc, prometheus.GaugeValue,
		float64(s.Len), table)
	ch <- prometheus.MustNewConstMetric(tombstonesDesc, prometheus.GaugeValue,
		float64(s.Tombstones), table)
	for kind, n := range map[string]uint64{
		"grow":    s.Grows,
		"shrink":  s.Shrinks,
		"compact": s.Compactions,
	} {
		ch <- prometheus.MustNewConstMetric(resizesDesc, prometheus.CounterValue,
			float64(n), table, kind)
	}
	ch <- prometheus.MustNewConstMetric(probesDesc, prometheus.CounterValue,
		float64(s.Probes), table)
}

func writeMetrics(path string, c *collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
