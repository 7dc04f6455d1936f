// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aristanetworks/blotto/blotto"
	"github.com/aristanetworks/blotto/smap"
	"gopkg.in/yaml.v2"
)

// Config is the representation of blotto's YAML config file. Positional
// command line arguments and flags override it.
type Config struct {
	// Matchups is the path of the matchup file.
	Matchups string `yaml:"matchups,omitempty"`

	// Mode is "score" or "win".
	Mode string `yaml:"mode,omitempty"`

	// Worths holds the value of each battlefield.
	Worths []int `yaml:"worths,omitempty"`

	// Hash names the hash function of the player tables.
	Hash string `yaml:"hash,omitempty"`

	// InitialCapacity of the player tables. Zero means smap.DefaultCapacity.
	InitialCapacity int `yaml:"initial-capacity,omitempty"`

	// MetricsFile, if set, receives table statistics in Prometheus text format.
	MetricsFile string `yaml:"metrics-file,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	cfg, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Can't read config file %q: %v", path, err)
	}
	return parseConfig(cfg)
}

func parseConfig(cfg []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(cfg, config); err != nil {
		return nil, fmt.Errorf("Failed to parse config: %v", err)
	}
	return config, nil
}

// applyArgs overrides the config with the positional arguments
// <matchups-file> <score|win> <worth>...
func (c *Config) applyArgs(args []string) error {
	if len(args) > 0 {
		c.Matchups = args[0]
	}
	if len(args) > 1 {
		c.Mode = args[1]
	}
	if len(args) > 2 {
		c.Worths = make([]int, len(args)-2)
		for i, arg := range args[2:] {
			w, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("battlefield %d: invalid worth %q", i, arg)
			}
			c.Worths[i] = w
		}
	}
	return nil
}

// settings is a validated Config.
type settings struct {
	matchups string
	mode     blotto.Mode
	worths   []int
	hash     smap.HashFunc
	opts     []smap.Option
	metrics  string
}

func (c *Config) settings() (*settings, error) {
	if c.Matchups == "" {
		return nil, fmt.Errorf("no matchup file given")
	}
	if len(c.Worths) == 0 {
		return nil, fmt.Errorf("no battlefield worths given")
	}
	if c.Mode == "" {
		return nil, fmt.Errorf("no ranking mode given")
	}
	mode, err := blotto.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	hashName := c.Hash
	if hashName == "" {
		hashName = "default"
	}
	hash, err := smap.LookupHash(hashName)
	if err != nil {
		return nil, err
	}
	s := &settings{
		matchups: c.Matchups,
		mode:     mode,
		worths:   c.Worths,
		hash:     hash,
		metrics:  c.MetricsFile,
	}
	if c.InitialCapacity != 0 {
		s.opts = append(s.opts, smap.WithInitialCapacity(c.InitialCapacity))
	}
	return s, nil
}
