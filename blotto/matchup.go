// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package blotto

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Matchup pairs two players for one game.
type Matchup struct {
	First, Second string
}

func (m Matchup) String() string {
	return m.First + " vs " + m.Second
}

// ReadMatchups reads one matchup per line from r, as two whitespace
// separated player ids. Blank lines are skipped and anything after the
// second id is ignored.
func ReadMatchups(r io.Reader) ([]Matchup, error) {
	var matchups []Matchup
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		fields := strings.Fields(s.Text())
		switch len(fields) {
		case 0:
			continue
		case 1:
			return nil, fmt.Errorf("%w: line %d: missing second id after %q",
				ErrInvalidMatchup, line, fields[0])
		}
		for _, id := range fields[:2] {
			if err := validateID(id); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidMatchup, line, err)
			}
		}
		matchups = append(matchups, Matchup{First: fields[0], Second: fields[1]})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading matchups: %w", err)
	}
	return matchups, nil
}
