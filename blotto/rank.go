// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package blotto

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// Mode selects the statistic players are ranked by.
type Mode int

const (
	// ByScore ranks by average points per game.
	ByScore Mode = iota
	// ByWins ranks by fraction of games won.
	ByWins
)

// ParseMode parses "score" or "win".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "score":
		return ByScore, nil
	case "win":
		return ByWins, nil
	}
	return 0, fmt.Errorf("%w: %q, expected score or win", ErrInvalidMode, s)
}

func (m Mode) String() string {
	switch m {
	case ByScore:
		return "score"
	case ByWins:
		return "win"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Value returns the statistic of r that m ranks by.
func (m Mode) Value(r Record) float64 {
	if m == ByWins {
		return r.WinRate()
	}
	return r.AverageScore()
}

// Rank sorts records in place, best first. Ties are broken by id.
func Rank(records []Record, mode Mode) {
	slices.SortFunc(records, func(a, b Record) bool {
		va, vb := mode.Value(a), mode.Value(b)
		if va != vb {
			return va > vb
		}
		return a.ID < b.ID
	})
}

// WriteRanking writes one line per record: the ranked statistic right
// aligned to three decimals, then the player id.
func WriteRanking(w io.Writer, records []Record, mode Mode) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%7.3f %s\n", mode.Value(r), r.ID); err != nil {
			return err
		}
	}
	return nil
}
