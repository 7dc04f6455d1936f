// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package blotto scores Colonel Blotto tournaments: it reads player
// allocations and matchups, plays each matchup battlefield by battlefield,
// and ranks the players.
package blotto

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxIDLength is the longest player id accepted, in bytes.
const MaxIDLength = 32

var (
	// ErrInvalidEntry is returned for a malformed player record.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrDuplicateEntry is returned when a player id is entered twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrInconsistentWallet is returned when a player's allocations do not
	// add up to the same total as the first player's.
	ErrInconsistentWallet = errors.New("inconsistent wallet")
	// ErrInvalidMatchup is returned for a malformed matchup line.
	ErrInvalidMatchup = errors.New("invalid matchup")
	// ErrUnknownPlayer is returned when a matchup names a player with no entry.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrInvalidMode is returned by ParseMode.
	ErrInvalidMode = errors.New("invalid mode")
)

// Entry is one player's allocation of units across the battlefields.
type Entry struct {
	ID           string
	Distribution []int
}

// Units returns the total number of units the entry allocates.
func (e Entry) Units() int {
	var total int
	for _, n := range e.Distribution {
		total += n
	}
	return total
}

func validateID(id string) error {
	switch {
	case id == "":
		return errors.New("empty id")
	case len(id) > MaxIDLength:
		return fmt.Errorf("id %q longer than %d characters", id, MaxIDLength)
	}
	return nil
}

// ReadEntries reads one entry per line from r. Each line holds the player
// id followed by one non-negative allocation per battlefield, separated by
// commas:
//
//	alice,5,5
//	bob,10,0
func ReadEntries(r io.Reader, battlefields int) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		line, _ := cr.FieldPos(0)
		e, err := parseEntry(record, battlefields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidEntry, line, err)
		}
		entries = append(entries, e)
	}
}

func parseEntry(record []string, battlefields int) (Entry, error) {
	id := strings.TrimSpace(record[0])
	if err := validateID(id); err != nil {
		return Entry{}, err
	}
	if len(record)-1 != battlefields {
		return Entry{}, fmt.Errorf("%q has %d allocations, expected %d",
			id, len(record)-1, battlefields)
	}
	e := Entry{ID: id, Distribution: make([]int, battlefields)}
	for i, field := range record[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return Entry{}, fmt.Errorf("%q battlefield %d: %v", id, i, err)
		}
		if n < 0 {
			return Entry{}, fmt.Errorf("%q battlefield %d: negative allocation %d", id, i, n)
		}
		e.Distribution[i] = n
	}
	return e, nil
}
