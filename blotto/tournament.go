// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package blotto

import (
	"fmt"

	"github.com/aristanetworks/blotto/logger"
	"github.com/aristanetworks/blotto/smap"
)

// Record accumulates one player's results.
type Record struct {
	ID    string
	Score float64
	// Wins counts a tie as half a win.
	Wins  float64
	Games float64
}

// AverageScore returns the mean points per game, or 0 if no games were played.
func (r Record) AverageScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return r.Score / r.Games
}

// WinRate returns the fraction of games won, or 0 if no games were played.
func (r Record) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return r.Wins / r.Games
}

// Tournament holds every player's allocation and running record.
type Tournament struct {
	worths []int
	wallet int
	log    logger.Logger

	allocations *smap.Map[[]int]
	records     *smap.Map[*Record]
}

// NewTournament creates a tournament over battlefields of the given worths.
// Both player tables hash ids with hash; opts are passed to smap.New.
func NewTournament(worths []int, hash smap.HashFunc, log logger.Logger,
	opts ...smap.Option) (*Tournament, error) {
	if len(worths) == 0 {
		return nil, fmt.Errorf("no battlefields")
	}
	for i, w := range worths {
		if w < 0 {
			return nil, fmt.Errorf("battlefield %d has negative worth %d", i, w)
		}
	}
	if log == nil {
		log = logger.Nop
	}
	allocations, err := smap.New[[]int](hash, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating allocation table: %w", err)
	}
	records, err := smap.New[*Record](hash, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating record table: %w", err)
	}
	return &Tournament{
		worths:      worths,
		wallet:      -1,
		log:         log,
		allocations: allocations,
		records:     records,
	}, nil
}

// Battlefields returns the number of battlefields.
func (t *Tournament) Battlefields() int {
	return len(t.worths)
}

// Players returns the number of entries added.
func (t *Tournament) Players() int {
	return t.allocations.Len()
}

// AddEntry registers a player. The first entry fixes the wallet every
// later entry must spend exactly.
func (t *Tournament) AddEntry(e Entry) error {
	if len(e.Distribution) != len(t.worths) {
		return fmt.Errorf("%w: %q has %d allocations, expected %d",
			ErrInvalidEntry, e.ID, len(e.Distribution), len(t.worths))
	}
	if err := validateID(e.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if t.allocations.ContainsKey(e.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateEntry, e.ID)
	}
	units := e.Units()
	if t.wallet < 0 {
		t.wallet = units
	} else if units != t.wallet {
		return fmt.Errorf("%w: %q spends %d units, expected %d",
			ErrInconsistentWallet, e.ID, units, t.wallet)
	}
	if err := t.allocations.Put(e.ID, e.Distribution); err != nil {
		return err
	}
	if err := t.records.Put(e.ID, &Record{ID: e.ID}); err != nil {
		t.allocations.Remove(e.ID)
		return err
	}
	return nil
}

// Play scores one matchup and updates both players' records.
func (t *Tournament) Play(m Matchup) error {
	a, ok := t.allocations.Get(m.First)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, m.First)
	}
	b, ok := t.allocations.Get(m.Second)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, m.Second)
	}
	pa, pb := Battle(a, b, t.worths)

	ra, _ := t.records.Get(m.First)
	rb, _ := t.records.Get(m.Second)
	ra.Score += pa
	rb.Score += pb
	switch {
	case pa > pb:
		ra.Wins++
	case pa < pb:
		rb.Wins++
	default:
		ra.Wins += 0.5
		rb.Wins += 0.5
	}
	ra.Games++
	rb.Games++
	t.log.Infof("%s: %g-%g", m, pa, pb)
	return nil
}

// Records returns a copy of every player's record, in table order.
func (t *Tournament) Records() []Record {
	keys := t.records.Keys()
	records := make([]Record, 0, len(keys))
	for _, id := range keys {
		r, _ := t.records.Get(id)
		records = append(records, *r)
	}
	return records
}

// TableStats describes the two tables backing a Tournament.
type TableStats struct {
	Allocations smap.Stats
	Records     smap.Stats
}

// Stats returns statistics for both player tables.
func (t *Tournament) Stats() TableStats {
	return TableStats{
		Allocations: t.allocations.Stats(),
		Records:     t.records.Stats(),
	}
}

// Close releases both player tables.
func (t *Tournament) Close() {
	t.allocations.Destroy()
	t.records.Destroy()
}
