// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package smap implements a string-keyed hash map using open addressing
// with linear probing and lazy (tombstone) deletion. The backing array
// doubles when more than half of it is live and halves when less than an
// eighth is live, never going below a configurable floor.
//
// A Map is not safe for concurrent use.
package smap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aristanetworks/blotto/logger"
)

// DefaultCapacity is the capacity of a Map created without
// WithInitialCapacity.
const DefaultCapacity = 100

var (
	// ErrAllocationFailure is returned when a backing array cannot be
	// allocated, either because it would exceed the map's maximum capacity
	// or because the runtime refused the allocation.
	ErrAllocationFailure = errors.New("smap: allocation failure")
	// ErrCapacityExhausted is returned by Put when a new key cannot be
	// stored because the table is full and could not grow.
	ErrCapacityExhausted = errors.New("smap: capacity exhausted")
	// ErrDestroyed is returned by Put on a destroyed map.
	ErrDestroyed = errors.New("smap: map destroyed")
	// ErrNilHash is returned by New when no hash function is given.
	ErrNilHash = errors.New("smap: nil hash function")
	// ErrInvalidCapacity is returned by New for inconsistent capacity options.
	ErrInvalidCapacity = errors.New("smap: invalid capacity")
)

type slot[V any] struct {
	key      string
	value    V
	occupied bool
	deleted  bool
}

// Map is a hash map from strings to values of type V.
// Keys are copied on insertion. Values are stored as given and never
// copied or released by the map.
type Map[V any] struct {
	slots      []slot[V]
	count      int
	tombstones int
	hash       HashFunc

	minCapacity int
	maxCapacity int
	log         logger.Logger

	stats Stats
}

// Option configures a Map at construction.
type Option func(*config)

type config struct {
	initial int
	min     int
	max     int
	log     logger.Logger
}

// WithInitialCapacity sets the number of slots the map starts with.
// Unless WithMinCapacity is also given, it is also the shrink floor.
func WithInitialCapacity(n int) Option {
	return func(c *config) { c.initial = n }
}

// WithMinCapacity sets the capacity below which the map never shrinks.
func WithMinCapacity(n int) Option {
	return func(c *config) { c.min = n }
}

// WithMaxCapacity sets the capacity above which the map refuses to grow.
func WithMaxCapacity(n int) Option {
	return func(c *config) { c.max = n }
}

// WithLogger makes the map report resizes to l.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// New creates an empty map that hashes keys with hash.
func New[V any](hash HashFunc, opts ...Option) (*Map[V], error) {
	if hash == nil {
		return nil, ErrNilHash
	}
	c := config{initial: DefaultCapacity, max: math.MaxInt32}
	for _, opt := range opts {
		opt(&c)
	}
	if c.min == 0 {
		c.min = c.initial
	}
	switch {
	case c.initial <= 0:
		return nil, fmt.Errorf("%w: initial capacity %d", ErrInvalidCapacity, c.initial)
	case c.min <= 0 || c.min > c.initial:
		return nil, fmt.Errorf("%w: minimum capacity %d with initial capacity %d",
			ErrInvalidCapacity, c.min, c.initial)
	case c.initial > c.max:
		return nil, fmt.Errorf("%w: initial capacity %d exceeds limit %d",
			ErrAllocationFailure, c.initial, c.max)
	}
	slots, err := allocate[V](c.initial)
	if err != nil {
		return nil, err
	}
	m := &Map[V]{
		slots:       slots,
		hash:        hash,
		minCapacity: c.min,
		maxCapacity: c.max,
		log:         c.log,
	}
	m.stats.Capacity = c.initial
	return m, nil
}

func allocate[V any](capacity int) (slots []slot[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			slots, err = nil, fmt.Errorf("%w: %d slots: %v", ErrAllocationFailure, capacity, r)
		}
	}()
	return make([]slot[V], capacity), nil
}

// Len returns the number of live entries in m.
func (m *Map[V]) Len() int {
	return m.count
}

// Cap returns the number of slots in m's backing array.
func (m *Map[V]) Cap() int {
	return len(m.slots)
}

// probe returns the index of the slot holding key in slots and true, or,
// if key is absent, the index of the slot a new entry for key should take
// and false. Tombstones do not end the scan, since a key inserted before
// the deletion may live further along the chain. The first tombstone seen
// is returned for reuse. The index is -1 only if every slot is live.
func (m *Map[V]) probe(slots []slot[V], key string) (int, bool) {
	capacity := len(slots)
	position := int(m.hash(key) % uint64(capacity))
	free := -1
	for i := 0; i < capacity; i++ {
		m.stats.Probes++
		s := &slots[position]
		switch {
		case s.occupied:
			if s.key == key {
				return position, true
			}
		case s.deleted:
			if free < 0 {
				free = position
			}
		default:
			if free < 0 {
				free = position
			}
			return free, false
		}
		position++
		if position == capacity {
			position = 0
		}
	}
	return free, false
}

// Put associates key with value in m, replacing any previous value.
// A new key is copied into the map. If the key is new and there is no room
// for it, m is left unchanged and an error wrapping ErrCapacityExhausted is
// returned.
func (m *Map[V]) Put(key string, value V) error {
	if m.slots == nil {
		return ErrDestroyed
	}
	i, found := m.probe(m.slots, key)
	if found {
		m.slots[i].value = value
		return nil
	}

	var growErr error
	resized := false
	capacity := len(m.slots)
	if m.count > capacity/2 {
		if growErr = m.resize(capacity * 2); growErr == nil {
			resized = true
			m.stats.Grows++
		}
	} else if m.count+m.tombstones > capacity*3/4 {
		// Same-size rehash to clear out tombstones.
		if err := m.resize(capacity); err == nil {
			resized = true
			m.stats.Compactions++
		}
	}
	if resized {
		i, _ = m.probe(m.slots, key)
	}

	if m.count >= len(m.slots) {
		if growErr != nil {
			return fmt.Errorf("%w: put %q: %w", ErrCapacityExhausted, key, growErr)
		}
		return fmt.Errorf("%w: put %q", ErrCapacityExhausted, key)
	}
	s := &m.slots[i]
	if s.deleted {
		m.tombstones--
	}
	*s = slot[V]{key: strings.Clone(key), value: value, occupied: true}
	m.count++
	return nil
}

// ContainsKey reports whether key is present in m.
func (m *Map[V]) ContainsKey(key string) bool {
	if len(m.slots) == 0 {
		return false
	}
	_, found := m.probe(m.slots, key)
	return found
}

// Get returns the value associated with key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	if len(m.slots) == 0 {
		var zero V
		return zero, false
	}
	i, found := m.probe(m.slots, key)
	if !found {
		var zero V
		return zero, false
	}
	return m.slots[i].value, true
}

// Remove deletes key from m and returns the value it was associated with.
// If key is absent, m is unchanged and Remove returns false.
func (m *Map[V]) Remove(key string) (V, bool) {
	var zero V
	if len(m.slots) == 0 {
		return zero, false
	}
	i, found := m.probe(m.slots, key)
	if !found {
		return zero, false
	}
	s := &m.slots[i]
	value := s.value
	*s = slot[V]{deleted: true}
	m.count--
	m.tombstones++

	capacity := len(m.slots)
	if m.count < capacity/8 && capacity/2 >= m.minCapacity {
		// A failed shrink keeps the current table.
		if err := m.resize(capacity / 2); err == nil {
			m.stats.Shrinks++
		}
	}
	return value, true
}

// resize rehashes every live entry into a new backing array of the given
// capacity. Tombstones are dropped.
func (m *Map[V]) resize(capacity int) error {
	if capacity > m.maxCapacity {
		return fmt.Errorf("%w: capacity %d exceeds limit %d",
			ErrAllocationFailure, capacity, m.maxCapacity)
	}
	slots, err := allocate[V](capacity)
	if err != nil {
		return err
	}
	for _, s := range m.slots {
		if !s.occupied {
			continue
		}
		j, _ := m.probe(slots, s.key)
		slots[j] = slot[V]{key: s.key, value: s.value, occupied: true}
	}
	if m.log != nil {
		m.log.Infof("smap: resized %d -> %d slots (%d live, %d tombstones dropped)",
			len(m.slots), capacity, m.count, m.tombstones)
	}
	m.slots = slots
	m.tombstones = 0
	m.stats.Capacity = capacity
	return nil
}

// ForEach calls fn for every entry in m, in storage order. If fn returns
// an error, iteration stops and the error is returned. fn must not add to
// or remove from m.
func (m *Map[V]) ForEach(fn func(key string, value V) error) error {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		if err := fn(s.key, s.value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys of m in the same order ForEach visits them.
// It returns nil if m is empty.
func (m *Map[V]) Keys() []string {
	if m.count == 0 {
		return nil
	}
	keys := make([]string, 0, m.count)
	for i := range m.slots {
		if m.slots[i].occupied {
			keys = append(keys, m.slots[i].key)
		}
	}
	return keys
}

// Destroy releases every key and the backing array. Values are dropped
// without being touched. After Destroy, m is empty and Put fails with
// ErrDestroyed.
func (m *Map[V]) Destroy() {
	for i := range m.slots {
		m.slots[i] = slot[V]{}
	}
	m.slots = nil
	m.count = 0
	m.tombstones = 0
	m.stats.Capacity = 0
}

// Stats describes the shape of a Map and the work it has done.
type Stats struct {
	Capacity    int
	Len         int
	Tombstones  int
	Grows       uint64
	Shrinks     uint64
	Compactions uint64
	// Probes counts slots examined across all lookups and inserts.
	Probes uint64
}

// Stats returns a snapshot of m's statistics.
func (m *Map[V]) Stats() Stats {
	s := m.stats
	s.Len = m.count
	s.Tombstones = m.tombstones
	return s
}
