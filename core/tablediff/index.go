package tablediff

import (
	"context"
	"fmt"
)

// Snapshot is the indexed, in-memory form of one dataset version.
type Snapshot struct {
	// Name is the name of the indexed dataset.
	Name string

	// Duplicates counts records whose join key had already been seen.
	// The later record replaces the earlier one.
	Duplicates int

	keys    map[keyID]Value
	records map[keyID]Record
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot(name string) *Snapshot {
	return &Snapshot{
		Name:    name,
		keys:    make(map[keyID]Value),
		records: make(map[keyID]Record),
	}
}

// Put stores r under key, replacing any record already stored for it.
// It reports whether a record was replaced.
func (s *Snapshot) Put(key Value, r Record) bool {
	id := idOf(key)
	_, exists := s.records[id]
	s.keys[id] = key
	s.records[id] = r
	if exists {
		s.Duplicates++
	}
	return exists
}

// Get returns the record stored for key.
func (s *Snapshot) Get(key Value) (Record, bool) {
	r, ok := s.records[idOf(key)]
	return r, ok
}

// Len returns the number of distinct keys.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Index reads every record of ds and stores a copy of its fields values keyed
// by the joinField value. Duplicate keys are last-write-wins; the count of
// overwritten records is kept in Snapshot.Duplicates.
func Index(ctx context.Context, ds Dataset, fields []string, joinField string) (*Snapshot, error) {
	found := false
	for _, f := range fields {
		if f == joinField {
			found = true
			break
		}
	}
	if !found {
		return nil, invalidJoinField(joinField, ds.Name())
	}

	snap := NewSnapshot(ds.Name())
	err := ds.Scan(ctx, func(r Record) error {
		key, _ := r.Get(joinField)

		row := make(Record, len(fields))
		for _, f := range fields {
			if v, ok := r.Get(f); ok {
				row[f] = v
			}
		}
		snap.Put(key, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", ds.Name(), err)
	}

	return snap, nil
}
