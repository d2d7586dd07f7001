// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
)

// DB stores signal observations.
//
// It maintains two views over the stored signals: a chronological one with all
// observations ordered by timestamp (insertion order breaks ties), and a
// footprint with the latest observation of every distinct signal name, used
// to describe the shape and default value of each signal.
//
// A DB is filled during log ingestion and must be treated as read-only once
// handed to a tracer. It is not safe for concurrent use.
//
type DB struct {
	unit    TimeUnit
	sources *SourceRegistry

	signals []Signal
	sorted  bool

	fp      map[string]Signal
	names   []string
	fpDirty bool
}

// NewDB returns a new empty DB. The source registry is used to resolve source
// names in error messages.
//
func NewDB(unit TimeUnit, sources *SourceRegistry) *DB {
	return &DB{
		unit:    unit,
		sources: sources,
		sorted:  true,
		fp:      make(map[string]Signal),
	}
}

// Add adds a signal to the database.
//
// Signals with no source are rejected with ErrInvalidSource. If another signal
// with the same name was previously added, both must have the same type, size
// and source, or an *InconsistentSignalError is returned.
//
func (db *DB) Add(s Signal) error {
	if s.desc == nil {
		return errors.Wrap(ErrInvalidSignal, "signal without descriptor")
	}
	if s.Source() == NoSource {
		return errors.Wrap(ErrInvalidSource, s.Name())
	}
	name := s.Name()
	if prev, ok := db.fp[name]; ok {
		if !prev.desc.Similar(s.Type(), s.Size(), s.Source()) {
			return &InconsistentSignalError{
				Name:       name,
				PrevType:   prev.Type(),
				Type:       s.Type(),
				PrevSize:   prev.Size(),
				Size:       s.Size(),
				PrevSource: db.sources.nameOf(prev.Source()),
				Source:     db.sources.nameOf(s.Source()),
			}
		}
	} else {
		db.names = append(db.names, name)
		db.fpDirty = true
	}
	// newest wins
	db.fp[name] = s

	if n := len(db.signals); n > 0 && db.signals[n-1].ts > s.ts {
		db.sorted = false
	}
	db.signals = append(db.signals, s)
	return nil
}

// Signals returns all stored signals ordered by timestamp. Signals with equal
// timestamps are returned in insertion order.
//
// The returned slice is owned by the DB and must not be modified.
//
func (db *DB) Signals() []Signal {
	if !db.sorted {
		slices.SortStableFunc(db.signals, func(a, b Signal) int {
			return cmp.Compare(a.ts, b.ts)
		})
		db.sorted = true
	}
	return db.signals
}

// Footprint returns the most recently added signal for every distinct signal
// name, ordered by name.
//
func (db *DB) Footprint() []Signal {
	if db.fpDirty {
		slices.Sort(db.names)
		db.fpDirty = false
	}
	out := make([]Signal, len(db.names))
	for i, n := range db.names {
		out[i] = db.fp[n]
	}
	return out
}

// TimeUnit returns the time unit of the signal timestamps.
//
func (db *DB) TimeUnit() TimeUnit { return db.unit }

// Len returns the number of stored observations.
//
func (db *DB) Len() int { return len(db.signals) }

// Sources returns the source registry of the DB.
//
func (db *DB) Sources() *SourceRegistry { return db.sources }
