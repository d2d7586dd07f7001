// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"math"

	"github.com/pkg/errors"
)

// A SourceHandle identifies the origin of a signal (a log file, an
// instrument...).
//
type SourceHandle uint32

// NoSource is the handle of signals without a valid origin.
//
const NoSource SourceHandle = math.MaxUint32

// SourceRegistry maps source names to small integer handles. Handles are
// stable for the lifetime of the registry.
//
type SourceRegistry struct {
	m    map[string]SourceHandle
	next SourceHandle
}

// NewSourceRegistry returns a new empty registry.
//
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		m:    make(map[string]SourceHandle),
		next: NoSource - 1,
	}
}

// Register returns the handle for the given source name, allocating a new one
// if the name has never been seen.
//
func (r *SourceRegistry) Register(name string) (SourceHandle, error) {
	if h, ok := r.m[name]; ok {
		return h, nil
	}
	if r.next == NoSource {
		return NoSource, errors.Wrap(ErrTooManySources, name)
	}
	h := r.next
	// handles are allocated downward, wrapping to NoSource once exhausted.
	if h == 0 {
		r.next = NoSource
	} else {
		r.next--
	}
	r.m[name] = h
	return h, nil
}

// Handle returns the handle of a registered source or NoSource.
//
func (r *SourceRegistry) Handle(name string) SourceHandle {
	if h, ok := r.m[name]; ok {
		return h
	}
	return NoSource
}

// Name returns the name of the source with handle h.
//
func (r *SourceRegistry) Name(h SourceHandle) (string, error) {
	for n, v := range r.m {
		if v == h {
			return n, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownSource, "handle %d", h)
}

// nameOf is like Name but returns a printable placeholder for unknown
// handles. Used in diagnostics.
//
func (r *SourceRegistry) nameOf(h SourceHandle) string {
	if r == nil {
		return "?"
	}
	n, err := r.Name(h)
	if err != nil {
		return "<unknown source>"
	}
	return n
}

// Len returns the number of registered sources.
//
func (r *SourceRegistry) Len() int { return len(r.m) }
