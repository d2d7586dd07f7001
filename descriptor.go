// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

// VCD variable types.
//
const (
	TypeWire  = "wire"
	TypeReal  = "real"
	TypeEvent = "event"
)

// Bit sizes of non-vector signals.
//
// Events are declared as single bit variables ($var event 1 ...). Older
// vcdMaker releases declared them with a size of 0.
//
const (
	RealSize  = 64
	EventSize = 1
)

// A Descriptor is the immutable identity of a signal. All observations of the
// same signal share a single *Descriptor.
//
type Descriptor struct {
	name   string
	typ    string
	size   uint
	source SourceHandle
}

// Name returns the full dotted name of the signal.
//
func (d *Descriptor) Name() string { return d.name }

// Type returns the VCD variable type of the signal.
//
func (d *Descriptor) Type() string { return d.typ }

// Size returns the signal width in bits.
//
func (d *Descriptor) Size() uint { return d.size }

// Source returns the handle of the signal's origin.
//
func (d *Descriptor) Source() SourceHandle { return d.source }

// Similar returns true if d has the given type, size and source.
//
func (d *Descriptor) Similar(typ string, size uint, src SourceHandle) bool {
	return d.typ == typ && d.size == size && d.source == src
}

// DescriptorRegistry interns descriptors by signal name.
//
type DescriptorRegistry struct {
	sources *SourceRegistry
	m       map[string]*Descriptor
}

// NewDescriptorRegistry returns a new registry. The source registry is only
// used to resolve source names in error messages.
//
func NewDescriptorRegistry(sources *SourceRegistry) *DescriptorRegistry {
	return &DescriptorRegistry{
		sources: sources,
		m:       make(map[string]*Descriptor),
	}
}

// Register returns the descriptor for the named signal, creating it on first
// use. Registering an existing name with a different type, size or source
// returns an *InconsistentSignalError.
//
func (r *DescriptorRegistry) Register(name, typ string, size uint, src SourceHandle) (*Descriptor, error) {
	if d, ok := r.m[name]; ok {
		if !d.Similar(typ, size, src) {
			return nil, &InconsistentSignalError{
				Name:       name,
				PrevType:   d.typ,
				Type:       typ,
				PrevSize:   d.size,
				Size:       size,
				PrevSource: r.sources.nameOf(d.source),
				Source:     r.sources.nameOf(src),
			}
		}
		return d, nil
	}
	d := &Descriptor{name: name, typ: typ, size: size, source: src}
	r.m[name] = d
	return d, nil
}

// Lookup returns the descriptor registered for name, if any.
//
func (r *DescriptorRegistry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.m[name]
	return d, ok
}

// Len returns the number of registered descriptors.
//
func (r *DescriptorRegistry) Len() int { return len(r.m) }
