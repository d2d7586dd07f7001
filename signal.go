// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// NameDelim separates scope levels in signal names.
//
const NameDelim = "."

// Kind is the kind of a Signal.
//
type Kind uint8

// Signal kinds.
//
const (
	Integer Kind = iota // bit vector
	Real                // floating point value
	Event               // momentary pulse
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Event:
		return "event"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Signal is a single timestamped observation of a signal value.
//
// Signal is a tagged union over the Integer, Real and Event kinds. Signal
// values are meant to be copied around; the payload never changes once
// constructed, only the timestamp can be adjusted with SetTimestamp.
//
type Signal struct {
	desc *Descriptor
	ts   uint64
	kind Kind
	v    uint64          // Integer
	text string          // Real, as logged
	dec  decimal.Decimal // Real, for comparisons
}

// NewInteger returns a new Integer signal. The descriptor must be of type
// TypeWire. If its size is not in the range [1, 64] or if v does not fit in
// size bits, a *VectorTooSmallError is returned.
//
func NewInteger(d *Descriptor, ts uint64, v uint64) (Signal, error) {
	if err := checkDescriptor(d, TypeWire); err != nil {
		return Signal{}, err
	}
	if d.size == 0 || d.size > 64 || (d.size < 64 && v>>d.size != 0) {
		return Signal{}, &VectorTooSmallError{Name: d.name, Size: d.size, Value: v}
	}
	return Signal{desc: d, ts: ts, kind: Integer, v: v}, nil
}

// NewReal returns a new Real signal. The value text is kept as is for output
// and must be a valid decimal number.
//
func NewReal(d *Descriptor, ts uint64, text string) (Signal, error) {
	if err := checkDescriptor(d, TypeReal); err != nil {
		return Signal{}, err
	}
	dec, err := decimal.NewFromString(text)
	if err != nil {
		return Signal{}, errors.Wrapf(ErrInvalidSignal, "signal %s: bad real value %q", d.name, text)
	}
	return Signal{desc: d, ts: ts, kind: Real, text: text, dec: dec}, nil
}

// NewEvent returns a new Event signal.
//
func NewEvent(d *Descriptor, ts uint64) (Signal, error) {
	if err := checkDescriptor(d, TypeEvent); err != nil {
		return Signal{}, err
	}
	return Signal{desc: d, ts: ts, kind: Event}, nil
}

func checkDescriptor(d *Descriptor, typ string) error {
	if d == nil {
		return errors.Wrap(ErrInvalidSignal, "nil descriptor")
	}
	if d.typ != typ {
		return errors.Wrapf(ErrInvalidSignal, "signal %s: type %s, expected %s", d.name, d.typ, typ)
	}
	return nil
}

// Kind returns the signal kind.
//
func (s *Signal) Kind() Kind { return s.kind }

// Descriptor returns the shared signal descriptor.
//
func (s *Signal) Descriptor() *Descriptor { return s.desc }

// Name returns the full dotted signal name.
//
func (s *Signal) Name() string { return s.desc.name }

// NameFields returns the signal name split on NameDelim. All fields but the
// last are scopes, the last one is the variable name.
//
func (s *Signal) NameFields() []string { return strings.Split(s.desc.name, NameDelim) }

// Size returns the signal width in bits.
//
func (s *Signal) Size() uint { return s.desc.size }

// Type returns the VCD type of the signal.
//
func (s *Signal) Type() string { return s.desc.typ }

// Source returns the signal's source handle.
//
func (s *Signal) Source() SourceHandle { return s.desc.source }

// Timestamp returns the signal timestamp.
//
func (s *Signal) Timestamp() uint64 { return s.ts }

// SetTimestamp changes the timestamp of s. It must not be called on signals
// already added to a DB.
//
func (s *Signal) SetTimestamp(ts uint64) { s.ts = ts }

// Value returns the value of an Integer signal.
//
func (s *Signal) Value() uint64 { return s.v }

// Text returns the value of a Real signal as it was logged.
//
func (s *Signal) Text() string { return s.text }

// Decimal returns the parsed value of a Real signal.
//
func (s *Signal) Decimal() decimal.Decimal { return s.dec }

// Print returns the VCD value change line for s.
//
func (s *Signal) Print() string {
	switch s.kind {
	case Integer:
		var b strings.Builder
		bits := strconv.FormatUint(s.v, 2)
		b.Grow(int(s.desc.size) + len(s.desc.name) + 2)
		b.WriteByte('b')
		for i := len(bits); i < int(s.desc.size); i++ {
			b.WriteByte('0')
		}
		b.WriteString(bits)
		b.WriteByte(' ')
		b.WriteString(s.desc.name)
		return b.String()
	case Real:
		return "r" + s.text + " " + s.desc.name
	case Event:
		return "1" + s.desc.name
	}
	panic("unknown signal kind " + s.kind.String())
}

// Footprint returns the default value line of s used in the $dumpvars section.
// It returns an empty string for events.
//
func (s *Signal) Footprint() string {
	switch s.kind {
	case Integer:
		return "b" + strings.Repeat("x", int(s.desc.size)) + " " + s.desc.name
	case Real:
		return "r0.0 " + s.desc.name
	case Event:
		return ""
	}
	panic("unknown signal kind " + s.kind.String())
}

// Equal returns true if s and o are of the same kind and carry the same value.
// Events never compare equal, not even to themselves.
//
func (s *Signal) Equal(o *Signal) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case Integer:
		return s.v == o.v
	case Real:
		return s.dec.Equal(o.dec)
	case Event:
		return false
	}
	panic("unknown signal kind " + s.kind.String())
}
