package vcd

import "github.com/pkg/errors"

// A TimeUnit is the unit in which signal timestamps are expressed.
//
type TimeUnit string

// Supported time units.
//
const (
	Seconds      TimeUnit = "s"
	Milliseconds TimeUnit = "ms"
	Microseconds TimeUnit = "us"
	Nanoseconds  TimeUnit = "ns"
	Picoseconds  TimeUnit = "ps"
	Femtoseconds TimeUnit = "fs"
)

// Units lists the supported time units, from the largest to the smallest.
//
var Units = []TimeUnit{Seconds, Milliseconds, Microseconds, Nanoseconds, Picoseconds, Femtoseconds}

// ParseTimeUnit validates a time unit string.
//
func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(s)
	if u.Index() < 0 {
		return "", errors.Wrapf(ErrInvalidTimeUnit, "%q", s)
	}
	return u, nil
}

// Index returns the position of u in Units or -1 if u is not a valid unit.
//
func (u TimeUnit) Index() int {
	for i, v := range Units {
		if v == u {
			return i
		}
	}
	return -1
}

// TenPower returns the number of u per second, or 0 if u is invalid.
//
func (u TimeUnit) TenPower() uint64 {
	i := u.Index()
	if i < 0 {
		return 0
	}
	p := uint64(1)
	for ; i > 0; i-- {
		p *= 1000
	}
	return p
}

func (u TimeUnit) String() string { return string(u) }
