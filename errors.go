// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"strconv"

	"github.com/pkg/errors"
)

// Configuration and consistency errors. These are fatal to a conversion run.
//
var (
	ErrInvalidSource   = errors.New("invalid signal source")
	ErrUnknownSource   = errors.New("cannot find source name")
	ErrTooManySources  = errors.New("too many signal sources")
	ErrInvalidTimeUnit = errors.New("invalid time unit")
	ErrInvalidSignal   = errors.New("invalid signal")
)

// InconsistentSignalError is returned when a signal name is registered or
// inserted twice with a different type, size or source.
//
type InconsistentSignalError struct {
	Name               string
	PrevType, Type     string
	PrevSize, Size     uint
	PrevSource, Source string
}

func (e *InconsistentSignalError) Error() string {
	return "inconsistent signal: " + e.Name +
		". Types: " + e.PrevType + " / " + e.Type +
		". Sizes: " + strconv.FormatUint(uint64(e.PrevSize), 10) + " / " + strconv.FormatUint(uint64(e.Size), 10) +
		". Sources: " + e.PrevSource + " and " + e.Source + "."
}

// VectorTooSmallError reports an integer value that does not fit in the
// declared bit width of its signal. The observation should be dropped and the
// conversion continued.
//
type VectorTooSmallError struct {
	Name  string
	Size  uint
	Value uint64
}

func (e *VectorTooSmallError) Error() string {
	return "vector too small: signal " + e.Name + " of size " + strconv.FormatUint(uint64(e.Size), 10) +
		" cannot hold value " + strconv.FormatUint(e.Value, 10)
}

// IsRecoverable returns true if err (or its cause) only affects a single
// observation.
//
func IsRecoverable(err error) bool {
	_, ok := errors.Cause(err).(*VectorTooSmallError)
	return ok
}

// IsInconsistent returns true if the cause of err is an
// *InconsistentSignalError.
//
func IsInconsistent(err error) bool {
	_, ok := errors.Cause(err).(*InconsistentSignalError)
	return ok
}
