// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package txtlog reads signal observations from text logs in the default
// vcdMaker format and stores them in a vcd.DB.
//
// Each log line describes one observation:
//
//	#<timestamp> <name> <value> <size> [comment]	integer
//	#<timestamp> <name> <value> f[comment]		real
//	#<timestamp> <name> e [comment]			event
//
// Lines that do not match any of these formats are counted as invalid and
// skipped.
//
package txtlog

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/vcd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LineCounterSuffix is appended to a log's source name to build the source
// name of its line counter signals.
//
const LineCounterSuffix = "-LineCounter"

const maxLineSize = 1 << 20

// Stats summarizes the parsing of a single log.
//
type Stats struct {
	Valid   int // lines turned into signals
	Invalid int // lines not matching any known format
	Dropped int // valid lines whose value did not fit the signal
}

// A Parser reads logs into DB.
//
type Parser struct {
	DB          *vcd.DB
	Descriptors *vcd.DescriptorRegistry
	// Log is used to report dropped observations and, at debug level,
	// invalid lines. May be nil.
	Log *zap.Logger
	// Counter is the name of the line counter signal. If empty, no line
	// counter is recorded.
	Counter string
}

// ParseFile parses the named log file. The file name is used as the
// source name of all its signals.
//
func (p *Parser) ParseFile(name string) (Stats, error) {
	f, err := os.Open(name)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "opening file '%s' failed, it either doesn't exist or is inaccessible", name)
	}
	defer f.Close()
	return p.Parse(name, f)
}

// Parse reads a log from r. The source name is registered in the DB's
// source registry.
//
// An error is returned if a signal is inconsistent with a previous one or if
// reading from r fails. Values that do not fit their signal are dropped with a
// warning.
//
func (p *Parser) Parse(source string, r io.Reader) (Stats, error) {
	var st Stats
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("source", source))

	src, err := p.DB.Sources().Register(source)
	if err != nil {
		return st, err
	}
	var lc *lineCounter
	if p.Counter != "" {
		lc = newLineCounter(p.Counter)
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	for lineNo := 1; s.Scan(); lineNo++ {
		line := strings.TrimSuffix(s.Text(), "\r")
		rec, err := parseLine(line)
		if err != nil {
			st.Invalid++
			log.Debug("invalid log line", zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		sig, err := p.newSignal(rec, src)
		if err != nil {
			if vcd.IsRecoverable(err) {
				st.Dropped++
				log.Warn("observation dropped", zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			if errors.Cause(err) == vcd.ErrInvalidSignal {
				st.Invalid++
				log.Debug("invalid log line", zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			return st, errors.Wrapf(err, "%s:%d", source, lineNo)
		}
		if err = p.DB.Add(sig); err != nil {
			return st, errors.Wrapf(err, "%s:%d", source, lineNo)
		}
		if lc != nil {
			lc.update(rec.ts, lineNo)
		}
		st.Valid++
	}
	if err := s.Err(); err != nil {
		return st, errors.Wrap(err, source)
	}

	if lc != nil {
		csrc, err := p.DB.Sources().Register(source + LineCounterSuffix)
		if err != nil {
			return st, err
		}
		if err = lc.record(p.DB, p.Descriptors, csrc, log); err != nil {
			return st, errors.Wrap(err, "line counter")
		}
	}

	log.Info("log parsed",
		zap.Int("valid", st.Valid),
		zap.Int("invalid", st.Invalid),
		zap.Int("dropped", st.Dropped))
	return st, nil
}

func (p *Parser) newSignal(r record, src vcd.SourceHandle) (vcd.Signal, error) {
	switch r.kind {
	case vcd.Integer:
		v, err := strconv.ParseUint(r.value, 10, 64)
		if err != nil {
			return vcd.Signal{}, errors.Wrapf(vcd.ErrInvalidSignal, "signal %s: bad integer value %q", r.name, r.value)
		}
		// do not register descriptors with unusable sizes
		if r.size == 0 || r.size > 64 {
			return vcd.Signal{}, &vcd.VectorTooSmallError{Name: r.name, Size: r.size, Value: v}
		}
		d, err := p.Descriptors.Register(r.name, vcd.TypeWire, r.size, src)
		if err != nil {
			return vcd.Signal{}, err
		}
		return vcd.NewInteger(d, r.ts, v)
	case vcd.Real:
		d, err := p.Descriptors.Register(r.name, vcd.TypeReal, r.size, src)
		if err != nil {
			return vcd.Signal{}, err
		}
		return vcd.NewReal(d, r.ts, r.value)
	case vcd.Event:
		d, err := p.Descriptors.Register(r.name, vcd.TypeEvent, r.size, src)
		if err != nil {
			return vcd.Signal{}, err
		}
		return vcd.NewEvent(d, r.ts)
	}
	panic("unknown signal kind " + r.kind.String())
}
