// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package tracer writes the content of a signal database as a VCD file.
//
package tracer

import (
	"io"
	"os"

	"github.com/db47h/vcd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Tracer errors.
//
var (
	ErrCannotOpenFile = errors.New("cannot open file")
	ErrAlreadyDumped  = errors.New("VCD already dumped")
)

type state int

const (
	created state = iota
	headerEmitted
	bodyEmitted
	done
)

// A Tracer generates a VCD file from a vcd.DB.
//
type Tracer struct {
	db    *vcd.DB
	w     *lineWriter
	f     *os.File
	log   *zap.Logger
	date  string
	state state
}

// An Option configures a Tracer.
//
type Option func(t *Tracer)

// WithLogger sets the logger used to report progress. The default is a no-op
// logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracer) {
		if l != nil {
			t.log = l
		}
	}
}

// WithDate overrides the content of the $date section.
//
func WithDate(date string) Option {
	return func(t *Tracer) { t.date = date }
}

// New returns a tracer writing to w.
//
func New(w io.Writer, db *vcd.DB, opts ...Option) *Tracer {
	t := &Tracer{
		db:   db,
		w:    newLineWriter(w),
		log:  zap.NewNop(),
		date: DefaultDate,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Create creates or truncates the named file and returns a tracer writing to
// it. Callers must call Close once done.
//
func Create(path string, db *vcd.DB, opts ...Option) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(ErrCannotOpenFile, "%s: %v", path, err)
	}
	t := New(f, db, opts...)
	t.f = f
	return t, nil
}

// Dump writes the VCD header and body. It can only be called once.
//
func (t *Tracer) Dump() error {
	if t.state != created {
		return ErrAlreadyDumped
	}
	t.header()
	t.state = headerEmitted
	t.log.Debug("VCD header written", zap.Int("lines", t.w.lines))

	t.body()
	t.state = bodyEmitted

	if err := t.w.flush(); err != nil {
		return errors.Wrap(err, "write VCD")
	}
	t.state = done
	t.log.Info("VCD written",
		zap.Int("lines", t.w.lines),
		zap.Int("signals", t.db.Len()),
		zap.String("timescale", t.db.TimeUnit().String()))
	return nil
}

// Close flushes pending output and closes the underlying file if the Tracer
// was created with Create.
//
func (t *Tracer) Close() error {
	err := t.w.flush()
	if t.f != nil {
		if cerr := t.f.Close(); err == nil {
			err = cerr
		}
		t.f = nil
	}
	return err
}

func (t *Tracer) header() {
	// basic information
	t.w.line("$date " + t.date)
	t.w.line("$end")
	t.w.line("$version VCD Tracer \"" + ReleaseName + "\" Release v." + Version())
	t.w.line("$end")
	t.w.line("$timescale 1 " + t.db.TimeUnit().String())
	t.w.line("$end")

	fp := t.db.Footprint()
	writeStructure(t.w, fp)

	// defaults
	t.w.line("$dumpvars")
	for i := range fp {
		if l := fp[i].Footprint(); l != "" {
			t.w.line(l)
		}
	}
	t.w.line("$end")
}

func (t *Tracer) body() {
	var prev uint64
	f := newFrame(0, t.w)
	signals := t.db.Signals()
	for i := range signals {
		s := &signals[i]
		if ts := s.Timestamp(); ts != prev {
			f.dumpAndClear()
			prev = ts
			f.setTime(ts)
		}
		f.add(s)
	}
	f.dumpAndClear()
}
