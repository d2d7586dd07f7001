// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tracer

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/db47h/vcd"
)

// lineWriter writes newline terminated lines. The first write error is sticky
// and reported by flush.
//
type lineWriter struct {
	w     *bufio.Writer
	err   error
	lines int
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(w)}
}

func (l *lineWriter) line(s string) {
	if l.err != nil {
		return
	}
	if _, l.err = l.w.WriteString(s); l.err == nil {
		l.err = l.w.WriteByte('\n')
	}
	l.lines++
}

func (l *lineWriter) indented(depth int, s string) {
	if depth > 0 {
		l.line(strings.Repeat("\t", depth) + s)
		return
	}
	l.line(s)
}

func (l *lineWriter) flush() error {
	if l.err != nil {
		return l.err
	}
	l.err = l.w.Flush()
	return l.err
}

// frame collects the value changes sharing a single timestamp.
//
// last holds the last emitted value of every signal for the whole run and is
// the baseline for change detection. pending holds the changes of the current
// timestamp only.
//
type frame struct {
	ts      uint64
	w       *lineWriter
	last    map[string]vcd.Signal
	pending map[string]vcd.Signal
	keys    []string
}

func newFrame(ts uint64, w *lineWriter) *frame {
	return &frame{
		ts:      ts,
		w:       w,
		last:    make(map[string]vcd.Signal),
		pending: make(map[string]vcd.Signal),
	}
}

// setTime sets the timestamp of the next batch of signals.
//
func (f *frame) setTime(ts uint64) { f.ts = ts }

// add records s if its value differs from the last emitted one.
//
func (f *frame) add(s *vcd.Signal) {
	name := s.Name()
	if prev, ok := f.last[name]; ok && prev.Equal(s) {
		return
	}
	f.last[name] = *s
	if _, ok := f.pending[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.pending[name] = *s
}

// dumpAndClear writes the pending changes, if any, preceded by a timestamp
// marker, ordered by signal name.
//
func (f *frame) dumpAndClear() {
	if len(f.pending) == 0 {
		return
	}
	f.w.line("#" + strconv.FormatUint(f.ts, 10))
	slices.Sort(f.keys)
	for _, k := range f.keys {
		s := f.pending[k]
		f.w.line(s.Print())
	}
	clear(f.pending)
	f.keys = f.keys[:0]
}
