// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vcdtest provides utility functions for testing signal databases and
// VCD output.
//
package vcdtest

import (
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/vcd"
	"github.com/db47h/vcd/tracer"
)

// Row describes a single observation. The signal kind is inferred from Type.
// Value is ignored for events. An empty Source defaults to "test".
//
type Row struct {
	TS     uint64
	Name   string
	Type   string
	Size   uint
	Value  string
	Source string
}

// W returns an integer observation row.
//
func W(ts uint64, name string, size uint, value uint64) Row {
	return Row{TS: ts, Name: name, Type: vcd.TypeWire, Size: size, Value: strconv.FormatUint(value, 10)}
}

// R returns a real observation row.
//
func R(ts uint64, name string, value string) Row {
	return Row{TS: ts, Name: name, Type: vcd.TypeReal, Size: vcd.RealSize, Value: value}
}

// E returns an event observation row.
//
func E(ts uint64, name string) Row {
	return Row{TS: ts, Name: name, Type: vcd.TypeEvent, Size: vcd.EventSize}
}

// Signal builds a signal from r, registering its source and descriptor.
//
func Signal(sources *vcd.SourceRegistry, descs *vcd.DescriptorRegistry, r Row) (vcd.Signal, error) {
	srcName := r.Source
	if srcName == "" {
		srcName = "test"
	}
	src, err := sources.Register(srcName)
	if err != nil {
		return vcd.Signal{}, err
	}
	d, err := descs.Register(r.Name, r.Type, r.Size, src)
	if err != nil {
		return vcd.Signal{}, err
	}
	switch r.Type {
	case vcd.TypeWire:
		v, err := strconv.ParseUint(r.Value, 0, 64)
		if err != nil {
			return vcd.Signal{}, err
		}
		return vcd.NewInteger(d, r.TS, v)
	case vcd.TypeReal:
		return vcd.NewReal(d, r.TS, r.Value)
	default:
		return vcd.NewEvent(d, r.TS)
	}
}

// NewDB returns a new DB filled with the given rows. Any error is fatal to
// the test.
//
func NewDB(t testing.TB, unit vcd.TimeUnit, rows ...Row) *vcd.DB {
	t.Helper()
	sources := vcd.NewSourceRegistry()
	descs := vcd.NewDescriptorRegistry(sources)
	db := vcd.NewDB(unit, sources)
	for i, r := range rows {
		s, err := Signal(sources, descs, r)
		if err != nil {
			t.Fatalf("row %d (%s): %v", i, r.Name, err)
		}
		if err = db.Add(s); err != nil {
			t.Fatalf("row %d (%s): %v", i, r.Name, err)
		}
	}
	return db
}

// Dump returns the VCD output for db as a string.
//
func Dump(t testing.TB, db *vcd.DB, opts ...tracer.Option) string {
	t.Helper()
	var b strings.Builder
	tr := tracer.New(&b, db, opts...)
	if err := tr.Dump(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

// Sections splits VCD output into its header (up to the end of $dumpvars) and
// body lines.
//
func Sections(out string) (header, body []string) {
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, l := range lines {
		if l == "$dumpvars" {
			for j := i + 1; j < len(lines); j++ {
				if lines[j] == "$end" {
					return lines[:j+1], lines[j+1:]
				}
			}
		}
	}
	return lines, nil
}

// Structure returns the scope and variable declaration lines of out, with
// indentation preserved.
//
func Structure(out string) []string {
	header, _ := Sections(out)
	var s []string
	for _, l := range header {
		t := strings.TrimLeft(l, "\t")
		if strings.HasPrefix(t, "$scope") || strings.HasPrefix(t, "$var") || strings.HasPrefix(t, "$upscope") {
			s = append(s, l)
		}
	}
	return s
}
