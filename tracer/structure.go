// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tracer

import (
	"strconv"

	"github.com/db47h/vcd"
)

// writeStructure writes the scope and variable declarations of the given
// signals. The signals must be sorted by name, as returned by
// vcd.DB.Footprint.
//
// The scope tree is never built: since names are sorted, it is enough to
// compare each name with the previous one, close the scopes that diverge and
// open the new ones.
//
func writeStructure(w *lineWriter, footprint []vcd.Signal) {
	var prev []string // scopes of the previous signal

	for i := range footprint {
		s := &footprint[i]
		fields := s.NameFields()
		scopes, leaf := fields[:len(fields)-1], fields[len(fields)-1]

		k := commonPrefix(prev, scopes)
		closeScopes(w, len(prev), k)
		for d := k; d < len(scopes); d++ {
			w.indented(d, "$scope module "+scopes[d]+" $end")
		}
		w.indented(len(scopes), "$var "+s.Type()+" "+strconv.FormatUint(uint64(s.Size()), 10)+" "+
			s.Name()+" "+leaf+" $end")

		prev = scopes
	}

	closeScopes(w, len(prev), 0)
}

// commonPrefix returns the length of the longest common prefix of a and b.
//
func commonPrefix(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// closeScopes closes open scopes from depth down to (but excluding) to,
// deepest first.
//
func closeScopes(w *lineWriter, depth, to int) {
	for d := depth - 1; d >= to; d-- {
		w.indented(d, "$upscope $end")
	}
}
