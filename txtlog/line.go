package txtlog

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/vcd"
	"github.com/shopspring/decimal"
)

// record is a parsed log line.
//
type record struct {
	kind  vcd.Kind
	ts    uint64
	name  string
	value string
	size  uint
}

// parseLine parses a log line in one of the formats:
//
//	#<timestamp> <name> <value> <size> [comment]	integer
//	#<timestamp> <name> <value> f[comment]		real
//	#<timestamp> <name> e [comment]			event
//
func parseLine(line string) (record, error) {
	var r record

	items := lex(line)
	if items[0].typ != tokHash {
		return r, parseError(line, 0, "expected '#'")
	}
	if len(items) < 4 || items[1].typ != tokWord || items[2].typ != tokWord || items[3].typ != tokWord {
		return r, parseError(line, len(line), "unexpected end of line")
	}
	tsi, namei, vali := items[1], items[2], items[3]
	if tsi.pos != 1 {
		return r, parseError(line, 1, "expected timestamp")
	}
	ts, err := strconv.ParseUint(tsi.value, 10, 64)
	if err != nil {
		return r, parseError(line, tsi.pos, "invalid timestamp "+tsi.value)
	}
	r.ts, r.name = ts, namei.value
	if !isGraph(r.name) {
		return r, parseError(line, namei.pos, "invalid signal name")
	}

	if vali.value == "e" {
		r.kind = vcd.Event
		r.size = vcd.EventSize
		return r, nil
	}

	tail := items[4]
	if tail.typ != tokWord {
		return r, parseError(line, len(line), "missing signal size or type")
	}
	switch {
	case isDigit(tail.value[0]):
		if !isDigits(vali.value) {
			return r, parseError(line, vali.pos, "invalid integer value "+vali.value)
		}
		n := strings.IndexFunc(tail.value, func(r rune) bool { return r < '0' || r > '9' })
		if n < 0 {
			n = len(tail.value)
		}
		size, err := strconv.ParseUint(tail.value[:n], 10, 32)
		if err != nil {
			return r, parseError(line, tail.pos, "invalid signal size")
		}
		r.kind, r.value, r.size = vcd.Integer, vali.value, uint(size)
	case tail.value[0] == 'f':
		for _, c := range vali.value {
			if !unicode.IsDigit(c) && !unicode.IsPunct(c) && !unicode.IsSymbol(c) {
				return r, parseError(line, vali.pos, "invalid real value "+vali.value)
			}
		}
		if _, err := decimal.NewFromString(vali.value); err != nil {
			return r, parseError(line, vali.pos, "invalid real value "+vali.value)
		}
		r.kind, r.value, r.size = vcd.Real, vali.value, vcd.RealSize
	default:
		return r, parseError(line, tail.pos, "expected signal size or 'f'")
	}
	return r, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isGraph(s string) bool {
	for _, c := range s {
		if !unicode.IsGraphic(c) || unicode.IsSpace(c) {
			return false
		}
	}
	return true
}
