package txtlog

import (
	"github.com/pkg/errors"
)

// Tokens
const (
	tokEOF = iota
	tokHash
	tokWord
)

type item struct {
	typ   int
	pos   int
	value string
}

type stateFn func(l *lexer) stateFn

// lexer splits a log line into a leading '#' and space separated words.
//
type lexer struct {
	in    string
	start int
	pos   int
	items []item
}

func lex(line string) []item {
	l := &lexer{in: line, items: make([]item, 0, 6)}
	for state := lexInit; state != nil; {
		state = state(l)
	}
	return l.items
}

func (l *lexer) emit(typ int) {
	l.items = append(l.items, item{typ, l.start, l.in[l.start:l.pos]})
	l.start = l.pos
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func lexInit(l *lexer) stateFn {
	if l.pos < len(l.in) && l.in[l.pos] == '#' {
		l.pos++
		l.emit(tokHash)
	}
	return lexWord
}

func lexWord(l *lexer) stateFn {
	for l.pos < len(l.in) && isSpace(l.in[l.pos]) {
		l.pos++
	}
	l.start = l.pos
	if l.pos >= len(l.in) {
		l.emit(tokEOF)
		return nil
	}
	for l.pos < len(l.in) && !isSpace(l.in[l.pos]) {
		l.pos++
	}
	l.emit(tokWord)
	return lexWord
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
