package dbc

import (
	"strings"
)

// tokenKind enumerates the lexical categories the DBC tokenizer produces.
// Keywords are never a distinct kind: "EV_" and "EV_EVAR1" both lex as
// identifiers, and it is the parser's job to recognize a keyword only when
// it appears at a position that expects one. That is what lets an
// identifier embed a keyword prefix (EV_EVAR1, CM_SIGNAL11) without the
// lexer special-casing it.
type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokPunct
	tokEOF
)

// token is a single lexical unit with its source position. Start/End are
// byte offsets used to test adjacency (no intervening whitespace) when the
// parser reassembles a compound numeric token from its fragments.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
	line  int
	col   int
}

// isPunct reports whether r is one of the fixed single-character
// punctuation tokens the grammar of spec.md §4.2 uses.
func isPunct(r byte) bool {
	switch r {
	case ':', ';', ',', '|', '@', '+', '-', '(', ')', '[', ']', '.':
		return true
	default:
		return false
	}
}

func isIdentByte(r byte) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// lexer tokenizes DBC source text. It performs no grammar-level decisions;
// it only recognizes identifiers, quoted strings, and punctuation.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	// Normalize CRLF to LF so line/column accounting stays simple; DBC
	// text carries no semantic significance in line endings (spec.md §6.1).
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return &lexer{src: src, pos: 0, line: 1, col: 1}
}

func (l *lexer) advanceByte() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == ' ' || b == '\t' || b == '\n' {
			l.advanceByte()
			continue
		}
		break
	}
}

// next returns the next token in the stream. At end of input it returns a
// tokEOF token forever.
func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, start: l.pos, end: l.pos, line: l.line, col: l.col}, nil
	}

	startLine, startCol, start := l.line, l.col, l.pos
	b := l.src[l.pos]

	switch {
	case b == '"':
		return l.scanString(startLine, startCol, start)
	case isPunct(b):
		l.advanceByte()
		return token{kind: tokPunct, text: string(b), start: start, end: l.pos, line: startLine, col: startCol}, nil
	case isIdentByte(b):
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.advanceByte()
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], start: start, end: l.pos, line: startLine, col: startCol}, nil
	default:
		return token{}, newSyntaxError(startLine, startCol, "unexpected character %q", b)
	}
}

// scanString reads a double-quoted string. Escapes are never interpreted
// (spec.md §4.1, §6.1): the string ends at the very next quote character.
func (l *lexer) scanString(startLine, startCol, start int) (token, error) {
	l.advanceByte() // opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.advanceByte()
	}
	if l.pos >= len(l.src) {
		return token{}, newSyntaxError(startLine, startCol, "unterminated string literal")
	}
	l.advanceByte() // closing quote
	return token{kind: tokString, text: l.src[start:l.pos], start: start, end: l.pos, line: startLine, col: startCol}, nil
}
