// Copyright 2021 Irfan Sharif.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package lexer tokenizes a single OPB/CNF constraint line. It's a much
// smaller relative of the teacher's parser/lexer package: one rune-at-a-time
// scanner, no keyword table, no string literals -- just what a constraint
// line's grammar actually contains.
package lexer

import (
	"unicode"

	"github.com/irfansharif/pbcheck/internal/ingest/token"
)

// Lexer scans a line of text into a stream of Tokens.
type Lexer struct {
	input []rune
	pos   int // index of the next unread rune
}

// New returns a Lexer positioned at the start of line.
func New(line string) *Lexer {
	return &Lexer{input: []rune(line)}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() rune {
	r := l.peek()
	l.pos++
	return r
}

// Next scans and returns the next token, skipping leading whitespace.
func (l *Lexer) Next() token.Token {
	for unicode.IsSpace(l.peek()) {
		l.pos++
	}

	col := l.pos + 1
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Col: col}
	}

	r := l.peek()
	switch {
	case r == '+':
		l.advance()
		return token.Token{Type: token.PLUS, Value: "+", Col: col}
	case r == '-':
		l.advance()
		return token.Token{Type: token.MINUS, Value: "-", Col: col}
	case r == '~':
		l.advance()
		return token.Token{Type: token.TILDE, Value: "~", Col: col}
	case r == ';':
		l.advance()
		return token.Token{Type: token.SEMI, Value: ";", Col: col}
	case r == '=':
		l.advance()
		return token.Token{Type: token.EQ, Value: "=", Col: col}
	case r == '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return token.Token{Type: token.GE, Value: ">=", Col: col}
		}
		return token.Token{Type: token.ILLEGAL, Value: ">", Col: col}
	case unicode.IsDigit(r):
		start := l.pos
		for unicode.IsDigit(l.peek()) {
			l.advance()
		}
		return token.Token{Type: token.INT, Value: string(l.input[start:l.pos]), Col: col}
	case unicode.IsLetter(r):
		start := l.pos
		for unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) {
			l.advance()
		}
		return token.Token{Type: token.WORD, Value: string(l.input[start:l.pos]), Col: col}
	default:
		l.advance()
		return token.Token{Type: token.ILLEGAL, Value: string(r), Col: col}
	}
}
