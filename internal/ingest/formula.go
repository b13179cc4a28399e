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

package ingest

import (
	"bufio"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/irfansharif/pbcheck/internal/ingest/lexer"
	"github.com/irfansharif/pbcheck/internal/ingest/token"
)

// ParseFormula reads an OPB or DIMACS CNF formula from r, dispatching on its
// first substantive line: a "p cnf ..." header, or a body line with no ';'
// and only signed integers, selects the CNF reader; everything else is
// parsed as OPB. name is used only for error attribution.
func ParseFormula(r io.Reader, name string) ([]RawConstraint, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			return parseCNFLines(lines, name)
		}
		if strings.Contains(line, ";") {
			return parseOPBLines(lines, name)
		}
		if looksLikeCNFClause(line) {
			return parseCNFLines(lines, name)
		}
		return parseOPBLines(lines, name)
	}
	return nil, nil
}

// looksLikeCNFClause reports whether line is a plain sequence of signed
// integers -- the shape of a DIMACS clause with no header present.
func looksLikeCNFClause(line string) bool {
	for _, f := range strings.Fields(line) {
		f = strings.TrimPrefix(f, "-")
		if f == "" {
			return false
		}
		if _, err := strconv.ParseInt(f, 10, 64); err != nil {
			return false
		}
	}
	return true
}

func parseOPBLines(lines []string, name string) ([]RawConstraint, error) {
	var out []RawConstraint
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		rc, isEq, err := parseOPBConstraint(line, i+1, name, true)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
		if isEq {
			out = append(out, negateRawConstraint(rc))
		}
	}
	return out, nil
}

func parseCNFLines(lines []string, name string) ([]RawConstraint, error) {
	var out []RawConstraint
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "p") {
			continue
		}
		lits, err := parseCNFClause(line, i+1, name)
		if err != nil {
			return nil, err
		}
		terms := make([]RawTerm, len(lits))
		for j, lit := range lits {
			terms[j] = RawTerm{Coefficient: big.NewInt(1), Literal: lit}
		}
		out = append(out, RawConstraint{Terms: terms, Degree: big.NewInt(1)})
	}
	return out, nil
}

// negateRawConstraint produces the constraint asserting the opposite
// direction of an OPB "=" line: sum(-Terms) >= -Degree.
func negateRawConstraint(rc RawConstraint) RawConstraint {
	terms := make([]RawTerm, len(rc.Terms))
	for i, t := range rc.Terms {
		terms[i] = RawTerm{Coefficient: new(big.Int).Neg(t.Coefficient), Literal: t.Literal}
	}
	return RawConstraint{Terms: terms, Degree: new(big.Int).Neg(rc.Degree)}
}

// parseOPBConstraint parses "[+-]c1 [~]x1 [+-]c2 [~]x2 ... (>=|=) degree ;"
// from body. When allowEq is false, "=" is rejected (used by rule e's goal
// line, which only ever claims "sum >= degree").
func parseOPBConstraint(body string, lineNo int, name string, allowEq bool) (RawConstraint, bool, error) {
	lx := lexer.New(body)
	var terms []RawTerm

	for {
		tok := lx.Next()
		if tok.Type == token.GE || tok.Type == token.EQ {
			if tok.Type == token.EQ && !allowEq {
				return RawConstraint{}, false, syntaxErrf(name, lineNo, tok.Col, "'=' is not permitted here")
			}
			isEq := tok.Type == token.EQ

			dtok := lx.Next()
			sign := int64(1)
			if dtok.Type == token.PLUS {
				dtok = lx.Next()
			} else if dtok.Type == token.MINUS {
				sign = -1
				dtok = lx.Next()
			}
			if dtok.Type != token.INT {
				return RawConstraint{}, false, syntaxErrf(name, lineNo, dtok.Col, "expected a degree")
			}
			degree := new(big.Int)
			degree.SetString(dtok.Value, 10)
			if sign < 0 {
				degree.Neg(degree)
			}

			stok := lx.Next()
			if stok.Type != token.SEMI {
				return RawConstraint{}, false, syntaxErrf(name, lineNo, stok.Col, "expected ';'")
			}
			return RawConstraint{Terms: terms, Degree: degree}, isEq, nil
		}
		if tok.Type == token.EOF {
			return RawConstraint{}, false, syntaxErrf(name, lineNo, tok.Col, "unexpected end of line, expected '>=' or '='")
		}

		sign := int64(1)
		if tok.Type == token.PLUS {
			tok = lx.Next()
		} else if tok.Type == token.MINUS {
			sign = -1
			tok = lx.Next()
		}
		if tok.Type != token.INT {
			return RawConstraint{}, false, syntaxErrf(name, lineNo, tok.Col, "expected a coefficient")
		}
		coeff := new(big.Int)
		coeff.SetString(tok.Value, 10)
		if sign < 0 {
			coeff.Neg(coeff)
		}

		vtok := lx.Next()
		negated := false
		if vtok.Type == token.TILDE {
			negated = true
			vtok = lx.Next()
		}
		if vtok.Type != token.WORD || !strings.HasPrefix(vtok.Value, "x") {
			return RawConstraint{}, false, syntaxErrf(name, lineNo, vtok.Col, "expected a variable, e.g. x1")
		}
		v, err := strconv.ParseInt(vtok.Value[1:], 10, 64)
		if err != nil || v <= 0 {
			return RawConstraint{}, false, syntaxErrf(name, lineNo, vtok.Col, "malformed variable %q", vtok.Value)
		}
		lit := v
		if negated {
			lit = -v
		}
		terms = append(terms, RawTerm{Coefficient: coeff, Literal: lit})
	}
}

// parseCNFClause reads a whitespace-separated list of signed integer
// literals terminated by a bare 0, the DIMACS clause format.
func parseCNFClause(body string, lineNo int, name string) ([]int64, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, syntaxErrf(name, lineNo, 1, "clause must be terminated by '0'")
	}
	fields = fields[:len(fields)-1]

	lits := make([]int64, 0, len(fields))
	for _, f := range fields {
		lit, err := strconv.ParseInt(f, 10, 64)
		if err != nil || lit == 0 {
			return nil, syntaxErrf(name, lineNo, 1, "malformed literal %q", f)
		}
		lits = append(lits, lit)
	}
	return lits, nil
}
