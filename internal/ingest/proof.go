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

	"github.com/dustin/go-humanize"
)

// ParseProof reads a proof script line by line, parsing each into a RawRule.
// formulaLen is the number of constraints the formula actually carried, used
// to validate rule f's optional claimed count.
func ParseProof(r io.Reader, name string, formulaLen int) ([]*RawRule, error) {
	scanner := bufio.NewScanner(r)
	var out []*RawRule
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rule, err := ParseProofLine(line, lineNo, name, formulaLen)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseProofLine parses a single already-trimmed, non-empty proof line.
func ParseProofLine(line string, lineNo int, name string, formulaLen int) (*RawRule, error) {
	tag := line[0]
	rest := strings.TrimSpace(line[1:])

	switch tag {
	case 'f':
		return parseLoadFormula(rest, lineNo, name, formulaLen)
	case 'l':
		return parseLiteralAxioms(rest, lineNo, name)
	case 'a':
		return parseLinearCombination(rest, lineNo, name, 'a')
	case 'd':
		return parseDivision(rest, lineNo, name)
	case 's':
		return parseLinearCombination(rest, lineNo, name, 's')
	case 'p':
		return parseRPN(rest, lineNo, name)
	case 'e':
		return parseEquals(rest, lineNo, name)
	case 'c':
		return parseContradiction(rest, lineNo, name)
	default:
		return nil, syntaxErrf(name, lineNo, 1, "unrecognized rule tag %q", string(tag))
	}
}

func parsePositiveInt(f string) (int64, error) {
	n, err := strconv.ParseInt(f, 10, 64)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

func parseLoadFormula(rest string, lineNo int, name string, formulaLen int) (*RawRule, error) {
	fields := strings.Fields(rest)
	switch len(fields) {
	case 1:
		if fields[0] != "0" {
			return nil, syntaxErrf(name, lineNo, 1, "expected '0'")
		}
		return &RawRule{Tag: 'f'}, nil
	case 2:
		n, err := parsePositiveInt(fields[0])
		if err != nil {
			return nil, syntaxErrf(name, lineNo, 1, "expected a claimed constraint count")
		}
		if fields[1] != "0" {
			return nil, syntaxErrf(name, lineNo, 1, "expected '0'")
		}
		if n != int64(formulaLen) {
			return nil, syntaxErrf(name, lineNo, 1, "claimed %d formula constraints, found %d", n, formulaLen)
		}
		claimed := n
		return &RawRule{Tag: 'f', ClaimedCount: &claimed}, nil
	default:
		return nil, syntaxErrf(name, lineNo, 1, "malformed 'f' line")
	}
}

func parseLiteralAxioms(rest string, lineNo int, name string) (*RawRule, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 || fields[1] != "0" {
		return nil, syntaxErrf(name, lineNo, 1, "expected '<n> 0'")
	}
	n, err := parsePositiveInt(fields[0])
	if err != nil {
		return nil, syntaxErrf(name, lineNo, 1, "expected a positive variable count")
	}
	return &RawRule{Tag: 'l', N: n}, nil
}

// parsePairs reads a "factor id" sequence terminated by a bare 0.
func parsePairs(fields []string, lineNo int, name string) ([]*big.Int, []int64, error) {
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, nil, syntaxErrf(name, lineNo, 1, "expected '0' terminator")
	}
	fields = fields[:len(fields)-1]
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, nil, syntaxErrf(name, lineNo, 1, "expected one or more 'factor id' pairs")
	}

	factors := make([]*big.Int, 0, len(fields)/2)
	ids := make([]int64, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		f, err := parsePositiveInt(fields[i])
		if err != nil {
			return nil, nil, syntaxErrf(name, lineNo, 1, "expected a positive factor in the %s pair", humanize.Ordinal(i/2+1))
		}
		id, err := parsePositiveInt(fields[i+1])
		if err != nil {
			return nil, nil, syntaxErrf(name, lineNo, 1, "expected a positive constraint id in the %s pair", humanize.Ordinal(i/2+1))
		}
		factors = append(factors, big.NewInt(f))
		ids = append(ids, id)
	}
	return factors, ids, nil
}

func parseLinearCombination(rest string, lineNo int, name string, tag byte) (*RawRule, error) {
	factors, ids, err := parsePairs(strings.Fields(rest), lineNo, name)
	if err != nil {
		return nil, err
	}
	return &RawRule{Tag: tag, Factors: factors, IDs: ids}, nil
}

func parseDivision(rest string, lineNo int, name string) (*RawRule, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, syntaxErrf(name, lineNo, 1, "expected a divisor")
	}
	d, err := parsePositiveInt(fields[0])
	if err != nil {
		return nil, syntaxErrf(name, lineNo, 1, "expected a positive divisor")
	}
	factors, ids, err := parsePairs(fields[1:], lineNo, name)
	if err != nil {
		return nil, err
	}
	return &RawRule{Tag: 'd', Factors: factors, IDs: ids, Divisor: big.NewInt(d)}, nil
}

func parseContradiction(rest string, lineNo int, name string) (*RawRule, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 || fields[1] != "0" {
		return nil, syntaxErrf(name, lineNo, 1, "expected '<id> 0'")
	}
	id, err := parsePositiveInt(fields[0])
	if err != nil {
		return nil, syntaxErrf(name, lineNo, 1, "expected a positive constraint id")
	}
	return &RawRule{Tag: 'c', ContradictionID: id}, nil
}

func parseEquals(rest string, lineNo int, name string) (*RawRule, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return nil, syntaxErrf(name, lineNo, 1, "expected '<id> (opb|cnf) ...'")
	}
	id, err := parsePositiveInt(fields[0])
	if err != nil {
		return nil, syntaxErrf(name, lineNo, 1, "expected a positive constraint id")
	}

	body := strings.TrimSpace(rest[len(fields[0]):])

	var rc RawConstraint
	switch fields[1] {
	case "opb":
		body = strings.TrimSpace(strings.TrimPrefix(body, "opb"))
		rc, _, err = parseOPBConstraint(body, lineNo, name, false)
		if err != nil {
			return nil, err
		}
	case "cnf":
		body = strings.TrimSpace(strings.TrimPrefix(body, "cnf"))
		lits, err := parseCNFClause(body, lineNo, name)
		if err != nil {
			return nil, err
		}
		terms := make([]RawTerm, len(lits))
		for i, lit := range lits {
			terms[i] = RawTerm{Coefficient: big.NewInt(1), Literal: lit}
		}
		rc = RawConstraint{Terms: terms, Degree: big.NewInt(1)}
	default:
		return nil, syntaxErrf(name, lineNo, 1, "expected 'opb' or 'cnf', got %q", fields[1])
	}

	return &RawRule{Tag: 'e', EqualityID: id, Expected: &rc}, nil
}

// parseRPN parses rule p's reverse-Polish program. It mirrors the way
// refpy's ReversePolishNotation validates the stack: every integer token
// counts as a push and every operator as a pop, checked left to right as
// tokens are read -- this also counts the constant operand that precedes '*'
// or 'd' as a (self-canceling) push, which is what lets the single swap step
// below reattach it to its operator unambiguously. Any underflow, or a final
// stack size other than 1, is a parse error.
func parseRPN(rest string, lineNo int, name string) (*RawRule, error) {
	fields := strings.Fields(rest)
	if len(fields) > 0 && fields[len(fields)-1] == "0" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 {
		return nil, syntaxErrf(name, lineNo, 1, "empty reverse polish notation program")
	}

	type rawTok struct {
		isOp bool
		op   string
		val  int64
	}
	seq := make([]rawTok, 0, len(fields))
	stackSize := 0
	for _, f := range fields {
		switch f {
		case "+", "*", "d":
			stackSize--
			if stackSize < 0 {
				return nil, syntaxErrf(name, lineNo, 1, "stack underflow in reverse polish notation")
			}
			seq = append(seq, rawTok{isOp: true, op: f})
		case "s":
			seq = append(seq, rawTok{isOp: true, op: f})
		default:
			n, err := parsePositiveInt(f)
			if err != nil {
				return nil, syntaxErrf(name, lineNo, 1, "expected a positive integer or operator, got %q", f)
			}
			stackSize++
			seq = append(seq, rawTok{val: n})
		}
	}
	if stackSize != 1 {
		return nil, syntaxErrf(name, lineNo, 1, "reverse polish notation leaves %d constraints on the stack, want 1", stackSize)
	}

	// Reattach each '*'/'d' operator to the constant operand that precedes
	// it by swapping the two -- after the swap the operator always sits
	// immediately before its operand.
	for i := range seq {
		if seq[i].isOp && (seq[i].op == "*" || seq[i].op == "d") {
			seq[i], seq[i-1] = seq[i-1], seq[i]
		}
	}

	instrs := make([]RawRPNToken, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		t := seq[i]
		if !t.isOp {
			instrs = append(instrs, RawRPNToken{Op: RawRPNPush, ID: t.val})
			continue
		}
		switch t.op {
		case "+":
			instrs = append(instrs, RawRPNToken{Op: RawRPNAdd})
		case "s":
			instrs = append(instrs, RawRPNToken{Op: RawRPNSaturate})
		case "*", "d":
			if i+1 >= len(seq) || seq[i+1].isOp {
				return nil, syntaxErrf(name, lineNo, 1, "operator %q is missing its constant operand", t.op)
			}
			op := RawRPNMultiply
			if t.op == "d" {
				op = RawRPNDivide
			}
			instrs = append(instrs, RawRPNToken{Op: op, Operand: big.NewInt(seq[i+1].val)})
			i++
		}
	}
	return &RawRule{Tag: 'p', RPN: instrs}, nil
}
