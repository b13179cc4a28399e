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

package pbcheck

import (
	"errors"
	"io"

	"github.com/irfansharif/pbcheck/internal/ingest"
)

// Interpreter runs a proof script against a Database, dispatching each line
// to the Rule it names and recording whether a goal was ever reached. It
// holds no state of its own beyond the Database and the goal flag, the same
// shape as the teacher's own single-pass model-building walk.
type Interpreter struct {
	db          *Database
	goalReached bool
}

// NewInterpreter returns an Interpreter over a fresh, empty Database.
func NewInterpreter() *Interpreter {
	return &Interpreter{db: NewDatabase()}
}

// Database returns the interpreter's constraint database.
func (in *Interpreter) Database() *Database {
	return in.db
}

// GoalReached reports whether any goal rule (e or c) has succeeded so far.
func (in *Interpreter) GoalReached() bool {
	return in.goalReached
}

// Step resolves rule's antecedents from the database, runs it, appends
// whatever constraints it produces, and records whether it was a
// successfully discharged goal. It returns the ids assigned to the produced
// constraints.
func (in *Interpreter) Step(rule Rule) ([]int64, error) {
	ids := rule.AntecedentIDs()
	antecedents := make([]*Constraint, len(ids))
	for i, id := range ids {
		c, err := in.db.Get(id)
		if err != nil {
			return nil, err
		}
		antecedents[i] = c
	}

	produced, err := rule.Compute(antecedents)
	if err != nil {
		return nil, err
	}

	assigned := make([]int64, 0, len(produced))
	for _, c := range produced {
		assigned = append(assigned, in.db.Add(c))
	}
	if rule.IsGoal() {
		in.goalReached = true
	}
	return assigned, nil
}

// Run parses a formula and a proof script, feeds every rule through an
// Interpreter in order, and reports whether the proof is accepted: every
// line must evaluate without error, and at least one goal rule (e or c)
// must succeed along the way. formulaName and proofName are used only to
// attribute parse errors.
func Run(formula io.Reader, formulaName string, proof io.Reader, proofName string) (bool, error) {
	rawConstraints, err := ingest.ParseFormula(formula, formulaName)
	if err != nil {
		return false, convertIngestErr(err)
	}
	loaded := make([]*Constraint, len(rawConstraints))
	for i, rc := range rawConstraints {
		loaded[i] = constraintFromRaw(rc)
	}

	rawRules, err := ingest.ParseProof(proof, proofName, len(loaded))
	if err != nil {
		return false, convertIngestErr(err)
	}

	interp := NewInterpreter()
	for _, rr := range rawRules {
		rule, err := ruleFromRaw(rr, loaded)
		if err != nil {
			return false, err
		}
		if _, err := interp.Step(rule); err != nil {
			return false, err
		}
	}
	return interp.GoalReached(), nil
}

// convertIngestErr translates an *ingest.SyntaxError into the equivalent
// *ParseError. Any other error (e.g. an I/O failure) is passed through
// unchanged.
func convertIngestErr(err error) error {
	var se *ingest.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{File: se.File, Line: se.Line, Col: se.Col, Msg: se.Msg}
	}
	return err
}

// constraintFromRaw builds a Constraint from the ingest package's
// unvalidated representation.
func constraintFromRaw(rc ingest.RawConstraint) *Constraint {
	terms := make([]Term, len(rc.Terms))
	for i, t := range rc.Terms {
		terms[i] = Term{Coefficient: t.Coefficient, Literal: t.Literal}
	}
	return NewConstraint(terms, rc.Degree, BooleanBounds)
}

// ruleFromRaw builds a Rule from the ingest package's unvalidated
// representation. formula is threaded through for tag f, whose rule carries
// the already-parsed constraints rather than reparsing them.
func ruleFromRaw(rr *ingest.RawRule, formula []*Constraint) (Rule, error) {
	switch rr.Tag {
	case 'f':
		return &LoadFormulaRule{Formula: formula}, nil
	case 'l':
		return &LoadLiteralAxiomsRule{N: rr.N}, nil
	case 'a':
		return &LinearCombinationRule{Factors: rr.Factors, IDs: rr.IDs}, nil
	case 'd':
		return &DivisionRule{
			LinearCombinationRule: LinearCombinationRule{Factors: rr.Factors, IDs: rr.IDs},
			Divisor:               rr.Divisor,
		}, nil
	case 's':
		return &SaturationRule{
			LinearCombinationRule: LinearCombinationRule{Factors: rr.Factors, IDs: rr.IDs},
		}, nil
	case 'p':
		return &RPNRule{Instructions: rpnFromRaw(rr.RPN)}, nil
	case 'e':
		return &ConstraintEqualsRule{ID: rr.EqualityID, Expected: constraintFromRaw(*rr.Expected)}, nil
	case 'c':
		return &IsContradictionRule{ID: rr.ContradictionID}, nil
	default:
		return nil, &InternalError{Msg: "ingest produced an unrecognized rule tag"}
	}
}

func rpnFromRaw(raw []ingest.RawRPNToken) []RPNInstruction {
	out := make([]RPNInstruction, len(raw))
	for i, t := range raw {
		out[i] = RPNInstruction{ID: t.ID, Operand: t.Operand}
		switch t.Op {
		case ingest.RawRPNPush:
			out[i].Op = RPNPush
		case ingest.RawRPNAdd:
			out[i].Op = RPNAdd
		case ingest.RawRPNMultiply:
			out[i].Op = RPNMultiply
		case ingest.RawRPNDivide:
			out[i].Op = RPNDivide
		case ingest.RawRPNSaturate:
			out[i].Op = RPNSaturate
		}
	}
	return out
}
