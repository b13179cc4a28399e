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
	"fmt"
	"math/big"
)

// Term is a single summand of a Constraint: a non-negative coefficient
// attached to a literal. The literal's absolute value is a variable index
// (>= 1); its sign encodes polarity -- positive for the variable itself,
// negative for its negation.
type Term struct {
	Coefficient *big.Int
	Literal     int64
}

// Variable returns the (unsigned) variable index this term refers to.
func (t Term) Variable() int64 {
	if t.Literal < 0 {
		return -t.Literal
	}
	return t.Literal
}

// Negated is true iff the term's literal is the negation of its variable.
func (t Term) Negated() bool {
	return t.Literal < 0
}

// String is part of the fmt.Stringer interface. Terms render the way they're
// written in an OPB constraint line, e.g. "+3 x1" or "-2 ~x4".
func (t Term) String() string {
	sign := "+"
	if t.Coefficient.Sign() < 0 {
		sign = "-"
	}
	if t.Negated() {
		return fmt.Sprintf("%s%s ~x%d", sign, new(big.Int).Abs(t.Coefficient), t.Variable())
	}
	return fmt.Sprintf("%s%s x%d", sign, new(big.Int).Abs(t.Coefficient), t.Variable())
}

func cloneTerm(t Term) Term {
	return Term{Coefficient: new(big.Int).Set(t.Coefficient), Literal: t.Literal}
}

// copysign returns |a| if negative is false, -|a| otherwise -- the literal's
// polarity applied to the magnitude of a. Used by Constraint.merge to recombine a
// coefficient with a literal's polarity and back.
func copysign(a *big.Int, negative bool) *big.Int {
	abs := new(big.Int).Abs(a)
	if negative {
		return abs.Neg(abs)
	}
	return abs
}
