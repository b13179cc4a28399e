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
	"math/big"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Constraint is a normalized pseudo-Boolean inequality:
//
//	Σ cᵢ·ℓᵢ >= degree
//
// with every cᵢ >= 0 and at most one term per (absolute) variable index. It's
// the unit cutting-planes proofs operate over: every rule either loads one
// from the formula or derives one from existing constraints via AddWithFactor,
// Divide, Saturate and Multiply.
//
// A Constraint is mutated only while it's being built by a rule; once stored
// in a Database it must be treated as read-only.
type Constraint struct {
	terms  map[int64]*Term
	degree *big.Int
	bounds Bounds
}

// NewConstraint builds a Constraint from the given terms and degree,
// normalizing it: any term with a negative coefficient is rewritten in terms
// of its negated literal (flipping c·x = c·(ub-¬x) into the equivalent
// c·¬x + c·ub added to the degree), and any two terms sharing a variable are
// folded together the same way AddWithFactor folds them. Term order is not
// preserved -- it's unobservable past construction.
func NewConstraint(terms []Term, degree *big.Int, bounds Bounds) *Constraint {
	if bounds == nil {
		bounds = BooleanBounds
	}
	c := &Constraint{
		terms:  make(map[int64]*Term, len(terms)),
		degree: new(big.Int).Set(degree),
		bounds: bounds,
	}
	for _, t := range terms {
		c.merge(cloneTerm(t))
	}
	return c
}

// AddWithFactor accumulates factor*other into the receiver and returns it.
// factor must be >= 1 -- the proof grammar never produces a zero or negative
// factor, so violating this is an internal invariant failure rather than a
// user-facing error.
func (c *Constraint) AddWithFactor(factor *big.Int, other *Constraint) *Constraint {
	if factor.Sign() < 1 {
		panic("pbcheck: add-with-factor requires a positive factor")
	}

	c.degree.Add(c.degree, new(big.Int).Mul(factor, other.degree))
	for _, t := range other.terms {
		c.merge(Term{Coefficient: new(big.Int).Mul(factor, t.Coefficient), Literal: t.Literal})
	}
	return c
}

// Saturate replaces every coefficient with min(coefficient, max(0, degree)).
// If the degree is non-positive, every term is zeroed out.
func (c *Constraint) Saturate() *Constraint {
	cap := new(big.Int)
	if c.degree.Sign() > 0 {
		cap.Set(c.degree)
	}
	for _, t := range c.terms {
		if t.Coefficient.Cmp(cap) > 0 {
			t.Coefficient = new(big.Int).Set(cap)
		}
	}
	return c
}

// Divide replaces every coefficient and the degree by their ceiling division
// by d. d must be >= 1.
func (c *Constraint) Divide(d *big.Int) *Constraint {
	if d.Sign() < 1 {
		panic("pbcheck: divide requires a positive divisor")
	}
	for _, t := range c.terms {
		t.Coefficient = ceilDiv(t.Coefficient, d)
	}
	c.degree = ceilDiv(c.degree, d)
	return c
}

// Multiply scales every coefficient and the degree by f. f must be >= 1.
func (c *Constraint) Multiply(f *big.Int) *Constraint {
	if f.Sign() < 1 {
		panic("pbcheck: multiply requires a positive factor")
	}
	for _, t := range c.terms {
		t.Coefficient.Mul(t.Coefficient, f)
	}
	c.degree.Mul(c.degree, f)
	return c
}

// IsContradiction reports whether the constraint can never be satisfied: the
// sum of its coefficients -- the maximum value its left-hand side can ever
// take, since every literal is in {0, 1} -- falls short of the degree.
func (c *Constraint) IsContradiction() bool {
	sum := new(big.Int)
	for _, t := range c.terms {
		sum.Add(sum, t.Coefficient)
	}
	return sum.Cmp(c.degree) < 0
}

// Contract drops zero-coefficient terms. It must be called (directly, or via
// Equal/String) before a constraint's terms are compared or serialized.
func (c *Constraint) Contract() *Constraint {
	for v, t := range c.terms {
		if t.Coefficient.Sign() == 0 {
			delete(c.terms, v)
		}
	}
	return c
}

// Degree returns the constraint's degree.
func (c *Constraint) Degree() *big.Int {
	return new(big.Int).Set(c.degree)
}

// Terms returns a copy of the constraint's (contracted) terms, in a
// deterministic order -- sorted by absolute variable index. The order is
// provided only for reproducible output; it carries no semantic meaning.
func (c *Constraint) Terms() []Term {
	c.Contract()
	vars := maps.Keys(c.terms)
	slices.Sort(vars)

	out := make([]Term, 0, len(vars))
	for _, v := range vars {
		out = append(out, cloneTerm(*c.terms[v]))
	}
	return out
}

// Equal reports whether two (now-contracted) constraints have the same
// degree and the same multiset of terms, keyed by absolute variable index.
// Term order is not significant.
func (c *Constraint) Equal(other *Constraint) bool {
	c.Contract()
	other.Contract()

	if c.degree.Cmp(other.degree) != 0 {
		return false
	}
	if len(c.terms) != len(other.terms) {
		return false
	}
	for v, t := range c.terms {
		ot, ok := other.terms[v]
		if !ok || t.Literal != ot.Literal || t.Coefficient.Cmp(ot.Coefficient) != 0 {
			return false
		}
	}
	return true
}

// String is part of the fmt.Stringer interface. It renders the constraint the
// way it's written in an OPB proof-goal line, e.g. "+3 x1 +2 ~x2 >= 5".
func (c *Constraint) String() string {
	var b strings.Builder
	for i, t := range c.Terms() {
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(t.String())
	}
	if b.Len() != 0 {
		b.WriteString(" ")
	}
	b.WriteString(">= ")
	b.WriteString(c.degree.String())
	return b.String()
}

// merge folds t into the receiver: it applies the negation convention (a
// negative coefficient is rewritten against the negated literal, with the
// degree adjusted accordingly) and then combines it with any existing term on
// the same variable exactly the way two antecedents' terms combine in
// AddWithFactor -- summing signed magnitudes and crediting back whatever
// coefficient mass cancelled between opposite polarities.
func (c *Constraint) merge(t Term) {
	if t.Coefficient.Sign() < 0 {
		t.Literal = -t.Literal
		t.Coefficient = new(big.Int).Abs(t.Coefficient)
		c.degree.Add(c.degree, new(big.Int).Mul(t.Coefficient, c.bounds.UpperBound(t.Variable())))
	}

	v := t.Variable()
	existing, ok := c.terms[v]
	if !ok {
		term := cloneTerm(t)
		c.terms[v] = &term
		return
	}

	a := copysign(existing.Coefficient, existing.Negated())
	b := copysign(t.Coefficient, t.Negated())
	sum := new(big.Int).Add(a, b)

	newCoeff := new(big.Int).Abs(sum)
	maxOld := existing.Coefficient
	if t.Coefficient.Cmp(maxOld) > 0 {
		maxOld = t.Coefficient
	}
	cancellation := new(big.Int).Sub(maxOld, newCoeff)
	if cancellation.Sign() > 0 {
		c.degree.Sub(c.degree, new(big.Int).Mul(cancellation, c.bounds.UpperBound(v)))
	}

	existing.Coefficient = newCoeff
	if sum.Sign() < 0 {
		existing.Literal = -v
	} else {
		existing.Literal = v
	}
}

// ceilDiv computes ⌈v/d⌉ for a positive divisor d, using Euclidean division so
// the result is correct for a negative v too (a constraint's degree can be
// negative, even though coefficients never are).
func ceilDiv(v, d *big.Int) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.DivMod(v, d, r)
	if r.Sign() != 0 {
		q.Add(q, one)
	}
	return q
}
