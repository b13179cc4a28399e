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

import "math/big"

type lazyOpKind int

const (
	lazySaturate lazyOpKind = iota
	lazyDivide
	lazyMultiply
)

// lazyOp is one recorded operation in a LazyConstraint's pending pipeline. For
// lazySaturate, operand holds the cached degree captured at record time (see
// LazyConstraint.Saturate); for lazyDivide/lazyMultiply it holds the divisor
// or factor.
type lazyOp struct {
	kind    lazyOpKind
	operand *big.Int
}

// LazyConstraint wraps a borrowed base Constraint and a short pipeline of
// pending divide/multiply/saturate operations, applying them to coefficients
// and the degree on demand instead of eagerly materializing an intermediate
// Constraint after every step. The RPN evaluator (rule p) is the only
// consumer: it's the one place a handful of these operations get chained
// before the result ever needs to be stored.
//
// Every mutator returns a new LazyConstraint rather than mutating in place, so
// two branches built from the same stacked value never alias each other's
// pipeline.
type LazyConstraint struct {
	base *Constraint
	ops  []lazyOp
}

// newLazyConstraint wraps base with an empty pipeline.
func newLazyConstraint(base *Constraint) *LazyConstraint {
	return &LazyConstraint{base: base}
}

// Saturate records a saturation, capturing the current effective degree so
// the operation is self-contained once recorded.
func (l *LazyConstraint) Saturate() *LazyConstraint {
	cached := l.Degree()
	if cached.Sign() < 0 {
		cached = big.NewInt(0)
	}
	return l.with(lazyOp{kind: lazySaturate, operand: cached})
}

// Divide records a ceiling division by d, which must be >= 1.
func (l *LazyConstraint) Divide(d *big.Int) *LazyConstraint {
	if d.Sign() < 1 {
		panic("pbcheck: divide requires a positive divisor")
	}
	return l.with(lazyOp{kind: lazyDivide, operand: new(big.Int).Set(d)})
}

// Multiply records a scaling by f, which must be >= 1.
func (l *LazyConstraint) Multiply(f *big.Int) *LazyConstraint {
	if f.Sign() < 1 {
		panic("pbcheck: multiply requires a positive factor")
	}
	return l.with(lazyOp{kind: lazyMultiply, operand: new(big.Int).Set(f)})
}

// AddWithFactor materializes both operands into fresh Constraints and
// delegates to Constraint.AddWithFactor -- the one operation a deferred
// pipeline can't itself express, since it mixes two independent term sets.
func (l *LazyConstraint) AddWithFactor(factor *big.Int, other *LazyConstraint) *Constraint {
	return l.Materialize().AddWithFactor(factor, other.Materialize())
}

// Contract materializes the pending pipeline into a fresh Constraint and
// contracts it.
func (l *LazyConstraint) Contract() *Constraint {
	return l.Materialize().Contract()
}

// Materialize applies every pending operation and returns a fresh Constraint
// built from the result.
func (l *LazyConstraint) Materialize() *Constraint {
	return NewConstraint(l.Terms(), l.Degree(), l.base.bounds)
}

// Degree returns the degree after applying every pending operation.
func (l *LazyConstraint) Degree() *big.Int {
	return l.apply(l.base.degree)
}

// Terms returns the base constraint's (contracted) terms with every pending
// operation applied to each coefficient.
func (l *LazyConstraint) Terms() []Term {
	base := l.base.Terms()
	out := make([]Term, 0, len(base))
	for _, t := range base {
		out = append(out, Term{Coefficient: l.apply(t.Coefficient), Literal: t.Literal})
	}
	return out
}

func (l *LazyConstraint) with(op lazyOp) *LazyConstraint {
	ops := make([]lazyOp, len(l.ops)+1)
	copy(ops, l.ops)
	ops[len(l.ops)] = op
	return &LazyConstraint{base: l.base, ops: ops}
}

// apply runs v through the pending pipeline in record order.
func (l *LazyConstraint) apply(v *big.Int) *big.Int {
	out := new(big.Int).Set(v)
	for _, op := range l.ops {
		switch op.kind {
		case lazySaturate:
			if op.operand.Cmp(out) < 0 {
				out.Set(op.operand)
			}
		case lazyDivide:
			out = ceilDiv(out, op.operand)
		case lazyMultiply:
			out.Mul(out, op.operand)
		}
	}
	return out
}
