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

// Bounds maps a variable index to its upper bound. The checker only ever
// constructs Boolean variables (upper bound 1), but every place that
// normalizes or negates a term threads a Bounds through rather than hardcoding
// 1, so a later general-integer extension wouldn't need to touch
// Constraint.merge or Constraint.AddWithFactor.
//
// NB: this mirrors the role Domain plays for IntVar in the original model
// builder this package is descended from -- an abstraction kept around for a
// generalization that hasn't landed yet.
type Bounds interface {
	// UpperBound returns the upper bound for the given (unsigned) variable
	// index.
	UpperBound(variable int64) *big.Int
}

// BooleanBounds is the Bounds implementation used throughout this package: it
// reports an upper bound of 1 for every variable.
var BooleanBounds Bounds = booleanBounds{}

type booleanBounds struct{}

var one = big.NewInt(1)

// UpperBound is part of the Bounds interface.
func (booleanBounds) UpperBound(int64) *big.Int {
	return one
}
