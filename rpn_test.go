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
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRPNMatchesLinearCombination checks that "id1 id2 + 3 *" (add two
// antecedents, then scale by 3) agrees with rule a combining the same two
// antecedents, followed by a Multiply by 3 -- i.e. running the RPN program
// produces the same constraint as hand-combining and then multiplying.
func TestRPNMatchesLinearCombination(t *testing.T) {
	a1 := unit(1, 1, 0)
	a2 := unit(1, 2, 0)

	rpn := &RPNRule{Instructions: []RPNInstruction{
		{Op: RPNPush, ID: 0},
		{Op: RPNPush, ID: 1},
		{Op: RPNAdd},
		{Op: RPNMultiply, Operand: big.NewInt(3)},
	}}
	got, err := rpn.Compute([]*Constraint{a1, a2})
	require.NoError(t, err)
	require.Len(t, got, 1)

	combo := &LinearCombinationRule{Factors: []*big.Int{big.NewInt(1), big.NewInt(1)}, IDs: []int64{1, 2}}
	want, err := combo.Compute([]*Constraint{unit(1, 1, 0), unit(1, 2, 0)})
	require.NoError(t, err)
	want[0].Multiply(big.NewInt(3))

	require.True(t, want[0].Equal(got[0]), "got %s want %s", got[0], want[0])
}

func TestRPNSaturateThenDivide(t *testing.T) {
	base := NewConstraint([]Term{
		{Coefficient: big.NewInt(5), Literal: 1},
		{Coefficient: big.NewInt(1), Literal: 2},
	}, big.NewInt(3), BooleanBounds)

	rpn := &RPNRule{Instructions: []RPNInstruction{
		{Op: RPNPush, ID: 0},
		{Op: RPNSaturate},
		{Op: RPNDivide, Operand: big.NewInt(2)},
	}}
	got, err := rpn.Compute([]*Constraint{base})
	require.NoError(t, err)

	expect := NewConstraint([]Term{
		{Coefficient: big.NewInt(5), Literal: 1},
		{Coefficient: big.NewInt(1), Literal: 2},
	}, big.NewInt(3), BooleanBounds)
	expect.Saturate()
	expect.Divide(big.NewInt(2))

	require.True(t, expect.Equal(got[0]))
}

func TestRPNAntecedentIDsOrder(t *testing.T) {
	rpn := &RPNRule{Instructions: []RPNInstruction{
		{Op: RPNPush, ID: 7},
		{Op: RPNPush, ID: 3},
		{Op: RPNAdd},
		{Op: RPNPush, ID: 9},
		{Op: RPNAdd},
	}}
	require.Equal(t, []int64{7, 3, 9}, rpn.AntecedentIDs())
}

func TestRPNStackUnderflowIsInternalError(t *testing.T) {
	rpn := &RPNRule{Instructions: []RPNInstruction{{Op: RPNAdd}}}
	_, err := rpn.Compute(nil)
	require.Error(t, err)
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
}
