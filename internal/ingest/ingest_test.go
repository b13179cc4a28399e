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

package ingest_test

import (
	"strings"
	"testing"

	"github.com/irfansharif/pbcheck/internal/ingest"
	"github.com/irfansharif/pbcheck/internal/testutils"
	"github.com/stretchr/testify/require"
)

// TestParseProofLineByLine drives a small multi-line proof through
// testutils.Scanner the way the package's line-oriented fixtures do,
// checking that every line parses to the rule its tag promises.
func TestParseProofLineByLine(t *testing.T) {
	proof := strings.Join([]string{
		"f 1 0",
		"l 2 0",
		"a 1 1 1 2 0",
		"d 3 1 4 0",
		"s 1 1 0",
		"p 1 2 + 3 * 0",
		"e 1 opb +1 x1 >= 0;",
		"c 2 0",
	}, "\n")

	wantTags := []byte{'f', 'l', 'a', 'd', 's', 'p', 'e', 'c'}

	s := testutils.NewScanner(t, strings.NewReader(proof), "proof")
	var i int
	for s.Scan() {
		rule, err := ingest.ParseProofLine(s.Text(), s.Line(), "proof", 1)
		require.NoError(t, err)
		require.Equal(t, wantTags[i], rule.Tag)
		i++
	}
	require.Equal(t, len(wantTags), i)
}

func TestParseFormulaOPB(t *testing.T) {
	constraints, err := ingest.ParseFormula(strings.NewReader("* a comment\n+1 x1 +2 ~x2 >= 1;\n"), "formula")
	require.NoError(t, err)
	require.Len(t, constraints, 1)
	require.Equal(t, int64(1), constraints[0].Terms[0].Literal)
	require.Equal(t, int64(-2), constraints[0].Terms[1].Literal)
}

func TestParseFormulaOPBEqualityExpandsToTwoConstraints(t *testing.T) {
	constraints, err := ingest.ParseFormula(strings.NewReader("+1 x1 = 1;\n"), "formula")
	require.NoError(t, err)
	require.Len(t, constraints, 2)
	require.Equal(t, int64(1), constraints[0].Degree.Int64())
	require.Equal(t, int64(-1), constraints[1].Degree.Int64())
}

func TestParseFormulaCNF(t *testing.T) {
	constraints, err := ingest.ParseFormula(strings.NewReader("c header\np cnf 2 2\n1 2 0\n-1 -2 0\n"), "formula")
	require.NoError(t, err)
	require.Len(t, constraints, 2)
	require.Equal(t, int64(1), constraints[0].Degree.Int64())
}
