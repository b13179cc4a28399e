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

package pbcheck_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/irfansharif/pbcheck"
)

// TestDatadriven walks testdata/{accept,invalid,parse_error,reject}, each
// file building up a formula and a proof across "formula"/"proof" directives
// and then checking the outcome of running them together with "run". The
// subdirectories mirror the ways a run call can end: accepted, rejected with
// an InvalidProof error, rejected with a ParseError, or rejected outright
// because no goal rule (e or c) ever ran.
func TestDatadriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		var formulaText, proofText string
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "formula":
				formulaText = d.Input
				return "ok\n"
			case "proof":
				proofText = d.Input
				return "ok\n"
			case "run":
				accepted, err := pbcheck.Run(
					strings.NewReader(formulaText), "formula",
					strings.NewReader(proofText), "proof",
				)
				if err != nil {
					kind := "error"
					switch {
					case pbcheck.IsParseError(err):
						kind = "parse_error"
					case pbcheck.IsInvalidProof(err):
						kind = "invalid"
					}
					return fmt.Sprintf("%s: %s\n", kind, err)
				}
				if accepted {
					return "accept\n"
				}
				return "reject: no goal reached\n"
			default:
				t.Fatalf("unknown directive %q", d.Cmd)
				return ""
			}
		})
	})
}
