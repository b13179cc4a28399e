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

// Command pbcheck verifies a cutting-planes proof against a pseudo-Boolean
// formula: pbcheck <formula> <proof>. It exits 0 if the proof is accepted,
// 1 if it's rejected (parsed fine but no goal was reached, or a goal
// explicitly failed), and 2 on a malformed formula/proof or an I/O error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/irfansharif/pbcheck"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <formula> <proof>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0), flag.Arg(1)))
}

func run(formulaPath, proofPath string) int {
	formulaFile, err := os.Open(formulaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer formulaFile.Close()

	proofFile, err := os.Open(proofPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer proofFile.Close()

	accepted, err := pbcheck.Run(formulaFile, formulaPath, proofFile, proofPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if pbcheck.IsInvalidProof(err) {
			return 1
		}
		return 2
	}
	if !accepted {
		fmt.Fprintln(os.Stderr, "proof did not reach a goal")
		return 1
	}
	fmt.Println("accept")
	return 0
}
