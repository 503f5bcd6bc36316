// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/tokenmeta/policy"
)

func runPolicyId(args []string) {
	flagset := flag.NewFlagSet("policy-id", flag.ExitOnError)
	scriptFile := flagset.String(
		"script-file",
		"",
		"policy script file in cardano-cli JSON format",
	)
	if err := flagset.Parse(args); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if *scriptFile == "" {
		fmt.Printf("You must specify -script-file\n")
		os.Exit(1)
	}
	policyId, err := policy.ComputePolicyIdFromFile(*scriptFile)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s\n", policyId)
}
