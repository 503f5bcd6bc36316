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
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf(
			"You must specify a subcommand (keygen, policy-id, sign or validate)\n",
		)
		os.Exit(1)
	}
	switch os.Args[1] {
	case "keygen":
		runKeygen(os.Args[2:])
	case "policy-id":
		runPolicyId(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		os.Exit(1)
	}
}
