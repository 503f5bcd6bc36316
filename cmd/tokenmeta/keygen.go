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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/tokenmeta/keys"
)

func runKeygen(args []string) {
	flagset := flag.NewFlagSet("keygen", flag.ExitOnError)
	signingKeyFile := flagset.String(
		"signing-key-file",
		"payment.skey",
		"output file for the signing key envelope",
	)
	verificationKeyFile := flagset.String(
		"verification-key-file",
		"payment.vkey",
		"output file for the verification key envelope",
	)
	if err := flagset.Parse(args); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	signingKey, err := keys.GenerateSigningKey()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	verificationKey, err := signingKey.VerificationKey()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := writeEnvelope(signingKey, *signingKeyFile); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := writeEnvelope(verificationKey, *verificationKeyFile); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	keyHash, err := signingKey.Hash()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s and %s\n", *signingKeyFile, *verificationKeyFile)
	fmt.Printf("Key hash: %s\n", keyHash.String())
}

func writeEnvelope(key *keys.Key, path string) error {
	tmpEnvelope, err := key.TextEnvelope()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tmpEnvelope, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	// Signing key envelopes carry secret material
	return os.WriteFile(path, data, 0o600)
}
