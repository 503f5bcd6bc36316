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

	"github.com/blinklabs-io/tokenmeta/cip26"
	"github.com/blinklabs-io/tokenmeta/keys"
)

func runValidate(args []string) {
	flagset := flag.NewFlagSet("validate", flag.ExitOnError)
	metadataFile := flagset.String(
		"metadata-file",
		"",
		"metadata document to validate",
	)
	baseFile := flagset.String(
		"base-file",
		"",
		"base metadata document to validate an update against",
	)
	verificationKeyFile := flagset.String(
		"verification-key-file",
		"",
		"restrict signature checks to signatures made by this key",
	)
	signaturesOnly := flagset.Bool(
		"signatures-only",
		false,
		"skip the property content rules",
	)
	if err := flagset.Parse(args); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if *metadataFile == "" {
		fmt.Printf("You must specify -metadata-file\n")
		os.Exit(1)
	}
	metadata, err := loadMetadata(*metadataFile)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	cfg := cip26.ValidationConfig{
		SignaturesOnly: *signaturesOnly,
	}
	if *verificationKeyFile != "" {
		verificationKey, err := keys.KeyFromEnvelopeFile(*verificationKeyFile)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		cfg.VerificationKey = verificationKey
	}
	var result *cip26.ValidationResult
	if *baseFile != "" {
		base, err := loadMetadata(*baseFile)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		result, err = cip26.ValidateMetadataUpdate(metadata, base, cfg)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
	} else {
		result, err = cip26.ValidateMetadata(metadata, cfg)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
	}
	if result.Valid() {
		fmt.Printf("Valid\n")
		return
	}
	for _, tmpError := range result.Errors() {
		fmt.Printf("%s\n", tmpError.String())
	}
	os.Exit(1)
}
