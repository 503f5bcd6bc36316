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

	"github.com/blinklabs-io/tokenmeta/cip26"
	"github.com/blinklabs-io/tokenmeta/keys"
)

func runSign(args []string) {
	flagset := flag.NewFlagSet("sign", flag.ExitOnError)
	metadataFile := flagset.String(
		"metadata-file",
		"",
		"metadata document to sign",
	)
	signingKeyFile := flagset.String(
		"signing-key-file",
		"",
		"signing key envelope file",
	)
	propertyName := flagset.String(
		"property",
		"",
		"sign only the named property (defaults to all properties)",
	)
	outFile := flagset.String(
		"out-file",
		"",
		"output file (defaults to overwriting the metadata file)",
	)
	if err := flagset.Parse(args); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if *metadataFile == "" || *signingKeyFile == "" {
		fmt.Printf("You must specify -metadata-file and -signing-key-file\n")
		os.Exit(1)
	}
	metadata, err := loadMetadata(*metadataFile)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	signingKey, err := keys.KeyFromEnvelopeFile(*signingKeyFile)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if *propertyName != "" {
		err = cip26.SignMetadataProperty(metadata, signingKey, *propertyName)
	} else {
		err = cip26.SignMetadata(metadata, signingKey)
	}
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if *outFile == "" {
		*outFile = *metadataFile
	}
	if err := writeMetadata(metadata, *outFile); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outFile)
}

func loadMetadata(path string) (*cip26.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	var metadata cip26.Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

func writeMetadata(metadata *cip26.Metadata, path string) error {
	data, err := json.MarshalIndent(metadata, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
