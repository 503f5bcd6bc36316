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

package policy

import (
	"github.com/blinklabs-io/tokenmeta/cbor"
	"github.com/blinklabs-io/tokenmeta/hashing"
)

// Native scripts are hashed with a leading namespace byte to distinguish
// them from Plutus scripts sharing the same hash space
const nativeScriptNamespace byte = 0x00

// Cbor returns the canonical CBOR encoding of the script
func (s Script) Cbor() ([]byte, error) {
	return cbor.Encode(s)
}

// Hash returns the Blake2b-224 hash of the script as computed by the
// Cardano ledger
func (s Script) Hash() (hashing.Blake2b224, error) {
	scriptCbor, err := s.Cbor()
	if err != nil {
		return hashing.Blake2b224{}, err
	}
	prefixed := make([]byte, 0, len(scriptCbor)+1)
	prefixed = append(prefixed, nativeScriptNamespace)
	prefixed = append(prefixed, scriptCbor...)
	return hashing.Blake2b224Hash(prefixed), nil
}

// ComputePolicyId returns the policy id for the script as a lowercase hex
// string of 56 characters
func (s Script) ComputePolicyId() (string, error) {
	scriptHash, err := s.Hash()
	if err != nil {
		return "", err
	}
	return scriptHash.String(), nil
}

// ComputePolicyIdFromJson parses a cardano-cli style script document and
// returns its policy id
func ComputePolicyIdFromJson(data []byte) (string, error) {
	tmpScript, err := ScriptFromJson(data)
	if err != nil {
		return "", err
	}
	return tmpScript.ComputePolicyId()
}

// ComputePolicyIdFromFile parses a cardano-cli style script document from a
// file and returns its policy id
func ComputePolicyIdFromFile(path string) (string, error) {
	tmpScript, err := ScriptFromFile(path)
	if err != nil {
		return "", err
	}
	return tmpScript.ComputePolicyId()
}
