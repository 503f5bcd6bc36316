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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// JSON type names as used by cardano-cli script documents
const (
	jsonTypeSig     = "sig"
	jsonTypeAll     = "all"
	jsonTypeAny     = "any"
	jsonTypeAtLeast = "atLeast"
	jsonTypeAfter   = "after"
	jsonTypeBefore  = "before"
)

type scriptJson struct {
	Type     string   `json:"type"`
	KeyHash  string   `json:"keyHash,omitempty"`
	Required *uint    `json:"required,omitempty"`
	Scripts  []Script `json:"scripts,omitempty"`
	Slot     *uint64  `json:"slot,omitempty"`
}

func (s Script) MarshalJSON() ([]byte, error) {
	var tmpJson scriptJson
	switch v := s.item.(type) {
	case *ScriptSig:
		tmpJson.Type = jsonTypeSig
		tmpJson.KeyHash = hex.EncodeToString(v.KeyHash)
	case *ScriptAll:
		tmpJson.Type = jsonTypeAll
		tmpJson.Scripts = v.Scripts
		if tmpJson.Scripts == nil {
			tmpJson.Scripts = []Script{}
		}
	case *ScriptAny:
		tmpJson.Type = jsonTypeAny
		tmpJson.Scripts = v.Scripts
		if tmpJson.Scripts == nil {
			tmpJson.Scripts = []Script{}
		}
	case *ScriptAtLeast:
		tmpJson.Type = jsonTypeAtLeast
		tmpRequired := v.Required
		tmpJson.Required = &tmpRequired
		tmpJson.Scripts = v.Scripts
		if tmpJson.Scripts == nil {
			tmpJson.Scripts = []Script{}
		}
	case *ScriptAfter:
		tmpJson.Type = jsonTypeAfter
		tmpSlot := v.Slot
		tmpJson.Slot = &tmpSlot
	case *ScriptBefore:
		tmpJson.Type = jsonTypeBefore
		tmpSlot := v.Slot
		tmpJson.Slot = &tmpSlot
	default:
		return nil, FormatError{Reason: "empty script"}
	}
	return json.Marshal(&tmpJson)
}

func (s *Script) UnmarshalJSON(data []byte) error {
	var tmpJson scriptJson
	if err := json.Unmarshal(data, &tmpJson); err != nil {
		return fmt.Errorf("failed to parse policy script: %w", err)
	}
	switch tmpJson.Type {
	case jsonTypeSig:
		keyHash, err := hex.DecodeString(tmpJson.KeyHash)
		if err != nil {
			return FormatError{
				Reason: fmt.Sprintf("key hash is not valid hex: %s", err),
			}
		}
		tmpScript := NewSigScript(keyHash)
		if err := tmpScript.item.(*ScriptSig).validate(); err != nil {
			return err
		}
		s.item = tmpScript.item
	case jsonTypeAll:
		s.item = NewAllScript(tmpJson.Scripts...).item
	case jsonTypeAny:
		s.item = NewAnyScript(tmpJson.Scripts...).item
	case jsonTypeAtLeast:
		if tmpJson.Required == nil {
			return FormatError{
				Reason: "atLeast script is missing required count",
			}
		}
		tmpScript := NewAtLeastScript(*tmpJson.Required, tmpJson.Scripts...)
		if err := tmpScript.item.(*ScriptAtLeast).validate(); err != nil {
			return err
		}
		s.item = tmpScript.item
	case jsonTypeAfter:
		if tmpJson.Slot == nil {
			return FormatError{Reason: "after script is missing slot"}
		}
		s.item = NewAfterScript(*tmpJson.Slot).item
	case jsonTypeBefore:
		if tmpJson.Slot == nil {
			return FormatError{Reason: "before script is missing slot"}
		}
		s.item = NewBeforeScript(*tmpJson.Slot).item
	default:
		return FormatError{
			Reason: fmt.Sprintf("unknown script type %q", tmpJson.Type),
		}
	}
	return nil
}

// ScriptFromJson parses a cardano-cli style script document
func ScriptFromJson(data []byte) (*Script, error) {
	var tmpScript Script
	if err := json.Unmarshal(data, &tmpScript); err != nil {
		return nil, err
	}
	return &tmpScript, nil
}

// ScriptFromFile parses a cardano-cli style script document from a file
func ScriptFromFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return ScriptFromJson(data)
}

// ScriptFromCbor decodes a script from its canonical CBOR encoding
func ScriptFromCbor(data []byte) (*Script, error) {
	var tmpScript Script
	if err := (&tmpScript).UnmarshalCBOR(data); err != nil {
		return nil, err
	}
	return &tmpScript, nil
}
