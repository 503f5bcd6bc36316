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

// Package policy models Cardano native scripts describing minting
// authority and derives policy ids from them. The CBOR layout and the hash
// construction are a wire contract shared with the Cardano ledger: any
// change to either silently produces different policy ids.
package policy

import (
	"fmt"

	"github.com/blinklabs-io/tokenmeta/cbor"
	"github.com/blinklabs-io/tokenmeta/hashing"
)

const (
	ScriptTypeSig     uint = 0
	ScriptTypeAll     uint = 1
	ScriptTypeAny     uint = 2
	ScriptTypeAtLeast uint = 3
	// ScriptTypeAfter is invalid_before in ledger terms: the script is
	// valid from the given slot
	ScriptTypeAfter uint = 4
	// ScriptTypeBefore is invalid_hereafter in ledger terms: the script is
	// valid only before the given slot
	ScriptTypeBefore uint = 5
)

// FormatError indicates a structurally invalid policy script
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return "invalid policy script: " + e.Reason
}

// ScriptVariant is implemented by the concrete script node types
type ScriptVariant interface {
	MarshalCBOR() ([]byte, error)
	isScriptVariant()
}

// Script wraps one of the script variant types. The nested order of
// scripts is significant for hashing and is preserved exactly as authored
type Script struct {
	item ScriptVariant
}

// Item returns the wrapped script variant
func (s Script) Item() ScriptVariant {
	return s.item
}

func (s Script) MarshalCBOR() ([]byte, error) {
	if s.item == nil {
		return nil, FormatError{Reason: "empty script"}
	}
	return s.item.MarshalCBOR()
}

func (s *Script) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return fmt.Errorf("failed to decode policy script: %w", err)
	}
	var tmpItem ScriptVariant
	switch uint(id) {
	case ScriptTypeSig:
		tmpItem = &ScriptSig{}
	case ScriptTypeAll:
		tmpItem = &ScriptAll{}
	case ScriptTypeAny:
		tmpItem = &ScriptAny{}
	case ScriptTypeAtLeast:
		tmpItem = &ScriptAtLeast{}
	case ScriptTypeAfter:
		tmpItem = &ScriptAfter{}
	case ScriptTypeBefore:
		tmpItem = &ScriptBefore{}
	default:
		return FormatError{
			Reason: fmt.Sprintf("unknown script type %d", id),
		}
	}
	if _, err := cbor.Decode(data, tmpItem); err != nil {
		return err
	}
	s.item = tmpItem
	return nil
}

// NewSigScript creates a script requiring a signature from the key with
// the given Blake2b-224 hash
func NewSigScript(keyHash []byte) Script {
	return Script{
		item: &ScriptSig{
			Type:    ScriptTypeSig,
			KeyHash: keyHash,
		},
	}
}

// NewAllScript creates a script requiring all nested scripts to be satisfied
func NewAllScript(scripts ...Script) Script {
	return Script{
		item: &ScriptAll{
			Type:    ScriptTypeAll,
			Scripts: scripts,
		},
	}
}

// NewAnyScript creates a script requiring any nested script to be satisfied
func NewAnyScript(scripts ...Script) Script {
	return Script{
		item: &ScriptAny{
			Type:    ScriptTypeAny,
			Scripts: scripts,
		},
	}
}

// NewAtLeastScript creates a script requiring at least the given number of
// nested scripts to be satisfied
func NewAtLeastScript(required uint, scripts ...Script) Script {
	return Script{
		item: &ScriptAtLeast{
			Type:     ScriptTypeAtLeast,
			Required: required,
			Scripts:  scripts,
		},
	}
}

// NewAfterScript creates a script valid from the given slot
func NewAfterScript(slot uint64) Script {
	return Script{
		item: &ScriptAfter{
			Type: ScriptTypeAfter,
			Slot: slot,
		},
	}
}

// NewBeforeScript creates a script valid only before the given slot
func NewBeforeScript(slot uint64) Script {
	return Script{
		item: &ScriptBefore{
			Type: ScriptTypeBefore,
			Slot: slot,
		},
	}
}

type ScriptSig struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint
	KeyHash []byte
}

func (s *ScriptSig) isScriptVariant() {}

func (s *ScriptSig) UnmarshalCBOR(data []byte) error {
	if err := s.UnmarshalCborGeneric(data, s); err != nil {
		return err
	}
	return s.validate()
}

func (s *ScriptSig) MarshalCBOR() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

func (s *ScriptSig) validate() error {
	if len(s.KeyHash) != hashing.Blake2b224Size {
		return FormatError{
			Reason: fmt.Sprintf(
				"key hash must be %d bytes, got %d",
				hashing.Blake2b224Size,
				len(s.KeyHash),
			),
		}
	}
	return nil
}

type ScriptAll struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint
	Scripts []Script
}

func (s *ScriptAll) isScriptVariant() {}

func (s *ScriptAll) UnmarshalCBOR(data []byte) error {
	return s.UnmarshalCborGeneric(data, s)
}

func (s *ScriptAll) MarshalCBOR() ([]byte, error) {
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

type ScriptAny struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type    uint
	Scripts []Script
}

func (s *ScriptAny) isScriptVariant() {}

func (s *ScriptAny) UnmarshalCBOR(data []byte) error {
	return s.UnmarshalCborGeneric(data, s)
}

func (s *ScriptAny) MarshalCBOR() ([]byte, error) {
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

type ScriptAtLeast struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type     uint
	Required uint
	Scripts  []Script
}

func (s *ScriptAtLeast) isScriptVariant() {}

func (s *ScriptAtLeast) UnmarshalCBOR(data []byte) error {
	if err := s.UnmarshalCborGeneric(data, s); err != nil {
		return err
	}
	return s.validate()
}

func (s *ScriptAtLeast) MarshalCBOR() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

func (s *ScriptAtLeast) validate() error {
	if int(s.Required) > len(s.Scripts) {
		return FormatError{
			Reason: fmt.Sprintf(
				"required count %d exceeds script count %d",
				s.Required,
				len(s.Scripts),
			),
		}
	}
	return nil
}

type ScriptAfter struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type uint
	Slot uint64
}

func (s *ScriptAfter) isScriptVariant() {}

func (s *ScriptAfter) UnmarshalCBOR(data []byte) error {
	return s.UnmarshalCborGeneric(data, s)
}

func (s *ScriptAfter) MarshalCBOR() ([]byte, error) {
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}

type ScriptBefore struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Type uint
	Slot uint64
}

func (s *ScriptBefore) isScriptVariant() {}

func (s *ScriptBefore) UnmarshalCBOR(data []byte) error {
	return s.UnmarshalCborGeneric(data, s)
}

func (s *ScriptBefore) MarshalCBOR() ([]byte, error) {
	if s.Cbor() != nil {
		return s.Cbor(), nil
	}
	return cbor.EncodeGeneric(s)
}
