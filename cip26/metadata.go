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

// Package cip26 implements offchain token metadata attestation: versioned,
// individually signed metadata properties bound to a token subject, with
// verification and anti-rollback update validation.
//
// A Metadata document exclusively owns its properties, and each property
// owns its signature list. Signing mutates the target property in place, so
// concurrent signing of the same document must be serialized by the caller;
// validating distinct, already-built documents is safe.
package cip26

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/tokenmeta/policy"
)

var (
	ErrNilMetadata       = errors.New("metadata cannot be nil")
	ErrNilProperty       = errors.New("property cannot be nil")
	ErrBlankPropertyName = errors.New("property name cannot be empty or blank")
)

// AttestationSignature binds an attestation signature to the public key
// that produced it. Both values are lowercase hex strings
type AttestationSignature struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// Property is a versioned metadata property value with zero or more
// attestation signatures. The sequence number is a per-property monotonic
// version counter used to reject rollback on update
type Property struct {
	Value          any                    `json:"value"`
	SequenceNumber *int64                 `json:"sequenceNumber"`
	Signatures     []AttestationSignature `json:"signatures,omitempty"`
}

// NewProperty creates a property with sequence number 0 and no signatures
func NewProperty(value any) *Property {
	return NewPropertyWithSequence(value, 0)
}

// NewPropertyWithSequence creates a property with an explicit sequence number
func NewPropertyWithSequence(value any, sequenceNumber int64) *Property {
	return &Property{
		Value:          value,
		SequenceNumber: &sequenceNumber,
	}
}

// AddOrUpdateSignature records a signature keyed on the public key. A
// second signature from the same key replaces the prior one rather than
// appending a duplicate entry
func (p *Property) AddOrUpdateSignature(
	publicKeyHex string,
	signatureHex string,
) error {
	publicKeyHex = strings.ToLower(strings.TrimSpace(publicKeyHex))
	if publicKeyHex == "" {
		return errors.New("publicKeyHex cannot be empty or blank")
	}
	signatureHex = strings.ToLower(strings.TrimSpace(signatureHex))
	if signatureHex == "" {
		return errors.New("signatureHex cannot be empty or blank")
	}
	for idx, tmpSignature := range p.Signatures {
		if tmpSignature.PublicKey == publicKeyHex {
			p.Signatures[idx].Signature = signatureHex
			return nil
		}
	}
	p.Signatures = append(
		p.Signatures,
		AttestationSignature{
			Signature: signatureHex,
			PublicKey: publicKeyHex,
		},
	)
	return nil
}

// Metadata is a single offchain token metadata document: a subject, an
// optional minting policy, and a set of named properties
type Metadata struct {
	subject    string
	policyHex  string
	properties map[string]*Property
}

// NewMetadata creates an empty metadata document
func NewMetadata() *Metadata {
	return &Metadata{
		properties: map[string]*Property{},
	}
}

// NewMetadataFromAssetName creates a metadata document for an asset without
// a minting policy. The subject is the hex encoding of the asset name
func NewMetadataFromAssetName(assetName string) *Metadata {
	ret := NewMetadata()
	ret.SetSubjectFromAssetName(assetName)
	return ret
}

// NewMetadataFromPolicy creates a metadata document for an asset minted
// under the given policy script. The subject is the policy id followed by
// the hex encoding of the asset name
func NewMetadataFromPolicy(
	assetName string,
	policyScript *policy.Script,
) (*Metadata, error) {
	ret := NewMetadata()
	if policyScript == nil {
		ret.SetSubjectFromAssetName(assetName)
		return ret, nil
	}
	policyId, err := policyScript.ComputePolicyId()
	if err != nil {
		return nil, fmt.Errorf("failed to compute policy id: %w", err)
	}
	policyCbor, err := policyScript.Cbor()
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy script: %w", err)
	}
	ret.policyHex = hex.EncodeToString(policyCbor)
	ret.SetSubjectFromAssetNameAndPolicyId(assetName, policyId)
	return ret, nil
}

// Subject returns the subject identifier
func (m *Metadata) Subject() string {
	return m.subject
}

// SetSubject sets the subject identifier directly
func (m *Metadata) SetSubject(subject string) {
	m.subject = subject
}

// SetSubjectFromAssetName sets the subject to the hex encoding of the
// asset name (no minting policy)
func (m *Metadata) SetSubjectFromAssetName(assetName string) {
	m.subject = hex.EncodeToString([]byte(assetName))
}

// SetSubjectFromAssetNameAndPolicyId sets the subject to the policy id
// followed by the hex encoding of the asset name
func (m *Metadata) SetSubjectFromAssetNameAndPolicyId(
	assetName string,
	policyId string,
) {
	m.subject = policyId + hex.EncodeToString([]byte(assetName))
}

// Policy returns the hex-encoded canonical CBOR of the minting policy
// script, or an empty string if no policy is attached
func (m *Metadata) Policy() string {
	return m.policyHex
}

// SetPolicy sets the hex-encoded canonical CBOR of the minting policy script
func (m *Metadata) SetPolicy(policyHex string) {
	m.policyHex = policyHex
}

// Properties returns the property map owned by the document. The map must
// not be mutated while another goroutine is signing or validating
func (m *Metadata) Properties() map[string]*Property {
	return m.properties
}

// Property returns the named property, or nil if not present
func (m *Metadata) Property(propertyName string) *Property {
	return m.properties[strings.TrimSpace(propertyName)]
}

// AddProperty adds or replaces the named property. Property names are
// trimmed of surrounding whitespace; adding a nil property removes the name
func (m *Metadata) AddProperty(
	propertyName string,
	property *Property,
) error {
	propertyName = strings.TrimSpace(propertyName)
	if propertyName == "" {
		return ErrBlankPropertyName
	}
	if property == nil {
		delete(m.properties, propertyName)
		return nil
	}
	m.properties[propertyName] = property
	return nil
}

// RemoveProperty removes the named property
func (m *Metadata) RemoveProperty(propertyName string) error {
	propertyName = strings.TrimSpace(propertyName)
	if propertyName == "" {
		return ErrBlankPropertyName
	}
	delete(m.properties, propertyName)
	return nil
}
