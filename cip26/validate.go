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

package cip26

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/tokenmeta/keys"
	"github.com/blinklabs-io/tokenmeta/policy"
)

const (
	// Subject bounds in hex characters: a bare 28-byte policy id up to a
	// policy id plus a 32-byte asset name
	MinSubjectLength = 56
	MaxSubjectLength = 120

	policyIdHexLength = 56
)

// ValidationConfig controls a metadata validation pass
type ValidationConfig struct {
	// VerificationKey restricts signature checks to signatures made by
	// this key. When nil, every recorded signature is checked against its
	// embedded public key
	VerificationKey *keys.Key

	// SignaturesOnly skips the property content rules and required
	// property check, validating only the subject, policy and signatures
	SignaturesOnly bool

	// Rules overrides the property validation rules. When nil the default
	// token registry rules are used
	Rules *Rules
}

// ValidateMetadata validates a metadata document: subject and policy
// consistency, property content rules and attestation signatures. Content
// problems are accumulated in the returned result; an error return is
// reserved for misuse such as a nil document or a signing key passed for
// verification
func ValidateMetadata(
	metadata *Metadata,
	cfg ValidationConfig,
) (*ValidationResult, error) {
	if metadata == nil {
		return nil, ErrNilMetadata
	}
	if cfg.VerificationKey != nil &&
		cfg.VerificationKey.Role() != keys.RoleVerification {
		return nil, keys.ErrNotVerificationKey
	}
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	result := NewValidationResult()
	validateSubjectAndPolicy(metadata, result)
	if !cfg.SignaturesOnly {
		rules.ValidateRequiredProperties(metadata, result)
		for propertyName, property := range metadata.Properties() {
			result.Merge(rules.ValidateProperty(propertyName, property))
		}
	}
	validateSignatures(metadata, cfg.VerificationKey, result)
	return result, nil
}

func validateSubjectAndPolicy(
	metadata *Metadata,
	result *ValidationResult,
) {
	subject := metadata.Subject()
	if strings.TrimSpace(subject) == "" {
		result.AddError(FieldSubject, "Missing, empty or blank subject.")
		return
	}
	if len(subject)%2 != 0 {
		result.AddError(
			FieldSubject,
			"Number of characters in the subject must be even to represent a complete byte sequence.",
		)
		return
	}
	if _, err := hex.DecodeString(subject); err != nil {
		result.AddError(
			FieldSubject,
			fmt.Sprintf(
				"Cannot decode hex string representation of subject hash due to %s",
				err,
			),
		)
		return
	}
	if len(subject) < MinSubjectLength {
		result.AddError(
			FieldSubject,
			"Subject must be at least 56 characters long.",
		)
		return
	}
	if len(subject) > MaxSubjectLength {
		result.AddError(
			FieldSubject,
			fmt.Sprintf(
				"Subject must not exceed 120 characters but got %d.",
				len(subject),
			),
		)
		return
	}
	policyHex := metadata.Policy()
	if policyHex == "" {
		return
	}
	policyCbor, err := hex.DecodeString(policyHex)
	if err != nil {
		result.AddError(
			FieldPolicy,
			fmt.Sprintf(
				"Could not deserialize policy script from policy value due to %s",
				err,
			),
		)
		return
	}
	policyScript, err := policy.ScriptFromCbor(policyCbor)
	if err != nil {
		result.AddError(
			FieldPolicy,
			fmt.Sprintf(
				"Could not deserialize policy script from policy value due to %s",
				err,
			),
		)
		return
	}
	policyId, err := policyScript.ComputePolicyId()
	if err != nil {
		result.AddError(
			FieldPolicy,
			fmt.Sprintf(
				"Could not deserialize policy script from policy value due to %s",
				err,
			),
		)
		return
	}
	if !strings.EqualFold(subject[:policyIdHexLength], policyId) {
		result.AddError(
			FieldPolicy,
			"If a policy is given the first 28 bytes of the subject should match the policy id.",
		)
	}
}

func validateSignatures(
	metadata *Metadata,
	verificationKey *keys.Key,
	result *ValidationResult,
) {
	var keyHex string
	if verificationKey != nil {
		keyHex = hex.EncodeToString(verificationKey.RawKeyBytes())
	}
	for propertyName, property := range metadata.Properties() {
		if len(property.Signatures) == 0 {
			continue
		}
		if property.Value == nil || property.SequenceNumber == nil {
			// Reported by the property rules; nothing to verify against
			continue
		}
		digest, err := propertyDigest(
			metadata.Subject(),
			propertyName,
			property.Value,
			*property.SequenceNumber,
		)
		if err != nil {
			result.AddError(
				FieldGeneral,
				fmt.Sprintf(
					"Could not verify due to an internal error: %s",
					err,
				),
			)
			continue
		}
		if verificationKey != nil {
			for _, tmpSignature := range property.Signatures {
				if tmpSignature.PublicKey != keyHex {
					continue
				}
				verifySignatureEntry(
					propertyName,
					tmpSignature,
					digest.Bytes(),
					result,
				)
				break
			}
			continue
		}
		for _, tmpSignature := range property.Signatures {
			verifySignatureEntry(
				propertyName,
				tmpSignature,
				digest.Bytes(),
				result,
			)
		}
	}
}

func verifySignatureEntry(
	propertyName string,
	signature AttestationSignature,
	digest []byte,
	result *ValidationResult,
) {
	pubKeyBytes, err := hex.DecodeString(signature.PublicKey)
	if err != nil {
		result.AddError(
			FieldGeneral,
			fmt.Sprintf("Could not verify due to an internal error: %s", err),
		)
		return
	}
	signatureBytes, err := hex.DecodeString(signature.Signature)
	if err != nil {
		result.AddError(
			FieldGeneral,
			fmt.Sprintf("Could not verify due to an internal error: %s", err),
		)
		return
	}
	if !keys.VerifySignature(pubKeyBytes, digest, signatureBytes) {
		result.AddError(
			FieldSignature,
			fmt.Sprintf(
				"property %s: signature verification failed for key %s.",
				propertyName,
				signature.PublicKey,
			),
		)
	}
}

// ValidateMetadataUpdate validates an updated metadata document against the
// base document it replaces. Both documents are validated on their own; if
// either fails, the combined errors are returned without the update checks.
// An update must keep the subject and policy and strictly increase the
// sequence number of every property it carries over from the base
func ValidateMetadataUpdate(
	latest *Metadata,
	base *Metadata,
	cfg ValidationConfig,
) (*ValidationResult, error) {
	if latest == nil || base == nil {
		return nil, ErrNilMetadata
	}
	baseResult, err := ValidateMetadata(base, cfg)
	if err != nil {
		return nil, err
	}
	latestResult, err := ValidateMetadata(latest, cfg)
	if err != nil {
		return nil, err
	}
	if !baseResult.Valid() || !latestResult.Valid() {
		return MergeResults(baseResult, latestResult), nil
	}
	result := NewValidationResult()
	if !strings.EqualFold(latest.Subject(), base.Subject()) {
		result.AddError(
			FieldSubject,
			"Subject of updated metadata differs from subject of base metadata.",
		)
	}
	if !strings.EqualFold(latest.Policy(), base.Policy()) {
		result.AddError(
			FieldPolicy,
			"Policy of updated metadata differs from policy of base metadata.",
		)
	}
	for propertyName, baseProperty := range base.Properties() {
		latestProperty := latest.Property(propertyName)
		if latestProperty == nil {
			continue
		}
		if baseProperty.SequenceNumber == nil ||
			latestProperty.SequenceNumber == nil {
			continue
		}
		if *latestProperty.SequenceNumber <= *baseProperty.SequenceNumber {
			result.AddError(
				FieldSequenceNumber,
				fmt.Sprintf(
					"Sequence number (%d) for property %s is not greater than the sequence number (%d) of the base property.",
					*latestProperty.SequenceNumber,
					propertyName,
					*baseProperty.SequenceNumber,
				),
			)
		}
	}
	return result, nil
}
