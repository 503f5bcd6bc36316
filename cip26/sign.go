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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blinklabs-io/tokenmeta/cbor"
	"github.com/blinklabs-io/tokenmeta/hashing"
	"github.com/blinklabs-io/tokenmeta/keys"
)

var ErrNilSigningKey = errors.New("signing key cannot be nil")

// normalizeValue maps a property value onto the closed set of types the
// attestation digest is defined over. Floating point and other unsupported
// types are rejected so that a value can never silently encode differently
// than its JSON representation
func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, errors.New("value is undefined")
	case string, bool, []byte, int64, uint64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case []any:
		ret := make([]any, len(v))
		for idx, item := range v {
			tmpItem, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			ret[idx] = tmpItem
		}
		return ret, nil
	case map[string]any:
		ret := make(map[string]any, len(v))
		for key, item := range v {
			tmpItem, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			ret[key] = tmpItem
		}
		return ret, nil
	}
	return nil, fmt.Errorf("value type %T is not supported", value)
}

func propertyDigest(
	subject string,
	propertyName string,
	value any,
	sequenceNumber int64,
) (hashing.Blake2b256, error) {
	tmpValue, err := normalizeValue(value)
	if err != nil {
		return hashing.Blake2b256{}, fmt.Errorf(
			"property %s: %w",
			propertyName,
			err,
		)
	}
	subjectCbor, err := cbor.Encode(subject)
	if err != nil {
		return hashing.Blake2b256{}, fmt.Errorf(
			"failed to encode subject: %w",
			err,
		)
	}
	nameCbor, err := cbor.Encode(propertyName)
	if err != nil {
		return hashing.Blake2b256{}, fmt.Errorf(
			"failed to encode property name: %w",
			err,
		)
	}
	valueCbor, err := cbor.Encode(tmpValue)
	if err != nil {
		return hashing.Blake2b256{}, fmt.Errorf(
			"failed to encode property value: %w",
			err,
		)
	}
	seqCbor, err := cbor.Encode(sequenceNumber)
	if err != nil {
		return hashing.Blake2b256{}, fmt.Errorf(
			"failed to encode sequence number: %w",
			err,
		)
	}
	return hashing.Blake2b256HashAll(
		hashing.Blake2b256Hash(subjectCbor).Bytes(),
		hashing.Blake2b256Hash(nameCbor).Bytes(),
		hashing.Blake2b256Hash(valueCbor).Bytes(),
		hashing.Blake2b256Hash(seqCbor).Bytes(),
	), nil
}

// PropertyDigest computes the attestation digest for a single property
// version: the Blake2b-256 hash over the concatenated Blake2b-256 hashes of
// the canonical CBOR encodings of the subject, the property name, the
// property value and the sequence number, in that order
func PropertyDigest(
	subject string,
	propertyName string,
	value any,
	sequenceNumber int64,
) (hashing.Blake2b256, error) {
	return propertyDigest(subject, propertyName, value, sequenceNumber)
}

// SignMetadataProperty signs the named property of the document with the
// given signing key and records the signature on the property. Signing a
// property name the document does not carry is a no-op. A repeated signature
// from the same key replaces the earlier one
func SignMetadataProperty(
	metadata *Metadata,
	signingKey *keys.Key,
	propertyName string,
) error {
	if metadata == nil {
		return ErrNilMetadata
	}
	if signingKey == nil {
		return ErrNilSigningKey
	}
	if signingKey.Role() != keys.RoleSigning {
		return keys.ErrNotSigningKey
	}
	propertyName = strings.TrimSpace(propertyName)
	if propertyName == "" {
		return ErrBlankPropertyName
	}
	property := metadata.Property(propertyName)
	if property == nil {
		return nil
	}
	if property.Value == nil {
		return fmt.Errorf("property %s: value is undefined", propertyName)
	}
	if property.SequenceNumber == nil {
		return fmt.Errorf(
			"property %s: sequenceNumber is undefined",
			propertyName,
		)
	}
	if *property.SequenceNumber < 0 {
		return fmt.Errorf(
			"property %s: sequenceNumber is negative (%d)",
			propertyName,
			*property.SequenceNumber,
		)
	}
	digest, err := propertyDigest(
		metadata.Subject(),
		propertyName,
		property.Value,
		*property.SequenceNumber,
	)
	if err != nil {
		return err
	}
	signature, err := signingKey.Sign(digest.Bytes())
	if err != nil {
		return err
	}
	verificationKey, err := signingKey.VerificationKey()
	if err != nil {
		return err
	}
	return property.AddOrUpdateSignature(
		hex.EncodeToString(verificationKey.RawKeyBytes()),
		hex.EncodeToString(signature),
	)
}

// SignMetadata signs every property of the document with the given signing
// key. The first property that cannot be signed aborts the pass, leaving
// signatures recorded on any properties already processed
func SignMetadata(metadata *Metadata, signingKey *keys.Key) error {
	if metadata == nil {
		return ErrNilMetadata
	}
	propertyNames := make([]string, 0, len(metadata.Properties()))
	for propertyName := range metadata.Properties() {
		propertyNames = append(propertyNames, propertyName)
	}
	sort.Strings(propertyNames)
	for _, propertyName := range propertyNames {
		if err := SignMetadataProperty(
			metadata,
			signingKey,
			propertyName,
		); err != nil {
			return err
		}
	}
	return nil
}
