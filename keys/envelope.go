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

package keys

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/tokenmeta/cbor"
)

// TextEnvelope is the JSON key container used by Cardano tooling. The
// cborHex payload wraps the raw key bytes in a CBOR byte string
type TextEnvelope struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CborHex     string `json:"cborHex"`
}

// Key extracts the key from the envelope, inferring the role from the
// envelope type name
func (t *TextEnvelope) Key() (*Key, error) {
	var role Role
	switch {
	case strings.Contains(t.Type, "SigningKey"):
		role = RoleSigning
	case strings.Contains(t.Type, "VerificationKey"):
		role = RoleVerification
	default:
		return nil, fmt.Errorf(
			"cannot determine key role from envelope type %q",
			t.Type,
		)
	}
	return t.KeyWithRole(role)
}

// KeyWithRole extracts the key from the envelope with an explicit role
func (t *TextEnvelope) KeyWithRole(role Role) (*Key, error) {
	payload, err := hex.DecodeString(t.CborHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode envelope cborHex: %w", err)
	}
	var rawKey []byte
	if _, err := cbor.Decode(payload, &rawKey); err != nil {
		return nil, fmt.Errorf("failed to decode envelope payload: %w", err)
	}
	switch role {
	case RoleSigning:
		return NewSigningKey(rawKey)
	case RoleVerification:
		return NewVerificationKey(rawKey)
	}
	return nil, fmt.Errorf("unknown key role: %d", int(role))
}

// TextEnvelope renders the key as a Cardano JSON key container
func (k *Key) TextEnvelope() (*TextEnvelope, error) {
	payload, err := cbor.Encode(k.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key payload: %w", err)
	}
	envType := "PaymentSigningKeyShelley_ed25519"
	envDesc := "Payment Signing Key"
	if k.role == RoleVerification {
		envType = "PaymentVerificationKeyShelley_ed25519"
		envDesc = "Payment Verification Key"
	}
	return &TextEnvelope{
		Type:        envType,
		Description: envDesc,
		CborHex:     hex.EncodeToString(payload),
	}, nil
}

// KeyFromEnvelopeJson loads a key from the JSON representation of a text
// envelope
func KeyFromEnvelopeJson(data []byte) (*Key, error) {
	var tmpEnvelope TextEnvelope
	if err := json.Unmarshal(data, &tmpEnvelope); err != nil {
		return nil, fmt.Errorf("failed to parse key envelope: %w", err)
	}
	return tmpEnvelope.Key()
}

// KeyFromEnvelopeFile loads a key from a text envelope file on disk
func KeyFromEnvelopeFile(path string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key envelope file: %w", err)
	}
	return KeyFromEnvelopeJson(data)
}
