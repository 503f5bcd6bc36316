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

// Package keys provides the Ed25519 key material used to attest token
// metadata. A Key carries an explicit role (signing or verification) that
// callers are expected to check before use; the metadata layer never
// touches raw key bytes itself.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/blinklabs-io/tokenmeta/hashing"
)

const (
	// SeedSize is the size of an Ed25519 private key seed
	SeedSize = 32

	// PublicKeySize is the size of an Ed25519 public key
	PublicKeySize = 32

	// SignatureSize is the size of an Ed25519 signature
	SignatureSize = 64
)

var (
	ErrNotSigningKey      = errors.New("key cannot be used for signing")
	ErrNotVerificationKey = errors.New("key cannot be used for verification")
)

// Role describes what a key may be used for
type Role int

const (
	RoleSigning Role = iota
	RoleVerification
)

func (r Role) String() string {
	switch r {
	case RoleSigning:
		return "signing"
	case RoleVerification:
		return "verification"
	}
	return fmt.Sprintf("unknown (%d)", int(r))
}

// Key is an Ed25519 key with an attached role. Signing keys hold the
// 32-byte private seed, verification keys the 32-byte public key.
type Key struct {
	role Role
	raw  []byte
}

// GenerateSigningKey creates a new random signing key
func GenerateSigningKey() (*Key, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return &Key{
		role: RoleSigning,
		raw:  priv.Seed(),
	}, nil
}

// NewSigningKey creates a signing key from a raw 32-byte Ed25519 seed
func NewSigningKey(seed []byte) (*Key, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf(
			"invalid signing key length: expected %d bytes, got %d",
			SeedSize,
			len(seed),
		)
	}
	k := &Key{
		role: RoleSigning,
		raw:  make([]byte, SeedSize),
	}
	copy(k.raw, seed)
	return k, nil
}

// NewVerificationKey creates a verification key from a raw 32-byte Ed25519
// public key. The bytes must decode to a canonical curve point
func NewVerificationKey(pubKey []byte) (*Key, error) {
	if len(pubKey) != PublicKeySize {
		return nil, fmt.Errorf(
			"invalid verification key length: expected %d bytes, got %d",
			PublicKeySize,
			len(pubKey),
		)
	}
	if _, err := new(edwards25519.Point).SetBytes(pubKey); err != nil {
		return nil, fmt.Errorf("invalid verification key: %w", err)
	}
	k := &Key{
		role: RoleVerification,
		raw:  make([]byte, PublicKeySize),
	}
	copy(k.raw, pubKey)
	return k, nil
}

// Role returns the role attached to the key
func (k *Key) Role() Role {
	return k.role
}

// RawKeyBytes returns the raw key material: the public key for verification
// keys, the private seed for signing keys
func (k *Key) RawKeyBytes() []byte {
	ret := make([]byte, len(k.raw))
	copy(ret, k.raw)
	return ret
}

// VerificationKey derives the verification key for a signing key
func (k *Key) VerificationKey() (*Key, error) {
	if k.role != RoleSigning {
		return nil, ErrNotSigningKey
	}
	priv := ed25519.NewKeyFromSeed(k.raw)
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("unexpected public key type")
	}
	return NewVerificationKey(pub)
}

// Sign signs the given message. The key must have the signing role
func (k *Key) Sign(message []byte) ([]byte, error) {
	if k.role != RoleSigning {
		return nil, ErrNotSigningKey
	}
	priv := ed25519.NewKeyFromSeed(k.raw)
	return ed25519.Sign(priv, message), nil
}

// Verify checks the given signature over message. The key must have the
// verification role
func (k *Key) Verify(message []byte, signature []byte) (bool, error) {
	if k.role != RoleVerification {
		return false, ErrNotVerificationKey
	}
	return VerifySignature(k.raw, message, signature), nil
}

// Hash returns the Blake2b-224 hash of the public key, as used for key
// hashes inside native scripts
func (k *Key) Hash() (hashing.Blake2b224, error) {
	pubKey := k
	if k.role == RoleSigning {
		var err error
		pubKey, err = k.VerificationKey()
		if err != nil {
			return hashing.Blake2b224{}, err
		}
	}
	return hashing.Blake2b224Hash(pubKey.raw), nil
}

// VerifySignature checks an Ed25519 signature against a raw public key.
// Malformed keys or signatures simply fail verification
func VerifySignature(pubKey []byte, message []byte, signature []byte) bool {
	if len(pubKey) != PublicKeySize || len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey), message, signature)
}
