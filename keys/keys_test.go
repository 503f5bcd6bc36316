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

package keys_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/blinklabs-io/tokenmeta/keys"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signingKey, err := keys.GenerateSigningKey()
	if err != nil {
		t.Fatalf("failed to generate signing key: %s", err)
	}
	message := []byte("attestation test message")
	signature, err := signingKey.Sign(message)
	if err != nil {
		t.Fatalf("failed to sign message: %s", err)
	}
	if len(signature) != keys.SignatureSize {
		t.Fatalf(
			"did not get expected signature length: got %d, wanted %d",
			len(signature),
			keys.SignatureSize,
		)
	}
	verificationKey, err := signingKey.VerificationKey()
	if err != nil {
		t.Fatalf("failed to derive verification key: %s", err)
	}
	ok, err := verificationKey.Verify(message, signature)
	if err != nil {
		t.Fatalf("failed to verify signature: %s", err)
	}
	if !ok {
		t.Fatalf("signature did not verify")
	}
	// A modified message must not verify
	ok, err = verificationKey.Verify([]byte("other message"), signature)
	if err != nil {
		t.Fatalf("failed to verify signature: %s", err)
	}
	if ok {
		t.Fatalf("signature unexpectedly verified against modified message")
	}
}

func TestKeyRoles(t *testing.T) {
	signingKey, err := keys.GenerateSigningKey()
	if err != nil {
		t.Fatalf("failed to generate signing key: %s", err)
	}
	if signingKey.Role() != keys.RoleSigning {
		t.Fatalf("did not get expected key role: %s", signingKey.Role())
	}
	verificationKey, err := signingKey.VerificationKey()
	if err != nil {
		t.Fatalf("failed to derive verification key: %s", err)
	}
	if verificationKey.Role() != keys.RoleVerification {
		t.Fatalf("did not get expected key role: %s", verificationKey.Role())
	}
	// A verification key cannot sign
	if _, err := verificationKey.Sign([]byte("test")); !errors.Is(
		err,
		keys.ErrNotSigningKey,
	) {
		t.Fatalf("did not get expected error, got: %s", err)
	}
	// A signing key cannot verify
	if _, err := signingKey.Verify([]byte("test"), nil); !errors.Is(
		err,
		keys.ErrNotVerificationKey,
	) {
		t.Fatalf("did not get expected error, got: %s", err)
	}
	// A verification key cannot derive a verification key
	if _, err := verificationKey.VerificationKey(); !errors.Is(
		err,
		keys.ErrNotSigningKey,
	) {
		t.Fatalf("did not get expected error, got: %s", err)
	}
}

func TestNewSigningKeyBadLength(t *testing.T) {
	if _, err := keys.NewSigningKey([]byte{0x01, 0x02}); err == nil {
		t.Fatalf("did not get expected error for short seed")
	}
}

func TestNewVerificationKeyBadLength(t *testing.T) {
	if _, err := keys.NewVerificationKey([]byte{0x01, 0x02}); err == nil {
		t.Fatalf("did not get expected error for short public key")
	}
}

func TestNewVerificationKeyInvalidPoint(t *testing.T) {
	// All 0xFF bytes do not decode to a canonical curve point
	badKey := bytes.Repeat([]byte{0xff}, keys.PublicKeySize)
	if _, err := keys.NewVerificationKey(badKey); err == nil {
		t.Fatalf("did not get expected error for invalid curve point")
	}
}

func TestRawKeyBytesCopy(t *testing.T) {
	signingKey, err := keys.GenerateSigningKey()
	if err != nil {
		t.Fatalf("failed to generate signing key: %s", err)
	}
	raw := signingKey.RawKeyBytes()
	orig := make([]byte, len(raw))
	copy(orig, raw)
	// Mutating the returned slice must not affect the key
	raw[0] ^= 0xff
	if !bytes.Equal(signingKey.RawKeyBytes(), orig) {
		t.Fatalf("mutating returned key bytes affected the key")
	}
}

func TestKeyHash(t *testing.T) {
	signingKey, err := keys.GenerateSigningKey()
	if err != nil {
		t.Fatalf("failed to generate signing key: %s", err)
	}
	verificationKey, err := signingKey.VerificationKey()
	if err != nil {
		t.Fatalf("failed to derive verification key: %s", err)
	}
	signingHash, err := signingKey.Hash()
	if err != nil {
		t.Fatalf("failed to hash signing key: %s", err)
	}
	verificationHash, err := verificationKey.Hash()
	if err != nil {
		t.Fatalf("failed to hash verification key: %s", err)
	}
	// Hashing either half of the keypair must give the public key hash
	if signingHash != verificationHash {
		t.Fatalf(
			"key hashes differ: %s != %s",
			signingHash.String(),
			verificationHash.String(),
		)
	}
}
