// crypto.go - Sphinx cryptographic primitives.
// Copyright (C) 2019  David Stainton.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package crypto wraps the primitives the Sphinx header construction is
// built from: Curve25519 group operations, a keyed HMAC and a stream
// cipher used as a long-output PRG.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/curve25519"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/utils"
)

var (
	// ErrInvalidKeyLength is returned when deserializing a key of the
	// wrong size.
	ErrInvalidKeyLength = errors.New("sphinx/crypto: invalid key length")

	// streamCipherIV is the fixed all-zero IV used to seed the stream
	// cipher.  Keys are single-use per hop so a fixed IV is sound.
	streamCipherIV [constants.StreamCipherIVSize]byte
)

// PublicKey is a Curve25519 group element in its canonical 32 byte
// encoding.  The header's alpha, the per-hop shared keys and mix node
// public keys are all values of this type.
type PublicKey struct {
	pubBytes [constants.SharedSecretLength]byte
}

// SharedSecret is a group element obtained via a Diffie-Hellman exchange.
type SharedSecret = PublicKey

// Bytes returns a copy of the canonical encoding of the group element.
func (k *PublicKey) Bytes() []byte {
	b := make([]byte, constants.SharedSecretLength)
	copy(b, k.pubBytes[:])
	return b
}

// FromBytes deserializes the canonical 32 byte encoding into k.
func (k *PublicKey) FromBytes(b []byte) error {
	if len(b) != constants.SharedSecretLength {
		return ErrInvalidKeyLength
	}
	copy(k.pubBytes[:], b)
	return nil
}

// Equal compares the canonical encodings of both group elements in
// constant time.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return subtle.ConstantTimeCompare(k.pubBytes[:], other.pubBytes[:]) == 1
}

// PrivateKey is a Curve25519 scalar along with its precomputed public
// counterpart.
type PrivateKey struct {
	privBytes [constants.SecretKeyLength]byte
	publicKey PublicKey
}

// Bytes returns a copy of the raw scalar.
func (k *PrivateKey) Bytes() []byte {
	b := make([]byte, constants.SecretKeyLength)
	copy(b, k.privBytes[:])
	return b
}

// FromBytes deserializes a raw 32 byte scalar into k and recomputes the
// public key.
func (k *PrivateKey) FromBytes(b []byte) error {
	if len(b) != constants.SecretKeyLength {
		return ErrInvalidKeyLength
	}
	copy(k.privBytes[:], b)
	pub, err := curve25519.X25519(k.privBytes[:], curve25519.Basepoint)
	if err != nil {
		return fmt.Errorf("sphinx/crypto: failed to derive public key: %v", err)
	}
	copy(k.publicKey.pubBytes[:], pub)
	return nil
}

// PublicKey returns the public counterpart of the scalar.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &k.publicKey
}

// Reset clears the scalar from memory.
func (k *PrivateKey) Reset() {
	utils.ExplicitBzero(k.privBytes[:])
}

// NewKeypair generates a new Curve25519 keypair using the provided entropy
// source.
func NewKeypair(rng io.Reader) (*PrivateKey, error) {
	k := new(PrivateKey)
	if _, err := io.ReadFull(rng, k.privBytes[:]); err != nil {
		return nil, err
	}
	pub, err := curve25519.X25519(k.privBytes[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("sphinx/crypto: failed to derive public key: %v", err)
	}
	copy(k.publicKey.pubBytes[:], pub)
	return k, nil
}

// GenerateSecret returns a fresh scalar suitable as the initial secret of a
// header, or as an ephemeral node key.  It and NewKeypair, which it wraps,
// are the only operations here that consume the RNG capability.
func GenerateSecret(rng io.Reader) (*PrivateKey, error) {
	return NewKeypair(rng)
}

// Exp multiplies the group element by the given scalar and returns the
// resulting element.  The scalar is clamped at point of use, as in every
// X25519 operation; the all-zero (small order) result is rejected.
func Exp(base *PublicKey, exponent []byte) (*PublicKey, error) {
	raw, err := curve25519.X25519(exponent, base.pubBytes[:])
	if err != nil {
		return nil, fmt.Errorf("sphinx/crypto: scalar multiplication failed: %v", err)
	}
	r := new(PublicKey)
	copy(r.pubBytes[:], raw)
	return r, nil
}

// ExpG multiplies the group base point by the given scalar.
func ExpG(exponent []byte) (*PublicKey, error) {
	raw, err := curve25519.X25519(exponent, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("sphinx/crypto: base scalar multiplication failed: %v", err)
	}
	r := new(PublicKey)
	copy(r.pubBytes[:], raw)
	return r, nil
}

// ComputeKeyedHmac returns the full 32 byte HMAC-SHA256 of data under key.
func ComputeKeyedHmac(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// GeneratePseudorandomBytes returns length bytes of ChaCha20 keystream
// derived from the key and the fixed IV.
func GeneratePseudorandomBytes(key []byte, length int) ([]byte, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, streamCipherIV[:])
	if err != nil {
		return nil, fmt.Errorf("sphinx/crypto: failed to initialize stream cipher: %v", err)
	}
	out := make([]byte, length)
	c.XORKeyStream(out, out)
	return out, nil
}
