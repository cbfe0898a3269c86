// keys.go - Sphinx key schedule.
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

// Package keys derives the per-hop key material of a Sphinx header.
//
// The sender walks the route accumulating blinding factors: hop i sees the
// group element alpha_i = g^(x0 * b_1 * ... * b_(i-1)) and computes the
// shared key s_i by multiplying alpha_i with its private scalar.  The
// sender reaches the same s_i offline by exponentiating the node's public
// key with the accumulated factors.  Both sides apply the factors one
// multiplication at a time so the clamped Curve25519 operations agree
// bit for bit.
package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/route"
	"github.com/katzenpost/sphinx/utils"
)

// HKDF info labels providing domain separation between the derived
// sub-keys.
const (
	kdfInfoStreamKey  = "sphinx-key-stream-cipher"
	kdfInfoMacKey     = "sphinx-key-header-integrity-hmac"
	kdfInfoPayloadKey = "sphinx-key-payload"
)

// ErrEmptyRoute is returned when key material is requested for a route
// with no hops.
var ErrEmptyRoute = errors.New("sphinx/keys: route must have at least one hop")

// PayloadKey is the per-hop key handed to the payload subsystem.  It is
// returned to callers by value.
type PayloadKey [constants.PayloadKeySize]byte

// RoutingKeys is the bundle of key material one hop derives from its
// shared key.
type RoutingKeys struct {
	StreamCipherKey        [constants.StreamCipherKeySize]byte
	HeaderIntegrityHmacKey [constants.IntegrityMacKeySize]byte
	PayloadKey             PayloadKey
	BlindingFactor         [constants.BlindingFactorSize]byte
}

// Reset clears the key material from memory.
func (k *RoutingKeys) Reset() {
	utils.ExplicitBzero(k.StreamCipherKey[:])
	utils.ExplicitBzero(k.HeaderIntegrityHmacKey[:])
	utils.ExplicitBzero(k.PayloadKey[:])
	utils.ExplicitBzero(k.BlindingFactor[:])
}

// DeriveRoutingKeys derives a hop's RoutingKeys from its shared key and the
// group element alpha it observed.  CREATE and PROCESS both call this, so
// the two stay in lockstep by construction.
func DeriveRoutingKeys(sharedKey *crypto.SharedSecret, alpha *crypto.PublicKey) (*RoutingKeys, error) {
	k := new(RoutingKeys)
	secret := sharedKey.Bytes()
	defer utils.ExplicitBzero(secret)

	if err := expand(secret, kdfInfoStreamKey, k.StreamCipherKey[:]); err != nil {
		return nil, err
	}
	if err := expand(secret, kdfInfoMacKey, k.HeaderIntegrityHmacKey[:]); err != nil {
		return nil, err
	}
	if err := expand(secret, kdfInfoPayloadKey, k.PayloadKey[:]); err != nil {
		return nil, err
	}

	// The blinding factor is keyed off both the shared key and alpha, so
	// it cannot come out of the HKDF above: b = HMAC(key: s, msg: alpha),
	// truncated to a scalar.
	blinding := crypto.ComputeKeyedHmac(secret, alpha.Bytes())
	copy(k.BlindingFactor[:], blinding[:constants.BlindingFactorSize])
	return k, nil
}

func expand(secret []byte, info string, out []byte) error {
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return fmt.Errorf("sphinx/keys: HKDF expansion failed: %v", err)
	}
	return nil
}

// KeyMaterial is the full output of the sender side key schedule.
type KeyMaterial struct {
	// InitialSharedSecret is the alpha the first hop sees, g^x0.
	InitialSharedSecret *crypto.PublicKey

	// RoutingKeys holds one bundle per hop, in route order.
	RoutingKeys []RoutingKeys
}

// DeriveKeyMaterial runs the sender side key schedule over the route with
// the given initial secret.  It fails only on an empty route.
func DeriveKeyMaterial(path []route.Node, initialSecret *crypto.PrivateKey) (*KeyMaterial, error) {
	if len(path) == 0 {
		return nil, ErrEmptyRoute
	}

	initialSharedSecret, err := crypto.ExpG(initialSecret.Bytes())
	if err != nil {
		return nil, err
	}

	// factors accumulates [x0, b_1, ..., b_(i-1)] as the walk proceeds.
	factors := make([][]byte, 0, len(path))
	factors = append(factors, initialSecret.Bytes())

	km := &KeyMaterial{
		InitialSharedSecret: initialSharedSecret,
		RoutingKeys:         make([]RoutingKeys, len(path)),
	}
	for i, node := range path {
		alpha, err := expoGroupBase(factors)
		if err != nil {
			return nil, err
		}
		sharedKey, err := expo(node.PubKey, factors)
		if err != nil {
			return nil, err
		}
		routingKeys, err := DeriveRoutingKeys(sharedKey, alpha)
		if err != nil {
			return nil, err
		}
		km.RoutingKeys[i] = *routingKeys
		factors = append(factors, routingKeys.BlindingFactor[:])
	}
	return km, nil
}

// expo applies the exponents to base one multiplication at a time.
func expo(base *crypto.PublicKey, exponents [][]byte) (*crypto.PublicKey, error) {
	acc := base
	var err error
	for _, e := range exponents {
		acc, err = crypto.Exp(acc, e)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// expoGroupBase is expo anchored at the group base point.
func expoGroupBase(exponents [][]byte) (*crypto.PublicKey, error) {
	acc, err := crypto.ExpG(exponents[0])
	if err != nil {
		return nil, err
	}
	return expo(acc, exponents[1:])
}
