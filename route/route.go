// route.go - Sphinx route types.
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

// Package route defines the mix node and destination types a Sphinx header
// is constructed over.
package route

import (
	"errors"

	"github.com/mr-tron/base58"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
)

var errInvalidAddressLength = errors.New("sphinx/route: invalid address length")

// NodeAddressBytes is the opaque wire identifier of a mix node.
type NodeAddressBytes [constants.NodeAddressLength]byte

// NodeAddressFromBytes builds a NodeAddressBytes from a byte slice.
func NodeAddressFromBytes(b []byte) (NodeAddressBytes, error) {
	var a NodeAddressBytes
	if len(b) != constants.NodeAddressLength {
		return a, errInvalidAddressLength
	}
	copy(a[:], b)
	return a, nil
}

// NodeAddressFromBase58 decodes a base58 string into a node address.
func NodeAddressFromBase58(s string) (NodeAddressBytes, error) {
	var a NodeAddressBytes
	raw, err := base58.Decode(s)
	if err != nil {
		return a, err
	}
	return NodeAddressFromBytes(raw)
}

// ToBase58 returns the base58 string encoding of the address.
func (a NodeAddressBytes) ToBase58() string {
	return base58.Encode(a[:])
}

// DestinationAddressBytes is the opaque wire identifier of the terminal
// recipient.
type DestinationAddressBytes [constants.DestinationAddressLength]byte

// DestinationAddressFromBytes builds a DestinationAddressBytes from a byte
// slice.
func DestinationAddressFromBytes(b []byte) (DestinationAddressBytes, error) {
	var a DestinationAddressBytes
	if len(b) != constants.DestinationAddressLength {
		return a, errInvalidAddressLength
	}
	copy(a[:], b)
	return a, nil
}

// DestinationAddressFromBase58 decodes a base58 string into a destination
// address.
func DestinationAddressFromBase58(s string) (DestinationAddressBytes, error) {
	var a DestinationAddressBytes
	raw, err := base58.Decode(s)
	if err != nil {
		return a, err
	}
	return DestinationAddressFromBytes(raw)
}

// ToBase58 returns the base58 string encoding of the address.
func (a DestinationAddressBytes) ToBase58() string {
	return base58.Encode(a[:])
}

// SURBIdentifier labels the single use reply block associated with the
// final hop.  Only the identifier is carried in the header; reply block
// construction happens elsewhere.
type SURBIdentifier [constants.IdentifierLength]byte

// Node is one hop of a route: a wire address and the node's public key.
type Node struct {
	Address NodeAddressBytes
	PubKey  *crypto.PublicKey
}

// Destination is the terminal recipient of a packet.
type Destination struct {
	Address    DestinationAddressBytes
	Identifier SURBIdentifier
}
