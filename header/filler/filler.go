// filler.go - Sphinx header filler string.
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

// Package filler builds the deterministic pseudorandom suffix the sender
// pre-mixes into the routing information.  When a hop peels its layer it
// shifts the blob left and zero-pads; the keystream it applies turns that
// padding into exactly the bytes the sender accounted for here, keeping
// the MAC chain intact at every later hop.
package filler

import (
	"errors"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header/keys"
	"github.com/katzenpost/sphinx/utils"
)

// ErrTooManyHops is returned when the filler would overflow the routing
// information block.
var ErrTooManyHops = errors.New("sphinx/filler: route exceeds maximum path length")

// Filler is the accumulated pseudorandom suffix.
type Filler struct {
	value []byte
}

// New folds the filler string over the stream cipher keys of all
// non-terminal hops.  For a route of r hops it must be called with the
// first r-1 key bundles, producing (r-1) * NodeMetaWithMacLength bytes.
func New(routingKeys []keys.RoutingKeys) (*Filler, error) {
	if len(routingKeys)*constants.NodeMetaWithMacLength > constants.EncryptedRoutingInfoSize-constants.NodeMetaWithMacLength {
		return nil, ErrTooManyHops
	}

	value := make([]byte, 0, len(routingKeys)*constants.NodeMetaWithMacLength)
	for i := range routingKeys {
		value = append(value, make([]byte, constants.NodeMetaWithMacLength)...)
		stream, err := crypto.GeneratePseudorandomBytes(routingKeys[i].StreamCipherKey[:], constants.StreamCipherOutputLength)
		if err != nil {
			return nil, err
		}
		tail := stream[constants.StreamCipherOutputLength-len(value):]
		utils.XorBytes(value, value, tail)
	}
	return &Filler{value: value}, nil
}

// Bytes returns the filler string.
func (f *Filler) Bytes() []byte {
	return f.value
}

// Len returns the filler length in bytes.
func (f *Filler) Len() int {
	return len(f.value)
}
