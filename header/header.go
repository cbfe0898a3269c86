// header.go - Sphinx packet header.
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

// Package header implements construction and per-hop processing of the
// fixed size Sphinx routing header.  Headers are immutable values: New
// builds one, Process consumes one and returns either the header for the
// next hop or the terminal routing data.
package header

import (
	"errors"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header/delays"
	"github.com/katzenpost/sphinx/header/filler"
	"github.com/katzenpost/sphinx/header/keys"
	"github.com/katzenpost/sphinx/header/routing"
	"github.com/katzenpost/sphinx/route"
)

var (
	// ErrIntegrityMac is returned when the header MAC does not verify at
	// this hop.  The packet must be dropped.
	ErrIntegrityMac = errors.New("sphinx/header: integrity MAC mismatch")

	// ErrRoutingFlagNotRecognized is returned when the authenticated
	// routing information carries an unknown flag byte.
	ErrRoutingFlagNotRecognized = routing.ErrRoutingFlagNotRecognized

	// ErrInvalidHeaderLength is returned when deserializing a header of
	// the wrong size.
	ErrInvalidHeaderLength = errors.New("sphinx/header: invalid header length")

	// ErrProcessingHeader is returned on internal invariant violations
	// that cannot occur on authenticated input.
	ErrProcessingHeader = errors.New("sphinx/header: failed to process header")

	errTooShortRoute  = errors.New("sphinx/header: route must have at least two hops")
	errDelaysMismatch = errors.New("sphinx/header: delays length does not match route length")
)

// SphinxHeader is one hop's view of a packet header: the group element
// used for the Diffie-Hellman exchange and the encapsulated routing
// information.
type SphinxHeader struct {
	SharedSecret *crypto.PublicKey
	RoutingInfo  routing.EncapsulatedRoutingInformation
}

// ProcessedHeader is the tagged result of processing a header at one hop:
// either a ForwardHop or a FinalHop.
type ProcessedHeader interface {
	processedHeader()
}

// ForwardHop instructs the node to delay the packet and forward the new
// header to the next hop.
type ForwardHop struct {
	Header     *SphinxHeader
	NextHop    route.NodeAddressBytes
	Delay      delays.Delay
	PayloadKey keys.PayloadKey
}

func (*ForwardHop) processedHeader() {}

// FinalHop instructs the node to deliver the payload to the destination.
type FinalHop struct {
	Destination route.DestinationAddressBytes
	Identifier  route.SURBIdentifier
	PayloadKey  keys.PayloadKey
}

func (*FinalHop) processedHeader() {}

// New creates a header over the given route along with the per-hop payload
// keys, in route order, for the payload subsystem.  The route must have at
// least two hops and one delay per hop.
func New(initialSecret *crypto.PrivateKey, path []route.Node, hopDelays []delays.Delay, destination *route.Destination) (*SphinxHeader, []keys.PayloadKey, error) {
	if len(path) < 2 {
		return nil, nil, errTooShortRoute
	}
	if len(hopDelays) != len(path) {
		return nil, nil, errDelaysMismatch
	}

	keyMaterial, err := keys.DeriveKeyMaterial(path, initialSecret)
	if err != nil {
		return nil, nil, err
	}
	f, err := filler.New(keyMaterial.RoutingKeys[:len(path)-1])
	if err != nil {
		return nil, nil, err
	}
	routingInfo, err := routing.NewEncapsulatedRoutingInformation(path, destination, hopDelays, keyMaterial.RoutingKeys, f)
	if err != nil {
		return nil, nil, err
	}

	payloadKeys := make([]keys.PayloadKey, len(path))
	for i := range keyMaterial.RoutingKeys {
		payloadKeys[i] = keyMaterial.RoutingKeys[i].PayloadKey
	}

	h := &SphinxHeader{
		SharedSecret: keyMaterial.InitialSharedSecret,
		RoutingInfo:  *routingInfo,
	}
	return h, payloadKeys, nil
}

// Process unwraps one layer of the header with the node's private key.
// The MAC check is the single authentication gate: it happens before any
// parsing, with a constant time comparison, and on mismatch the packet
// must be dropped.
func (h *SphinxHeader) Process(nodeSecret *crypto.PrivateKey) (ProcessedHeader, error) {
	sharedKey, err := crypto.Exp(h.SharedSecret, nodeSecret.Bytes())
	if err != nil {
		return nil, ErrProcessingHeader
	}
	routingKeys, err := keys.DeriveRoutingKeys(sharedKey, h.SharedSecret)
	if err != nil {
		return nil, ErrProcessingHeader
	}
	// The payload key is copied into the result by value; the rest of the
	// bundle is cleared once this hop is done with it.
	defer routingKeys.Reset()

	encBytes := h.RoutingInfo.EncRoutingInformation.Bytes()
	if !h.RoutingInfo.IntegrityMac.Verify(routingKeys.HeaderIntegrityHmacKey[:], encBytes) {
		return nil, ErrIntegrityMac
	}

	newSharedSecret, err := crypto.Exp(h.SharedSecret, routingKeys.BlindingFactor[:])
	if err != nil {
		return nil, ErrProcessingHeader
	}

	parsed, err := routing.UnwrapRoutingInformation(&h.RoutingInfo.EncRoutingInformation, routingKeys.StreamCipherKey[:])
	if err != nil {
		if err == routing.ErrRoutingFlagNotRecognized {
			return nil, err
		}
		return nil, ErrProcessingHeader
	}

	switch info := parsed.(type) {
	case routing.ForwardHopInformation:
		return &ForwardHop{
			Header: &SphinxHeader{
				SharedSecret: newSharedSecret,
				RoutingInfo:  info.NextEncapsulated,
			},
			NextHop:    info.NextHopAddress,
			Delay:      info.Delay,
			PayloadKey: routingKeys.PayloadKey,
		}, nil
	case routing.FinalHopInformation:
		return &FinalHop{
			Destination: info.DestinationAddress,
			Identifier:  info.SURBIdentifier,
			PayloadKey:  routingKeys.PayloadKey,
		}, nil
	default:
		return nil, ErrProcessingHeader
	}
}

// ToBytes serializes the header to its fixed wire size.
func (h *SphinxHeader) ToBytes() []byte {
	out := make([]byte, 0, constants.HeaderSize)
	out = append(out, h.SharedSecret.Bytes()...)
	out = append(out, h.RoutingInfo.ToBytes()...)
	return out
}

// FromBytes deserializes a header, rejecting any input that is not exactly
// HeaderSize bytes.
func FromBytes(b []byte) (*SphinxHeader, error) {
	if len(b) != constants.HeaderSize {
		return nil, ErrInvalidHeaderLength
	}

	sharedSecret := new(crypto.PublicKey)
	if err := sharedSecret.FromBytes(b[:constants.SharedSecretLength]); err != nil {
		return nil, ErrInvalidHeaderLength
	}
	routingInfo, err := routing.FromBytes(b[constants.SharedSecretLength:])
	if err != nil {
		return nil, ErrInvalidHeaderLength
	}

	return &SphinxHeader{
		SharedSecret: sharedSecret,
		RoutingInfo:  routingInfo,
	}, nil
}
