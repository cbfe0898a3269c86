// routing.go - Layered Sphinx routing information.
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

// Package routing builds and peels the onion of encrypted routing
// information: innermost the final hop metadata, and around it one layer
// per intermediate hop of (flag, next address, delay, MAC over the next
// layer, truncated inner ciphertext), each XOR encrypted under that hop's
// stream cipher key.
package routing

import (
	"errors"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header/delays"
	"github.com/katzenpost/sphinx/header/filler"
	"github.com/katzenpost/sphinx/header/keys"
	"github.com/katzenpost/sphinx/header/mac"
	"github.com/katzenpost/sphinx/route"
	"github.com/katzenpost/sphinx/utils"
)

// Field offsets within one decrypted layer.
const (
	addressOff  = constants.FlagLength
	delayOff    = addressOff + constants.NodeAddressLength
	macOff      = constants.NodeMetaInfoLength
	nextBlobOff = constants.NodeMetaWithMacLength

	surbIDOff = constants.FlagLength + constants.DestinationAddressLength
)

var (
	// ErrRoutingFlagNotRecognized is returned when an authenticated layer
	// carries an unknown routing flag.
	ErrRoutingFlagNotRecognized = errors.New("sphinx/routing: unrecognized routing flag")

	// ErrInvalidRoutingLength is returned when deserializing routing
	// information of the wrong size.
	ErrInvalidRoutingLength = errors.New("sphinx/routing: invalid routing information length")

	errRouteMismatch = errors.New("sphinx/routing: route, delay and key material lengths differ")
	errFillerLength  = errors.New("sphinx/routing: filler length does not match route length")
)

// EncryptedRoutingInformation is the fixed size routing ciphertext blob.
type EncryptedRoutingInformation struct {
	value [constants.EncryptedRoutingInfoSize]byte
}

// Bytes returns a copy of the ciphertext blob.
func (e *EncryptedRoutingInformation) Bytes() []byte {
	b := make([]byte, constants.EncryptedRoutingInfoSize)
	copy(b, e.value[:])
	return b
}

// EncryptedFromBytes deserializes an encrypted routing information blob.
func EncryptedFromBytes(b []byte) (EncryptedRoutingInformation, error) {
	var e EncryptedRoutingInformation
	if len(b) != constants.EncryptedRoutingInfoSize {
		return e, ErrInvalidRoutingLength
	}
	copy(e.value[:], b)
	return e, nil
}

// EncapsulatedRoutingInformation pairs the routing ciphertext with the MAC
// that authenticates it under the current hop's HMAC key.
type EncapsulatedRoutingInformation struct {
	IntegrityMac          mac.HeaderIntegrityMac
	EncRoutingInformation EncryptedRoutingInformation
}

// ToBytes serializes the MAC followed by the ciphertext blob.
func (e *EncapsulatedRoutingInformation) ToBytes() []byte {
	out := make([]byte, 0, constants.HeaderIntegrityMacSize+constants.EncryptedRoutingInfoSize)
	out = append(out, e.IntegrityMac.Bytes()...)
	out = append(out, e.EncRoutingInformation.value[:]...)
	return out
}

// FromBytes deserializes an EncapsulatedRoutingInformation.
func FromBytes(b []byte) (EncapsulatedRoutingInformation, error) {
	var e EncapsulatedRoutingInformation
	if len(b) != constants.HeaderIntegrityMacSize+constants.EncryptedRoutingInfoSize {
		return e, ErrInvalidRoutingLength
	}
	m, err := mac.FromBytes(b[:constants.HeaderIntegrityMacSize])
	if err != nil {
		return e, err
	}
	e.IntegrityMac = m
	copy(e.EncRoutingInformation.value[:], b[constants.HeaderIntegrityMacSize:])
	return e, nil
}

// NewEncapsulatedRoutingInformation builds the full onion for the given
// route, working innermost first.  The filler must have been generated
// from the first len(path)-1 key bundles.
func NewEncapsulatedRoutingInformation(path []route.Node, destination *route.Destination, hopDelays []delays.Delay, routingKeys []keys.RoutingKeys, f *filler.Filler) (*EncapsulatedRoutingInformation, error) {
	if len(path) == 0 || len(path) != len(routingKeys) || len(path) != len(hopDelays) {
		return nil, errRouteMismatch
	}
	if f.Len() != (len(path)-1)*constants.NodeMetaWithMacLength {
		return nil, errFillerLength
	}

	last := len(path) - 1
	blob, m, err := newFinalLayer(destination, &routingKeys[last], f)
	if err != nil {
		return nil, err
	}

	for i := last - 1; i >= 0; i-- {
		blob, m, err = newForwardLayer(&path[i+1], hopDelays[i], m, blob, &routingKeys[i])
		if err != nil {
			return nil, err
		}
	}

	out := new(EncapsulatedRoutingInformation)
	out.IntegrityMac = m
	copy(out.EncRoutingInformation.value[:], blob)
	return out, nil
}

// newFinalLayer encodes the terminal hop metadata, encrypts it under the
// final hop's stream cipher key and appends the filler so the blob comes
// out at exactly EncryptedRoutingInfoSize bytes.
func newFinalLayer(destination *route.Destination, routingKeys *keys.RoutingKeys, f *filler.Filler) ([]byte, mac.HeaderIntegrityMac, error) {
	var m mac.HeaderIntegrityMac
	plainLen := constants.EncryptedRoutingInfoSize - f.Len()
	if plainLen < constants.FinalHopMetaLength {
		return nil, m, errFillerLength
	}

	buf := make([]byte, plainLen)
	buf[0] = constants.FinalHopFlag
	copy(buf[addressOff:], destination.Address[:])
	copy(buf[surbIDOff:], destination.Identifier[:])
	// The bytes past the metadata stay zero; the keystream below turns
	// them into pseudorandom padding.

	stream, err := crypto.GeneratePseudorandomBytes(routingKeys.StreamCipherKey[:], plainLen)
	if err != nil {
		return nil, m, err
	}
	utils.XorBytes(buf, buf, stream)

	blob := append(buf, f.Bytes()...)
	m = mac.ComputeMac(routingKeys.HeaderIntegrityHmacKey[:], blob)
	return blob, m, nil
}

// newForwardLayer wraps the previous layer in one intermediate hop's
// routing information.
func newForwardLayer(next *route.Node, delay delays.Delay, nextMac mac.HeaderIntegrityMac, nextBlob []byte, routingKeys *keys.RoutingKeys) ([]byte, mac.HeaderIntegrityMac, error) {
	var m mac.HeaderIntegrityMac

	buf := make([]byte, constants.EncryptedRoutingInfoSize)
	buf[0] = constants.ForwardHopFlag
	copy(buf[addressOff:], next.Address[:])
	copy(buf[delayOff:], delay.ToBytes())
	copy(buf[macOff:], nextMac.Bytes())
	copy(buf[nextBlobOff:], nextBlob[:constants.EncryptedRoutingInfoSize-constants.NodeMetaWithMacLength])

	stream, err := crypto.GeneratePseudorandomBytes(routingKeys.StreamCipherKey[:], constants.EncryptedRoutingInfoSize)
	if err != nil {
		return nil, m, err
	}
	utils.XorBytes(buf, buf, stream)

	m = mac.ComputeMac(routingKeys.HeaderIntegrityHmacKey[:], buf)
	return buf, m, nil
}

// ParsedRawRoutingInformation is the tagged result of peeling one layer:
// either ForwardHopInformation or FinalHopInformation.
type ParsedRawRoutingInformation interface {
	parsedRawRoutingInformation()
}

// ForwardHopInformation directs the packet to another mix node.
type ForwardHopInformation struct {
	NextHopAddress   route.NodeAddressBytes
	Delay            delays.Delay
	NextEncapsulated EncapsulatedRoutingInformation
}

func (ForwardHopInformation) parsedRawRoutingInformation() {}

// FinalHopInformation terminates the route at the destination.
type FinalHopInformation struct {
	DestinationAddress route.DestinationAddressBytes
	SURBIdentifier     route.SURBIdentifier
}

func (FinalHopInformation) parsedRawRoutingInformation() {}

// UnwrapRoutingInformation peels one layer: it zero-pads the blob back to
// the keystream length, decrypts, and parses the revealed flag.  Callers
// must have verified the MAC first; everything here operates on
// authenticated bytes.
func UnwrapRoutingInformation(enc *EncryptedRoutingInformation, streamCipherKey []byte) (ParsedRawRoutingInformation, error) {
	padded := make([]byte, constants.StreamCipherOutputLength)
	copy(padded, enc.value[:])
	stream, err := crypto.GeneratePseudorandomBytes(streamCipherKey, constants.StreamCipherOutputLength)
	if err != nil {
		return nil, err
	}
	utils.XorBytes(padded, padded, stream)

	switch padded[0] {
	case constants.ForwardHopFlag:
		return parseForwardHop(padded)
	case constants.FinalHopFlag:
		return parseFinalHop(padded)
	default:
		return nil, ErrRoutingFlagNotRecognized
	}
}

func parseForwardHop(raw []byte) (ParsedRawRoutingInformation, error) {
	addr, err := route.NodeAddressFromBytes(raw[addressOff : addressOff+constants.NodeAddressLength])
	if err != nil {
		return nil, err
	}
	delay, err := delays.FromBytes(raw[delayOff : delayOff+constants.DelayLength])
	if err != nil {
		return nil, err
	}
	nextMac, err := mac.FromBytes(raw[macOff : macOff+constants.HeaderIntegrityMacSize])
	if err != nil {
		return nil, err
	}

	info := ForwardHopInformation{
		NextHopAddress: addr,
		Delay:          delay,
	}
	info.NextEncapsulated.IntegrityMac = nextMac
	copy(info.NextEncapsulated.EncRoutingInformation.value[:], raw[nextBlobOff:nextBlobOff+constants.EncryptedRoutingInfoSize])
	return info, nil
}

func parseFinalHop(raw []byte) (ParsedRawRoutingInformation, error) {
	info := FinalHopInformation{}
	copy(info.DestinationAddress[:], raw[addressOff:addressOff+constants.DestinationAddressLength])
	copy(info.SURBIdentifier[:], raw[surbIDOff:surbIDOff+constants.IdentifierLength])
	return info, nil
}
