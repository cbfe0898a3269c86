// constants.go - Sphinx packet format constants.
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

// Package constants defines the Sphinx header geometry.  Every size here is
// part of the wire contract: changing any of them produces headers that are
// incompatible with peers built from different values.
package constants

const (
	// SharedSecretLength is the length in bytes of a serialized Curve25519
	// group element (the header's alpha).
	SharedSecretLength = 32

	// SecretKeyLength is the length in bytes of a Curve25519 scalar.
	SecretKeyLength = 32

	// NodeAddressLength is the length in bytes of a mix node address as it
	// appears in the routing information.
	NodeAddressLength = 32

	// DestinationAddressLength is the length in bytes of the final
	// recipient address.
	DestinationAddressLength = 32

	// IdentifierLength is the length in bytes of the SURB identifier
	// carried on the final hop.
	IdentifierLength = 8

	// DelayLength is the length in bytes of the per-hop delay encoding.
	DelayLength = 8

	// HeaderIntegrityMacSize is the length in bytes of the truncated
	// per-hop header MAC.
	HeaderIntegrityMacSize = 16

	// MaxPathLength is the maximum number of hops a header can encode.
	MaxPathLength = 5

	// FlagLength is the length in bytes of the routing flag.
	FlagLength = 1

	// ForwardHopFlag marks routing information for an intermediate hop.
	ForwardHopFlag = 0x01

	// FinalHopFlag marks routing information for the terminal hop.
	FinalHopFlag = 0x02

	// NodeMetaInfoLength is the per-hop plaintext metadata size: the flag,
	// the next hop address and the delay.
	NodeMetaInfoLength = FlagLength + NodeAddressLength + DelayLength

	// NodeMetaWithMacLength is NodeMetaInfoLength plus the MAC over the
	// next layer, which is the amount of routing information each hop
	// consumes when peeling its layer.
	NodeMetaWithMacLength = NodeMetaInfoLength + HeaderIntegrityMacSize

	// FinalHopMetaLength is the terminal hop plaintext metadata size: the
	// flag, the destination address and the SURB identifier.
	FinalHopMetaLength = FlagLength + DestinationAddressLength + IdentifierLength

	// EncryptedRoutingInfoSize is the size in bytes of the encrypted
	// routing information blob, invariant across hops.
	EncryptedRoutingInfoSize = MaxPathLength * NodeMetaWithMacLength

	// StreamCipherOutputLength is the amount of stream cipher keystream
	// consumed per hop: enough to decrypt the blob plus the zero padding
	// appended while peeling.
	StreamCipherOutputLength = EncryptedRoutingInfoSize + NodeMetaWithMacLength

	// HeaderSize is the size in bytes of a serialized Sphinx header.
	HeaderSize = SharedSecretLength + HeaderIntegrityMacSize + EncryptedRoutingInfoSize

	// StreamCipherKeySize is the length in bytes of a stream cipher key.
	StreamCipherKeySize = 32

	// StreamCipherIVSize is the length in bytes of the fixed stream cipher
	// initialization vector.
	StreamCipherIVSize = 12

	// IntegrityMacKeySize is the length in bytes of a header integrity
	// HMAC key.
	IntegrityMacKeySize = 32

	// PayloadKeySize is the length in bytes of the per-hop payload key
	// handed to the body subsystem.
	PayloadKeySize = 32

	// BlindingFactorSize is the length in bytes of a blinding factor
	// before it is applied as a scalar.
	BlindingFactorSize = 32
)
