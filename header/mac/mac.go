// mac.go - Header integrity MAC.
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

// Package mac computes and verifies the truncated per-hop MAC over the
// encrypted routing information.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/katzenpost/sphinx/constants"
)

var errInvalidMacLength = errors.New("sphinx/mac: invalid MAC length")

// HeaderIntegrityMac authenticates one hop's view of the encrypted routing
// information.
type HeaderIntegrityMac struct {
	value [constants.HeaderIntegrityMacSize]byte
}

// ComputeMac MACs data under key, truncated to the header MAC size.
func ComputeMac(key, data []byte) HeaderIntegrityMac {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	digest := m.Sum(nil)

	var out HeaderIntegrityMac
	copy(out.value[:], digest[:constants.HeaderIntegrityMacSize])
	return out
}

// Verify recomputes the MAC of data under key and compares it against m in
// constant time.
func (m *HeaderIntegrityMac) Verify(key, data []byte) bool {
	expected := ComputeMac(key, data)
	return hmac.Equal(m.value[:], expected.value[:])
}

// Bytes returns a copy of the MAC value.
func (m *HeaderIntegrityMac) Bytes() []byte {
	b := make([]byte, constants.HeaderIntegrityMacSize)
	copy(b, m.value[:])
	return b
}

// FromBytes deserializes a MAC value.
func FromBytes(b []byte) (HeaderIntegrityMac, error) {
	var m HeaderIntegrityMac
	if len(b) != constants.HeaderIntegrityMacSize {
		return m, errInvalidMacLength
	}
	copy(m.value[:], b)
	return m, nil
}
