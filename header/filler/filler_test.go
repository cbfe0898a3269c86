// filler_test.go - Filler string tests.
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

package filler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katzenpost/sphinx/constants"
	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header/keys"
	"github.com/katzenpost/sphinx/utils"
)

func routingKeysFixture(n int) []keys.RoutingKeys {
	rk := make([]keys.RoutingKeys, n)
	for i := range rk {
		for j := range rk[i].StreamCipherKey {
			rk[i].StreamCipherKey[j] = byte(i + 1)
		}
	}
	return rk
}

func TestFillerLengths(t *testing.T) {
	require := require.New(t)

	// One entry per legal number of non-terminal hops, the empty case
	// included (a minimum length route of two hops uses a single key).
	for n := 0; n <= constants.MaxPathLength-1; n++ {
		f, err := New(routingKeysFixture(n))
		require.NoError(err, "New failed for %d keys", n)
		require.Equal(n*constants.NodeMetaWithMacLength, f.Len())
	}
}

func TestFillerRejectsOverlongRoutes(t *testing.T) {
	require := require.New(t)

	_, err := New(routingKeysFixture(constants.MaxPathLength))
	require.Equal(ErrTooManyHops, err)
}

// TestFillerConstruction checks the fold against a by-hand expansion: the
// single key case is the last NodeMetaWithMacLength bytes of that key's
// keystream, and every later step XORs the shifted previous filler into
// the new keystream tail.
func TestFillerConstruction(t *testing.T) {
	require := require.New(t)

	rk := routingKeysFixture(2)

	f1, err := New(rk[:1])
	require.NoError(err)
	stream1, err := crypto.GeneratePseudorandomBytes(rk[0].StreamCipherKey[:], constants.StreamCipherOutputLength)
	require.NoError(err)
	require.Equal(stream1[constants.StreamCipherOutputLength-constants.NodeMetaWithMacLength:], f1.Bytes())

	f2, err := New(rk)
	require.NoError(err)
	stream2, err := crypto.GeneratePseudorandomBytes(rk[1].StreamCipherKey[:], constants.StreamCipherOutputLength)
	require.NoError(err)
	expected := make([]byte, 2*constants.NodeMetaWithMacLength)
	copy(expected, f1.Bytes())
	utils.XorBytes(expected, expected, stream2[constants.StreamCipherOutputLength-len(expected):])
	require.Equal(expected, f2.Bytes())
}
