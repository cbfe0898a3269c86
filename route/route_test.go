// route_test.go - Route type tests.
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

package route

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katzenpost/sphinx/constants"
)

func TestNodeAddressBase58(t *testing.T) {
	require := require.New(t)

	addr := NodeAddressFixture(42)
	recovered, err := NodeAddressFromBase58(addr.ToBase58())
	require.NoError(err, "NodeAddressFromBase58 failed")
	require.Equal(addr, recovered)
}

func TestDestinationAddressBase58(t *testing.T) {
	require := require.New(t)

	dest := DestinationFixture()
	recovered, err := DestinationAddressFromBase58(dest.Address.ToBase58())
	require.NoError(err, "DestinationAddressFromBase58 failed")
	require.Equal(dest.Address, recovered)
}

func TestAddressFromBytesRejectsBadLengths(t *testing.T) {
	require := require.New(t)

	_, err := NodeAddressFromBytes(make([]byte, constants.NodeAddressLength-1))
	require.Error(err)
	_, err = DestinationAddressFromBytes(make([]byte, constants.DestinationAddressLength+1))
	require.Error(err)

	addr, err := NodeAddressFromBytes(make([]byte, constants.NodeAddressLength))
	require.NoError(err)
	require.Equal(NodeAddressBytes{}, addr)
}
