// sphinx_test.go - Public interface tests.
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

package sphinx

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header/delays"
	"github.com/katzenpost/sphinx/route"
)

// TestSerializeThenProcess creates a header, sends it over the wire, and
// checks the deserialized copy processes to the same routing decision as
// the in-memory original.
func TestSerializeThenProcess(t *testing.T) {
	require := require.New(t)

	path := make([]route.Node, 3)
	privs := make([]*crypto.PrivateKey, 3)
	for i, b := range []byte{5, 4, 2} {
		k, err := crypto.NewKeypair(rand.Reader)
		require.NoError(err)
		privs[i] = k
		path[i] = route.Node{Address: route.NodeAddressFixture(b), PubKey: k.PublicKey()}
	}
	dest := route.DestinationFixture()
	hopDelays, err := delays.Generate(rand.Reader, len(path), 100*time.Millisecond)
	require.NoError(err)

	initialSecret, err := GenerateSecret(rand.Reader)
	require.NoError(err)
	h, payloadKeys, err := Create(initialSecret, path, hopDelays, dest)
	require.NoError(err, "Create failed")
	require.Len(payloadKeys, 3)

	wire, err := HeaderFromBytes(h.ToBytes())
	require.NoError(err, "HeaderFromBytes failed")

	direct, err := Process(h, privs[0])
	require.NoError(err)
	overWire, err := Process(wire, privs[0])
	require.NoError(err)

	directForward, ok := direct.(*ForwardHop)
	require.True(ok)
	wireForward, ok := overWire.(*ForwardHop)
	require.True(ok)
	require.Equal(directForward.NextHop, wireForward.NextHop)
	require.Equal(directForward.Delay.Value(), wireForward.Delay.Value())
	require.Equal(directForward.PayloadKey, wireForward.PayloadKey)
	require.Equal(directForward.Header.ToBytes(), wireForward.Header.ToBytes())
	require.Equal(path[1].Address, wireForward.NextHop)
}
