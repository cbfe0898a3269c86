// delays_test.go - Delay encoding and sampling tests.
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

package delays

import (
	"bytes"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katzenpost/sphinx/constants"
)

func TestDelayWireEncoding(t *testing.T) {
	require := require.New(t)

	d := NewDelay(0x0102030405060708)
	b := d.ToBytes()
	require.Len(b, constants.DelayLength)
	require.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

	recovered, err := FromBytes(b)
	require.NoError(err, "FromBytes failed")
	require.Equal(d.Value(), recovered.Value())

	_, err = FromBytes(b[:7])
	require.Error(err)
}

func TestGenerate(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	d, err := Generate(rand.Reader, 3, 100*time.Millisecond)
	require.NoError(err, "Generate failed")
	require.Len(d, 3)

	// Deterministic given the same entropy.
	seed := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	a, err := Generate(bytes.NewReader(seed), 5, 100*time.Millisecond)
	require.NoError(err)
	b, err := Generate(bytes.NewReader(seed), 5, 100*time.Millisecond)
	require.NoError(err)
	for i := range a {
		assert.Equal(a[i].Value(), b[i].Value())
	}

	_, err = Generate(bytes.NewReader(seed[:4]), 1, time.Second)
	assert.Error(err, "truncated entropy source must fail")
}
