// delays.go - Per-hop mix delays.
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

// Package delays provides the per-hop delay encoding carried in the Sphinx
// header and a helper for sampling delays from an exponential distribution.
// The header treats delays as opaque bytes; scheduling semantics live with
// the mix node, not here.
package delays

import (
	"encoding/binary"
	"errors"
	"io"
	mathrand "math/rand"
	"time"

	"github.com/katzenpost/sphinx/constants"
)

var errInvalidDelayLength = errors.New("sphinx/delays: invalid delay length")

// Delay is a single hop's mix delay, carried bit for bit through the
// header as an unsigned 64 bit nanosecond count.
type Delay struct {
	value uint64
}

// NewDelay builds a Delay from a raw nanosecond count.
func NewDelay(v uint64) Delay {
	return Delay{value: v}
}

// Value returns the raw nanosecond count.
func (d Delay) Value() uint64 {
	return d.value
}

// Duration returns the delay as a time.Duration.
func (d Delay) Duration() time.Duration {
	return time.Duration(d.value)
}

// ToBytes returns the big endian wire encoding of the delay.
func (d Delay) ToBytes() []byte {
	b := make([]byte, constants.DelayLength)
	binary.BigEndian.PutUint64(b, d.value)
	return b
}

// FromBytes decodes a delay from its wire encoding.
func FromBytes(b []byte) (Delay, error) {
	if len(b) != constants.DelayLength {
		return Delay{}, errInvalidDelayLength
	}
	return Delay{value: binary.BigEndian.Uint64(b)}, nil
}

// Generate samples count delays from the exponential distribution with the
// given mean, seeding the sampler from the provided entropy source.  The
// header construction itself never draws randomness; callers invoke this
// before creating a packet.
func Generate(rng io.Reader, count int, average time.Duration) ([]Delay, error) {
	var seed [8]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, err
	}
	mrng := mathrand.New(mathrand.NewSource(int64(binary.BigEndian.Uint64(seed[:]))))
	d := make([]Delay, count)
	for i := range d {
		d[i] = Delay{value: uint64(mrng.ExpFloat64() * float64(average.Nanoseconds()))}
	}
	return d, nil
}
