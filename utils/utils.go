// utils.go - Byte slice utilities.
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

// Package utils provides byte slice helpers used throughout the Sphinx
// implementation.
package utils

import "crypto/subtle"

// XorBytes XORs a and b into dst.  All three slices must have the same
// length, otherwise XorBytes panics; the callers operate on fixed-geometry
// buffers so a mismatch is a programming error, not an input error.
func XorBytes(dst, a, b []byte) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("sphinx/utils: length mismatch in XorBytes")
	}
	for i, v := range a {
		dst[i] = v ^ b[i]
	}
}

// CtIsZero returns true iff the buffer is all zeroes, in constant time.
func CtIsZero(b []byte) bool {
	var sum byte
	for _, v := range b {
		sum |= v
	}
	return subtle.ConstantTimeByteEq(sum, 0) == 1
}

// ExplicitBzero explicitly clears the buffer.
func ExplicitBzero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
