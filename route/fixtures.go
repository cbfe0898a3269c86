// fixtures.go - Route test fixtures.
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

// Fixtures used by the package tests across this repository.

// DestinationFixture returns a fixed destination.
func DestinationFixture() *Destination {
	d := new(Destination)
	for i := range d.Address {
		d.Address[i] = 3
	}
	for i := range d.Identifier {
		d.Identifier[i] = 4
	}
	return d
}

// NodeAddressFixture returns a node address filled with the given byte.
func NodeAddressFixture(b byte) NodeAddressBytes {
	var a NodeAddressBytes
	for i := range a {
		a[i] = b
	}
	return a
}
