// sphinx.go - Sphinx mix network packet header library.
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

// Package sphinx provides the public interface of the Sphinx packet header
// library: header creation over a route, per-hop processing, and the fixed
// size wire codec.  All failures are returned as values; nothing here
// retries or aborts.
package sphinx

import (
	"io"

	"gopkg.in/op/go-logging.v1"

	"github.com/katzenpost/sphinx/crypto"
	"github.com/katzenpost/sphinx/header"
	"github.com/katzenpost/sphinx/header/delays"
	"github.com/katzenpost/sphinx/header/keys"
	"github.com/katzenpost/sphinx/route"
)

var log = logging.MustGetLogger("sphinx")

// SphinxHeader is the fixed size routing header.
type SphinxHeader = header.SphinxHeader

// ProcessedHeader is the tagged result of one hop's processing, either a
// *ForwardHop or a *FinalHop.
type ProcessedHeader = header.ProcessedHeader

// ForwardHop directs a packet to the next mix node.
type ForwardHop = header.ForwardHop

// FinalHop delivers a packet to its destination.
type FinalHop = header.FinalHop

// GenerateSecret returns a fresh initial secret for header creation.  This
// is the only entry point that consumes the caller's RNG.
func GenerateSecret(rng io.Reader) (*crypto.PrivateKey, error) {
	return crypto.GenerateSecret(rng)
}

// Create builds a header over the route terminating at the destination,
// one delay per hop, and returns it along with the per-hop payload keys in
// route order.
func Create(initialSecret *crypto.PrivateKey, path []route.Node, hopDelays []delays.Delay, destination *route.Destination) (*SphinxHeader, []keys.PayloadKey, error) {
	log.Debugf("creating header for a %d hop route", len(path))
	return header.New(initialSecret, path, hopDelays, destination)
}

// Process unwraps one layer of the header with the node's private key.
func Process(h *SphinxHeader, nodeSecret *crypto.PrivateKey) (ProcessedHeader, error) {
	return h.Process(nodeSecret)
}

// HeaderFromBytes deserializes a header from its wire encoding.
func HeaderFromBytes(b []byte) (*SphinxHeader, error) {
	return header.FromBytes(b)
}
