// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slots provides typed storage primitives over the engine state,
// similar to the storage layout of a Solidity contract: named slots hold
// scalar values, mappings and arrays hold RLP-encoded entries at positions
// derived with blake2b.
package slots

import (
	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/state"
)

// Context scopes storage slots to a namespace address. Distinct services
// use distinct addresses so their slots never collide.
type Context struct {
	address lrt.Address
	state   *state.State
}

// NewContext creates a slot context for the given namespace address.
func NewContext(address lrt.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// Address returns the namespace address.
func (c *Context) Address() lrt.Address {
	return c.address
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}

// Slot derives the storage position of a named slot within this namespace.
func (c *Context) Slot(name string) lrt.Bytes32 {
	return lrt.Blake2b(c.address.Bytes(), []byte(name))
}
