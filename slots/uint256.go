// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tangle-network/lrt/lrt"
)

// Uint256 is a storage wrapper for a non-negative big integer, similar to
// storing a uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     lrt.Bytes32
}

// NewUint256 creates a uint256 slot at the given position.
func NewUint256(context *Context, pos lrt.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

// Get loads the stored value. A missing slot reads as zero.
func (u *Uint256) Get() (*big.Int, error) {
	value := new(big.Int)
	err := u.context.state.DecodeStorage(u.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the value.
func (u *Uint256) Set(value *big.Int) error {
	return u.context.state.EncodeStorage(u.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Add increases the stored value by the given amount.
func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	stored.Add(stored, value)
	return u.Set(stored)
}

// Sub decreases the stored value by the given amount.
// Callers must ensure the result does not go negative.
func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	stored.Sub(stored, value)
	return u.Set(stored)
}
