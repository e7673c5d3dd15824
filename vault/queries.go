// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/vault/checkpoint"
	"github.com/tangle-network/lrt/vault/exit"
	"github.com/tangle-network/lrt/vault/ledger"
)

// RewardTokens lists the registered reward tokens in registration order.
func (v *Vault) RewardTokens() ([]lrt.Address, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.ledger.Tokens()
}

// LedgerOf returns the reward record and the arrival history of the token.
func (v *Vault) LedgerOf(token lrt.Address) (*ledger.Record, []*ledger.Arrival, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	record, err := v.ledger.Record(token)
	if err != nil {
		return nil, nil, err
	}
	if !record.Registered {
		return nil, nil, ErrUnknownToken
	}
	history, err := v.ledger.History(token)
	if err != nil {
		return nil, nil, err
	}
	return record, history, nil
}

// CheckpointOf returns the holder's checkpoint for the token. Never-touched
// pairs yield a zeroed checkpoint.
func (v *Vault) CheckpointOf(holder, token lrt.Address) (*checkpoint.Checkpoint, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.checkpoints.Get(holder, token)
}

// ExitOf returns the depositor's exit state.
func (v *Vault) ExitOf(depositor lrt.Address) (*exit.State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exits.Get(depositor)
}

// BalanceOf returns the share balance of the holder.
func (v *Vault) BalanceOf(holder lrt.Address) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.shares.BalanceOf(holder)
}

// TotalSupply returns the outstanding share supply, escrowed shares
// included.
func (v *Vault) TotalSupply() (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.shares.TotalSupply()
}
