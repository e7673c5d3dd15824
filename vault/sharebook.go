// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/slots"
)

const (
	slotShareBalances = "share-balances"
	slotShareSupply   = "share-supply"
)

// StateShareBook is the default ShareBook, keeping balances and supply in
// the engine state. Its mutations are covered by the operation checkpoint,
// so a reverted operation also reverts its share movements.
type StateShareBook struct {
	balances *slots.Mapping[lrt.Address, *big.Int]
	supply   *slots.Uint256
}

// NewStateShareBook creates a share book rooted in the given slot context.
func NewStateShareBook(sctx *slots.Context) *StateShareBook {
	return &StateShareBook{
		balances: slots.NewMapping[lrt.Address, *big.Int](sctx, sctx.Slot(slotShareBalances)),
		supply:   slots.NewUint256(sctx, sctx.Slot(slotShareSupply)),
	}
}

// BalanceOf returns the share balance of the holder.
func (b *StateShareBook) BalanceOf(holder lrt.Address) (*big.Int, error) {
	balance, err := b.balances.Get(holder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get share balance")
	}
	return balance, nil
}

// TotalSupply returns the outstanding share supply, escrowed shares
// included.
func (b *StateShareBook) TotalSupply() (*big.Int, error) {
	supply, err := b.supply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get share supply")
	}
	return supply, nil
}

// Mint creates shares for the holder.
func (b *StateShareBook) Mint(to lrt.Address, amount *big.Int) error {
	balance, err := b.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := b.setBalance(to, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	if err := b.supply.Add(amount); err != nil {
		return errors.Wrap(err, "failed to add share supply")
	}
	return nil
}

// Burn destroys shares of the holder.
func (b *StateShareBook) Burn(from lrt.Address, amount *big.Int) error {
	balance, err := b.BalanceOf(from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := b.setBalance(from, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	if err := b.supply.Sub(amount); err != nil {
		return errors.Wrap(err, "failed to sub share supply")
	}
	return nil
}

// Transfer moves shares between holders without changing the supply.
func (b *StateShareBook) Transfer(from, to lrt.Address, amount *big.Int) error {
	fromBalance, err := b.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := b.setBalance(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := b.BalanceOf(to)
	if err != nil {
		return err
	}
	return b.setBalance(to, new(big.Int).Add(toBalance, amount))
}

func (b *StateShareBook) setBalance(holder lrt.Address, balance *big.Int) error {
	if err := b.balances.Set(holder, balance); err != nil {
		return errors.Wrap(err, "failed to set share balance")
	}
	return nil
}
