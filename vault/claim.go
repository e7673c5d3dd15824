// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/lrt"
)

// Claim pays out the owner's accrued rewards for the requested tokens and
// returns the paid amounts in request order; zero is a valid payout. Tokens
// may repeat, each occurrence settles against the then-current checkpoint,
// so a repeated token pays on its first occurrence only. Only the owner may
// claim. Any error aborts the whole operation.
func (v *Vault) Claim(caller, owner lrt.Address, tokens []lrt.Address) ([]*big.Int, error) {
	logger.Debug("claiming", "owner", owner, "tokens", len(tokens))

	var payouts []*big.Int
	err := v.run("claim", func(now uint64) error {
		payouts = payouts[:0]
		if owner.IsZero() || caller != owner {
			return ErrUnauthorized
		}
		supply, err := v.shares.TotalSupply()
		if err != nil {
			return err
		}
		balance, err := v.shares.BalanceOf(owner)
		if err != nil {
			return err
		}

		for _, token := range tokens {
			index, cursor, arrived, err := v.refreshToken(token, supply, now)
			if err != nil {
				return err
			}
			v.noteArrival(token, arrived, now)

			owed, err := v.checkpoints.Entitlement(owner, token, index)
			if err != nil {
				return err
			}
			if owed.Sign() > 0 {
				// Entitlements round up per holder; the undistributed
				// remainder caps the payout so claims never exceed what
				// actually arrived.
				remaining, err := v.ledger.Remaining(token)
				if err != nil {
					return err
				}
				if owed.Cmp(remaining) > 0 {
					owed = remaining
				}
			}

			if err := v.checkpoints.Snapshot(owner, token, index, now, balance, cursor, new(big.Int)); err != nil {
				return err
			}
			if owed.Sign() > 0 {
				if err := v.ledger.AddPaidOut(token, owed); err != nil {
					return err
				}
				v.emit(now, eventdb.NameClaimed, ref(owner), ref(token), owed, nil)
				// The transfer is the only interaction and runs strictly
				// after the token's internal state is final.
				if err := v.bank.Transfer(token, owner, owed); err != nil {
					return errors.Wrap(err, "failed to transfer reward")
				}
			}
			payouts = append(payouts, owed)
		}
		return nil
	})
	if err != nil {
		logger.Info("claim failed", "owner", owner, "error", err)
		return nil, err
	}
	logger.Info("claimed", "owner", owner, "tokens", len(tokens))
	return payouts, nil
}

// Claimable projects what Claim would pay the owner for the token right
// now, newly arrived but not yet indexed rewards included. The projection
// runs on a discarded checkpoint; nothing is mutated or reported.
func (v *Vault) Claimable(owner, token lrt.Address) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rev := v.state.NewCheckpoint()
	defer func() {
		v.state.RevertTo(rev)
		v.events = v.events[:0]
	}()

	supply, err := v.shares.TotalSupply()
	if err != nil {
		return nil, err
	}
	index, _, _, err := v.refreshToken(token, supply, v.clock.Now())
	if err != nil {
		return nil, err
	}
	owed, err := v.checkpoints.Entitlement(owner, token, index)
	if err != nil {
		return nil, err
	}
	if owed.Sign() > 0 {
		remaining, err := v.ledger.Remaining(token)
		if err != nil {
			return nil, err
		}
		if owed.Cmp(remaining) > 0 {
			owed = remaining
		}
	}
	return owed, nil
}
