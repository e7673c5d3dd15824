// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/lrt"
)

// ScheduleUnstake freezes the depositor's shares for a later unstake. The
// shares are escrowed with a real transfer, so they stop accruing rewards
// until cancelled.
func (v *Vault) ScheduleUnstake(depositor lrt.Address, amount *big.Int) error {
	logger.Debug("scheduling unstake", "depositor", depositor, "amount", amount)

	err := v.run("schedule-unstake", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.touchBalances(depositor, escrowHolder, amount, now); err != nil {
			return err
		}
		if err := v.shares.Transfer(depositor, escrowHolder, amount); err != nil {
			return err
		}
		if err := v.exits.ScheduleUnstake(depositor, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameUnstakeScheduled, ref(depositor), nil, amount, nil)
		return v.gateway.ScheduleUnstake(amount)
	})
	if err != nil {
		logger.Info("schedule unstake failed", "depositor", depositor, "error", err)
		return err
	}
	logger.Info("scheduled unstake", "depositor", depositor, "amount", amount)
	return nil
}

// CancelUnstake thaws scheduled shares back to the depositor. Accrual
// resumes from the current index; nothing is credited for the frozen slice
// of time.
func (v *Vault) CancelUnstake(depositor lrt.Address, amount *big.Int) error {
	logger.Debug("cancelling unstake", "depositor", depositor, "amount", amount)

	err := v.run("cancel-unstake", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.exits.CancelUnstake(depositor, amount); err != nil {
			return err
		}
		if err := v.touchBalances(escrowHolder, depositor, amount, now); err != nil {
			return err
		}
		if err := v.shares.Transfer(escrowHolder, depositor, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameUnstakeCancelled, ref(depositor), nil, amount, nil)
		return v.gateway.CancelUnstake(amount)
	})
	if err != nil {
		logger.Info("cancel unstake failed", "depositor", depositor, "error", err)
		return err
	}
	logger.Info("cancelled unstake", "depositor", depositor, "amount", amount)
	return nil
}

// ExecuteUnstake executes the depositor's entire scheduled unstake once the
// gateway delay has elapsed and returns the unstaked amount. The gateway's
// ErrDelayNotElapsed passes through unchanged.
func (v *Vault) ExecuteUnstake(depositor lrt.Address) (*big.Int, error) {
	logger.Debug("executing unstake", "depositor", depositor)

	var moved *big.Int
	err := v.run("execute-unstake", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		var err error
		if moved, err = v.exits.ExecuteUnstake(depositor); err != nil {
			return err
		}
		v.emit(now, eventdb.NameUnstakeExecuted, ref(depositor), nil, moved, nil)
		return v.gateway.ExecuteUnstake(moved)
	})
	if err != nil {
		logger.Info("execute unstake failed", "depositor", depositor, "error", err)
		return nil, err
	}
	logger.Info("executed unstake", "depositor", depositor, "amount", moved)
	return moved, nil
}

// ScheduleWithdraw moves an unstaked amount into the delayed withdrawal
// stage.
func (v *Vault) ScheduleWithdraw(depositor lrt.Address, amount *big.Int) error {
	logger.Debug("scheduling withdraw", "depositor", depositor, "amount", amount)

	err := v.run("schedule-withdraw", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.exits.ScheduleWithdraw(depositor, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameWithdrawScheduled, ref(depositor), nil, amount, nil)
		return v.gateway.ScheduleWithdraw(amount)
	})
	if err != nil {
		logger.Info("schedule withdraw failed", "depositor", depositor, "error", err)
		return err
	}
	logger.Info("scheduled withdraw", "depositor", depositor, "amount", amount)
	return nil
}

// CancelWithdraw moves a scheduled withdrawal back into the unstaked stage;
// the gateway re-delegates the amount.
func (v *Vault) CancelWithdraw(depositor lrt.Address, amount *big.Int) error {
	logger.Debug("cancelling withdraw", "depositor", depositor, "amount", amount)

	err := v.run("cancel-withdraw", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.exits.CancelWithdraw(depositor, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameWithdrawCancelled, ref(depositor), nil, amount, nil)
		return v.gateway.CancelWithdraw(amount)
	})
	if err != nil {
		logger.Info("cancel withdraw failed", "depositor", depositor, "error", err)
		return err
	}
	logger.Info("cancelled withdraw", "depositor", depositor, "amount", amount)
	return nil
}

// Withdraw burns escrowed shares against a scheduled withdrawal and has the
// gateway release the base asset to the recipient once the delay elapsed.
// The gateway's ErrDelayNotElapsed passes through unchanged.
func (v *Vault) Withdraw(owner lrt.Address, amount *big.Int, recipient lrt.Address) error {
	logger.Debug("withdrawing", "owner", owner, "amount", amount, "recipient", recipient)

	err := v.run("withdraw", func(now uint64) error {
		if owner.IsZero() || recipient.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.exits.Withdraw(owner, amount); err != nil {
			return err
		}
		// Burning from the escrow: both legs name the escrow holder, so
		// this only refreshes the indices at the pre-burn supply.
		if err := v.touchBalances(escrowHolder, escrowHolder, amount, now); err != nil {
			return err
		}
		if err := v.shares.Burn(escrowHolder, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameWithdrawn, ref(owner), nil, amount, ref(recipient))
		return v.gateway.ExecuteWithdraw(amount, recipient)
	})
	if err != nil {
		logger.Info("withdraw failed", "owner", owner, "error", err)
		return err
	}
	logger.Info("withdrew", "owner", owner, "amount", amount, "recipient", recipient)
	return nil
}
