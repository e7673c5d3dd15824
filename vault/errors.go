// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/vault/exit"
	"github.com/tangle-network/lrt/vault/ledger"
)

var (
	// ErrInvalidToken is returned when registering the zero address or the
	// base asset as a reward token.
	ErrInvalidToken = errors.New("invalid reward token")
	// ErrInvalidAmount is returned when an operation amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance is returned when a share movement exceeds the
	// holder's balance.
	ErrInsufficientBalance = errors.New("insufficient share balance")
	// ErrUnauthorized is returned when the caller may not act on the
	// targeted account, or when the escrow holder is named as a party.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDelayNotElapsed is returned by delegation gateways while an
	// execution delay is still running. The engine propagates it unchanged.
	ErrDelayNotElapsed = errors.New("delay not elapsed")

	// Re-exported service sentinels, so callers match every engine error
	// against this package.

	// ErrAlreadyRegistered is returned when registering a token twice.
	ErrAlreadyRegistered = ledger.ErrAlreadyRegistered
	// ErrUnknownToken is returned when operating on an unregistered token.
	ErrUnknownToken = ledger.ErrUnknownToken
	// ErrInsufficientScheduled is returned when an amount exceeds what is
	// scheduled in the targeted exit stage.
	ErrInsufficientScheduled = exit.ErrInsufficientScheduled
	// ErrNoScheduledAmount is returned when an execution finds nothing
	// scheduled.
	ErrNoScheduledAmount = exit.ErrNoScheduledAmount
	// ErrWithdrawalNotUnstaked is returned when a withdrawal is scheduled
	// for more than what has been unstaked.
	ErrWithdrawalNotUnstaked = exit.ErrWithdrawalNotUnstaked
)
