// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package exit tracks the two-phase exit of each depositor: shares first
// pass through a delayed unstake, then the unstaked amount passes through a
// delayed withdrawal. Amounts only ever move forward along that path or
// back by explicit cancellation.
package exit

import (
	"math/big"
)

// State is the exit position of one depositor.
type State struct {
	ScheduledUnstake  *big.Int // shares waiting for the unstake delay
	Unstaked          *big.Int // shares whose unstake executed, not yet scheduled for withdrawal
	ScheduledWithdraw *big.Int // amount waiting for the withdrawal delay
}

// IsEmpty reports whether the depositor has no exit in progress.
func (s *State) IsEmpty() bool {
	return s.ScheduledUnstake.Sign() == 0 &&
		s.Unstaked.Sign() == 0 &&
		s.ScheduledWithdraw.Sign() == 0
}

func (s *State) normalize() {
	if s.ScheduledUnstake == nil {
		s.ScheduledUnstake = new(big.Int)
	}
	if s.Unstaked == nil {
		s.Unstaked = new(big.Int)
	}
	if s.ScheduledWithdraw == nil {
		s.ScheduledWithdraw = new(big.Int)
	}
}
