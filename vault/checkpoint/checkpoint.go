// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package checkpoint stores per-user, per-token reward checkpoints. A
// checkpoint freezes the share balance and pending entitlement of a holder
// at a known reward index, so entitlements only ever accrue from balances
// that were actually held while the index grew.
package checkpoint

import (
	"math/big"
)

// Checkpoint is the accrual snapshot of one holder for one reward token.
type Checkpoint struct {
	Index         *big.Int // reward index the snapshot was taken at
	Time          uint64   // engine time of the snapshot
	Shares        *big.Int // share balance the snapshot accrues on
	HistoryCursor uint64   // arrival history length at snapshot time, informational
	Pending       *big.Int // entitlement carried over from before the snapshot
}

func (c *Checkpoint) normalize() {
	if c.Index == nil {
		c.Index = new(big.Int)
	}
	if c.Shares == nil {
		c.Shares = new(big.Int)
	}
	if c.Pending == nil {
		c.Pending = new(big.Int)
	}
}
