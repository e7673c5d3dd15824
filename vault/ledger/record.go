// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
)

// Record is the per-token reward accounting record.
type Record struct {
	Index          *big.Int // cumulative reward per share, scaled by lrt.Precision
	LastUpdateTime uint64   // engine time of the last refresh
	Registered     bool
	PaidOut        *big.Int // cumulative amount paid out through claims
	Deferred       *big.Int // arrivals buffered while total supply was zero
}

// Arrival is one detected reward arrival for a token.
type Arrival struct {
	Time   uint64
	Amount *big.Int
}

// ZeroSupplyPolicy selects how reward arrivals are treated while no
// shares are outstanding.
type ZeroSupplyPolicy int

const (
	// PolicyForfeit leaves such arrivals undistributed forever.
	PolicyForfeit ZeroSupplyPolicy = iota
	// PolicyDefer buffers such arrivals and folds them into the next
	// refresh that sees a positive supply.
	PolicyDefer
)

func (p ZeroSupplyPolicy) String() string {
	switch p {
	case PolicyForfeit:
		return "forfeit"
	case PolicyDefer:
		return "defer"
	}
	return "unknown"
}

func (r *Record) normalize() {
	if r.Index == nil {
		r.Index = new(big.Int)
	}
	if r.PaidOut == nil {
		r.PaidOut = new(big.Int)
	}
	if r.Deferred == nil {
		r.Deferred = new(big.Int)
	}
}
