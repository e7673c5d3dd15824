// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/tangle-network/lrt/lrt"
)

// Names of the observable engine events.
const (
	NameTokenRegistered   = "token-registered"
	NameIndexUpdated      = "index-updated"
	NameCheckpointWritten = "checkpoint-written"
	NameDeposited         = "deposited"
	NameSharesTransferred = "shares-transferred"
	NameClaimed           = "claimed"
	NameUnstakeScheduled  = "unstake-scheduled"
	NameUnstakeCancelled  = "unstake-cancelled"
	NameUnstakeExecuted   = "unstake-executed"
	NameWithdrawScheduled = "withdraw-scheduled"
	NameWithdrawCancelled = "withdraw-cancelled"
	NameWithdrawn         = "withdrawn"
)

// Event is an observable engine event.
type Event struct {
	Sequence  uint64       `json:"sequence"`
	Time      uint64       `json:"time"`
	Name      string       `json:"name"`
	Account   *lrt.Address `json:"account,omitempty"`
	Token     *lrt.Address `json:"token,omitempty"`
	Amount    *big.Int     `json:"amount,omitempty"`
	Recipient *lrt.Address `json:"recipient,omitempty"`
}

// Order defines the order of the query results.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is a closed time range in unix seconds.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options paginates query results.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter filters events.
type Filter struct {
	Names   []string     `json:"names"`
	Account *lrt.Address `json:"account"`
	Token   *lrt.Address `json:"token"`
	Range   *Range       `json:"range"`
	Options *Options     `json:"options"`
	Order   Order        `json:"order"`
}
