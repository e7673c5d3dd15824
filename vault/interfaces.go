// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"time"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/lrt"
)

// ShareBook maintains the engine's share balances. The zero address acts as
// the escrow holder for shares frozen by a scheduled unstake, so Transfer
// must accept it as either party. Implementations backed by the engine
// state (see StateShareBook) revert together with the rest of an operation.
type ShareBook interface {
	BalanceOf(holder lrt.Address) (*big.Int, error)
	TotalSupply() (*big.Int, error)
	Mint(to lrt.Address, amount *big.Int) error
	Burn(from lrt.Address, amount *big.Int) error
	Transfer(from, to lrt.Address, amount *big.Int) error
}

// TokenBank gives access to the pool's reward token holdings. BalanceOf is
// observed by reward detection; Transfer pays claims out. Calls to Transfer
// are issued strictly after all internal state of an operation is final.
type TokenBank interface {
	BalanceOf(token lrt.Address) (*big.Int, error)
	Transfer(token, to lrt.Address, amount *big.Int) error
}

// DelegationGateway forwards staking intents to the underlying delegation
// system. The engine treats it as opaque: ExecuteUnstake and ExecuteWithdraw
// are expected to fail with ErrDelayNotElapsed until the respective delay
// has passed, and the engine propagates that failure unchanged.
type DelegationGateway interface {
	DepositAndDelegate(amount *big.Int) error
	ScheduleUnstake(amount *big.Int) error
	CancelUnstake(amount *big.Int) error
	ExecuteUnstake(amount *big.Int) error
	ScheduleWithdraw(amount *big.Int) error
	CancelWithdraw(amount *big.Int) error
	ExecuteWithdraw(amount *big.Int, recipient lrt.Address) error
}

// Clock supplies the engine time in unix seconds.
type Clock interface {
	Now() uint64
}

// SystemClock is the default Clock, ticking wall-clock unix seconds.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// EventSink receives the events of every successfully committed operation.
// *eventdb.EventDB satisfies it directly. Sink failures are logged and
// never fail the operation.
type EventSink interface {
	Write(events []*eventdb.Event) error
}
