// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/lvldb"
	"github.com/tangle-network/lrt/state"
	"github.com/tangle-network/lrt/vault/ledger"
)

// manualClock only moves when the test advances it.
type manualClock struct {
	now uint64
}

func (c *manualClock) Now() uint64 {
	return c.now
}

func (c *manualClock) advance(seconds uint64) {
	c.now += seconds
}

// fakeBank is an in-memory token bank. Tests fund it directly to simulate
// reward arrivals.
type fakeBank struct {
	balances map[lrt.Address]*big.Int
	received map[lrt.Address]map[lrt.Address]*big.Int
	failWith error
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		balances: make(map[lrt.Address]*big.Int),
		received: make(map[lrt.Address]map[lrt.Address]*big.Int),
	}
}

func (b *fakeBank) BalanceOf(token lrt.Address) (*big.Int, error) {
	if balance, ok := b.balances[token]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

func (b *fakeBank) Transfer(token, to lrt.Address, amount *big.Int) error {
	if b.failWith != nil {
		return b.failWith
	}
	balance, _ := b.BalanceOf(token)
	if balance.Cmp(amount) < 0 {
		return errors.New("bank: insufficient funds")
	}
	b.balances[token] = balance.Sub(balance, amount)
	if b.received[to] == nil {
		b.received[to] = make(map[lrt.Address]*big.Int)
	}
	if b.received[to][token] == nil {
		b.received[to][token] = new(big.Int)
	}
	b.received[to][token].Add(b.received[to][token], amount)
	return nil
}

// fund simulates a reward arrival of the token into the pool.
func (b *fakeBank) fund(token lrt.Address, amount int64) {
	balance, _ := b.BalanceOf(token)
	b.balances[token] = balance.Add(balance, big.NewInt(amount))
}

func (b *fakeBank) receivedBy(to, token lrt.Address) *big.Int {
	if b.received[to] == nil || b.received[to][token] == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.received[to][token])
}

// fakeGateway gates executions behind a fixed delay measured on the manual
// clock.
type fakeGateway struct {
	clock *manualClock
	delay uint64

	delegated       *big.Int
	released        map[lrt.Address]*big.Int
	unstakeReadyAt  uint64
	withdrawReadyAt uint64
	failWith        error
}

func newFakeGateway(clock *manualClock, delay uint64) *fakeGateway {
	return &fakeGateway{
		clock:     clock,
		delay:     delay,
		delegated: new(big.Int),
		released:  make(map[lrt.Address]*big.Int),
	}
}

func (g *fakeGateway) DepositAndDelegate(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.delegated.Add(g.delegated, amount)
	return nil
}

func (g *fakeGateway) ScheduleUnstake(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.unstakeReadyAt = g.clock.now + g.delay
	return nil
}

func (g *fakeGateway) CancelUnstake(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	return nil
}

func (g *fakeGateway) ExecuteUnstake(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	if g.clock.now < g.unstakeReadyAt {
		return ErrDelayNotElapsed
	}
	g.delegated.Sub(g.delegated, amount)
	return nil
}

func (g *fakeGateway) ScheduleWithdraw(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.withdrawReadyAt = g.clock.now + g.delay
	return nil
}

func (g *fakeGateway) CancelWithdraw(amount *big.Int) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.delegated.Add(g.delegated, amount)
	return nil
}

func (g *fakeGateway) ExecuteWithdraw(amount *big.Int, recipient lrt.Address) error {
	if g.failWith != nil {
		return g.failWith
	}
	if g.clock.now < g.withdrawReadyAt {
		return ErrDelayNotElapsed
	}
	if g.released[recipient] == nil {
		g.released[recipient] = new(big.Int)
	}
	g.released[recipient].Add(g.released[recipient], amount)
	return nil
}

type testEnv struct {
	vault   *Vault
	bank    *fakeBank
	gateway *fakeGateway
	clock   *manualClock
	sink    *MemSink

	baseAsset lrt.Address
}

func newTestEnv(t *testing.T, policy ledger.ZeroSupplyPolicy) *testEnv {
	store, err := lvldb.NewMem()
	require.NoError(t, err)

	clock := &manualClock{now: 1000}
	bank := newFakeBank()
	gateway := newFakeGateway(clock, 100)
	sink := &MemSink{}
	baseAsset := lrt.BytesToAddress([]byte("base-asset"))

	v := New(state.New(store), nil, bank, gateway, Config{
		BaseAsset:        baseAsset,
		ZeroSupplyPolicy: policy,
		Clock:            clock,
		Sink:             sink,
	})
	return &testEnv{
		vault:     v,
		bank:      bank,
		gateway:   gateway,
		clock:     clock,
		sink:      sink,
		baseAsset: baseAsset,
	}
}

func (env *testEnv) register(t *testing.T, token lrt.Address) {
	require.NoError(t, env.vault.RegisterRewardToken(token))
}

func (env *testEnv) claimOne(t *testing.T, owner, token lrt.Address) *big.Int {
	payouts, err := env.vault.Claim(owner, owner, []lrt.Address{token})
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	return payouts[0]
}
