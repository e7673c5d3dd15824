// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/test/datagen"
	"github.com/tangle-network/lrt/vault/ledger"
)

func TestRegisterRewardToken(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()

	require.NoError(t, env.vault.RegisterRewardToken(token))
	require.ErrorIs(t, env.vault.RegisterRewardToken(token), ErrAlreadyRegistered)
	require.ErrorIs(t, env.vault.RegisterRewardToken(lrt.Address{}), ErrInvalidToken)
	require.ErrorIs(t, env.vault.RegisterRewardToken(env.baseAsset), ErrInvalidToken)

	tokens, err := env.vault.RewardTokens()
	require.NoError(t, err)
	require.Equal(t, []lrt.Address{token}, tokens)

	events := env.sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, eventdb.NameTokenRegistered, events[0].Name)
	require.Equal(t, token, *events[0].Token)
}

func TestDeposit(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	alice := datagen.RandAddress()

	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))

	balance, err := env.vault.BalanceOf(alice)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), balance)

	supply, err := env.vault.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), supply)

	require.Equal(t, big.NewInt(100), env.gateway.delegated)
}

func TestDepositValidation(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	alice := datagen.RandAddress()

	require.ErrorIs(t, env.vault.Deposit(lrt.Address{}, big.NewInt(1)), ErrUnauthorized)
	require.ErrorIs(t, env.vault.Deposit(alice, nil), ErrInvalidAmount)
	require.ErrorIs(t, env.vault.Deposit(alice, big.NewInt(0)), ErrInvalidAmount)
	require.ErrorIs(t, env.vault.Deposit(alice, big.NewInt(-5)), ErrInvalidAmount)

	supply, err := env.vault.TotalSupply()
	require.NoError(t, err)
	require.Zero(t, supply.Sign())
	require.Empty(t, env.sink.Events())
}

func TestTransfer(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))

	require.ErrorIs(t, env.vault.Transfer(lrt.Address{}, bob, big.NewInt(1)), ErrUnauthorized)
	require.ErrorIs(t, env.vault.Transfer(alice, lrt.Address{}, big.NewInt(1)), ErrUnauthorized)
	require.ErrorIs(t, env.vault.Transfer(alice, bob, big.NewInt(0)), ErrInvalidAmount)
	require.ErrorIs(t, env.vault.Transfer(alice, bob, big.NewInt(150)), ErrInsufficientBalance)

	require.NoError(t, env.vault.Transfer(alice, bob, big.NewInt(40)))

	balance, err := env.vault.BalanceOf(alice)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(60), balance)

	balance, err = env.vault.BalanceOf(bob)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(40), balance)

	supply, err := env.vault.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), supply)
}

func TestSelfTransfer(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	require.NoError(t, env.vault.Transfer(alice, alice, big.NewInt(30)))

	balance, err := env.vault.BalanceOf(alice)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), balance)

	// The settled entitlement survives the self-transfer.
	owed, err := env.vault.Claimable(alice, token)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(10), owed)

	cp, err := env.vault.CheckpointOf(alice, token)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), cp.Shares)
	require.Equal(t, big.NewInt(10), cp.Pending)
}

func TestGatewayFailureReverts(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	alice := datagen.RandAddress()

	gatewayDown := errors.New("gateway down")
	env.gateway.failWith = gatewayDown

	err := env.vault.Deposit(alice, big.NewInt(100))
	require.ErrorIs(t, err, gatewayDown)

	balance, err := env.vault.BalanceOf(alice)
	require.NoError(t, err)
	require.Zero(t, balance.Sign())

	supply, err := env.vault.TotalSupply()
	require.NoError(t, err)
	require.Zero(t, supply.Sign())
	require.Empty(t, env.sink.Events())

	// The engine recovers as soon as the gateway does.
	env.gateway.failWith = nil
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))

	balance, err = env.vault.BalanceOf(alice)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), balance)
}

func TestEventFlow(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)
	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))

	var names []string
	var lastSeq uint64
	for _, ev := range env.sink.Events() {
		require.Greater(t, ev.Sequence, lastSeq)
		lastSeq = ev.Sequence
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{
		eventdb.NameTokenRegistered,
		eventdb.NameCheckpointWritten, // deposit settles alice for the token
		eventdb.NameDeposited,
		eventdb.NameIndexUpdated, // claim detects the arrival
		eventdb.NameClaimed,
	}, names)
}

func TestHealthTracking(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()

	status, err := env.vault.Health().Status()
	require.NoError(t, err)
	require.True(t, status.Healthy)

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)
	env.claimOne(t, alice, token)

	status, err = env.vault.Health().Status()
	require.NoError(t, err)
	require.True(t, status.Healthy)
	require.NotNil(t, status.LastOperation)
	require.Equal(t, "claim", status.LastOperation.Name)
	require.NotNil(t, status.LastReward)
	require.Equal(t, token, status.LastReward.Token)
}
