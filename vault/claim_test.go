// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/test/datagen"
	"github.com/tangle-network/lrt/vault/ledger"
)

// The canonical accrual walk: a second depositor earns nothing from rewards
// that arrived before their deposit, and later rewards split by shares.
func TestClaimAccrualWalk(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))

	env.bank.fund(token, 10)
	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))
	require.Equal(t, big.NewInt(10), env.bank.receivedBy(alice, token))

	require.NoError(t, env.vault.Deposit(bob, big.NewInt(100)))
	require.Zero(t, env.claimOne(t, bob, token).Sign())

	env.bank.fund(token, 10)
	require.Equal(t, big.NewInt(5), env.claimOne(t, alice, token))
	require.Equal(t, big.NewInt(5), env.claimOne(t, bob, token))

	require.Equal(t, big.NewInt(15), env.bank.receivedBy(alice, token))
	require.Equal(t, big.NewInt(5), env.bank.receivedBy(bob, token))

	// Everything that arrived has been paid out.
	record, history, err := env.vault.LedgerOf(token)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(20), record.PaidOut)
	require.Len(t, history, 2)
}

func TestClaimableDoesNotMutate(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	eventsBefore := len(env.sink.Events())
	for i := 0; i < 3; i++ {
		owed, err := env.vault.Claimable(alice, token)
		require.NoError(t, err)
		require.Equal(t, big.NewInt(10), owed)
	}

	// The projection left no trace: the arrival is still undetected and no
	// events were emitted.
	_, history, err := env.vault.LedgerOf(token)
	require.NoError(t, err)
	require.Empty(t, history)
	require.Len(t, env.sink.Events(), eventsBefore)

	// A depositor that joins after the arrival still earns nothing of it,
	// even though no refresh has happened yet.
	require.NoError(t, env.vault.Deposit(bob, big.NewInt(100)))

	owed, err := env.vault.Claimable(bob, token)
	require.NoError(t, err)
	require.Zero(t, owed.Sign())

	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))
}

func TestClaimIdempotence(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))
	require.Zero(t, env.claimOne(t, alice, token).Sign())
	require.Equal(t, big.NewInt(10), env.bank.receivedBy(alice, token))
}

func TestClaimDuplicateTokens(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	payouts, err := env.vault.Claim(alice, alice, []lrt.Address{token, token})
	require.NoError(t, err)
	require.Len(t, payouts, 2)
	require.Equal(t, big.NewInt(10), payouts[0])
	require.Zero(t, payouts[1].Sign())
	require.Equal(t, big.NewInt(10), env.bank.receivedBy(alice, token))
}

func TestClaimAuthorization(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()
	mallory := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	_, err := env.vault.Claim(mallory, alice, []lrt.Address{token})
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.vault.Claim(lrt.Address{}, lrt.Address{}, []lrt.Address{token})
	require.ErrorIs(t, err, ErrUnauthorized)

	require.Zero(t, env.bank.receivedBy(alice, token).Sign())
	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))
}

func TestClaimAbortsWhole(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	unknown := datagen.RandAddress()
	alice := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	// The registered token is processed first; the unknown one aborts the
	// whole claim, payout included.
	_, err := env.vault.Claim(alice, alice, []lrt.Address{token, unknown})
	require.ErrorIs(t, err, ErrUnknownToken)
	require.Zero(t, env.bank.receivedBy(alice, token).Sign())

	record, history, err := env.vault.LedgerOf(token)
	require.NoError(t, err)
	require.Zero(t, record.PaidOut.Sign())
	require.Empty(t, history)

	// Nothing was lost: the arrival is detected by the next valid claim.
	require.Equal(t, big.NewInt(10), env.claimOne(t, alice, token))
}

// Holder entitlements round up, so with many small holders the sum of
// entitlements can exceed what arrived. The payout clamp keeps aggregate
// payouts within the recorded arrivals.
func TestClaimConservationUnderRounding(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()
	carol := datagen.RandAddress()

	env.register(t, token)
	for _, holder := range []lrt.Address{alice, bob, carol} {
		require.NoError(t, env.vault.Deposit(holder, big.NewInt(1)))
	}
	env.bank.fund(token, 1)

	// Every holder's ceil-rounded entitlement is 1, but only 1 arrived.
	require.Equal(t, big.NewInt(1), env.claimOne(t, alice, token))
	require.Zero(t, env.claimOne(t, bob, token).Sign())
	require.Zero(t, env.claimOne(t, carol, token).Sign())

	record, history, err := env.vault.LedgerOf(token)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), record.PaidOut)
	require.Len(t, history, 1)
	require.Equal(t, big.NewInt(1), history[0].Amount)
}

func TestTransferFairness(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()

	env.register(t, token)
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))
	env.bank.fund(token, 10)

	// The transfer settles alice's accrual first: the 10 that arrived
	// while she held all 100 shares stays hers.
	require.NoError(t, env.vault.Transfer(alice, bob, big.NewInt(40)))
	env.bank.fund(token, 10)

	require.Equal(t, big.NewInt(16), env.claimOne(t, alice, token))
	require.Equal(t, big.NewInt(4), env.claimOne(t, bob, token))
}

func TestProportionality(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	token := datagen.RandAddress()
	env.register(t, token)

	holders := make([]lrt.Address, 5)
	deposits := make([]*big.Int, len(holders))
	supply := new(big.Int)
	for i := range holders {
		holders[i] = datagen.RandAddress()
		deposits[i] = big.NewInt(int64(datagen.RandIntN(1000) + 1))
		require.NoError(t, env.vault.Deposit(holders[i], deposits[i]))
		supply.Add(supply, deposits[i])
	}

	const reward = 777
	env.bank.fund(token, reward)

	// Rounding is one unit per holder at most, and a late claimer may
	// additionally be clamped by the units earlier claims rounded up.
	slack := big.NewInt(int64(len(holders)))
	total := new(big.Int)
	for i, holder := range holders {
		paid := env.claimOne(t, holder, token)
		total.Add(total, paid)

		ideal := new(big.Int).Mul(big.NewInt(reward), deposits[i])
		ideal.Div(ideal, supply)
		diff := new(big.Int).Sub(paid, ideal)
		require.LessOrEqual(t, diff.CmpAbs(slack), 0,
			"holder %d: paid %v, ideal %v", i, paid, ideal)
	}

	// Aggregate payouts never exceed the arrival and undershoot at most by
	// one unit per holder.
	require.LessOrEqual(t, total.Cmp(big.NewInt(reward)), 0)
	require.GreaterOrEqual(t, total.Cmp(big.NewInt(reward-int64(len(holders)))), 0)
}

func TestClaimManyTokens(t *testing.T) {
	env := newTestEnv(t, ledger.PolicyForfeit)
	alice := datagen.RandAddress()

	tokens := []lrt.Address{datagen.RandAddress(), datagen.RandAddress(), datagen.RandAddress()}
	for _, token := range tokens {
		env.register(t, token)
	}
	require.NoError(t, env.vault.Deposit(alice, big.NewInt(100)))

	env.bank.fund(tokens[0], 3)
	env.bank.fund(tokens[2], 7)

	payouts, err := env.vault.Claim(alice, alice, tokens)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(3), payouts[0])
	require.Zero(t, payouts[1].Sign())
	require.Equal(t, big.NewInt(7), payouts[2])
}
