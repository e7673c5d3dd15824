// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vault implements a pooled-deposit reward accounting engine.
// Depositors hold shares over a pool whose reward tokens arrive at
// arbitrary times; the engine detects arrivals lazily, indexes them per
// share, and settles each holder's accrual whenever their balance moves.
// Exits pass through a delay-gated two-phase unstake/withdraw machine.
//
// Every mutating operation is serialized, runs against a state checkpoint
// and commits all-or-nothing; calls to the delegation gateway and the token
// bank are issued only after the internal state of the operation is final.
package vault

import (
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/health"
	"github.com/tangle-network/lrt/log"
	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/metrics"
	"github.com/tangle-network/lrt/slots"
	"github.com/tangle-network/lrt/state"
	"github.com/tangle-network/lrt/vault/checkpoint"
	"github.com/tangle-network/lrt/vault/exit"
	"github.com/tangle-network/lrt/vault/ledger"
)

var logger = log.WithContext("pkg", "vault")

var (
	metricOpCount      = metrics.LazyLoadCounterVec("vault_operation_count", []string{"op", "status"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("vault_operation_duration_ms", []string{"op"}, metrics.Bucket10s)
	metricArrivalCount = metrics.LazyLoadCounter("vault_reward_arrival_count")
)

// escrowHolder is the zero address. Shares frozen by a scheduled unstake
// are parked on it; it is never snapshotted and cannot claim, so parked
// shares stop accruing.
var escrowHolder lrt.Address

// Vault is the reward accounting engine facade.
type Vault struct {
	mu     sync.Mutex
	state  *state.State
	config Config

	shares  ShareBook
	bank    TokenBank
	gateway DelegationGateway
	clock   Clock
	sink    EventSink
	health  *health.Health

	ledger      *ledger.Service
	checkpoints *checkpoint.Book
	exits       *exit.Service

	events []*eventdb.Event
}

// New creates a vault on the given state. shares may be nil, in which case
// a state-backed share book rooted in the same namespace is used; bank and
// gateway must be supplied by the embedding application.
func New(st *state.State, shares ShareBook, bank TokenBank, gateway DelegationGateway, cfg Config) *Vault {
	if cfg.Namespace.IsZero() {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}
	sctx := slots.NewContext(cfg.Namespace, st)
	if shares == nil {
		shares = NewStateShareBook(sctx)
	}

	h := health.New()
	h.Ready()

	return &Vault{
		state:   st,
		config:  cfg,
		shares:  shares,
		bank:    bank,
		gateway: gateway,
		clock:   cfg.Clock,
		sink:    cfg.Sink,
		health:  h,

		ledger:      ledger.New(sctx, cfg.ZeroSupplyPolicy),
		checkpoints: checkpoint.New(sctx),
		exits:       exit.New(sctx),
	}
}

// Health exposes the engine health tracker, e.g. for the admin endpoints.
func (v *Vault) Health() *health.Health {
	return v.health
}

// run executes one mutating operation: serialized, checkpointed, committed
// all-or-nothing. Buffered events reach the sink only after the commit.
func (v *Vault) run(op string, fn func(now uint64) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	startTime := time.Now()
	rev := v.state.NewCheckpoint()
	v.events = v.events[:0]

	if err := fn(v.clock.Now()); err != nil {
		v.state.RevertTo(rev)
		v.events = v.events[:0]
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "reverted"})
		return err
	}
	if err := v.state.Commit(); err != nil {
		v.state.RevertTo(rev)
		v.events = v.events[:0]
		v.health.ReportStoreFault()
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "reverted"})
		logger.Error("failed to commit state", "op", op, "error", err)
		return err
	}

	v.health.ReportOperation(op)
	v.flushEvents()
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "status": "committed"})
	metricOpDuration().ObserveWithLabels(time.Since(startTime).Milliseconds(), map[string]string{"op": op})
	return nil
}

// touchBalances settles reward accrual around a share movement of amount
// from -> to and must run before the ShareBook mutation. A mint names the
// escrow holder as from, a burn as to. Every registered token is refreshed
// once, then each non-escrow party is snapshotted at its post-movement
// balance with its accrued entitlement carried as pending.
func (v *Vault) touchBalances(from, to lrt.Address, amount *big.Int, now uint64) error {
	supply, err := v.shares.TotalSupply()
	if err != nil {
		return err
	}

	var fromBalance, toBalance *big.Int
	if !from.IsZero() {
		if fromBalance, err = v.shares.BalanceOf(from); err != nil {
			return err
		}
		if fromBalance.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}
	}
	if !to.IsZero() {
		if toBalance, err = v.shares.BalanceOf(to); err != nil {
			return err
		}
		if from == to {
			// The from leg settles first.
			toBalance = new(big.Int).Sub(toBalance, amount)
		}
	}

	tokens, err := v.ledger.Tokens()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		index, cursor, arrived, err := v.refreshToken(token, supply, now)
		if err != nil {
			return err
		}
		v.noteArrival(token, arrived, now)

		if !from.IsZero() {
			newBalance := new(big.Int).Sub(fromBalance, amount)
			if err := v.snapshot(from, token, index, now, newBalance, cursor); err != nil {
				return err
			}
		}
		if !to.IsZero() {
			newBalance := new(big.Int).Add(toBalance, amount)
			if err := v.snapshot(to, token, index, now, newBalance, cursor); err != nil {
				return err
			}
		}
	}
	return nil
}

// refreshToken folds newly arrived rewards of the token into its index and
// returns the post-refresh index, the history length and the arrival.
func (v *Vault) refreshToken(token lrt.Address, supply *big.Int, now uint64) (*big.Int, uint64, *big.Int, error) {
	poolBalance, err := v.bank.BalanceOf(token)
	if err != nil {
		return nil, 0, nil, errors.Wrap(err, "failed to get pool balance")
	}
	arrived, err := v.ledger.Refresh(token, poolBalance, supply, now)
	if err != nil {
		return nil, 0, nil, err
	}
	record, err := v.ledger.Record(token)
	if err != nil {
		return nil, 0, nil, err
	}
	cursor, err := v.ledger.HistoryLen(token)
	if err != nil {
		return nil, 0, nil, err
	}
	return record.Index, cursor, arrived, nil
}

// noteArrival reports a positive arrival to the event buffer, the health
// tracker and the metrics. Projections skip it so a later operation still
// observes the arrival.
func (v *Vault) noteArrival(token lrt.Address, arrived *big.Int, now uint64) {
	if arrived == nil || arrived.Sign() <= 0 {
		return
	}
	v.emit(now, eventdb.NameIndexUpdated, nil, ref(token), arrived, nil)
	v.health.ReportReward(token)
	metricArrivalCount().Add(1)
	logger.Info("reward arrived", "token", token, "amount", arrived)
}

// snapshot re-checkpoints the holder for the token at the given balance,
// carrying the entitlement accrued so far as pending.
func (v *Vault) snapshot(holder, token lrt.Address, index *big.Int, now uint64, shares *big.Int, cursor uint64) error {
	pending, err := v.checkpoints.Entitlement(holder, token, index)
	if err != nil {
		return err
	}
	if err := v.checkpoints.Snapshot(holder, token, index, now, shares, cursor, pending); err != nil {
		return err
	}
	v.emit(now, eventdb.NameCheckpointWritten, ref(holder), ref(token), shares, nil)
	return nil
}

// RegisterRewardToken adds a token to reward accounting. The zero address
// and the base asset are rejected.
func (v *Vault) RegisterRewardToken(token lrt.Address) error {
	logger.Debug("registering reward token", "token", token)

	err := v.run("register-reward-token", func(now uint64) error {
		if token.IsZero() || token == v.config.BaseAsset {
			return ErrInvalidToken
		}
		if err := v.ledger.Register(token, now); err != nil {
			return err
		}
		v.emit(now, eventdb.NameTokenRegistered, nil, ref(token), nil, nil)
		return nil
	})
	if err != nil {
		logger.Info("register reward token failed", "token", token, "error", err)
		return err
	}
	logger.Info("registered reward token", "token", token)
	return nil
}

// Deposit mints shares 1:1 for the deposited base asset amount and
// delegates the deposit through the gateway.
func (v *Vault) Deposit(depositor lrt.Address, amount *big.Int) error {
	logger.Debug("depositing", "depositor", depositor, "amount", amount)

	err := v.run("deposit", func(now uint64) error {
		if depositor.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.touchBalances(escrowHolder, depositor, amount, now); err != nil {
			return err
		}
		if err := v.shares.Mint(depositor, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameDeposited, ref(depositor), nil, amount, nil)
		return v.gateway.DepositAndDelegate(amount)
	})
	if err != nil {
		logger.Info("deposit failed", "depositor", depositor, "error", err)
		return err
	}
	logger.Info("deposited", "depositor", depositor, "amount", amount)
	return nil
}

// Transfer moves shares between holders, settling both sides' accrual
// first so the receiver earns nothing retroactively.
func (v *Vault) Transfer(from, to lrt.Address, amount *big.Int) error {
	logger.Debug("transferring shares", "from", from, "to", to, "amount", amount)

	err := v.run("transfer", func(now uint64) error {
		if from.IsZero() || to.IsZero() {
			return ErrUnauthorized
		}
		if amount == nil || amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
		if err := v.touchBalances(from, to, amount, now); err != nil {
			return err
		}
		if err := v.shares.Transfer(from, to, amount); err != nil {
			return err
		}
		v.emit(now, eventdb.NameSharesTransferred, ref(from), nil, amount, ref(to))
		return nil
	})
	if err != nil {
		logger.Info("share transfer failed", "from", from, "to", to, "error", err)
		return err
	}
	logger.Info("transferred shares", "from", from, "to", to, "amount", amount)
	return nil
}
