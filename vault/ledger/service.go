// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger tracks reward arrivals per token and folds them into a
// cumulative reward-per-share index. Arrivals are detected lazily by
// comparing the observed pool balance (plus everything already paid out)
// against the recorded arrival history.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/slots"
)

const (
	slotRecords = "reward-records"
	slotTokens  = "reward-tokens"
	slotHistory = "reward-history"
)

var (
	// ErrAlreadyRegistered is returned when registering a token twice.
	ErrAlreadyRegistered = errors.New("reward token already registered")
	// ErrUnknownToken is returned when operating on an unregistered token.
	ErrUnknownToken = errors.New("unknown reward token")
)

// Service manages the per-token reward records and arrival histories.
type Service struct {
	sctx        *slots.Context
	policy      ZeroSupplyPolicy
	records     *slots.Mapping[lrt.Address, *Record]
	tokens      *slots.Array[lrt.Address]
	historyBase lrt.Bytes32
}

// New creates a new ledger service.
func New(sctx *slots.Context, policy ZeroSupplyPolicy) *Service {
	return &Service{
		sctx:        sctx,
		policy:      policy,
		records:     slots.NewMapping[lrt.Address, *Record](sctx, sctx.Slot(slotRecords)),
		tokens:      slots.NewArray[lrt.Address](sctx, sctx.Slot(slotTokens)),
		historyBase: sctx.Slot(slotHistory),
	}
}

// Policy returns the configured zero-supply policy.
func (s *Service) Policy() ZeroSupplyPolicy {
	return s.policy
}

// Register adds a token to the ledger with a zeroed record.
func (s *Service) Register(token lrt.Address, now uint64) error {
	record, err := s.records.Get(token)
	if err != nil {
		return errors.Wrap(err, "failed to get reward record")
	}
	if record.Registered {
		return ErrAlreadyRegistered
	}
	record.normalize()
	record.Registered = true
	record.LastUpdateTime = now

	if err := s.records.Set(token, record); err != nil {
		return errors.Wrap(err, "failed to set reward record")
	}
	if err := s.tokens.Append(token); err != nil {
		return errors.Wrap(err, "failed to append reward token")
	}
	return nil
}

// Refresh detects newly arrived rewards for the token and folds them into
// the reward-per-share index. observedBalance is the pool's current holding
// of the token, totalSupply the outstanding shares at this instant. The
// newly arrived amount is returned; zero means nothing changed except the
// update time.
func (s *Service) Refresh(token lrt.Address, observedBalance, totalSupply *big.Int, now uint64) (*big.Int, error) {
	record, err := s.records.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward record")
	}
	if !record.Registered {
		return nil, ErrUnknownToken
	}
	record.normalize()

	recorded, err := s.recordedTotal(token)
	if err != nil {
		return nil, err
	}

	// Arrivals since the last refresh. PaidOut makes the detection immune
	// to balance drops caused by claim transfers.
	arrived := new(big.Int).Add(observedBalance, record.PaidOut)
	arrived.Sub(arrived, recorded)
	if arrived.Sign() < 0 {
		arrived.SetInt64(0)
	}

	if arrived.Sign() > 0 {
		if err := s.history(token).Append(&Arrival{Time: now, Amount: arrived}); err != nil {
			return nil, errors.Wrap(err, "failed to append arrival")
		}
	}

	if totalSupply.Sign() > 0 {
		distributable := new(big.Int).Add(arrived, record.Deferred)
		if distributable.Sign() > 0 {
			gain := new(big.Int).Mul(distributable, lrt.Precision)
			gain.Div(gain, totalSupply)
			record.Index = new(big.Int).Add(record.Index, gain)
			record.Deferred = new(big.Int)
		}
	} else if arrived.Sign() > 0 && s.policy == PolicyDefer {
		record.Deferred = new(big.Int).Add(record.Deferred, arrived)
	}
	record.LastUpdateTime = now

	if err := s.records.Set(token, record); err != nil {
		return nil, errors.Wrap(err, "failed to set reward record")
	}
	return arrived, nil
}

// AddPaidOut records an outgoing claim payment so the next refresh does not
// mistake the balance drop for a negative arrival.
func (s *Service) AddPaidOut(token lrt.Address, amount *big.Int) error {
	record, err := s.records.Get(token)
	if err != nil {
		return errors.Wrap(err, "failed to get reward record")
	}
	if !record.Registered {
		return ErrUnknownToken
	}
	record.normalize()
	record.PaidOut = new(big.Int).Add(record.PaidOut, amount)

	if err := s.records.Set(token, record); err != nil {
		return errors.Wrap(err, "failed to set reward record")
	}
	return nil
}

// Remaining returns the undistributed balance of the token, i.e. everything
// recorded as arrived minus everything paid out. Payouts are clamped to this
// value so rounding can never pay out more than what arrived.
func (s *Service) Remaining(token lrt.Address) (*big.Int, error) {
	record, err := s.records.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward record")
	}
	if !record.Registered {
		return nil, ErrUnknownToken
	}
	record.normalize()

	recorded, err := s.recordedTotal(token)
	if err != nil {
		return nil, err
	}
	remaining := recorded.Sub(recorded, record.PaidOut)
	if remaining.Sign() < 0 {
		remaining.SetInt64(0)
	}
	return remaining, nil
}

// Record returns the reward record of the token. Unregistered tokens yield
// a zeroed record with Registered unset.
func (s *Service) Record(token lrt.Address) (*Record, error) {
	record, err := s.records.Get(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward record")
	}
	record.normalize()
	return record, nil
}

// IsRegistered reports whether the token is registered.
func (s *Service) IsRegistered(token lrt.Address) (bool, error) {
	record, err := s.records.Get(token)
	if err != nil {
		return false, errors.Wrap(err, "failed to get reward record")
	}
	return record.Registered, nil
}

// History returns the full arrival history of the token in arrival order.
func (s *Service) History(token lrt.Address) ([]*Arrival, error) {
	var history []*Arrival
	if err := s.history(token).ForEach(func(_ uint64, arrival *Arrival) bool {
		history = append(history, arrival)
		return true
	}); err != nil {
		return nil, errors.Wrap(err, "failed to scan arrival history")
	}
	return history, nil
}

// HistoryLen returns the number of recorded arrivals of the token.
func (s *Service) HistoryLen(token lrt.Address) (uint64, error) {
	length, err := s.history(token).Len()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get arrival history length")
	}
	return length, nil
}

// Tokens returns all registered tokens in registration order.
func (s *Service) Tokens() ([]lrt.Address, error) {
	var tokens []lrt.Address
	if err := s.tokens.ForEach(func(_ uint64, token lrt.Address) bool {
		tokens = append(tokens, token)
		return true
	}); err != nil {
		return nil, errors.Wrap(err, "failed to scan reward tokens")
	}
	return tokens, nil
}

func (s *Service) history(token lrt.Address) *slots.Array[*Arrival] {
	return slots.NewArray[*Arrival](s.sctx, lrt.Blake2b(s.historyBase.Bytes(), token.Bytes()))
}

func (s *Service) recordedTotal(token lrt.Address) (*big.Int, error) {
	total := new(big.Int)
	if err := s.history(token).ForEach(func(_ uint64, arrival *Arrival) bool {
		total.Add(total, arrival.Amount)
		return true
	}); err != nil {
		return nil, errors.Wrap(err, "failed to scan arrival history")
	}
	return total, nil
}
