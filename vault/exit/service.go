// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package exit

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/slots"
)

const slotExits = "exit-states"

var (
	// ErrInsufficientScheduled is returned when an amount exceeds what is
	// scheduled in the targeted stage.
	ErrInsufficientScheduled = errors.New("amount exceeds scheduled amount")
	// ErrNoScheduledAmount is returned when an execution finds nothing
	// scheduled.
	ErrNoScheduledAmount = errors.New("no scheduled amount")
	// ErrWithdrawalNotUnstaked is returned when a withdrawal is scheduled
	// for more than what has been unstaked.
	ErrWithdrawalNotUnstaked = errors.New("withdrawal exceeds unstaked amount")
)

// Service manages the exit states of all depositors.
type Service struct {
	exits *slots.Mapping[lrt.Address, *State]
}

// New creates a new exit service.
func New(sctx *slots.Context) *Service {
	return &Service{
		exits: slots.NewMapping[lrt.Address, *State](sctx, sctx.Slot(slotExits)),
	}
}

// Get returns the exit state of the depositor. Depositors without an exit
// in progress yield a zeroed state.
func (s *Service) Get(depositor lrt.Address) (*State, error) {
	state, err := s.exits.Get(depositor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get exit state")
	}
	state.normalize()
	return state, nil
}

// ScheduleUnstake adds the amount to the depositor's scheduled unstake.
func (s *Service) ScheduleUnstake(depositor lrt.Address, amount *big.Int) error {
	state, err := s.Get(depositor)
	if err != nil {
		return err
	}
	state.ScheduledUnstake = new(big.Int).Add(state.ScheduledUnstake, amount)
	return s.set(depositor, state)
}

// CancelUnstake removes the amount from the depositor's scheduled unstake.
func (s *Service) CancelUnstake(depositor lrt.Address, amount *big.Int) error {
	state, err := s.Get(depositor)
	if err != nil {
		return err
	}
	if amount.Cmp(state.ScheduledUnstake) > 0 {
		return ErrInsufficientScheduled
	}
	state.ScheduledUnstake = new(big.Int).Sub(state.ScheduledUnstake, amount)
	return s.set(depositor, state)
}

// ExecuteUnstake moves the depositor's entire scheduled unstake into the
// unstaked stage and returns the moved amount.
func (s *Service) ExecuteUnstake(depositor lrt.Address) (*big.Int, error) {
	state, err := s.Get(depositor)
	if err != nil {
		return nil, err
	}
	if state.ScheduledUnstake.Sign() == 0 {
		return nil, ErrNoScheduledAmount
	}
	moved := state.ScheduledUnstake
	state.Unstaked = new(big.Int).Add(state.Unstaked, moved)
	state.ScheduledUnstake = new(big.Int)
	if err := s.set(depositor, state); err != nil {
		return nil, err
	}
	return moved, nil
}

// ScheduleWithdraw moves the amount from the unstaked stage into the
// scheduled withdrawal.
func (s *Service) ScheduleWithdraw(depositor lrt.Address, amount *big.Int) error {
	state, err := s.Get(depositor)
	if err != nil {
		return err
	}
	if amount.Cmp(state.Unstaked) > 0 {
		return ErrWithdrawalNotUnstaked
	}
	state.Unstaked = new(big.Int).Sub(state.Unstaked, amount)
	state.ScheduledWithdraw = new(big.Int).Add(state.ScheduledWithdraw, amount)
	return s.set(depositor, state)
}

// CancelWithdraw moves the amount from the scheduled withdrawal back into
// the unstaked stage.
func (s *Service) CancelWithdraw(depositor lrt.Address, amount *big.Int) error {
	state, err := s.Get(depositor)
	if err != nil {
		return err
	}
	if amount.Cmp(state.ScheduledWithdraw) > 0 {
		return ErrInsufficientScheduled
	}
	state.ScheduledWithdraw = new(big.Int).Sub(state.ScheduledWithdraw, amount)
	state.Unstaked = new(big.Int).Add(state.Unstaked, amount)
	return s.set(depositor, state)
}

// Withdraw removes the amount from the depositor's scheduled withdrawal.
func (s *Service) Withdraw(depositor lrt.Address, amount *big.Int) error {
	state, err := s.Get(depositor)
	if err != nil {
		return err
	}
	if state.ScheduledWithdraw.Sign() == 0 {
		return ErrNoScheduledAmount
	}
	if amount.Cmp(state.ScheduledWithdraw) > 0 {
		return ErrInsufficientScheduled
	}
	state.ScheduledWithdraw = new(big.Int).Sub(state.ScheduledWithdraw, amount)
	return s.set(depositor, state)
}

func (s *Service) set(depositor lrt.Address, state *State) error {
	if err := s.exits.Set(depositor, state); err != nil {
		return errors.Wrap(err, "failed to set exit state")
	}
	return nil
}
