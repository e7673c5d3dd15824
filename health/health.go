// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/tangle-network/lrt/lrt"
)

// OperationInfo describes the last successful engine operation.
type OperationInfo struct {
	Name string     `json:"name"`
	Time *time.Time `json:"time"`
}

// RewardInfo describes the last observed reward arrival.
type RewardInfo struct {
	Token lrt.Address `json:"token"`
	Time  *time.Time  `json:"time"`
}

// Status is the health report of the engine.
type Status struct {
	Healthy       bool           `json:"healthy"`
	Ready         bool           `json:"ready"`
	StoreFaulted  bool           `json:"storeFaulted"`
	LastOperation *OperationInfo `json:"lastOperation,omitempty"`
	LastReward    *RewardInfo    `json:"lastReward,omitempty"`
}

// Health tracks the liveness of the engine. The engine reports successful
// operations and observed reward arrivals; a persistence fault marks the
// engine unhealthy until the store recovers.
type Health struct {
	lock         sync.RWMutex
	ready        bool
	storeFaulted bool
	lastOpName   string
	lastOpTime   time.Time
	rewardToken  lrt.Address
	rewardTime   time.Time
}

// New creates a health tracker.
func New() *Health {
	return &Health{}
}

// Ready marks the engine as constructed and serving.
func (h *Health) Ready() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.ready = true
}

// ReportOperation records a successful engine operation.
func (h *Health) ReportOperation(name string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastOpName = name
	h.lastOpTime = time.Now()
	h.storeFaulted = false
}

// ReportReward records an observed reward arrival.
func (h *Health) ReportReward(token lrt.Address) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.rewardToken = token
	h.rewardTime = time.Now()
}

// ReportStoreFault records a persistence failure.
func (h *Health) ReportStoreFault() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.storeFaulted = true
}

// Status reports the current health.
func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{
		Healthy:      h.ready && !h.storeFaulted,
		Ready:        h.ready,
		StoreFaulted: h.storeFaulted,
	}
	if !h.lastOpTime.IsZero() {
		t := h.lastOpTime
		status.LastOperation = &OperationInfo{Name: h.lastOpName, Time: &t}
	}
	if !h.rewardTime.IsZero() {
		t := h.rewardTime
		status.LastReward = &RewardInfo{Token: h.rewardToken, Time: &t}
	}
	return status, nil
}
