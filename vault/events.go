// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
	"sync"

	"github.com/tangle-network/lrt/eventdb"
	"github.com/tangle-network/lrt/lrt"
)

// NopSink discards all events.
type NopSink struct{}

// Write implements EventSink.
func (NopSink) Write([]*eventdb.Event) error {
	return nil
}

// MemSink buffers events in memory, mainly for tests and embedding without
// persistence. It assigns sequence numbers the way eventdb would.
type MemSink struct {
	mu     sync.Mutex
	seq    uint64
	events []*eventdb.Event
}

// Write implements EventSink.
func (s *MemSink) Write(events []*eventdb.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range events {
		s.seq++
		ev.Sequence = s.seq
		s.events = append(s.events, ev)
	}
	return nil
}

// Events returns all events written so far.
func (s *MemSink) Events() []*eventdb.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*eventdb.Event(nil), s.events...)
}

// emit buffers an event for the running operation. The buffer reaches the
// sink only if the operation commits.
func (v *Vault) emit(now uint64, name string, account *lrt.Address, token *lrt.Address, amount *big.Int, recipient *lrt.Address) {
	ev := &eventdb.Event{
		Time:      now,
		Name:      name,
		Account:   account,
		Token:     token,
		Recipient: recipient,
	}
	if amount != nil {
		ev.Amount = new(big.Int).Set(amount)
	}
	v.events = append(v.events, ev)
}

func (v *Vault) flushEvents() {
	if len(v.events) == 0 {
		return
	}
	events := v.events
	v.events = nil
	if err := v.sink.Write(events); err != nil {
		logger.Warn("failed to flush events", "count", len(events), "error", err)
	}
}

func ref(addr lrt.Address) *lrt.Address {
	cp := addr
	return &cp
}
