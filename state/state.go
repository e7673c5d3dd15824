// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tangle-network/lrt/kv"
	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the engine state. Values are raw RLP addressed by 32-byte
// storage keys. Mutations stack up in revision layers until Commit flushes
// them to the backing store in one batch.
//
// State is not safe for concurrent use.
type State struct {
	store kv.Store
	cache map[lrt.Bytes32]rlp.RawValue // read-through cache of committed values
	sm    *stackedmap.StackedMap[lrt.Bytes32, rlp.RawValue]
}

// New creates a state object backed by the given store.
func New(store kv.Store) *State {
	state := &State{
		store: store,
		cache: make(map[lrt.Bytes32]rlp.RawValue),
	}
	state.sm = stackedmap.New(func(key lrt.Bytes32) (rlp.RawValue, bool, error) {
		return state.cacheGetter(key)
	})
	// base layer collecting uncommitted writes
	state.sm.Push()
	return state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key lrt.Bytes32) (rlp.RawValue, bool, error) {
	if v, ok := s.cache[key]; ok {
		return v, true, nil
	}
	data, err := s.store.Get(key[:])
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		// missing keys read as zero-length values
		data = nil
	}
	raw := rlp.RawValue(data)
	s.cache[key] = raw
	return raw, true, nil
}

// GetRawStorage gets the raw storage value for the given key.
// Missing keys yield a zero-length value.
func (s *State) GetRawStorage(key lrt.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(key)
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage sets the raw storage value for the given key.
// A zero-length value erases the key on commit.
func (s *State) SetRawStorage(key lrt.Bytes32, raw rlp.RawValue) {
	s.sm.Put(key, raw)
}

// EncodeStorage sets the storage value encoded by the given enc method.
func (s *State) EncodeStorage(key lrt.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(key, raw)
	return nil
}

// DecodeStorage gets the storage value and decodes it with the given dec
// method. Missing keys pass a zero-length value to dec.
func (s *State) DecodeStorage(key lrt.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the revision to revert to.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts state to the checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit atomically flushes all accumulated changes to the backing store
// and collapses the revision layers.
func (s *State) Commit() error {
	dirty := make(map[lrt.Bytes32]rlp.RawValue)
	s.sm.Journal(func(key lrt.Bytes32, value rlp.RawValue) bool {
		// journal runs in occurrence order, so later writes win
		dirty[key] = value
		return true
	})

	bulk := s.store.Bulk()
	for key, val := range dirty {
		if len(val) == 0 {
			if err := bulk.Delete(key[:]); err != nil {
				return &Error{err}
			}
		} else {
			if err := bulk.Put(key[:], val); err != nil {
				return &Error{err}
			}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for key, val := range dirty {
		s.cache[key] = val
	}
	s.sm.PopTo(0)
	s.sm.Push()
	return nil
}
