// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tangle-network/lrt/lrt"
)

// Key is the constraint for mapping keys.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction, similar to a mapping in
// Solidity. Entry positions are derived from the key and the base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos lrt.Bytes32
}

// NewMapping creates a mapping rooted at the given base position.
func NewMapping[K Key, V any](context *Context, pos lrt.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get loads the value stored for the key. Missing entries decode to the
// zero value; pointer-typed values are always allocated.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := lrt.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(position, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores the value for the key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := lrt.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
