// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tangle-network/lrt/lrt"
)

// Array is an append-only array storage abstraction, similar to a dynamic
// array in Solidity. The length lives at the base position, elements at
// positions derived from the base position and the element index.
type Array[V any] struct {
	context *Context
	basePos lrt.Bytes32
}

// NewArray creates an array rooted at the given base position.
func NewArray[V any](context *Context, pos lrt.Bytes32) *Array[V] {
	return &Array[V]{context: context, basePos: pos}
}

// Len returns the number of elements.
func (a *Array[V]) Len() (length uint64, err error) {
	err = a.context.state.DecodeStorage(a.basePos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &length)
	})
	return
}

// Get loads the element at index i. Out-of-range reads decode to the zero
// value; pointer-typed values are always allocated.
func (a *Array[V]) Get(i uint64) (value V, err error) {
	err = a.context.state.DecodeStorage(a.elemPos(i), func(raw []byte) error {
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

// Append stores the value as the new last element.
func (a *Array[V]) Append(value V) error {
	length, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.context.state.EncodeStorage(a.elemPos(length), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	}); err != nil {
		return err
	}
	return a.setLen(length + 1)
}

// ForEach visits all elements in index order. The traversal aborts when cb
// returns false.
func (a *Array[V]) ForEach(cb func(i uint64, value V) bool) error {
	length, err := a.Len()
	if err != nil {
		return err
	}
	for i := uint64(0); i < length; i++ {
		value, err := a.Get(i)
		if err != nil {
			return err
		}
		if !cb(i, value) {
			return nil
		}
	}
	return nil
}

func (a *Array[V]) setLen(length uint64) error {
	return a.context.state.EncodeStorage(a.basePos, func() ([]byte, error) {
		return rlp.EncodeToBytes(length)
	})
}

func (a *Array[V]) elemPos(i uint64) lrt.Bytes32 {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	return lrt.Blake2b(a.basePos.Bytes(), idx[:])
}
