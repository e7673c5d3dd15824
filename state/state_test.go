// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/lvldb"
	"github.com/tangle-network/lrt/state"
)

func newTestState(t *testing.T) (*state.State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db), db
}

func TestRawStorage(t *testing.T) {
	st, _ := newTestState(t)
	key := lrt.Blake2b([]byte("key"))

	// missing key reads as zero-length
	raw, err := st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Len(t, raw, 0)

	st.SetRawStorage(key, rlp.RawValue{0x01})
	raw, err = st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st, _ := newTestState(t)
	key := lrt.Blake2b([]byte("amount"))

	err := st.EncodeStorage(key, func() ([]byte, error) {
		return rlp.EncodeToBytes(uint64(42))
	})
	assert.NoError(t, err)

	var amount uint64
	err = st.DecodeStorage(key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &amount)
	})
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), amount)
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)
	key := lrt.Blake2b([]byte("key"))

	st.SetRawStorage(key, rlp.RawValue{0x01})

	cp := st.NewCheckpoint()
	st.SetRawStorage(key, rlp.RawValue{0x02})

	raw, err := st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x02}, raw)

	st.RevertTo(cp)

	raw, err = st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)
}

func TestNestedCheckpoints(t *testing.T) {
	st, _ := newTestState(t)
	key := lrt.Blake2b([]byte("key"))

	cp1 := st.NewCheckpoint()
	st.SetRawStorage(key, rlp.RawValue{0x01})

	cp2 := st.NewCheckpoint()
	st.SetRawStorage(key, rlp.RawValue{0x02})
	st.RevertTo(cp2)

	raw, err := st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)

	st.RevertTo(cp1)
	raw, err = st.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Len(t, raw, 0)
}

func TestCommit(t *testing.T) {
	st, db := newTestState(t)
	key := lrt.Blake2b([]byte("key"))

	st.SetRawStorage(key, rlp.RawValue{0x01})
	require.NoError(t, st.Commit())

	// committed value visible to a fresh state over the same store
	st2 := state.New(db)
	raw, err := st2.GetRawStorage(key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)

	// zero-length value erases the key
	st.SetRawStorage(key, nil)
	require.NoError(t, st.Commit())

	has, err := db.Has(key[:])
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestCommitRandomized(t *testing.T) {
	st, db := newTestState(t)
	f := fuzz.New().NilChance(0).NumElements(1, 64)

	want := make(map[lrt.Bytes32][]byte)
	for i := 0; i < 100; i++ {
		var key lrt.Bytes32
		var value []byte
		f.Fuzz(&key)
		f.Fuzz(&value)
		st.SetRawStorage(key, rlp.RawValue(value))
		want[key] = value
	}
	require.NoError(t, st.Commit())

	st2 := state.New(db)
	for key, value := range want {
		raw, err := st2.GetRawStorage(key)
		require.NoError(t, err)
		require.Equal(t, rlp.RawValue(value), raw)
	}
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	st, db := newTestState(t)
	committed := lrt.Blake2b([]byte("committed"))
	reverted := lrt.Blake2b([]byte("reverted"))

	st.SetRawStorage(committed, rlp.RawValue{0x01})

	cp := st.NewCheckpoint()
	st.SetRawStorage(reverted, rlp.RawValue{0x02})
	st.RevertTo(cp)

	require.NoError(t, st.Commit())

	has, err := db.Has(reverted[:])
	assert.NoError(t, err)
	assert.False(t, has)

	raw, err := db.Get(committed[:])
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01}, raw)
}
