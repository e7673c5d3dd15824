// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/test/datagen"
)

func TestStatusLifecycle(t *testing.T) {
	h := New()

	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.False(t, status.Ready)
	assert.Nil(t, status.LastOperation)
	assert.Nil(t, status.LastReward)

	h.Ready()
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.True(t, status.Ready)

	h.ReportOperation("deposit")
	status, err = h.Status()
	require.NoError(t, err)
	require.NotNil(t, status.LastOperation)
	assert.Equal(t, "deposit", status.LastOperation.Name)
	assert.False(t, status.LastOperation.Time.IsZero())

	token := datagen.RandAddress()
	h.ReportReward(token)
	status, err = h.Status()
	require.NoError(t, err)
	require.NotNil(t, status.LastReward)
	assert.Equal(t, token, status.LastReward.Token)
}

func TestStoreFault(t *testing.T) {
	h := New()
	h.Ready()

	h.ReportStoreFault()
	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.True(t, status.StoreFaulted)

	// a successful operation clears the fault
	h.ReportOperation("claim")
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.False(t, status.StoreFaulted)
}
