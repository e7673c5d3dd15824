// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tangle-network/lrt/test/datagen"
	"github.com/tangle-network/lrt/vault/ledger"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "vault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, DefaultNamespace, cfg.Namespace)
	require.True(t, cfg.BaseAsset.IsZero())
	require.Equal(t, ledger.PolicyForfeit, cfg.ZeroSupplyPolicy)
}

func TestLoadConfig(t *testing.T) {
	namespace := datagen.RandAddress()
	baseAsset := datagen.RandAddress()

	path := writeConfig(t, `
namespace: `+namespace.String()+`
baseAsset: `+baseAsset.String()+`
zeroSupplyPolicy: defer
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, namespace, cfg.Namespace)
	require.Equal(t, baseAsset, cfg.BaseAsset)
	require.Equal(t, ledger.PolicyDefer, cfg.ZeroSupplyPolicy)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, "zeroSupplyPolicy: forfeit\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultNamespace, cfg.Namespace)
	require.True(t, cfg.BaseAsset.IsZero())
	require.Equal(t, ledger.PolicyForfeit, cfg.ZeroSupplyPolicy)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "zeroSupplyPolicy: socialize\n"))
	require.ErrorContains(t, err, "zero-supply policy")

	_, err = LoadConfig(writeConfig(t, "baseAsset: nonsense\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "\tnot yaml"))
	require.Error(t, err)
}
