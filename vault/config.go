// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/vault/ledger"
)

// DefaultNamespace is the state namespace used when none is configured.
var DefaultNamespace = lrt.BytesToAddress(lrt.Blake2b([]byte("reward-vault")).Bytes())

// Config carries the engine parameters. The zero value is usable: the
// namespace and policy fall back to defaults, the clock to the system
// clock, the sink to discarding events.
type Config struct {
	// Namespace is the state namespace all engine slots live under.
	Namespace lrt.Address
	// BaseAsset is the deposit asset. It cannot double as a reward token.
	BaseAsset lrt.Address
	// ZeroSupplyPolicy selects the treatment of rewards that arrive while
	// no shares are outstanding.
	ZeroSupplyPolicy ledger.ZeroSupplyPolicy
	// Clock supplies the engine time. nil means SystemClock.
	Clock Clock
	// Sink receives the events of committed operations. nil discards them.
	Sink EventSink
}

// DefaultConfig returns the default engine parameters.
func DefaultConfig() Config {
	return Config{
		Namespace:        DefaultNamespace,
		ZeroSupplyPolicy: ledger.PolicyForfeit,
	}
}

// LoadConfig reads engine parameters from a YAML file. Absent fields keep
// their defaults; Clock and Sink are wiring concerns and not configurable
// from file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}

	var raw struct {
		Namespace        string `yaml:"namespace"`
		BaseAsset        string `yaml:"baseAsset"`
		ZeroSupplyPolicy string `yaml:"zeroSupplyPolicy"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config file")
	}

	if raw.Namespace != "" {
		addr, err := lrt.ParseAddress(raw.Namespace)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to parse namespace")
		}
		cfg.Namespace = *addr
	}
	if raw.BaseAsset != "" {
		addr, err := lrt.ParseAddress(raw.BaseAsset)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to parse base asset")
		}
		cfg.BaseAsset = *addr
	}
	if raw.ZeroSupplyPolicy != "" {
		policy, err := parsePolicy(raw.ZeroSupplyPolicy)
		if err != nil {
			return cfg, err
		}
		cfg.ZeroSupplyPolicy = policy
	}
	return cfg, nil
}

func parsePolicy(s string) (ledger.ZeroSupplyPolicy, error) {
	switch s {
	case "forfeit":
		return ledger.PolicyForfeit, nil
	case "defer":
		return ledger.PolicyDefer, nil
	}
	return 0, errors.Errorf("unknown zero-supply policy %q", s)
}
