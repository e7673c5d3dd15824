// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lrt

import "math/big"

// Constants of the pooled-deposit accounting engine.
const (
	// IndexDecimals decimal places of the reward index fixed-point scale.
	IndexDecimals = 18
)

var (
	// Precision the fixed-point scale of reward indexes. Index deltas carry
	// reward-per-share values multiplied by this factor, so that flooring at
	// accrual time only ever discards sub-unit dust.
	Precision = big.NewInt(1e18)
)
