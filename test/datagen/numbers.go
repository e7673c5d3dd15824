// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"math/big"
	mathrand "math/rand"
)

func RandInt() int {
	return mathrand.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.Intn(n) //#nosec G404
}

func RandUint64() uint64 {
	return mathrand.Uint64() //#nosec G404
}

// RandAmount returns a random positive amount up to about 1e6 whole units
// of an 18-decimals asset.
func RandAmount() *big.Int {
	units := mathrand.Int63n(1_000_000) + 1 //#nosec G404
	return new(big.Int).Mul(big.NewInt(units), big.NewInt(1e18))
}
