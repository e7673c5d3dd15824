// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package checkpoint

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/tangle-network/lrt/lrt"
	"github.com/tangle-network/lrt/slots"
)

const slotCheckpoints = "reward-checkpoints"

// Book manages the checkpoints of all holders, keyed by holder and token.
type Book struct {
	checkpoints *slots.Mapping[lrt.Bytes32, *Checkpoint]
}

// New creates a new checkpoint book.
func New(sctx *slots.Context) *Book {
	return &Book{
		checkpoints: slots.NewMapping[lrt.Bytes32, *Checkpoint](sctx, sctx.Slot(slotCheckpoints)),
	}
}

// Get returns the checkpoint of the holder for the token. Holders that were
// never snapshotted yield a zeroed checkpoint.
func (b *Book) Get(holder, token lrt.Address) (*Checkpoint, error) {
	cp, err := b.checkpoints.Get(key(holder, token))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get checkpoint")
	}
	cp.normalize()
	return cp, nil
}

// Snapshot overwrites the checkpoint of the holder for the token.
func (b *Book) Snapshot(holder, token lrt.Address, index *big.Int, now uint64, shares *big.Int, cursor uint64, pending *big.Int) error {
	cp := &Checkpoint{
		Index:         index,
		Time:          now,
		Shares:        shares,
		HistoryCursor: cursor,
		Pending:       pending,
	}
	cp.normalize()
	if err := b.checkpoints.Set(key(holder, token), cp); err != nil {
		return errors.Wrap(err, "failed to set checkpoint")
	}
	return nil
}

// Entitlement computes what the holder may claim of the token at the given
// current index: the pending carry-over plus the accrual of the snapshotted
// shares over the index growth since the snapshot, rounded up.
func (b *Book) Entitlement(holder, token lrt.Address, currentIndex *big.Int) (*big.Int, error) {
	cp, err := b.Get(holder, token)
	if err != nil {
		return nil, err
	}
	return cp.Entitlement(currentIndex), nil
}

// Entitlement computes the claimable amount of the checkpoint at the given
// current index.
func (c *Checkpoint) Entitlement(currentIndex *big.Int) *big.Int {
	c.normalize()
	delta := new(big.Int).Sub(currentIndex, c.Index)
	if delta.Sign() <= 0 || c.Shares.Sign() <= 0 {
		return new(big.Int).Set(c.Pending)
	}
	accrued := ceilDiv(delta.Mul(delta, c.Shares), lrt.Precision)
	return accrued.Add(accrued, c.Pending)
}

func key(holder, token lrt.Address) lrt.Bytes32 {
	return lrt.Blake2b(holder.Bytes(), token.Bytes())
}

func ceilDiv(num, den *big.Int) *big.Int {
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() > 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return quo
}
