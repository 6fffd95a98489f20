// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"errors"

	"github.com/luxfi/log"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/utils/timer/mockable"
	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/mempool"
)

var (
	_ Builder = (*builder)(nil)

	ErrNoPendingTxs = errors.New("no pending txs")
)

type Builder interface {
	// WaitForEvent blocks until there are txs to build a block from.
	WaitForEvent(context.Context) (govchain.Message, error)

	// BuildBlock packs the oldest pending txs into a child of the last
	// accepted block. The txs stay in the mempool until the block is
	// processed. With an empty mempool it builds an empty block, unless
	// empty blocks are disabled.
	BuildBlock(context.Context) (*block.Block, error)
}

// Chain is the view of the VM the builder builds on.
type Chain interface {
	LastAcceptedBlock() *block.Block
}

type builder struct {
	log     log.Logger
	clock   *mockable.Clock
	chain   Chain
	mempool *mempool.Mempool
	maxTxs  int
	// emptyBlocks keeps the height advancing while no txs are pending
	emptyBlocks bool
}

func New(
	logger log.Logger,
	clock *mockable.Clock,
	chain Chain,
	mempool *mempool.Mempool,
	maxTxs int,
	emptyBlocks bool,
) Builder {
	return &builder{
		log:         logger,
		clock:       clock,
		chain:       chain,
		mempool:     mempool,
		maxTxs:      maxTxs,
		emptyBlocks: emptyBlocks,
	}
}

func (b *builder) WaitForEvent(ctx context.Context) (govchain.Message, error) {
	return b.mempool.WaitForEvent(ctx)
}

func (b *builder) BuildBlock(ctx context.Context) (*block.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pending := b.mempool.Peek(b.maxTxs)
	size := 0
	for i, tx := range pending {
		size += tx.Size()
		if size > block.MaxTxsSize {
			pending = pending[:i]
			break
		}
	}
	if len(pending) == 0 && !b.emptyBlocks {
		return nil, ErrNoPendingTxs
	}

	parent := b.chain.LastAcceptedBlock()
	timestamp := b.clock.Time()
	if parentTime := parent.Timestamp(); timestamp.Before(parentTime) {
		timestamp = parentTime
	}

	blk, err := block.New(parent.ID(), parent.Height+1, timestamp, pending)
	if err != nil {
		return nil, err
	}
	b.log.Debug("built block",
		log.Stringer("blkID", blk.ID()),
		log.Uint64("height", blk.Height),
		log.Int("numTxs", len(pending)),
	)
	return blk, nil
}
