// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/utils/timer/mockable"
	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/mempool"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

type staticChain struct {
	lastAccepted *block.Block
}

func (c *staticChain) LastAcceptedBlock() *block.Block {
	return c.lastAccepted
}

type testEnv struct {
	clock   *mockable.Clock
	parent  *block.Block
	mempool *mempool.Mempool
	builder Builder
}

func newTestEnv(t *testing.T, maxTxs int, emptyBlocks bool) *testEnv {
	require := require.New(t)

	parent, err := block.New(ids.Empty, 5, time.Unix(1_000, 0), nil)
	require.NoError(err)
	pool, err := mempool.New(100, metric.NewRegistry())
	require.NoError(err)

	clock := &mockable.Clock{}
	clock.Set(time.Unix(2_000, 0))
	return &testEnv{
		clock:   clock,
		parent:  parent,
		mempool: pool,
		builder: New(log.NewNoOpLogger(), clock, &staticChain{lastAccepted: parent}, pool, maxTxs, emptyBlocks),
	}
}

func (env *testEnv) addTxs(t *testing.T, n int) []*txs.Tx {
	key, err := secp256k1.NewPrivateKey()
	require.NoError(t, err)

	var added []*txs.Tx
	for i := range n {
		tx, err := txs.NewSigned(&txs.JoinTx{BaseTx: txs.BaseTx{Nonce: uint64(i)}}, key)
		require.NoError(t, err)
		require.NoError(t, env.mempool.Add(tx))
		added = append(added, tx)
	}
	return added
}

func TestBuildBlock(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, 2, false)

	_, err := env.builder.BuildBlock(context.Background())
	require.ErrorIs(err, ErrNoPendingTxs)

	added := env.addTxs(t, 3)
	blk, err := env.builder.BuildBlock(context.Background())
	require.NoError(err)
	require.Equal(env.parent.ID(), blk.ParentID)
	require.Equal(uint64(6), blk.Height)
	require.Equal(time.Unix(2_000, 0), blk.Timestamp())
	require.Equal(added[:2], blk.Txs)

	// building does not consume the mempool
	require.Equal(3, env.mempool.Len())
}

func TestBuildBlockTimestampMonotonic(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, 10, false)
	env.clock.Set(time.Unix(10, 0))
	env.addTxs(t, 1)

	blk, err := env.builder.BuildBlock(context.Background())
	require.NoError(err)
	require.Equal(env.parent.Timestamp(), blk.Timestamp())
}

func TestBuildEmptyBlock(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, 10, true)

	blk, err := env.builder.BuildBlock(context.Background())
	require.NoError(err)
	require.Equal(env.parent.ID(), blk.ParentID)
	require.Equal(uint64(6), blk.Height)
	require.Empty(blk.Txs)
}

func TestWaitForEvent(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, 10, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := env.builder.WaitForEvent(ctx)
	require.ErrorIs(err, context.Canceled)

	env.addTxs(t, 1)
	msg, err := env.builder.WaitForEvent(context.Background())
	require.NoError(err)
	require.Equal(govchain.PendingTxs, msg.Type)
}
