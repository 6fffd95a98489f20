// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/govchain/utils/math"
)

func TestReserveUnreserve(t *testing.T) {
	require := require.New(t)

	l := New(memdb.New())
	addr := ids.GenerateTestShortID()
	require.NoError(l.Mint(addr, 1_000))

	ok, err := l.CanReserve(addr, 1_001)
	require.NoError(err)
	require.False(ok)

	ok, err = l.CanReserve(addr, 600)
	require.NoError(err)
	require.True(ok)

	require.NoError(l.Reserve(addr, 600))
	b, err := l.Balance(addr)
	require.NoError(err)
	require.Equal(Balance{Free: 400, Reserved: 600}, b)

	err = l.Reserve(addr, 401)
	require.ErrorIs(err, ErrInsufficientBalance)

	// unreserving more than is reserved only moves what is there
	moved, err := l.Unreserve(addr, 10_000)
	require.NoError(err)
	require.Equal(uint64(600), moved)

	b, err = l.Balance(addr)
	require.NoError(err)
	require.Equal(Balance{Free: 1_000}, b)
}

func TestRepatriateReserved(t *testing.T) {
	require := require.New(t)

	l := New(memdb.New())
	loser := ids.GenerateTestShortID()
	pot := ids.GenerateTestShortID()
	require.NoError(l.Mint(loser, 500))
	require.NoError(l.Reserve(loser, 300))

	moved, err := l.RepatriateReserved(loser, pot, 30)
	require.NoError(err)
	require.Equal(uint64(30), moved)

	reserved, err := l.ReservedBalance(loser)
	require.NoError(err)
	require.Equal(uint64(270), reserved)

	reserved, err = l.ReservedBalance(pot)
	require.NoError(err)
	require.Equal(uint64(30), reserved)

	free, err := l.FreeBalance(pot)
	require.NoError(err)
	require.Zero(free)

	moved, err = l.RepatriateReserved(pot, loser, 1_000)
	require.NoError(err)
	require.Equal(uint64(30), moved)

	moved, err = l.RepatriateReserved(loser, loser, 1_000)
	require.NoError(err)
	require.Equal(uint64(300), moved)
}

func TestMintOverflow(t *testing.T) {
	l := New(memdb.New())
	addr := ids.GenerateTestShortID()
	require.NoError(t, l.Mint(addr, math.MaxUint64))
	require.ErrorIs(t, l.Mint(addr, 1), safemath.ErrOverflow)
}
