// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/txs"
	"github.com/luxfi/govchain/vms/govvm/txs/executor"
)

func TestMarkAccepted(t *testing.T) {
	require := require.New(t)

	m, err := New("govvm", metric.NewRegistry())
	require.NoError(err)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	var accepted []*txs.Tx
	for _, unsigned := range []txs.UnsignedTx{
		&txs.JoinTx{},
		&txs.LeaveTx{},
		&txs.CreateProposalTx{Title: []byte("t"), Duration: 1},
		&txs.CommitVoteTx{Signature: []byte{1}, Number: 1},
		&txs.RevealVoteTx{},
		&txs.CloseVoteTx{},
		&txs.CloseRevealTx{},
		&txs.RegisterIdentityTx{Name: "n"},
	} {
		tx, err := txs.NewSigned(unsigned, key)
		require.NoError(err)
		accepted = append(accepted, tx)
	}

	blk, err := block.New(ids.Empty, 1, time.Unix(0, 0), accepted)
	require.NoError(err)
	require.NoError(m.MarkAccepted(Block{
		Block:    blk,
		Accepted: accepted,
		Failed:   1,
		Events: []executor.Event{
			&executor.Slashed{Amount: 10},
			&executor.Rewarded{Amount: 10},
			&executor.Approved{},
		},
	}))

	m.IncTxsRejected()
	m.SetActiveProposals(3)
	m.SetMembers(5)
}
