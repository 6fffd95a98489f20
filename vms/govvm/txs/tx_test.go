// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/state"
)

func TestSignParseRecover(t *testing.T) {
	require := require.New(t)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	chainID := ids.GenerateTestID()

	tx, err := NewSigned(&CreateProposalTx{
		BaseTx:   BaseTx{ChainID: chainID, Nonce: 7},
		Title:    []byte("raise the entry deposit"),
		Duration: 100,
	}, key)
	require.NoError(err)
	require.NotEqual(ids.Empty, tx.ID())
	require.NoError(tx.SyntacticVerify(chainID))

	parsed, err := Parse(tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.UnsignedBytes(), parsed.UnsignedBytes())
	require.IsType(&CreateProposalTx{}, parsed.Unsigned)

	recoverer := NewSenderRecoverer(16)
	sender, err := recoverer.Sender(parsed)
	require.NoError(err)
	require.Equal(key.PublicKey().Address(), sender)

	// second lookup is served from the cache
	sender, err = recoverer.Sender(parsed)
	require.NoError(err)
	require.Equal(key.PublicKey().Address(), sender)
}

func TestNonceChangesID(t *testing.T) {
	require := require.New(t)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	chainID := ids.GenerateTestID()

	tx1, err := NewSigned(&JoinTx{BaseTx: BaseTx{ChainID: chainID, Nonce: 1}}, key)
	require.NoError(err)
	tx2, err := NewSigned(&JoinTx{BaseTx: BaseTx{ChainID: chainID, Nonce: 2}}, key)
	require.NoError(err)
	require.NotEqual(tx1.ID(), tx2.ID())
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
}

func TestSyntacticVerify(t *testing.T) {
	chainID := ids.GenerateTestID()
	proposal := ids.GenerateTestID()
	base := BaseTx{ChainID: chainID}

	tests := []struct {
		name    string
		tx      UnsignedTx
		wantErr error
	}{
		{
			name: "join",
			tx:   &JoinTx{BaseTx: base},
		},
		{
			name:    "wrong chain",
			tx:      &LeaveTx{BaseTx: BaseTx{ChainID: ids.GenerateTestID()}},
			wantErr: ErrWrongChainID,
		},
		{
			name:    "empty title",
			tx:      &CreateProposalTx{BaseTx: base, Duration: 100},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "commit without signature",
			tx:      &CommitVoteTx{BaseTx: base, Proposal: proposal, Number: 1},
			wantErr: ErrEmptySignature,
		},
		{
			name:    "commit without proposal",
			tx:      &CommitVoteTx{BaseTx: base, Signature: []byte{1}, Number: 1},
			wantErr: ErrEmptyProposal,
		},
		{
			name:    "reveal bad vote",
			tx:      &RevealVoteTx{BaseTx: base, Proposal: proposal, Vote: 7},
			wantErr: ErrInvalidVote,
		},
		{
			name: "reveal yes",
			tx:   &RevealVoteTx{BaseTx: base, Proposal: proposal, Vote: state.Yes},
		},
		{
			name:    "close vote without proposal",
			tx:      &CloseVoteTx{BaseTx: base},
			wantErr: ErrEmptyProposal,
		},
		{
			name:    "close reveal without proposal",
			tx:      &CloseRevealTx{BaseTx: base},
			wantErr: ErrEmptyProposal,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, test.tx.SyntacticVerify(chainID), test.wantErr)
		})
	}
}

func TestVoteSignature(t *testing.T) {
	require := require.New(t)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	signer := key.PublicKey().Address()
	const salt = 10

	require.Equal([]byte{0x01, 0x00, 0x00, 0x00, 0x0a}, VotePayload(state.Yes, salt))

	sig, err := SignVote(key, state.Yes, salt)
	require.NoError(err)
	require.True(VerifyVote(signer, state.Yes, salt, sig))
	require.False(VerifyVote(signer, state.No, salt, sig))
	require.False(VerifyVote(signer, state.Yes, salt+1, sig))
	require.False(VerifyVote(ids.GenerateTestShortID(), state.Yes, salt, sig))
	require.False(VerifyVote(signer, state.Yes, salt, []byte{1, 2, 3}))
}
