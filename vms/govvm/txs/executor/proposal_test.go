// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

func TestCreateProposal(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	proposer := env.newMember()
	env.newMember()
	env.height = 7

	result, err := env.execute(addr(proposer), &txs.CreateProposalTx{
		Title:    testTitle,
		Duration: testDuration,
	})
	require.NoError(err)

	proposalID := state.ProposalID(testTitle)
	require.Equal([]Event{&Proposed{
		Account:   addr(proposer),
		Proposal:  proposalID,
		Threshold: 2,
	}}, result.Events)

	p := env.proposal(proposalID)
	require.Equal(testTitle, p.Title)
	require.Equal(addr(proposer), p.Proposer)
	require.Equal(7+testDuration, p.PollEnd)
	require.False(p.RevealStarted)
	require.Zero(p.Ayes)
	require.Zero(p.Nays)

	active, err := env.state().ActiveProposals()
	require.NoError(err)
	require.Equal([]ids.ID{proposalID}, active)
}

func TestCreateProposalErrors(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	member := env.newMember()
	outsider := env.newAccount()

	_, err := env.execute(addr(member), &txs.CreateProposalTx{
		Title:    testTitle,
		Duration: env.cfg.MinLength - 1,
	})
	require.ErrorIs(err, ErrWrongProposalLength)

	_, err = env.execute(addr(outsider), &txs.CreateProposalTx{
		Title:    testTitle,
		Duration: testDuration,
	})
	require.ErrorIs(err, ErrNotMember)

	env.propose(member, testTitle)
	_, err = env.execute(addr(member), &txs.CreateProposalTx{
		Title:    testTitle,
		Duration: testDuration,
	})
	require.ErrorIs(err, ErrDuplicateProposal)

	env.cfg.MaxTitleLen = 4
	_, err = env.execute(addr(member), &txs.CreateProposalTx{
		Title:    []byte("too long"),
		Duration: testDuration,
	})
	require.ErrorIs(err, ErrInvalidArgument)
}

func TestTooManyProposals(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)
	env.cfg.MaxProposals = 3

	member := env.newMember()
	for i := range 3 {
		env.propose(member, []byte(fmt.Sprintf("proposal %d", i)))
	}
	_, err := env.execute(addr(member), &txs.CreateProposalTx{
		Title:    []byte("one too many"),
		Duration: testDuration,
	})
	require.ErrorIs(err, ErrTooManyProposals)

	// settling a proposal frees its slot
	first := state.ProposalID([]byte("proposal 0"))
	env.height += testDuration
	require.NoError(env.closeVote(member, first))
	env.height += env.cfg.RevealLength
	_, err = env.closeReveal(member, first)
	require.NoError(err)

	env.propose(member, []byte("one too many"))
}

func TestCloseVote(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	member := env.newMember()
	outsider := env.newAccount()
	proposalID := env.propose(member, testTitle)
	pollEnd := env.proposal(proposalID).PollEnd

	require.ErrorIs(env.closeVote(outsider, proposalID), ErrNotMember)
	require.ErrorIs(env.closeVote(member, ids.GenerateTestID()), ErrProposalMissing)

	env.height = pollEnd - 1
	require.ErrorIs(env.closeVote(member, proposalID), ErrTooEarly)

	// the commit window closes at exactly poll end
	env.height = pollEnd
	result, err := env.execute(addr(member), &txs.CloseVoteTx{Proposal: proposalID})
	require.NoError(err)
	revealEnd := pollEnd + env.cfg.RevealLength
	require.Equal([]Event{&VoteClosed{Proposal: proposalID, RevealEnd: revealEnd}}, result.Events)

	p := env.proposal(proposalID)
	require.True(p.RevealStarted)
	require.Equal(revealEnd, p.RevealEnd)

	env.height += 1_000
	require.ErrorIs(env.closeVote(member, proposalID), ErrVoteAlreadyEnded)
	require.Equal(revealEnd, env.proposal(proposalID).RevealEnd)
}

func TestCloseRevealErrors(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	member := env.newMember()
	outsider := env.newAccount()
	proposalID := env.propose(member, testTitle)

	_, err := env.closeReveal(outsider, proposalID)
	require.ErrorIs(err, ErrNotMember)

	_, err = env.closeReveal(member, ids.GenerateTestID())
	require.ErrorIs(err, ErrProposalMissing)

	_, err = env.closeReveal(member, proposalID)
	require.ErrorIs(err, ErrRevealNotStarted)

	env.height += testDuration
	require.NoError(env.closeVote(member, proposalID))
	revealEnd := env.proposal(proposalID).RevealEnd

	env.height = revealEnd - 1
	_, err = env.closeReveal(member, proposalID)
	require.ErrorIs(err, ErrTooEarly)

	env.height = revealEnd
	_, err = env.closeReveal(member, proposalID)
	require.NoError(err)

	_, err = env.closeReveal(member, proposalID)
	require.ErrorIs(err, ErrAlreadySettled)
}
