// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/state"
)

func TestCommitCostProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		number := rapid.Uint8Range(1, 255).Draw(rt, "number")
		cost := CommitCost(number)
		if number == 1 {
			require.Equal(rt, uint32(1), cost)
			return
		}
		require.Equal(rt, uint32(number)*uint32(number), cost)
	})
}

// Voting tokens never exceed the ceiling, and a commit either spends exactly
// its cost or changes nothing.
func TestVotingTokensProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		env := newEnvironment(rt)
		voter := env.newMember()

		proposals := rapid.IntRange(1, int(env.cfg.MaxProposals)).Draw(rt, "proposals")
		weights := rapid.SliceOfN(rapid.Uint8Range(1, 12), proposals, proposals).Draw(rt, "weights")

		for i, weight := range weights {
			proposalID := env.propose(voter, []byte{'p', byte(i)})
			before := env.tokens(voter)

			_, err := env.execute(addr(voter), env.commitTx(voter, proposalID, state.Yes, weight))
			after := env.tokens(voter)
			if err != nil {
				require.ErrorIs(rt, err, ErrNotEnoughVotingTokens)
				require.Equal(rt, before, after)
				require.Greater(rt, CommitCost(weight), uint32(before))
				continue
			}
			require.Equal(rt, uint32(before)-CommitCost(weight), uint32(after))
		}

		env.height += testDuration
		for i := range weights {
			proposalID := state.ProposalID([]byte{'p', byte(i)})
			require.NoError(rt, env.closeVote(voter, proposalID))
			has, err := env.state().HasCommit(addr(voter), proposalID)
			require.NoError(rt, err)
			if has {
				_, err := env.reveal(voter, proposalID, state.Yes)
				require.NoError(rt, err)
			}
		}
		env.height += env.cfg.RevealLength
		for i := range weights {
			_, err := env.closeReveal(voter, state.ProposalID([]byte{'p', byte(i)}))
			require.NoError(rt, err)
			require.LessOrEqual(rt, env.tokens(voter), config.MaxVotingTokens)
		}
		require.Equal(rt, config.MaxVotingTokens, env.tokens(voter))
	})
}
