// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"slices"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/math"
	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/state"
)

// SlashDivisor takes 10% of a loser's reserved collateral.
const SlashDivisor = 10

// settle refunds voting tokens, slashes the losing side into the pot and
// splits the pot among the winners. Rounding dust stays in the pot.
func (e *txExecutor) settle(proposalID ids.ID, p *state.Proposal) error {
	for _, vote := range p.Votes {
		if _, err := e.refundTokens(vote.Voter, vote.Weight); err != nil {
			return err
		}
	}

	losers, winners := splitOutcome(p)

	var total uint64
	for _, loser := range losers {
		slashed, err := e.slash(loser, proposalID)
		if err != nil {
			return err
		}
		total, err = math.Add(total, slashed)
		if err != nil {
			return err
		}
	}

	if total > 0 && len(winners) > 0 {
		share := total / uint64(len(winners))
		pot := e.Pot()
		for _, winner := range winners {
			paid, err := e.Currency.RepatriateReserved(pot, winner, share)
			if err != nil {
				return err
			}
			e.emit(&Rewarded{
				Account:  winner,
				Proposal: proposalID,
				Amount:   paid,
			})
		}
	}

	p.Payout = total
	p.Settled = true
	if err := e.State.PutProposal(proposalID, p); err != nil {
		return err
	}
	if err := e.deactivate(proposalID); err != nil {
		return err
	}

	e.emit(&Closed{Proposal: proposalID, Yes: p.Ayes, No: p.Nays})
	if p.Ayes > p.Nays {
		e.emit(&Approved{Proposal: proposalID})
	} else {
		e.emit(&Disapproved{Proposal: proposalID})
	}
	e.emit(&Executed{Proposal: proposalID, Payout: total})
	return nil
}

// splitOutcome returns the accounts to slash and the accounts to reward. On a
// tie every voter loses and the proposer alone wins.
func splitOutcome(p *state.Proposal) (losers, winners []ids.ShortID) {
	if p.Ayes == p.Nays {
		for _, vote := range p.Votes {
			losers = append(losers, vote.Voter)
		}
		return losers, []ids.ShortID{p.Proposer}
	}

	winning := state.No
	if p.Ayes > p.Nays {
		winning = state.Yes
	}
	for _, vote := range p.Votes {
		if vote.Choice == winning {
			winners = append(winners, vote.Voter)
		} else {
			losers = append(losers, vote.Voter)
		}
	}
	return losers, winners
}

// slash moves a tenth of addr's reserved collateral into the pot, where it
// stays reserved.
func (e *txExecutor) slash(addr ids.ShortID, proposalID ids.ID) (uint64, error) {
	reserved, err := e.Currency.ReservedBalance(addr)
	if err != nil {
		return 0, err
	}
	slashed, err := e.Currency.RepatriateReserved(addr, e.Pot(), reserved/SlashDivisor)
	if err != nil {
		return 0, err
	}
	e.emit(&Slashed{
		Account:  addr,
		Proposal: proposalID,
		Amount:   slashed,
	})
	return slashed, nil
}

// refundTokens returns weight^2 voting tokens to addr, never exceeding the
// ceiling. Accounts that left the committee get nothing.
func (e *txExecutor) refundTokens(addr ids.ShortID, weight uint8) (uint8, error) {
	member, err := e.State.GetMember(addr)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	refund := uint8(min(CommitCost(weight), uint32(config.MaxVotingTokens)))
	before := member.VotingTokens
	member.VotingTokens = math.SaturatingAdd(before, refund, config.MaxVotingTokens)
	return member.VotingTokens - before, e.State.PutMember(addr, member)
}

func (e *txExecutor) deactivate(proposalID ids.ID) error {
	active, err := e.State.ActiveProposals()
	if err != nil {
		return err
	}
	i := slices.Index(active, proposalID)
	if i < 0 {
		return nil
	}
	return e.State.PutActiveProposals(slices.Delete(active, i, i+1))
}
