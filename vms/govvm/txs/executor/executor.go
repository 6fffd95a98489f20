// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor applies committee transactions to state.
package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/math"
	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

var _ txs.Visitor = (*txExecutor)(nil)

// Result of a successful call.
type Result struct {
	Events []Event
}

// Execute runs tx on behalf of caller at block height. On error the backend
// may hold partial writes and the caller must discard them.
func Execute(backend *Backend, height uint64, caller ids.ShortID, tx txs.UnsignedTx) (*Result, error) {
	e := &txExecutor{
		Backend: backend,
		height:  height,
		caller:  caller,
	}
	if err := tx.Visit(e); err != nil {
		return nil, err
	}
	return &Result{Events: e.events}, nil
}

type txExecutor struct {
	*Backend
	height uint64
	caller ids.ShortID
	events []Event
}

func (e *txExecutor) emit(event Event) {
	e.events = append(e.events, event)
}

func (e *txExecutor) RegisterIdentityTx(tx *txs.RegisterIdentityTx) error {
	if e.Names == nil {
		return fmt.Errorf("%w: identity registration disabled", ErrInvalidArgument)
	}
	if err := identity.VerifyName(tx.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := e.Names.Set(e.caller, tx.Name); err != nil {
		return err
	}
	e.emit(&IdentityRegistered{Account: e.caller, Name: tx.Name})
	return nil
}

func (e *txExecutor) JoinTx(*txs.JoinTx) error {
	isMember, err := e.State.HasMember(e.caller)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyMember
	}
	if err := e.requireIdentity(); err != nil {
		return err
	}

	deposit := e.Config.EntryDeposit
	canReserve, err := e.Currency.CanReserve(e.caller, deposit)
	if err != nil {
		return err
	}
	if !canReserve {
		return ErrNotEnoughFunds
	}
	if err := e.Currency.Reserve(e.caller, deposit); err != nil {
		return err
	}
	if err := e.State.PutMember(e.caller, &state.Member{VotingTokens: config.MaxVotingTokens}); err != nil {
		return err
	}
	e.emit(&Joined{Account: e.caller})
	return nil
}

func (e *txExecutor) LeaveTx(*txs.LeaveTx) error {
	if err := e.requireIdentity(); err != nil {
		return err
	}
	if err := e.requireMember(); err != nil {
		return err
	}
	inMotion, err := e.State.HasCommits(e.caller)
	if err != nil {
		return err
	}
	if inMotion {
		return ErrInMotion
	}

	reserved, err := e.Currency.ReservedBalance(e.caller)
	if err != nil {
		return err
	}
	cashout, err := e.Currency.Unreserve(e.caller, reserved)
	if err != nil {
		return err
	}
	if err := e.State.DeleteMember(e.caller); err != nil {
		return err
	}
	e.emit(&Left{Account: e.caller, Cashout: cashout})
	return nil
}

func (e *txExecutor) CreateProposalTx(tx *txs.CreateProposalTx) error {
	if tx.Duration < e.Config.MinLength {
		return fmt.Errorf("%w: %d < %d", ErrWrongProposalLength, tx.Duration, e.Config.MinLength)
	}
	if len(tx.Title) > e.Config.MaxTitleLen {
		return fmt.Errorf("%w: title is %d bytes, limit is %d", ErrInvalidArgument, len(tx.Title), e.Config.MaxTitleLen)
	}
	if err := e.requireMember(); err != nil {
		return err
	}

	active, err := e.State.ActiveProposals()
	if err != nil {
		return err
	}
	if uint32(len(active)) >= e.Config.MaxProposals {
		return ErrTooManyProposals
	}

	proposalID := state.ProposalID(tx.Title)
	exists, err := e.State.HasProposal(proposalID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProposal, proposalID)
	}

	pollEnd, err := math.Add(e.height, tx.Duration)
	if err != nil {
		return fmt.Errorf("%w: duration overflows: %w", ErrInvalidArgument, err)
	}
	if err := e.State.PutActiveProposals(append(active, proposalID)); err != nil {
		return err
	}
	err = e.State.PutProposal(proposalID, &state.Proposal{
		Title:    tx.Title,
		Proposer: e.caller,
		PollEnd:  pollEnd,
	})
	if err != nil {
		return err
	}

	threshold, err := e.State.MemberCount()
	if err != nil {
		return err
	}
	e.emit(&Proposed{
		Account:   e.caller,
		Proposal:  proposalID,
		Threshold: threshold,
	})
	return nil
}

func (e *txExecutor) CommitVoteTx(tx *txs.CommitVoteTx) error {
	if tx.Number == 0 {
		return fmt.Errorf("%w: vote weight must be positive", ErrInvalidArgument)
	}
	member, err := e.getMember()
	if err != nil {
		return err
	}
	committed, err := e.State.HasCommit(e.caller, tx.Proposal)
	if err != nil {
		return err
	}
	if committed {
		return ErrDuplicateVote
	}
	proposal, err := e.getProposal(tx.Proposal)
	if err != nil {
		return err
	}
	if proposal.HasRevealed(e.caller) {
		return ErrDuplicateVote
	}
	if e.height >= proposal.PollEnd {
		return ErrVoteEnded
	}

	cost := CommitCost(tx.Number)
	if cost > uint32(member.VotingTokens) {
		return fmt.Errorf("%w: weight %d costs %d, have %d", ErrNotEnoughVotingTokens, tx.Number, cost, member.VotingTokens)
	}
	member.VotingTokens -= uint8(cost)
	if err := e.State.PutMember(e.caller, member); err != nil {
		return err
	}

	err = e.State.PutCommit(e.caller, tx.Proposal, &state.Commit{
		Signature: tx.Signature,
		Salt:      tx.Salt,
		Number:    tx.Number,
	})
	if err != nil {
		return err
	}
	e.emit(&Committed{
		Account:  e.caller,
		Proposal: tx.Proposal,
		Number:   tx.Number,
	})
	return nil
}

func (e *txExecutor) RevealVoteTx(tx *txs.RevealVoteTx) error {
	if err := e.requireMember(); err != nil {
		return err
	}
	proposal, err := e.getProposal(tx.Proposal)
	if err != nil {
		return err
	}
	if proposal.HasRevealed(e.caller) {
		return ErrDuplicateVote
	}
	commit, err := e.State.GetCommit(e.caller, tx.Proposal)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNoCommit
	}
	if err != nil {
		return err
	}
	if !txs.VerifyVote(e.caller, tx.Vote, commit.Salt, commit.Signature) {
		return ErrSignatureInvalid
	}
	if err := e.State.DeleteCommit(e.caller, tx.Proposal); err != nil {
		return err
	}

	if isLate(proposal, e.height) {
		return e.punishLateReveal(tx.Proposal, commit)
	}

	switch tx.Vote {
	case state.Yes:
		proposal.Ayes, err = math.Add(proposal.Ayes, uint32(commit.Number))
	default:
		proposal.Nays, err = math.Add(proposal.Nays, uint32(commit.Number))
	}
	if err != nil {
		return err
	}
	proposal.Votes = append(proposal.Votes, state.VoteRecord{
		Voter:  e.caller,
		Weight: commit.Number,
		Choice: tx.Vote,
	})
	proposal.Revealed = append(proposal.Revealed, e.caller)
	if err := e.State.PutProposal(tx.Proposal, proposal); err != nil {
		return err
	}
	e.emit(&Voted{
		Account:  e.caller,
		Proposal: tx.Proposal,
		Vote:     tx.Vote,
		Yes:      proposal.Ayes,
		No:       proposal.Nays,
	})
	return nil
}

// isLate reports whether a reveal at height can no longer be tallied.
func isLate(p *state.Proposal, height uint64) bool {
	return p.Settled || (p.RevealStarted && height > p.RevealEnd)
}

func (e *txExecutor) punishLateReveal(proposalID ids.ID, commit *state.Commit) error {
	slashed, err := e.slash(e.caller, proposalID)
	if err != nil {
		return err
	}
	refunded, err := e.refundTokens(e.caller, commit.Number)
	if err != nil {
		return err
	}
	e.emit(&LateRevealPunished{
		Account:  e.caller,
		Proposal: proposalID,
		Slashed:  slashed,
		Refunded: refunded,
	})
	return nil
}

func (e *txExecutor) CloseVoteTx(tx *txs.CloseVoteTx) error {
	if err := e.requireMember(); err != nil {
		return err
	}
	proposal, err := e.getProposal(tx.Proposal)
	if err != nil {
		return err
	}
	if proposal.RevealStarted {
		return ErrVoteAlreadyEnded
	}
	if e.height < proposal.PollEnd {
		return fmt.Errorf("%w: commit window ends at %d", ErrTooEarly, proposal.PollEnd)
	}

	revealEnd, err := math.Add(e.height, e.Config.RevealLength)
	if err != nil {
		return err
	}
	proposal.RevealStarted = true
	proposal.RevealEnd = revealEnd
	if err := e.State.PutProposal(tx.Proposal, proposal); err != nil {
		return err
	}
	e.emit(&VoteClosed{Proposal: tx.Proposal, RevealEnd: revealEnd})
	return nil
}

func (e *txExecutor) CloseRevealTx(tx *txs.CloseRevealTx) error {
	if err := e.requireMember(); err != nil {
		return err
	}
	proposal, err := e.getProposal(tx.Proposal)
	if err != nil {
		return err
	}
	if !proposal.RevealStarted {
		return ErrRevealNotStarted
	}
	if proposal.Settled {
		return ErrAlreadySettled
	}
	if e.height < proposal.RevealEnd {
		return fmt.Errorf("%w: reveal window ends at %d", ErrTooEarly, proposal.RevealEnd)
	}
	return e.settle(tx.Proposal, proposal)
}

func (e *txExecutor) requireIdentity() error {
	exists, err := e.Identities.Exists(e.caller)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoIdentity
	}
	return nil
}

func (e *txExecutor) requireMember() error {
	isMember, err := e.State.HasMember(e.caller)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}
	return nil
}

func (e *txExecutor) getMember() (*state.Member, error) {
	member, err := e.State.GetMember(e.caller)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotMember
	}
	return member, err
}

func (e *txExecutor) getProposal(proposalID ids.ID) (*state.Proposal, error) {
	proposal, err := e.State.GetProposal(proposalID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProposalMissing, proposalID)
	}
	return proposal, err
}

// CommitCost is the number of voting tokens a commitment of weight number
// consumes: number squared.
func CommitCost(number uint8) uint32 {
	// 255^2 fits in a uint32
	cost, _ := math.Square(uint32(number))
	return cost
}
