// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import "errors"

var (
	// Membership
	ErrAlreadyMember = errors.New("account is already a member")
	ErrNotMember     = errors.New("account is not a member")
	ErrNoIdentity    = errors.New("account has no identity")

	// Resources
	ErrNotEnoughFunds        = errors.New("not enough funds to reserve the entry deposit")
	ErrNotEnoughVotingTokens = errors.New("not enough voting tokens")

	// Proposal lifecycle
	ErrDuplicateProposal   = errors.New("duplicate proposal")
	ErrProposalMissing     = errors.New("proposal does not exist")
	ErrTooManyProposals    = errors.New("too many active proposals")
	ErrWrongProposalLength = errors.New("proposal duration is below the minimum")
	ErrAlreadySettled      = errors.New("proposal is already settled")

	// Timing
	ErrTooEarly         = errors.New("too early")
	ErrVoteEnded        = errors.New("commit window has ended")
	ErrVoteAlreadyEnded = errors.New("commit window was already closed")
	ErrRevealNotStarted = errors.New("reveal window has not started")

	// Protocol
	ErrDuplicateVote    = errors.New("duplicate vote")
	ErrNoCommit         = errors.New("no commitment to reveal")
	ErrSignatureInvalid = errors.New("vote does not match commitment signature")
	ErrInvalidArgument  = errors.New("invalid argument")

	// State conflict
	ErrInMotion = errors.New("account has outstanding commitments")
)
