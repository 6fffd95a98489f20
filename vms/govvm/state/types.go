// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"slices"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
)

// Vote is a member's binary choice on a proposal.
type Vote uint8

const (
	No Vote = iota
	Yes
)

func (v Vote) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// Valid reports whether v is Yes or No.
func (v Vote) Valid() bool {
	return v == Yes || v == No
}

// Member is a committee seat. Only members have an entry.
type Member struct {
	VotingTokens uint8 `serialize:"true" json:"votingTokens"`
}

// VoteRecord is a revealed, tallied vote.
type VoteRecord struct {
	Voter  ids.ShortID `serialize:"true" json:"voter"`
	Weight uint8       `serialize:"true" json:"weight"`
	Choice Vote        `serialize:"true" json:"choice"`
}

// Proposal is keyed by the hash of its title.
type Proposal struct {
	Title    []byte      `serialize:"true" json:"title"`
	Proposer ids.ShortID `serialize:"true" json:"proposer"`
	Ayes     uint32      `serialize:"true" json:"ayes"`
	Nays     uint32      `serialize:"true" json:"nays"`
	PollEnd  uint64      `serialize:"true" json:"pollEnd"`

	// RevealEnd is meaningful only once RevealStarted is set, which happens
	// exactly once when the commit window is closed.
	RevealStarted bool   `serialize:"true" json:"revealStarted"`
	RevealEnd     uint64 `serialize:"true" json:"revealEnd"`

	Votes    []VoteRecord  `serialize:"true" json:"votes"`
	Revealed []ids.ShortID `serialize:"true" json:"revealed"`
	Payout   uint64        `serialize:"true" json:"payout"`
	Settled  bool          `serialize:"true" json:"settled"`
}

// HasRevealed reports whether voter already revealed on p.
func (p *Proposal) HasRevealed(voter ids.ShortID) bool {
	return slices.Contains(p.Revealed, voter)
}

// Commit is a hidden vote. Only the weight is public.
type Commit struct {
	Signature []byte `serialize:"true" json:"signature"`
	Salt      uint32 `serialize:"true" json:"salt"`
	Number    uint8  `serialize:"true" json:"number"`
}

type proposalIndex struct {
	Hashes []ids.ID `serialize:"true"`
}

// ProposalID is the content hash a proposal is stored under.
func ProposalID(title []byte) ids.ID {
	return ids.ID(hash.ComputeHash256Array(title))
}
