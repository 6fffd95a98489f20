// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/state"
)

var (
	_ Event = (*Joined)(nil)
	_ Event = (*Left)(nil)
	_ Event = (*IdentityRegistered)(nil)
	_ Event = (*Proposed)(nil)
	_ Event = (*Committed)(nil)
	_ Event = (*Voted)(nil)
	_ Event = (*LateRevealPunished)(nil)
	_ Event = (*VoteClosed)(nil)
	_ Event = (*Slashed)(nil)
	_ Event = (*Rewarded)(nil)
	_ Event = (*Closed)(nil)
	_ Event = (*Approved)(nil)
	_ Event = (*Disapproved)(nil)
	_ Event = (*Executed)(nil)
)

// Event is emitted by a successful call for external indexing.
type Event interface {
	// Kind is a stable snake_case name for the event variant.
	Kind() string
}

type Joined struct {
	Account ids.ShortID `json:"account"`
}

type Left struct {
	Account ids.ShortID `json:"account"`
	Cashout uint64      `json:"cashout"`
}

type IdentityRegistered struct {
	Account ids.ShortID `json:"account"`
	Name    string      `json:"name"`
}

type Proposed struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	// Threshold is the committee size when the proposal was opened.
	Threshold uint32 `json:"threshold"`
}

type Committed struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	Number   uint8       `json:"number"`
}

type Voted struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	Vote     state.Vote  `json:"vote"`
	Yes      uint32      `json:"yes"`
	No       uint32      `json:"no"`
}

// LateRevealPunished replaces Voted when a reveal arrives after the reveal
// window.
type LateRevealPunished struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	Slashed  uint64      `json:"slashed"`
	Refunded uint8       `json:"refunded"`
}

type VoteClosed struct {
	Proposal  ids.ID `json:"proposal"`
	RevealEnd uint64 `json:"revealEnd"`
}

type Slashed struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	Amount   uint64      `json:"amount"`
}

type Rewarded struct {
	Account  ids.ShortID `json:"account"`
	Proposal ids.ID      `json:"proposal"`
	Amount   uint64      `json:"amount"`
}

type Closed struct {
	Proposal ids.ID `json:"proposal"`
	Yes      uint32 `json:"yes"`
	No       uint32 `json:"no"`
}

type Approved struct {
	Proposal ids.ID `json:"proposal"`
}

type Disapproved struct {
	Proposal ids.ID `json:"proposal"`
}

type Executed struct {
	Proposal ids.ID `json:"proposal"`
	Payout   uint64 `json:"payout"`
}

func (*Joined) Kind() string             { return "joined" }
func (*Left) Kind() string               { return "left" }
func (*IdentityRegistered) Kind() string { return "identity_registered" }
func (*Proposed) Kind() string           { return "proposed" }
func (*Committed) Kind() string          { return "committed" }
func (*Voted) Kind() string              { return "voted" }
func (*LateRevealPunished) Kind() string { return "late_reveal_punished" }
func (*VoteClosed) Kind() string         { return "vote_closed" }
func (*Slashed) Kind() string            { return "slashed" }
func (*Rewarded) Kind() string           { return "rewarded" }
func (*Closed) Kind() string             { return "closed" }
func (*Approved) Kind() string           { return "approved" }
func (*Disapproved) Kind() string        { return "disapproved" }
func (*Executed) Kind() string           { return "executed" }
