// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/state"
)

var (
	_ UnsignedTx = (*JoinTx)(nil)
	_ UnsignedTx = (*LeaveTx)(nil)
	_ UnsignedTx = (*CreateProposalTx)(nil)
	_ UnsignedTx = (*CommitVoteTx)(nil)
	_ UnsignedTx = (*RevealVoteTx)(nil)
	_ UnsignedTx = (*CloseVoteTx)(nil)
	_ UnsignedTx = (*CloseRevealTx)(nil)
	_ UnsignedTx = (*RegisterIdentityTx)(nil)

	ErrWrongChainID   = errors.New("wrong chain ID")
	ErrEmptyTitle     = errors.New("empty proposal title")
	ErrEmptySignature = errors.New("empty vote signature")
	ErrInvalidVote    = errors.New("invalid vote")
	ErrEmptyProposal  = errors.New("empty proposal ID")
)

// UnsignedTx is the body of a transaction. The signer of the enclosing Tx is
// the caller of the operation it describes.
type UnsignedTx interface {
	Base() *BaseTx
	// SyntacticVerify checks the transaction without reading any state.
	SyntacticVerify(chainID ids.ID) error
	// Visit calls visitor with this transaction's concrete type.
	Visit(visitor Visitor) error
}

// BaseTx is embedded in every transaction.
type BaseTx struct {
	ChainID ids.ID `serialize:"true" json:"chainID"`
	// Nonce distinguishes otherwise identical calls from the same signer.
	Nonce uint64 `serialize:"true" json:"nonce"`
}

func (tx *BaseTx) Base() *BaseTx { return tx }

func (tx *BaseTx) SyntacticVerify(chainID ids.ID) error {
	if tx.ChainID != chainID {
		return fmt.Errorf("%w: expected %s but got %s", ErrWrongChainID, chainID, tx.ChainID)
	}
	return nil
}

// JoinTx reserves the entry deposit and seats the signer on the committee.
type JoinTx struct {
	BaseTx `serialize:"true"`
}

func (tx *JoinTx) Visit(v Visitor) error { return v.JoinTx(tx) }

// LeaveTx refunds the signer's reserved collateral and removes the seat.
type LeaveTx struct {
	BaseTx `serialize:"true"`
}

func (tx *LeaveTx) Visit(v Visitor) error { return v.LeaveTx(tx) }

// CreateProposalTx opens a proposal whose commit window lasts Duration blocks.
type CreateProposalTx struct {
	BaseTx   `serialize:"true"`
	Title    []byte `serialize:"true" json:"title"`
	Duration uint64 `serialize:"true" json:"duration"`
}

func (tx *CreateProposalTx) SyntacticVerify(chainID ids.ID) error {
	if len(tx.Title) == 0 {
		return ErrEmptyTitle
	}
	return tx.BaseTx.SyntacticVerify(chainID)
}

func (tx *CreateProposalTx) Visit(v Visitor) error { return v.CreateProposalTx(tx) }

// CommitVoteTx stores a hidden vote. Signature is the signer's signature over
// VotePayload(vote, Salt); Number is the public vote weight.
type CommitVoteTx struct {
	BaseTx    `serialize:"true"`
	Proposal  ids.ID `serialize:"true" json:"proposal"`
	Signature []byte `serialize:"true" json:"signature"`
	Number    uint8  `serialize:"true" json:"number"`
	Salt      uint32 `serialize:"true" json:"salt"`
}

func (tx *CommitVoteTx) SyntacticVerify(chainID ids.ID) error {
	switch {
	case tx.Proposal == ids.Empty:
		return ErrEmptyProposal
	case len(tx.Signature) == 0:
		return ErrEmptySignature
	}
	return tx.BaseTx.SyntacticVerify(chainID)
}

func (tx *CommitVoteTx) Visit(v Visitor) error { return v.CommitVoteTx(tx) }

// RevealVoteTx opens the signer's commitment on Proposal.
type RevealVoteTx struct {
	BaseTx   `serialize:"true"`
	Proposal ids.ID     `serialize:"true" json:"proposal"`
	Vote     state.Vote `serialize:"true" json:"vote"`
}

func (tx *RevealVoteTx) SyntacticVerify(chainID ids.ID) error {
	switch {
	case tx.Proposal == ids.Empty:
		return ErrEmptyProposal
	case !tx.Vote.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidVote, tx.Vote)
	}
	return tx.BaseTx.SyntacticVerify(chainID)
}

func (tx *RevealVoteTx) Visit(v Visitor) error { return v.RevealVoteTx(tx) }

// CloseVoteTx ends the commit window of Proposal and opens its reveal window.
type CloseVoteTx struct {
	BaseTx   `serialize:"true"`
	Proposal ids.ID `serialize:"true" json:"proposal"`
}

func (tx *CloseVoteTx) SyntacticVerify(chainID ids.ID) error {
	if tx.Proposal == ids.Empty {
		return ErrEmptyProposal
	}
	return tx.BaseTx.SyntacticVerify(chainID)
}

func (tx *CloseVoteTx) Visit(v Visitor) error { return v.CloseVoteTx(tx) }

// CloseRevealTx ends the reveal window of Proposal and settles it.
type CloseRevealTx struct {
	BaseTx   `serialize:"true"`
	Proposal ids.ID `serialize:"true" json:"proposal"`
}

func (tx *CloseRevealTx) SyntacticVerify(chainID ids.ID) error {
	if tx.Proposal == ids.Empty {
		return ErrEmptyProposal
	}
	return tx.BaseTx.SyntacticVerify(chainID)
}

func (tx *CloseRevealTx) Visit(v Visitor) error { return v.CloseRevealTx(tx) }

// RegisterIdentityTx attaches a display name to the signer, which makes the
// signer eligible to join.
type RegisterIdentityTx struct {
	BaseTx `serialize:"true"`
	Name   string `serialize:"true" json:"name"`
}

func (tx *RegisterIdentityTx) Visit(v Visitor) error { return v.RegisterIdentityTx(tx) }
