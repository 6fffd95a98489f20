// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves the committee over JSON-RPC.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/luxfi/crypto/address/formatting"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/utils/json"

	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

const Name = "gov"

var errMissingProposal = errors.New("either proposalID or title must be set")

// Backend is the view of the VM the service reads and issues through.
type Backend interface {
	Bootstrapped() bool
	LastAcceptedBlock() *block.Block
	GetBlockByHeight(height uint64) (*block.Block, error)
	MemberCount() (uint32, error)
	GetMember(addr ids.ShortID) (*state.Member, error)
	GetIdentity(addr ids.ShortID) (string, error)
	GetBalance(addr ids.ShortID) (ledger.Balance, error)
	GetProposal(proposalID ids.ID) (*state.Proposal, error)
	ActiveProposals() ([]ids.ID, error)
	GetCommit(voter ids.ShortID, proposalID ids.ID) (*state.Commit, error)
	ProposalCommitments(proposalID ids.ID) ([]ids.ShortID, error)
	IssueTx(tx *txs.Tx) error
	GetTxStatus(txID ids.ID) (*state.TxRecord, error)
}

type Service struct {
	log log.Logger
	vm  Backend
}

func NewService(logger log.Logger, vm Backend) *Service {
	return &Service{
		log: logger,
		vm:  vm,
	}
}

type StatusArgs struct{}

type StatusReply struct {
	Bootstrapped    bool        `json:"bootstrapped"`
	LastAcceptedID  ids.ID      `json:"lastAcceptedID"`
	Height          json.Uint64 `json:"height"`
	Members         json.Uint32 `json:"members"`
	ActiveProposals json.Uint32 `json:"activeProposals"`
}

func (s *Service) Status(_ *http.Request, _ *StatusArgs, reply *StatusReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "status"),
	)

	members, err := s.vm.MemberCount()
	if err != nil {
		return err
	}
	active, err := s.vm.ActiveProposals()
	if err != nil {
		return err
	}
	lastAccepted := s.vm.LastAcceptedBlock()

	reply.Bootstrapped = s.vm.Bootstrapped()
	reply.LastAcceptedID = lastAccepted.ID()
	reply.Height = json.Uint64(lastAccepted.Height)
	reply.Members = json.Uint32(members)
	reply.ActiveProposals = json.Uint32(len(active))
	return nil
}

type GetBlockByHeightArgs struct {
	Height json.Uint64 `json:"height"`
}

type GetBlockByHeightReply struct {
	BlockID   ids.ID      `json:"blockID"`
	ParentID  ids.ID      `json:"parentID"`
	Height    json.Uint64 `json:"height"`
	Timestamp json.Uint64 `json:"timestamp"`
	TxIDs     []ids.ID    `json:"txIDs"`
	// Block is the hex encoded block.
	Block string `json:"block"`
}

func (s *Service) GetBlockByHeight(_ *http.Request, args *GetBlockByHeightArgs, reply *GetBlockByHeightReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getBlockByHeight"),
		log.Uint64("height", uint64(args.Height)),
	)

	blk, err := s.vm.GetBlockByHeight(uint64(args.Height))
	if err != nil {
		return fmt.Errorf("couldn't get block at height %d: %w", args.Height, err)
	}
	encoded, err := formatting.Encode(formatting.Hex, blk.Bytes())
	if err != nil {
		return err
	}

	reply.BlockID = blk.ID()
	reply.ParentID = blk.ParentID
	reply.Height = json.Uint64(blk.Height)
	reply.Timestamp = json.Uint64(blk.Time)
	reply.TxIDs = make([]ids.ID, len(blk.Txs))
	for i, tx := range blk.Txs {
		reply.TxIDs[i] = tx.ID()
	}
	reply.Block = encoded
	return nil
}

type AddressArgs struct {
	Address ids.ShortID `json:"address"`
}

type GetMemberReply struct {
	IsMember     bool        `json:"isMember"`
	VotingTokens json.Uint32 `json:"votingTokens"`
	// Identity is empty when the account has no registered identity.
	Identity string `json:"identity"`
}

func (s *Service) GetMember(_ *http.Request, args *AddressArgs, reply *GetMemberReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getMember"),
		log.Stringer("address", args.Address),
	)

	name, err := s.vm.GetIdentity(args.Address)
	switch {
	case err == nil:
		reply.Identity = name
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	member, err := s.vm.GetMember(args.Address)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	reply.IsMember = true
	reply.VotingTokens = json.Uint32(member.VotingTokens)
	return nil
}

type GetBalanceReply struct {
	Free     json.Uint64 `json:"free"`
	Reserved json.Uint64 `json:"reserved"`
}

func (s *Service) GetBalance(_ *http.Request, args *AddressArgs, reply *GetBalanceReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getBalance"),
		log.Stringer("address", args.Address),
	)

	balance, err := s.vm.GetBalance(args.Address)
	if err != nil {
		return err
	}
	reply.Free = json.Uint64(balance.Free)
	reply.Reserved = json.Uint64(balance.Reserved)
	return nil
}

// GetProposalArgs identifies a proposal by ID or, when ProposalID is empty, by
// its title.
type GetProposalArgs struct {
	ProposalID ids.ID `json:"proposalID"`
	Title      string `json:"title"`
}

func (a *GetProposalArgs) id() (ids.ID, error) {
	switch {
	case a.ProposalID != ids.Empty:
		return a.ProposalID, nil
	case a.Title != "":
		return state.ProposalID([]byte(a.Title)), nil
	default:
		return ids.Empty, errMissingProposal
	}
}

type APIVote struct {
	Voter  ids.ShortID `json:"voter"`
	Weight json.Uint32 `json:"weight"`
	Vote   string      `json:"vote"`
}

type GetProposalReply struct {
	ProposalID    ids.ID      `json:"proposalID"`
	Title         string      `json:"title"`
	Proposer      ids.ShortID `json:"proposer"`
	Ayes          json.Uint32 `json:"ayes"`
	Nays          json.Uint32 `json:"nays"`
	PollEnd       json.Uint64 `json:"pollEnd"`
	RevealStarted bool        `json:"revealStarted"`
	RevealEnd     json.Uint64 `json:"revealEnd"`
	Settled       bool        `json:"settled"`
	Payout        json.Uint64 `json:"payout"`
	Votes         []APIVote   `json:"votes"`
	// Pending lists members that committed but have not revealed.
	Pending []ids.ShortID `json:"pending,omitempty"`
}

func (s *Service) GetProposal(_ *http.Request, args *GetProposalArgs, reply *GetProposalReply) error {
	proposalID, err := args.id()
	if err != nil {
		return err
	}
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getProposal"),
		log.Stringer("proposalID", proposalID),
	)

	p, err := s.vm.GetProposal(proposalID)
	if err != nil {
		return fmt.Errorf("couldn't get proposal %s: %w", proposalID, err)
	}

	reply.ProposalID = proposalID
	reply.Title = string(p.Title)
	reply.Proposer = p.Proposer
	reply.Ayes = json.Uint32(p.Ayes)
	reply.Nays = json.Uint32(p.Nays)
	reply.PollEnd = json.Uint64(p.PollEnd)
	reply.RevealStarted = p.RevealStarted
	reply.RevealEnd = json.Uint64(p.RevealEnd)
	reply.Settled = p.Settled
	reply.Payout = json.Uint64(p.Payout)
	reply.Votes = make([]APIVote, len(p.Votes))
	for i, vote := range p.Votes {
		reply.Votes[i] = APIVote{
			Voter:  vote.Voter,
			Weight: json.Uint32(vote.Weight),
			Vote:   vote.Choice.String(),
		}
	}
	reply.Pending, err = s.vm.ProposalCommitments(proposalID)
	return err
}

type ListProposalsArgs struct{}

type ListProposalsReply struct {
	Active []ids.ID `json:"active"`
}

func (s *Service) ListProposals(_ *http.Request, _ *ListProposalsArgs, reply *ListProposalsReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "listProposals"),
	)

	active, err := s.vm.ActiveProposals()
	if err != nil {
		return err
	}
	reply.Active = active
	if reply.Active == nil {
		reply.Active = []ids.ID{}
	}
	return nil
}

type GetCommitArgs struct {
	Voter      ids.ShortID `json:"voter"`
	ProposalID ids.ID      `json:"proposalID"`
}

type GetCommitReply struct {
	Found     bool        `json:"found"`
	Number    json.Uint32 `json:"number"`
	Salt      json.Uint32 `json:"salt"`
	Signature string      `json:"signature"`
}

func (s *Service) GetCommit(_ *http.Request, args *GetCommitArgs, reply *GetCommitReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getCommit"),
		log.Stringer("voter", args.Voter),
		log.Stringer("proposalID", args.ProposalID),
	)

	commit, err := s.vm.GetCommit(args.Voter, args.ProposalID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	sig, err := formatting.Encode(formatting.Hex, commit.Signature)
	if err != nil {
		return err
	}
	reply.Found = true
	reply.Number = json.Uint32(commit.Number)
	reply.Salt = json.Uint32(commit.Salt)
	reply.Signature = sig
	return nil
}

type IssueTxArgs struct {
	// Tx is the hex encoded signed tx.
	Tx string `json:"tx"`
}

type IssueTxReply struct {
	TxID ids.ID `json:"txID"`
}

func (s *Service) IssueTx(_ *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "issueTx"),
	)

	txBytes, err := formatting.Decode(formatting.Hex, args.Tx)
	if err != nil {
		return fmt.Errorf("problem decoding transaction: %w", err)
	}
	tx, err := txs.Parse(txBytes)
	if err != nil {
		return err
	}
	if err := s.vm.IssueTx(tx); err != nil {
		return err
	}
	reply.TxID = tx.ID()
	return nil
}

type GetTxStatusArgs struct {
	TxID ids.ID `json:"txID"`
}

type GetTxStatusReply struct {
	Status string      `json:"status"`
	Height json.Uint64 `json:"height,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func (s *Service) GetTxStatus(_ *http.Request, args *GetTxStatusArgs, reply *GetTxStatusReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getTxStatus"),
		log.Stringer("txID", args.TxID),
	)

	record, err := s.vm.GetTxStatus(args.TxID)
	if err != nil {
		return err
	}
	reply.Status = record.Status.String()
	reply.Height = json.Uint64(record.Height)
	reply.Reason = record.Reason
	return nil
}
