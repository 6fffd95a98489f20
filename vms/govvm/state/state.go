// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the committee: members, proposals, the active
// proposal index and vote commitments.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/wrappers"
)

var (
	_ Chain = (*State)(nil)

	ErrCorrupted = errors.New("state corrupted")

	memberPrefix   = []byte("member")
	proposalPrefix = []byte("proposal")
	commitPrefix   = []byte("commit")
	metadataPrefix = []byte("metadata")
	blockPrefix    = []byte("block")
	heightPrefix   = []byte("height")
	txPrefix       = []byte("tx")

	proposalsKey    = []byte("proposals")
	memberCountKey  = []byte("memberCount")
	lastAcceptedKey = []byte("lastAccepted")
)

// Chain is the committee repository every call reads and writes through.
type Chain interface {
	GetMember(addr ids.ShortID) (*Member, error)
	HasMember(addr ids.ShortID) (bool, error)
	PutMember(addr ids.ShortID, m *Member) error
	DeleteMember(addr ids.ShortID) error
	MemberCount() (uint32, error)

	GetProposal(proposalID ids.ID) (*Proposal, error)
	HasProposal(proposalID ids.ID) (bool, error)
	PutProposal(proposalID ids.ID, p *Proposal) error

	// ActiveProposals returns the ordered index of unsettled proposals.
	ActiveProposals() ([]ids.ID, error)
	PutActiveProposals(proposalIDs []ids.ID) error

	GetCommit(voter ids.ShortID, proposalID ids.ID) (*Commit, error)
	HasCommit(voter ids.ShortID, proposalID ids.ID) (bool, error)
	PutCommit(voter ids.ShortID, proposalID ids.ID, c *Commit) error
	DeleteCommit(voter ids.ShortID, proposalID ids.ID) error
	// HasCommits reports whether voter has any outstanding commitment.
	HasCommits(voter ids.ShortID) (bool, error)
}

// State implements Chain over a database. It holds no caches, so a State
// built on a versiondb sees exactly the pending writes of that versiondb.
type State struct {
	members   database.Database
	proposals database.Database
	commits   database.Database
	metadata  database.Database
	blocks    database.Database
	heights   database.Database
	txs       database.Database
}

func New(db database.Database) *State {
	return &State{
		members:   prefixdb.New(memberPrefix, db),
		proposals: prefixdb.New(proposalPrefix, db),
		commits:   prefixdb.New(commitPrefix, db),
		metadata:  prefixdb.New(metadataPrefix, db),
		blocks:    prefixdb.New(blockPrefix, db),
		heights:   prefixdb.New(heightPrefix, db),
		txs:       prefixdb.New(txPrefix, db),
	}
}

func (s *State) GetMember(addr ids.ShortID) (*Member, error) {
	m := &Member{}
	return m, get(s.members, addr[:], m)
}

func (s *State) HasMember(addr ids.ShortID) (bool, error) {
	return s.members.Has(addr[:])
}

// PutMember writes m and bumps the member count when addr is new.
func (s *State) PutMember(addr ids.ShortID, m *Member) error {
	exists, err := s.members.Has(addr[:])
	if err != nil {
		return err
	}
	if err := put(s.members, addr[:], m); err != nil {
		return err
	}
	if exists {
		return nil
	}
	count, err := s.MemberCount()
	if err != nil {
		return err
	}
	return database.PutUInt64(s.metadata, memberCountKey, uint64(count)+1)
}

func (s *State) DeleteMember(addr ids.ShortID) error {
	exists, err := s.members.Has(addr[:])
	if err != nil || !exists {
		return err
	}
	if err := s.members.Delete(addr[:]); err != nil {
		return err
	}
	count, err := s.MemberCount()
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: member count underflow", ErrCorrupted)
	}
	return database.PutUInt64(s.metadata, memberCountKey, uint64(count)-1)
}

func (s *State) MemberCount() (uint32, error) {
	count, err := database.GetUInt64(s.metadata, memberCountKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return uint32(count), err
}

func (s *State) GetProposal(proposalID ids.ID) (*Proposal, error) {
	p := &Proposal{}
	return p, get(s.proposals, proposalID[:], p)
}

func (s *State) HasProposal(proposalID ids.ID) (bool, error) {
	return s.proposals.Has(proposalID[:])
}

func (s *State) PutProposal(proposalID ids.ID, p *Proposal) error {
	return put(s.proposals, proposalID[:], p)
}

func (s *State) ActiveProposals() ([]ids.ID, error) {
	index := &proposalIndex{}
	err := get(s.metadata, proposalsKey, index)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return index.Hashes, err
}

func (s *State) PutActiveProposals(proposalIDs []ids.ID) error {
	return put(s.metadata, proposalsKey, &proposalIndex{Hashes: proposalIDs})
}

func (s *State) GetCommit(voter ids.ShortID, proposalID ids.ID) (*Commit, error) {
	c := &Commit{}
	return c, get(s.commits, commitKey(voter, proposalID), c)
}

func (s *State) HasCommit(voter ids.ShortID, proposalID ids.ID) (bool, error) {
	return s.commits.Has(commitKey(voter, proposalID))
}

func (s *State) PutCommit(voter ids.ShortID, proposalID ids.ID, c *Commit) error {
	return put(s.commits, commitKey(voter, proposalID), c)
}

func (s *State) DeleteCommit(voter ids.ShortID, proposalID ids.ID) error {
	return s.commits.Delete(commitKey(voter, proposalID))
}

func (s *State) HasCommits(voter ids.ShortID) (bool, error) {
	it := s.commits.NewIteratorWithPrefix(voter[:])
	defer it.Release()

	found := it.Next()
	return found, it.Error()
}

// ProposalCommitments returns the voters holding an unrevealed commitment on
// proposalID.
func (s *State) ProposalCommitments(proposalID ids.ID) ([]ids.ShortID, error) {
	it := s.commits.NewIterator()
	defer it.Release()

	var voters []ids.ShortID
	for it.Next() {
		key := it.Key()
		if len(key) != ids.ShortIDLen+ids.IDLen {
			return nil, fmt.Errorf("%w: commit key length %d", ErrCorrupted, len(key))
		}
		if ids.ID(key[ids.ShortIDLen:]) != proposalID {
			continue
		}
		voters = append(voters, ids.ShortID(key[:ids.ShortIDLen]))
	}
	return voters, it.Error()
}

// LastAccepted returns the last accepted block and its height. A fresh
// database reports (ids.Empty, 0).
func (s *State) LastAccepted() (ids.ID, uint64, error) {
	bytes, err := s.metadata.Get(lastAcceptedKey)
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, 0, nil
	}
	if err != nil {
		return ids.Empty, 0, err
	}

	p := wrappers.Packer{Bytes: bytes}
	blkID := ids.ID(p.UnpackFixedBytes(ids.IDLen))
	height := p.UnpackLong()
	if p.Err != nil {
		return ids.Empty, 0, fmt.Errorf("%w: last accepted: %w", ErrCorrupted, p.Err)
	}
	return blkID, height, nil
}

func (s *State) SetLastAccepted(blkID ids.ID, height uint64) error {
	p := wrappers.Packer{MaxSize: ids.IDLen + wrappers.LongLen}
	p.PackFixedBytes(blkID[:])
	p.PackLong(height)
	if p.Err != nil {
		return p.Err
	}
	return s.metadata.Put(lastAcceptedKey, p.Bytes)
}

func commitKey(voter ids.ShortID, proposalID ids.ID) []byte {
	key := make([]byte, 0, ids.ShortIDLen+ids.IDLen)
	key = append(key, voter[:]...)
	return append(key, proposalID[:]...)
}

func get(db database.KeyValueReader, key []byte, v any) error {
	bytes, err := db.Get(key)
	if err != nil {
		return err
	}
	_, err = Codec.Unmarshal(bytes, v)
	return err
}

func put(db database.KeyValueWriter, key []byte, v any) error {
	bytes, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return err
	}
	return db.Put(key, bytes)
}
