// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

const (
	testSalt     uint32 = 10
	testDuration uint64 = 100
	testBalance         = 100_000 * config.Unit
)

var testTitle = []byte("fund the community garden")

type environment struct {
	require *require.Assertions
	cfg     config.Config
	db      database.Database
	height  uint64

	// identities overrides the DB registry when set
	identities identity.Registry
}

func newEnvironment(t require.TestingT) *environment {
	cfg := config.DefaultConfig()
	cfg.MinLength = 100
	cfg.RevealLength = 50
	return &environment{
		require: require.New(t),
		cfg:     cfg,
		db:      memdb.New(),
		height:  1,
	}
}

// execute runs tx as caller, committing its writes only on success.
func (env *environment) execute(caller ids.ShortID, tx txs.UnsignedTx) (*Result, error) {
	vdb := versiondb.New(env.db)
	registry := identity.New(vdb)
	backend := &Backend{
		Config:     &env.cfg,
		State:      state.New(vdb),
		Currency:   ledger.New(vdb),
		Identities: registry,
		Names:      registry,
	}
	if env.identities != nil {
		backend.Identities = env.identities
	}

	result, err := Execute(backend, env.height, caller, tx)
	if err != nil {
		vdb.Abort()
		return nil, err
	}
	env.require.NoError(vdb.Commit())
	return result, nil
}

func (env *environment) state() *state.State    { return state.New(env.db) }
func (env *environment) ledger() *ledger.Ledger { return ledger.New(env.db) }

// newAccount returns a funded key with a registered identity.
func (env *environment) newAccount() *secp256k1.PrivateKey {
	key, err := secp256k1.NewPrivateKey()
	env.require.NoError(err)
	addr := key.PublicKey().Address()
	env.require.NoError(env.ledger().Mint(addr, testBalance))
	env.require.NoError(identity.New(env.db).Set(addr, "member"))
	return key
}

func (env *environment) newMember() *secp256k1.PrivateKey {
	key := env.newAccount()
	_, err := env.execute(key.PublicKey().Address(), &txs.JoinTx{})
	env.require.NoError(err)
	return key
}

func (env *environment) propose(proposer *secp256k1.PrivateKey, title []byte) ids.ID {
	_, err := env.execute(proposer.PublicKey().Address(), &txs.CreateProposalTx{
		Title:    title,
		Duration: testDuration,
	})
	env.require.NoError(err)
	return state.ProposalID(title)
}

func (env *environment) commitTx(key *secp256k1.PrivateKey, proposalID ids.ID, vote state.Vote, number uint8) *txs.CommitVoteTx {
	sig, err := txs.SignVote(key, vote, testSalt)
	env.require.NoError(err)
	return &txs.CommitVoteTx{
		Proposal:  proposalID,
		Signature: sig,
		Number:    number,
		Salt:      testSalt,
	}
}

func (env *environment) commit(key *secp256k1.PrivateKey, proposalID ids.ID, vote state.Vote, number uint8) {
	_, err := env.execute(key.PublicKey().Address(), env.commitTx(key, proposalID, vote, number))
	env.require.NoError(err)
}

func (env *environment) reveal(key *secp256k1.PrivateKey, proposalID ids.ID, vote state.Vote) (*Result, error) {
	return env.execute(key.PublicKey().Address(), &txs.RevealVoteTx{
		Proposal: proposalID,
		Vote:     vote,
	})
}

func (env *environment) closeVote(key *secp256k1.PrivateKey, proposalID ids.ID) error {
	_, err := env.execute(key.PublicKey().Address(), &txs.CloseVoteTx{Proposal: proposalID})
	return err
}

func (env *environment) closeReveal(key *secp256k1.PrivateKey, proposalID ids.ID) (*Result, error) {
	return env.execute(key.PublicKey().Address(), &txs.CloseRevealTx{Proposal: proposalID})
}

func (env *environment) tokens(key *secp256k1.PrivateKey) uint8 {
	m, err := env.state().GetMember(key.PublicKey().Address())
	env.require.NoError(err)
	return m.VotingTokens
}

func (env *environment) reserved(addr ids.ShortID) uint64 {
	reserved, err := env.ledger().ReservedBalance(addr)
	env.require.NoError(err)
	return reserved
}

func (env *environment) proposal(proposalID ids.ID) *state.Proposal {
	p, err := env.state().GetProposal(proposalID)
	env.require.NoError(err)
	return p
}

func addr(key *secp256k1.PrivateKey) ids.ShortID {
	return key.PublicKey().Address()
}
