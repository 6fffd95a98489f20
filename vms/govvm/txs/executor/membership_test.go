// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/identity/identitymock"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

func TestJoin(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	key := env.newAccount()
	result, err := env.execute(addr(key), &txs.JoinTx{})
	require.NoError(err)
	require.Equal([]Event{&Joined{Account: addr(key)}}, result.Events)

	require.Equal(config.MaxVotingTokens, env.tokens(key))
	b, err := env.ledger().Balance(addr(key))
	require.NoError(err)
	require.Equal(ledger.Balance{
		Free:     testBalance - env.cfg.EntryDeposit,
		Reserved: env.cfg.EntryDeposit,
	}, b)

	count, err := env.state().MemberCount()
	require.NoError(err)
	require.Equal(uint32(1), count)

	_, err = env.execute(addr(key), &txs.JoinTx{})
	require.ErrorIs(err, ErrAlreadyMember)
}

func TestJoinNotEnoughFunds(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)
	require.NoError(env.ledger().Mint(addr(key), env.cfg.EntryDeposit-1))
	_, err = env.execute(addr(key), &txs.RegisterIdentityTx{Name: "poor"})
	require.NoError(err)

	_, err = env.execute(addr(key), &txs.JoinTx{})
	require.ErrorIs(err, ErrNotEnoughFunds)

	has, err := env.state().HasMember(addr(key))
	require.NoError(err)
	require.False(has)
}

func TestJoinIdentityOracle(t *testing.T) {
	errOracle := errors.New("oracle unavailable")
	tests := []struct {
		name    string
		exists  bool
		err     error
		wantErr error
	}{
		{name: "verified", exists: true},
		{name: "unverified", exists: false, wantErr: ErrNoIdentity},
		{name: "oracle failure", err: errOracle, wantErr: errOracle},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)
			env := newEnvironment(t)

			key, err := secp256k1.NewPrivateKey()
			require.NoError(err)
			require.NoError(env.ledger().Mint(addr(key), testBalance))

			oracle := identitymock.NewRegistry(ctrl)
			oracle.EXPECT().Exists(addr(key)).Return(test.exists, test.err)
			env.identities = oracle

			_, err = env.execute(addr(key), &txs.JoinTx{})
			require.ErrorIs(err, test.wantErr)

			// a failed join leaves the balance untouched
			if test.wantErr != nil {
				reserved := env.reserved(addr(key))
				require.Zero(reserved)
			}
		})
	}
}

func TestLeave(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	key := env.newMember()
	result, err := env.execute(addr(key), &txs.LeaveTx{})
	require.NoError(err)
	require.Equal([]Event{&Left{Account: addr(key), Cashout: env.cfg.EntryDeposit}}, result.Events)

	b, err := env.ledger().Balance(addr(key))
	require.NoError(err)
	require.Equal(ledger.Balance{Free: testBalance}, b)

	has, err := env.state().HasMember(addr(key))
	require.NoError(err)
	require.False(has)

	_, err = env.execute(addr(key), &txs.LeaveTx{})
	require.ErrorIs(err, ErrNotMember)
}

func TestLeaveWithoutIdentity(t *testing.T) {
	env := newEnvironment(t)
	_, err := env.execute(ids.GenerateTestShortID(), &txs.LeaveTx{})
	require.ErrorIs(t, err, ErrNoIdentity)
}

func TestLeaveInMotion(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	key := env.newMember()
	proposalID := env.propose(key, testTitle)
	env.commit(key, proposalID, state.Yes, 2)

	_, err := env.execute(addr(key), &txs.LeaveTx{})
	require.ErrorIs(err, ErrInMotion)

	// once revealed the commitment is consumed and the member may leave
	env.height += testDuration
	require.NoError(env.closeVote(key, proposalID))
	_, err = env.reveal(key, proposalID, state.Yes)
	require.NoError(err)

	_, err = env.execute(addr(key), &txs.LeaveTx{})
	require.NoError(err)
}

func TestRegisterIdentity(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	caller := ids.GenerateTestShortID()
	result, err := env.execute(caller, &txs.RegisterIdentityTx{Name: "carol"})
	require.NoError(err)
	require.Equal([]Event{&IdentityRegistered{Account: caller, Name: "carol"}}, result.Events)

	_, err = env.execute(caller, &txs.RegisterIdentityTx{Name: ""})
	require.ErrorIs(err, ErrInvalidArgument)
}
