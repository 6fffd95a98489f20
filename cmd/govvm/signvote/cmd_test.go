// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package signvote

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/address/formatting"
	"github.com/luxfi/crypto/secp256k1"

	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

func TestSignVote(t *testing.T) {
	require := require.New(t)

	sk, err := secp256k1.NewPrivateKey()
	require.NoError(err)

	c := Command()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{
		"--private-key=" + sk.String(),
		"--vote=yes",
		"--salt=99",
	})
	require.NoError(c.Execute())

	sig, err := formatting.Decode(formatting.Hex, strings.TrimSpace(out.String()))
	require.NoError(err)
	addr := sk.PublicKey().Address()
	require.True(txs.VerifyVote(addr, state.Yes, 99, sig))
	require.False(txs.VerifyVote(addr, state.No, 99, sig))
}

func TestParseVote(t *testing.T) {
	require := require.New(t)

	vote, err := parseVote("no")
	require.NoError(err)
	require.Equal(state.No, vote)

	_, err = parseVote("maybe")
	require.ErrorIs(err, errUnknownVote)
}
