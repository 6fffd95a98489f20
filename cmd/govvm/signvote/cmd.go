// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signvote produces the signature a member commits to before
// revealing its vote.
package signvote

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/crypto/address/formatting"
	"github.com/luxfi/crypto/secp256k1"

	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

const (
	PrivateKeyKey = "private-key"
	VoteKey       = "vote"
	SaltKey       = "salt"
)

var errUnknownVote = errors.New("vote must be yes or no")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign-vote",
		Short: "Signs a vote commitment",
		RunE:  signFunc,
	}
	flags := c.Flags()
	flags.String(PrivateKeyKey, "", "Private key of the committee member (required)")
	flags.String(VoteKey, "", "Vote to commit to, yes or no (required)")
	flags.Uint32(SaltKey, 0, "Salt hiding the vote until it is revealed")
	return c
}

func signFunc(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	skStr, err := flags.GetString(PrivateKeyKey)
	if err != nil {
		return err
	}
	voteStr, err := flags.GetString(VoteKey)
	if err != nil {
		return err
	}
	salt, err := flags.GetUint32(SaltKey)
	if err != nil {
		return err
	}

	var sk secp256k1.PrivateKey
	if err := sk.UnmarshalText([]byte(`"` + skStr + `"`)); err != nil {
		return err
	}
	vote, err := parseVote(voteStr)
	if err != nil {
		return err
	}

	sig, err := txs.SignVote(&sk, vote, salt)
	if err != nil {
		return err
	}
	encoded, err := formatting.Encode(formatting.Hex, sig)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), encoded)
	return nil
}

func parseVote(s string) (state.Vote, error) {
	switch s {
	case state.Yes.String():
		return state.Yes, nil
	case state.No.String():
		return state.No, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownVote, s)
	}
}
