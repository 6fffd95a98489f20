// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration parameters for the governance VM.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/govchain/utils/units"
)

const (
	// Unit is one whole token of the native currency.
	Unit = units.Unit

	// MaxVotingTokens is the ceiling on a member's vote token balance.
	MaxVotingTokens uint8 = 100

	// PotIDLen is the length of the module identifier the pot account is
	// derived from.
	PotIDLen = 8
)

var (
	ErrInvalidConfig = errors.New("invalid config")

	errZeroMaxProposals  = errors.New("maxProposals must be positive")
	errZeroRevealLength  = errors.New("revealLength must be positive")
	errBadPotID          = fmt.Errorf("potID must be exactly %d bytes", PotIDLen)
	errZeroMaxTxsInBlock = errors.New("maxTxsPerBlock must be positive")
	errZeroMaxTitleLen   = errors.New("maxTitleLen must be positive")
	errZeroBlockInterval = errors.New("blockInterval must be positive")
)

// Config contains the parameters of the voting committee and of the chain
// around it.
type Config struct {
	// EntryDeposit is the collateral reserved from a member on join
	EntryDeposit uint64 `json:"entryDeposit" yaml:"entryDeposit"`
	// MaxProposals caps the number of simultaneously active proposals
	MaxProposals uint32 `json:"maxProposals" yaml:"maxProposals"`
	// MinLength is the shortest allowed commit window, in blocks
	MinLength uint64 `json:"minLength" yaml:"minLength"`
	// RevealLength is the length of the reveal window, in blocks
	RevealLength uint64 `json:"revealLength" yaml:"revealLength"`
	// PotID is the module identifier the settlement pot account derives from
	PotID string `json:"potID" yaml:"potID"`
	// MaxTitleLen bounds proposal content
	MaxTitleLen int `json:"maxTitleLen" yaml:"maxTitleLen"`

	// Block configuration
	BlockInterval  time.Duration `json:"blockInterval" yaml:"blockInterval"`
	MaxTxsPerBlock int           `json:"maxTxsPerBlock" yaml:"maxTxsPerBlock"`
	MempoolSize    int           `json:"mempoolSize" yaml:"mempoolSize"`
	// EmptyBlocks builds a block every BlockInterval even with no pending
	// txs, so the height keeps advancing on an idle chain.
	EmptyBlocks bool `json:"emptyBlocks" yaml:"emptyBlocks"`

	// SenderCacheSize is the number of recovered tx senders kept in memory
	SenderCacheSize int `json:"senderCacheSize" yaml:"senderCacheSize"`
}

// DefaultConfig returns the default configuration for the governance VM.
func DefaultConfig() Config {
	return Config{
		EntryDeposit: 30_000 * Unit,
		MaxProposals: 10,
		MinLength:    100,
		RevealLength: 50,
		PotID:        "p/v8t1ng",
		MaxTitleLen:  4096,

		BlockInterval:  2 * time.Second,
		MaxTxsPerBlock: 256,
		MempoolSize:    4096,
		EmptyBlocks:    true,

		SenderCacheSize: 2048,
	}
}

// Parse applies the JSON in configBytes on top of DefaultConfig.
func Parse(configBytes []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(configBytes) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(configBytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Verify()
}

// Verify returns an error wrapping ErrInvalidConfig if c cannot run a chain.
func (c Config) Verify() error {
	var err error
	switch {
	case c.MaxProposals == 0:
		err = errZeroMaxProposals
	case c.RevealLength == 0:
		err = errZeroRevealLength
	case len(c.PotID) != PotIDLen:
		err = errBadPotID
	case c.MaxTxsPerBlock <= 0:
		err = errZeroMaxTxsInBlock
	case c.MaxTitleLen <= 0:
		err = errZeroMaxTitleLen
	case c.BlockInterval <= 0:
		err = errZeroBlockInterval
	default:
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
