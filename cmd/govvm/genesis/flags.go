// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/genesis"
)

const (
	TimestampKey  = "timestamp"
	AllocationKey = "allocation"
	IdentityKey   = "identity"
	OutputKey     = "output"
)

var errMalformedPair = errors.New("expected <address>=<value>")

func AddFlags(flags *pflag.FlagSet) {
	flags.Int64(TimestampKey, time.Now().Unix(), "Unix timestamp of the genesis block")
	flags.StringSlice(AllocationKey, nil, "Balance to fund in the genesis, as <address>=<balance>")
	flags.StringSlice(IdentityKey, nil, "Identity to register in the genesis, as <address>=<name>")
	flags.String(OutputKey, "genesis.bin", "File to write the genesis bytes to")
}

type Config struct {
	Genesis *genesis.Genesis
	Output  string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	timestamp, err := flags.GetInt64(TimestampKey)
	if err != nil {
		return nil, err
	}
	allocations, err := flags.GetStringSlice(AllocationKey)
	if err != nil {
		return nil, err
	}
	identities, err := flags.GetStringSlice(IdentityKey)
	if err != nil {
		return nil, err
	}
	output, err := flags.GetString(OutputKey)
	if err != nil {
		return nil, err
	}

	g := &genesis.Genesis{Timestamp: timestamp}
	for _, pair := range allocations {
		addr, value, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		balance, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid balance of %s: %w", addr, err)
		}
		g.Allocations = append(g.Allocations, genesis.Allocation{
			Address: addr,
			Balance: balance,
		})
	}
	for _, pair := range identities {
		addr, name, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		g.Identities = append(g.Identities, genesis.Identity{
			Address: addr,
			Name:    name,
		})
	}
	return &Config{
		Genesis: g,
		Output:  output,
	}, nil
}

func parsePair(pair string) (ids.ShortID, string, error) {
	addrStr, value, ok := strings.Cut(pair, "=")
	if !ok {
		return ids.ShortEmpty, "", fmt.Errorf("%w: %q", errMalformedPair, pair)
	}
	addr, err := ids.ShortFromString(addrStr)
	if err != nil {
		return ids.ShortEmpty, "", err
	}
	return addr, value, nil
}
