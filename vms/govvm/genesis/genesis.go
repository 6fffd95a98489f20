// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/ledger"
)

var errDuplicateAllocation = errors.New("duplicate allocation")

type Genesis struct {
	Timestamp   int64        `serialize:"true" json:"timestamp"`
	Allocations []Allocation `serialize:"true" json:"allocations"`
	Identities  []Identity   `serialize:"true" json:"identities"`
}

type Allocation struct {
	Address ids.ShortID `serialize:"true" json:"address"`
	Balance uint64      `serialize:"true" json:"balance"`
}

// Identity pre-registers a display name so that the account can join the
// committee from the first block.
type Identity struct {
	Address ids.ShortID `serialize:"true" json:"address"`
	Name    string      `serialize:"true" json:"name"`
}

func Parse(bytes []byte) (*Genesis, error) {
	g := &Genesis{}
	_, err := Codec.Unmarshal(bytes, g)
	return g, err
}

func (g *Genesis) Bytes() ([]byte, error) {
	return Codec.Marshal(CodecVersion, g)
}

// Apply credits every allocation and registers every identity in db.
func (g *Genesis) Apply(db database.Database) error {
	balances := ledger.New(db)
	seen := make(map[ids.ShortID]struct{}, len(g.Allocations))
	for _, allocation := range g.Allocations {
		if _, ok := seen[allocation.Address]; ok {
			return fmt.Errorf("%w: %s", errDuplicateAllocation, allocation.Address)
		}
		seen[allocation.Address] = struct{}{}
		if err := balances.Mint(allocation.Address, allocation.Balance); err != nil {
			return err
		}
	}

	names := identity.New(db)
	for _, id := range g.Identities {
		if err := identity.VerifyName(id.Name); err != nil {
			return fmt.Errorf("identity of %s: %w", id.Address, err)
		}
		if err := names.Set(id.Address, id.Name); err != nil {
			return err
		}
	}
	return nil
}
