// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/state"
)

// Backend holds the collaborators a call runs against. All of them must share
// one pending write set so that a failed call can be discarded whole.
type Backend struct {
	Config     *config.Config
	State      state.Chain
	Currency   ledger.Currency
	Identities identity.Registry
	// Names stores identities registered on chain. It may be nil when identity
	// registration is handled elsewhere.
	Names identity.Writer
}

// Pot returns the account settlement slashes into.
func (b *Backend) Pot() ids.ShortID {
	return PotAccount(b.Config.PotID)
}

// PotAccount derives the settlement account of a module id: "modl" followed by
// the id bytes, zero padded.
func PotAccount(potID string) ids.ShortID {
	var addr ids.ShortID
	n := copy(addr[:], "modl")
	copy(addr[n:], potID)
	return addr
}
