// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"github.com/luxfi/log"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/vms/govvm/identity"
)

var _ govchain.Factory = (*Factory)(nil)

type Factory struct {
	// Identities, when set, is consulted instead of the identities
	// registered on chain.
	Identities identity.Registry
}

func (f *Factory) New(log.Logger) (govchain.ChainVM, error) {
	return &VM{identities: f.Identities}, nil
}
