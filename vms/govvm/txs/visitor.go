// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Visitor runs custom logic against each concrete transaction type.
type Visitor interface {
	JoinTx(*JoinTx) error
	LeaveTx(*LeaveTx) error
	CreateProposalTx(*CreateProposalTx) error
	CommitVoteTx(*CommitVoteTx) error
	RevealVoteTx(*RevealVoteTx) error
	CloseVoteTx(*CloseVoteTx) error
	CloseRevealTx(*CloseRevealTx) error
	RegisterIdentityTx(*RegisterIdentityTx) error
}
