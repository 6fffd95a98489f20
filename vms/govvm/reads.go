// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/state"
)

// The accessors below read accepted state only.

func (vm *VM) Bootstrapped() bool {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.bootstrapped
}

func (vm *VM) MemberCount() (uint32, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.MemberCount()
}

func (vm *VM) GetMember(addr ids.ShortID) (*state.Member, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.GetMember(addr)
}

func (vm *VM) GetIdentity(addr ids.ShortID) (string, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return identity.New(vm.db).Name(addr)
}

func (vm *VM) GetBalance(addr ids.ShortID) (ledger.Balance, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return ledger.New(vm.db).Balance(addr)
}

func (vm *VM) GetProposal(proposalID ids.ID) (*state.Proposal, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.GetProposal(proposalID)
}

func (vm *VM) ActiveProposals() ([]ids.ID, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.ActiveProposals()
}

func (vm *VM) GetCommit(voter ids.ShortID, proposalID ids.ID) (*state.Commit, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.GetCommit(voter, proposalID)
}

func (vm *VM) ProposalCommitments(proposalID ids.ID) ([]ids.ShortID, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state.ProposalCommitments(proposalID)
}

// GetBlockByHeight returns the accepted block at height.
func (vm *VM) GetBlockByHeight(height uint64) (*block.Block, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	blkID, err := vm.state.GetBlockIDAtHeight(height)
	if err != nil {
		return nil, err
	}
	blkBytes, err := vm.state.GetBlock(blkID)
	if err != nil {
		return nil, err
	}
	return block.Parse(blkBytes)
}

// GetTxStatus reports Processing for txs still in the mempool and Unknown for
// txs never seen.
func (vm *VM) GetTxStatus(txID ids.ID) (*state.TxRecord, error) {
	if vm.mempool.Has(txID) {
		return &state.TxRecord{Status: state.Processing}, nil
	}

	vm.lock.RLock()
	defer vm.lock.RUnlock()

	record, err := vm.state.GetTx(txID)
	if errors.Is(err, database.ErrNotFound) {
		return &state.TxRecord{Status: state.Unknown}, nil
	}
	return record, err
}
