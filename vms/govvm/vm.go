// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package govvm implements a governance committee as a block-driven VM.
// Members lock collateral, vote on proposals in a commit-reveal scheme and are
// paid or slashed when a proposal settles. Every window is measured in block
// heights.
package govvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/database"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/utils/json"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/utils/timer/mockable"
	"github.com/luxfi/govchain/vms/govvm/api"
	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/builder"
	"github.com/luxfi/govchain/vms/govvm/config"
	"github.com/luxfi/govchain/vms/govvm/genesis"
	"github.com/luxfi/govchain/vms/govvm/identity"
	"github.com/luxfi/govchain/vms/govvm/ledger"
	"github.com/luxfi/govchain/vms/govvm/mempool"
	"github.com/luxfi/govchain/vms/govvm/metrics"
	"github.com/luxfi/govchain/vms/govvm/state"
	"github.com/luxfi/govchain/vms/govvm/txs"
	"github.com/luxfi/govchain/vms/govvm/txs/executor"
)

const Version = "v1.0.0"

var (
	_ govchain.ChainVM = (*VM)(nil)
	_ api.Backend      = (*VM)(nil)
	_ builder.Chain    = (*VM)(nil)

	ErrNotBootstrapped = errors.New("vm not bootstrapped")
	ErrShutdown        = errors.New("vm is shut down")
	ErrTxIncluded      = errors.New("tx already included")
	ErrTxTooLarge      = errors.New("tx too large")

	errUnknownState = errors.New("unknown state")
)

// TxResult is the outcome of one tx of a processed block.
type TxResult struct {
	TxID   ids.ID
	Events []executor.Event
	// Err is set when the tx failed. A failed tx is still part of the block.
	Err error
}

type BlockResult struct {
	Block *block.Block
	Txs   []TxResult
}

type VM struct {
	config.Config

	log  log.Logger
	lock sync.RWMutex

	chainID ids.ID
	db      database.Database
	state   *state.State

	clock   mockable.Clock
	metrics metrics.Metrics
	senders *txs.SenderRecoverer
	mempool *mempool.Mempool
	builder builder.Builder

	// identities replaces the on-chain registry when set
	identities identity.Registry

	lastAccepted *block.Block
	bootstrapped bool
	shutdown     bool
}

func (vm *VM) Initialize(_ context.Context, cfg *govchain.Config) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.log = cfg.Log
	vm.chainID = cfg.ChainID
	vm.db = cfg.DB
	vm.state = state.New(vm.db)

	vm.Config = config.DefaultConfig()
	if len(cfg.ConfigBytes) > 0 {
		parsed, err := config.Parse(cfg.ConfigBytes)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		vm.Config = parsed
	}

	var err error
	vm.metrics, err = metrics.New("govvm", cfg.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	vm.mempool, err = mempool.New(vm.MempoolSize, cfg.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize mempool: %w", err)
	}
	vm.senders = txs.NewSenderRecoverer(vm.SenderCacheSize)

	if err := vm.initLastAccepted(cfg.Genesis); err != nil {
		return err
	}
	vm.builder = builder.New(vm.log, &vm.clock, vm, vm.mempool, vm.MaxTxsPerBlock, vm.EmptyBlocks)

	vm.log.Info("initialized govvm",
		log.Stringer("chainID", vm.chainID),
		log.Stringer("lastAcceptedID", vm.lastAccepted.ID()),
		log.Uint64("height", vm.lastAccepted.Height),
	)
	return nil
}

// initLastAccepted loads the last accepted block, applying genesis first when
// the database is empty.
func (vm *VM) initLastAccepted(genesisBytes []byte) error {
	lastAcceptedID, _, err := vm.state.LastAccepted()
	if err != nil {
		return err
	}
	if lastAcceptedID != ids.Empty {
		blkBytes, err := vm.state.GetBlock(lastAcceptedID)
		if err != nil {
			return fmt.Errorf("failed to load last accepted block %s: %w", lastAcceptedID, err)
		}
		vm.lastAccepted, err = block.Parse(blkBytes)
		return err
	}

	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return fmt.Errorf("failed to parse genesis bytes: %w", err)
	}
	vdb := versiondb.New(vm.db)
	if err := g.Apply(vdb); err != nil {
		vdb.Abort()
		return fmt.Errorf("failed to initialize genesis state: %w", err)
	}
	genesisBlock, err := block.New(ids.Empty, 0, time.Unix(g.Timestamp, 0), nil)
	if err != nil {
		return err
	}
	s := state.New(vdb)
	if err := s.PutBlock(genesisBlock.ID(), 0, genesisBlock.Bytes()); err != nil {
		return err
	}
	if err := s.SetLastAccepted(genesisBlock.ID(), 0); err != nil {
		return err
	}
	if err := vdb.Commit(); err != nil {
		return err
	}
	vm.lastAccepted = genesisBlock
	return nil
}

func (vm *VM) SetState(_ context.Context, newState govchain.State) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	switch newState {
	case govchain.Bootstrapping:
		vm.bootstrapped = false
	case govchain.NormalOp:
		vm.bootstrapped = true
	default:
		return fmt.Errorf("%w: %s", errUnknownState, newState)
	}
	vm.log.Info("govvm changed state",
		log.Stringer("state", newState),
	)
	return nil
}

// IssueTx adds tx to the mempool after checking it can be included.
func (vm *VM) IssueTx(tx *txs.Tx) error {
	if err := vm.verifyIssuance(tx); err != nil {
		vm.metrics.IncTxsRejected()
		vm.log.Debug("rejected tx",
			log.Stringer("txID", tx.ID()),
			log.Err(err),
		)
		return err
	}
	return vm.mempool.Add(tx)
}

func (vm *VM) verifyIssuance(tx *txs.Tx) error {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	switch {
	case vm.shutdown:
		return ErrShutdown
	case !vm.bootstrapped:
		return ErrNotBootstrapped
	case tx.Size() > block.MaxTxsSize:
		return fmt.Errorf("%w: %d > %d", ErrTxTooLarge, tx.Size(), block.MaxTxsSize)
	}
	if err := tx.SyntacticVerify(vm.chainID); err != nil {
		return err
	}
	if _, err := vm.senders.Sender(tx); err != nil {
		return err
	}
	included, err := vm.state.HasTx(tx.ID())
	if err != nil {
		return err
	}
	if included {
		return fmt.Errorf("%w: %s", ErrTxIncluded, tx.ID())
	}
	return nil
}

func (vm *VM) WaitForEvent(ctx context.Context) (govchain.Message, error) {
	return vm.builder.WaitForEvent(ctx)
}

// BuildBlock builds a block from the mempool and processes it.
func (vm *VM) BuildBlock(ctx context.Context) (ids.ID, error) {
	blk, err := vm.builder.BuildBlock(ctx)
	if err != nil {
		return ids.Empty, err
	}
	if _, err := vm.ProcessBlock(ctx, blk); err != nil {
		return ids.Empty, err
	}
	return blk.ID(), nil
}

// ProcessBlock executes and accepts blk. Each tx commits or aborts on its own;
// a failing tx is recorded and does not fail the block.
func (vm *VM) ProcessBlock(_ context.Context, blk *block.Block) (*BlockResult, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown {
		return nil, ErrShutdown
	}
	if err := vm.lastAccepted.VerifyChild(blk); err != nil {
		return nil, err
	}

	blockDB := versiondb.New(vm.db)
	blockState := state.New(blockDB)
	result := &BlockResult{
		Block: blk,
		Txs:   make([]TxResult, 0, len(blk.Txs)),
	}
	marked := metrics.Block{Block: blk}
	for _, tx := range blk.Txs {
		txResult, err := vm.processTx(blockDB, blockState, blk.Height, tx)
		if err != nil {
			blockDB.Abort()
			return nil, err
		}
		result.Txs = append(result.Txs, txResult)
		if txResult.Err != nil {
			marked.Failed++
			continue
		}
		marked.Accepted = append(marked.Accepted, tx)
		marked.Events = append(marked.Events, txResult.Events...)
	}

	if err := blockState.PutBlock(blk.ID(), blk.Height, blk.Bytes()); err != nil {
		blockDB.Abort()
		return nil, err
	}
	if err := blockState.SetLastAccepted(blk.ID(), blk.Height); err != nil {
		blockDB.Abort()
		return nil, err
	}
	if err := blockDB.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit block %s: %w", blk.ID(), err)
	}

	vm.lastAccepted = blk
	vm.mempool.Remove(blk.Txs...)
	if err := vm.markAccepted(marked); err != nil {
		return nil, err
	}

	vm.log.Info("accepted block",
		log.Stringer("blkID", blk.ID()),
		log.Uint64("height", blk.Height),
		log.Int("numTxs", len(blk.Txs)),
		log.Int("numFailed", marked.Failed),
	)
	return result, nil
}

// processTx runs tx in its own versiondb on top of blockDB. The returned error
// is reserved for database failures; execution failures go in TxResult.
func (vm *VM) processTx(blockDB database.Database, blockState *state.State, height uint64, tx *txs.Tx) (TxResult, error) {
	txID := tx.ID()
	result := TxResult{TxID: txID}

	included, err := blockState.HasTx(txID)
	if err != nil {
		return result, err
	}
	if included {
		result.Err = fmt.Errorf("%w: %s", ErrTxIncluded, txID)
		return result, nil
	}

	result.Events, result.Err = vm.executeTx(blockDB, height, tx)
	record := &state.TxRecord{
		Status: state.Accepted,
		Height: height,
	}
	if result.Err != nil {
		record.Status = state.Failed
		record.Reason = result.Err.Error()
		vm.log.Debug("tx failed",
			log.Stringer("txID", txID),
			log.Uint64("height", height),
			log.Err(result.Err),
		)
	}
	return result, blockState.PutTx(txID, record)
}

func (vm *VM) executeTx(blockDB database.Database, height uint64, tx *txs.Tx) ([]executor.Event, error) {
	if err := tx.SyntacticVerify(vm.chainID); err != nil {
		return nil, err
	}
	sender, err := vm.senders.Sender(tx)
	if err != nil {
		return nil, err
	}

	txDB := versiondb.New(blockDB)
	registry := identity.New(txDB)
	backend := &executor.Backend{
		Config:     &vm.Config,
		State:      state.New(txDB),
		Currency:   ledger.New(txDB),
		Identities: registry,
		Names:      registry,
	}
	if vm.identities != nil {
		backend.Identities = vm.identities
	}

	result, err := executor.Execute(backend, height, sender, tx.Unsigned)
	if err != nil {
		txDB.Abort()
		return nil, err
	}
	if err := txDB.Commit(); err != nil {
		return nil, err
	}
	return result.Events, nil
}

func (vm *VM) markAccepted(b metrics.Block) error {
	if err := vm.metrics.MarkAccepted(b); err != nil {
		return err
	}
	active, err := vm.state.ActiveProposals()
	if err != nil {
		return err
	}
	members, err := vm.state.MemberCount()
	if err != nil {
		return err
	}
	vm.metrics.SetActiveProposals(len(active))
	vm.metrics.SetMembers(members)
	return nil
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown || vm.db == nil {
		return nil
	}
	vm.shutdown = true
	vm.log.Info("shutting down govvm")
	return vm.db.Close()
}

func (*VM) Version(context.Context) (string, error) {
	return Version, nil
}

func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(vm.metrics.InterceptRequest)
	server.RegisterAfterFunc(vm.metrics.AfterRequest)
	return map[string]http.Handler{
		"": server,
	}, server.RegisterService(api.NewService(vm.log, vm), api.Name)
}

func (vm *VM) HealthCheck(context.Context) (any, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	health := map[string]any{
		"bootstrapped": vm.bootstrapped,
		"height":       vm.lastAccepted.Height,
		"pendingTxs":   vm.mempool.Len(),
	}
	if !vm.bootstrapped {
		return health, ErrNotBootstrapped
	}
	return health, nil
}

func (vm *VM) LastAccepted(context.Context) (ids.ID, error) {
	return vm.LastAcceptedBlock().ID(), nil
}

func (vm *VM) LastAcceptedBlock() *block.Block {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.lastAccepted
}
