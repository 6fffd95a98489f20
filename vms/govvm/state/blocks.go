// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/compression"
	"github.com/luxfi/govchain/utils/units"
)

// maxBlockSize bounds a stored block once decompressed.
const maxBlockSize = 4 * units.MiB

var blockCompressor compression.Compressor

func init() {
	var err error
	blockCompressor, err = compression.NewZstdCompressor(maxBlockSize)
	if err != nil {
		panic(err)
	}
}

// TxStatus is the outcome of a transaction that made it into a block.
type TxStatus uint8

const (
	Unknown TxStatus = iota
	Processing
	Accepted
	Failed
)

func (s TxStatus) String() string {
	switch s {
	case Processing:
		return "Processing"
	case Accepted:
		return "Accepted"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// TxRecord is kept for every transaction included in an accepted block. A
// failed transaction keeps the reason it was rejected.
type TxRecord struct {
	Status TxStatus `serialize:"true" json:"status"`
	Height uint64   `serialize:"true" json:"height"`
	Reason string   `serialize:"true" json:"reason,omitempty"`
}

// PutBlock stores an accepted block, compressed, and indexes it by height.
func (s *State) PutBlock(blkID ids.ID, height uint64, blkBytes []byte) error {
	compressed, err := blockCompressor.Compress(blkBytes)
	if err != nil {
		return err
	}
	if err := s.blocks.Put(blkID[:], compressed); err != nil {
		return err
	}
	return database.PutID(s.heights, database.PackUInt64(height), blkID)
}

func (s *State) GetBlock(blkID ids.ID) ([]byte, error) {
	compressed, err := s.blocks.Get(blkID[:])
	if err != nil {
		return nil, err
	}
	return blockCompressor.Decompress(compressed)
}

func (s *State) GetBlockIDAtHeight(height uint64) (ids.ID, error) {
	return database.GetID(s.heights, database.PackUInt64(height))
}

func (s *State) PutTx(txID ids.ID, record *TxRecord) error {
	return put(s.txs, txID[:], record)
}

func (s *State) GetTx(txID ids.ID) (*TxRecord, error) {
	record := &TxRecord{}
	return record, get(s.txs, txID[:], record)
}

func (s *State) HasTx(txID ids.ID) (bool, error) {
	return s.txs.Has(txID[:])
}
