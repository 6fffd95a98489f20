// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block defines the blocks of the governance VM. A block carries an
// ordered list of signed transactions; its height is the clock every window
// of the committee is measured in.
package block

import (
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/units"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

const (
	// MaxSize bounds an encoded block.
	MaxSize = 2 * units.MiB
	// MaxTxsSize bounds the summed size of the txs in a block, leaving room
	// for the header and the codec's framing.
	MaxTxsSize = MaxSize - 64*units.KiB
)

var (
	ErrWrongParent = errors.New("wrong parent block")
	ErrWrongHeight = errors.New("wrong block height")
	ErrTooLarge    = errors.New("block too large")
)

type Block struct {
	ParentID ids.ID    `serialize:"true" json:"parentID"`
	Height   uint64    `serialize:"true" json:"height"`
	Time     int64     `serialize:"true" json:"time"`
	Txs      []*txs.Tx `serialize:"true" json:"txs"`

	id    ids.ID
	bytes []byte
}

// New builds a block at height on top of parentID.
func New(parentID ids.ID, height uint64, timestamp time.Time, transactions []*txs.Tx) (*Block, error) {
	blk := &Block{
		ParentID: parentID,
		Height:   height,
		Time:     timestamp.Unix(),
		Txs:      transactions,
	}
	bytes, err := txs.Codec.Marshal(txs.CodecVersion, blk)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal block: %w", err)
	}
	if len(bytes) > MaxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(bytes), MaxSize)
	}
	blk.setBytes(bytes)
	return blk, nil
}

func Parse(bytes []byte) (*Block, error) {
	blk := &Block{}
	if _, err := txs.Codec.Unmarshal(bytes, blk); err != nil {
		return nil, fmt.Errorf("couldn't parse block: %w", err)
	}
	for i, tx := range blk.Txs {
		if err := tx.Initialize(); err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
	}
	blk.setBytes(bytes)
	return blk, nil
}

func (b *Block) setBytes(bytes []byte) {
	b.bytes = bytes
	b.id = hash.ComputeHash256Array(bytes)
}

func (b *Block) ID() ids.ID    { return b.id }
func (b *Block) Bytes() []byte { return b.bytes }

func (b *Block) Timestamp() time.Time {
	return time.Unix(b.Time, 0)
}

// VerifyChild checks that child extends b.
func (b *Block) VerifyChild(child *Block) error {
	if child.ParentID != b.id {
		return fmt.Errorf("%w: parent %s, expected %s", ErrWrongParent, child.ParentID, b.id)
	}
	if child.Height != b.Height+1 {
		return fmt.Errorf("%w: %d follows %d", ErrWrongHeight, child.Height, b.Height)
	}
	return nil
}
