// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements a reservable currency: every account has a free
// balance and a reserved balance, and funds only move between them or between
// reserved balances.
package ledger

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	"github.com/luxfi/govchain/utils/math"
	"github.com/luxfi/govchain/utils/wrappers"
)

const balanceLen = 2 * wrappers.LongLen

var (
	_ Currency = (*Ledger)(nil)

	ErrInsufficientBalance = errors.New("insufficient balance")
	errCorruptBalance      = errors.New("corrupt balance")

	balancePrefix = []byte("balance")
)

// Currency is the subset of a reservable currency the committee relies on.
type Currency interface {
	FreeBalance(addr ids.ShortID) (uint64, error)
	ReservedBalance(addr ids.ShortID) (uint64, error)
	CanReserve(addr ids.ShortID, amount uint64) (bool, error)
	// Reserve moves amount from free to reserved.
	Reserve(addr ids.ShortID, amount uint64) error
	// Unreserve moves up to amount from reserved to free and returns the
	// amount moved.
	Unreserve(addr ids.ShortID, amount uint64) (uint64, error)
	// RepatriateReserved moves up to amount from the reserved balance of from
	// to the reserved balance of to and returns the amount moved.
	RepatriateReserved(from, to ids.ShortID, amount uint64) (uint64, error)
}

// Balance of one account.
type Balance struct {
	Free     uint64 `json:"free"`
	Reserved uint64 `json:"reserved"`
}

// Ledger implements Currency over a database.
type Ledger struct {
	db database.Database
}

func New(db database.Database) *Ledger {
	return &Ledger{db: prefixdb.New(balancePrefix, db)}
}

func (l *Ledger) Balance(addr ids.ShortID) (Balance, error) {
	bytes, err := l.db.Get(addr[:])
	if errors.Is(err, database.ErrNotFound) {
		return Balance{}, nil
	}
	if err != nil {
		return Balance{}, err
	}
	if len(bytes) != balanceLen {
		return Balance{}, fmt.Errorf("%w: %s has %d bytes", errCorruptBalance, addr, len(bytes))
	}

	p := wrappers.Packer{Bytes: bytes}
	return Balance{
		Free:     p.UnpackLong(),
		Reserved: p.UnpackLong(),
	}, p.Err
}

func (l *Ledger) putBalance(addr ids.ShortID, b Balance) error {
	if b.Free == 0 && b.Reserved == 0 {
		return l.db.Delete(addr[:])
	}
	p := wrappers.Packer{MaxSize: balanceLen}
	p.PackLong(b.Free)
	p.PackLong(b.Reserved)
	if p.Err != nil {
		return p.Err
	}
	return l.db.Put(addr[:], p.Bytes)
}

// Mint credits amount to the free balance of addr. Used by genesis.
func (l *Ledger) Mint(addr ids.ShortID, amount uint64) error {
	b, err := l.Balance(addr)
	if err != nil {
		return err
	}
	b.Free, err = math.Add(b.Free, amount)
	if err != nil {
		return err
	}
	return l.putBalance(addr, b)
}

func (l *Ledger) FreeBalance(addr ids.ShortID) (uint64, error) {
	b, err := l.Balance(addr)
	return b.Free, err
}

func (l *Ledger) ReservedBalance(addr ids.ShortID) (uint64, error) {
	b, err := l.Balance(addr)
	return b.Reserved, err
}

func (l *Ledger) CanReserve(addr ids.ShortID, amount uint64) (bool, error) {
	b, err := l.Balance(addr)
	if err != nil {
		return false, err
	}
	if b.Free < amount {
		return false, nil
	}
	_, err = math.Add(b.Reserved, amount)
	return err == nil, nil
}

func (l *Ledger) Reserve(addr ids.ShortID, amount uint64) error {
	b, err := l.Balance(addr)
	if err != nil {
		return err
	}
	free, err := math.Sub(b.Free, amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %d free, needs %d", ErrInsufficientBalance, addr, b.Free, amount)
	}
	reserved, err := math.Add(b.Reserved, amount)
	if err != nil {
		return err
	}
	return l.putBalance(addr, Balance{Free: free, Reserved: reserved})
}

func (l *Ledger) Unreserve(addr ids.ShortID, amount uint64) (uint64, error) {
	b, err := l.Balance(addr)
	if err != nil {
		return 0, err
	}
	amount = min(amount, b.Reserved)
	free, err := math.Add(b.Free, amount)
	if err != nil {
		return 0, err
	}
	return amount, l.putBalance(addr, Balance{Free: free, Reserved: b.Reserved - amount})
}

func (l *Ledger) RepatriateReserved(from, to ids.ShortID, amount uint64) (uint64, error) {
	if from == to {
		reserved, err := l.ReservedBalance(from)
		return min(amount, reserved), err
	}

	fromBalance, err := l.Balance(from)
	if err != nil {
		return 0, err
	}
	toBalance, err := l.Balance(to)
	if err != nil {
		return 0, err
	}

	amount = min(amount, fromBalance.Reserved)
	toBalance.Reserved, err = math.Add(toBalance.Reserved, amount)
	if err != nil {
		return 0, err
	}
	fromBalance.Reserved -= amount

	if err := l.putBalance(from, fromBalance); err != nil {
		return 0, err
	}
	return amount, l.putBalance(to, toBalance)
}
