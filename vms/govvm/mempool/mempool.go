// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool holds issued transactions until they are packed into a
// block. Transactions leave in the order they arrived.
package mempool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"

	"github.com/luxfi/govchain"
	"github.com/luxfi/govchain/vms/govvm/txs"
)

const defaultTreeDegree = 2

var (
	ErrDuplicateTx = errors.New("duplicate tx")
	ErrMempoolFull = errors.New("mempool is full")
)

type entry struct {
	seq uint64
	tx  *txs.Tx
}

func (e *entry) Less(other *entry) bool {
	return e.seq < other.seq
}

type Mempool struct {
	lock     sync.RWMutex
	capacity int
	nextSeq  uint64
	bytes    int
	ordered  *btree.BTreeG[*entry]
	byID     map[ids.ID]*entry
	metrics  *metrics

	// pending is signalled whenever a tx is added.
	pending chan struct{}
}

// New returns a mempool holding at most capacity txs.
func New(capacity int, registerer metric.Registerer) (*Mempool, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Mempool{
		capacity: capacity,
		ordered:  btree.NewG(defaultTreeDegree, (*entry).Less),
		byID:     make(map[ids.ID]*entry),
		metrics:  m,
		pending:  make(chan struct{}, 1),
	}, nil
}

func (m *Mempool) Add(tx *txs.Tx) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	txID := tx.ID()
	if _, ok := m.byID[txID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTx, txID)
	}
	if len(m.byID) >= m.capacity {
		return fmt.Errorf("%w: dropping %s", ErrMempoolFull, txID)
	}

	e := &entry{seq: m.nextSeq, tx: tx}
	m.nextSeq++
	m.ordered.ReplaceOrInsert(e)
	m.byID[txID] = e
	m.bytes += tx.Size()
	m.metrics.update(len(m.byID), m.bytes)

	select {
	case m.pending <- struct{}{}:
	default:
	}
	return nil
}

func (m *Mempool) Get(txID ids.ID) (*txs.Tx, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	e, ok := m.byID[txID]
	if !ok {
		return nil, false
	}
	return e.tx, true
}

func (m *Mempool) Has(txID ids.ID) bool {
	_, ok := m.Get(txID)
	return ok
}

func (m *Mempool) Remove(toRemove ...*txs.Tx) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, tx := range toRemove {
		e, ok := m.byID[tx.ID()]
		if !ok {
			continue
		}
		m.ordered.Delete(e)
		delete(m.byID, tx.ID())
		m.bytes -= e.tx.Size()
	}
	m.metrics.update(len(m.byID), m.bytes)
}

func (m *Mempool) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return len(m.byID)
}

// Peek returns up to n txs, oldest first, without removing them.
func (m *Mempool) Peek(n int) []*txs.Tx {
	m.lock.RLock()
	defer m.lock.RUnlock()

	result := make([]*txs.Tx, 0, min(n, len(m.byID)))
	m.ordered.Ascend(func(e *entry) bool {
		if len(result) >= n {
			return false
		}
		result = append(result, e.tx)
		return true
	})
	return result
}

// WaitForEvent returns once the mempool holds at least one tx.
func (m *Mempool) WaitForEvent(ctx context.Context) (govchain.Message, error) {
	for {
		if m.Len() > 0 {
			return govchain.Message{Type: govchain.PendingTxs}, nil
		}
		select {
		case <-m.pending:
		case <-ctx.Done():
			return govchain.Message{}, ctx.Err()
		}
	}
}
