// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/govchain/vms/govvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics() *txMetrics {
	return &txMetrics{
		numTxs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "txs_accepted",
				Help: "number of transactions accepted",
			},
			txLabels,
		),
	}
}

func (m *txMetrics) inc(label string) error {
	m.numTxs.With(metric.Labels{
		txLabel: label,
	}).Inc()
	return nil
}

func (m *txMetrics) JoinTx(*txs.JoinTx) error {
	return m.inc("join")
}

func (m *txMetrics) LeaveTx(*txs.LeaveTx) error {
	return m.inc("leave")
}

func (m *txMetrics) CreateProposalTx(*txs.CreateProposalTx) error {
	return m.inc("create_proposal")
}

func (m *txMetrics) CommitVoteTx(*txs.CommitVoteTx) error {
	return m.inc("commit_vote")
}

func (m *txMetrics) RevealVoteTx(*txs.RevealVoteTx) error {
	return m.inc("reveal_vote")
}

func (m *txMetrics) CloseVoteTx(*txs.CloseVoteTx) error {
	return m.inc("close_vote")
}

func (m *txMetrics) CloseRevealTx(*txs.CloseRevealTx) error {
	return m.inc("close_reveal")
}

func (m *txMetrics) RegisterIdentityTx(*txs.RegisterIdentityTx) error {
	return m.inc("register_identity")
}
