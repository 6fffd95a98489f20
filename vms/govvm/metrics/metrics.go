// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/govchain/utils/wrappers"
	"github.com/luxfi/govchain/vms/govvm/block"
	"github.com/luxfi/govchain/vms/govvm/txs"
	"github.com/luxfi/govchain/vms/govvm/txs/executor"

	utilmetric "github.com/luxfi/govchain/utils/metric"
)

const outcomeLabel = "outcome"

var (
	_ Metrics = (*metricsImpl)(nil)

	approvedLabels    = metric.Labels{outcomeLabel: "approved"}
	disapprovedLabels = metric.Labels{outcomeLabel: "disapproved"}
)

// Block is an accepted block together with what executing it produced.
type Block struct {
	Block *block.Block

	// Accepted are the txs that executed successfully, in block order.
	Accepted []*txs.Tx
	Failed   int
	Events   []executor.Event
}

type Metrics interface {
	utilmetric.APIInterceptor

	// Mark that the given block was accepted.
	MarkAccepted(Block) error
	// Mark that a tx was turned away at issuance.
	IncTxsRejected()
	// Mark the number of active proposals after the last block.
	SetActiveProposals(int)
	// Mark the committee size after the last block.
	SetMembers(uint32)
}

func New(namespace string, registry metric.Registry) (Metrics, error) {
	m := &metricsImpl{
		APIInterceptor: utilmetric.NewAPIInterceptor(namespace, registry),
		txMetrics:      newTxMetrics(),
		blockTxs:       utilmetric.NewAverager("block_txs", "transactions per accepted block", registry),

		numBlocks: metric.NewCounter(metric.CounterOpts{
			Name: "blks_accepted",
			Help: "number of blocks accepted",
		}),
		txsFailed: metric.NewCounter(metric.CounterOpts{
			Name: "txs_failed",
			Help: "number of transactions included in a block that failed to execute",
		}),
		txsRejected: metric.NewCounter(metric.CounterOpts{
			Name: "txs_rejected",
			Help: "number of transactions rejected before reaching the mempool",
		}),
		slashed: metric.NewCounter(metric.CounterOpts{
			Name: "slashed",
			Help: "Cumulative collateral moved from losing voters into the pot",
		}),
		paid: metric.NewCounter(metric.CounterOpts{
			Name: "paid",
			Help: "Cumulative collateral paid out of the pot to winning voters",
		}),
		settled: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "proposals_settled",
				Help: "number of proposals settled, by outcome",
			},
			[]string{outcomeLabel},
		),
		activeProposals: metric.NewGauge(metric.GaugeOpts{
			Name: "active_proposals",
			Help: "Number of proposals that are not yet settled",
		}),
		members: metric.NewGauge(metric.GaugeOpts{
			Name: "members",
			Help: "Number of committee members",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registry.Register(metric.AsCollector(m.txMetrics.numTxs)),
		registry.Register(metric.AsCollector(m.numBlocks)),
		registry.Register(metric.AsCollector(m.txsFailed)),
		registry.Register(metric.AsCollector(m.txsRejected)),
		registry.Register(metric.AsCollector(m.slashed)),
		registry.Register(metric.AsCollector(m.paid)),
		registry.Register(metric.AsCollector(m.settled)),
		registry.Register(metric.AsCollector(m.activeProposals)),
		registry.Register(metric.AsCollector(m.members)),
	)
	return m, errs.Err
}

type metricsImpl struct {
	utilmetric.APIInterceptor

	txMetrics *txMetrics
	blockTxs  utilmetric.Averager

	numBlocks   metric.Counter
	txsFailed   metric.Counter
	txsRejected metric.Counter

	// Settlement metrics
	slashed         metric.Counter
	paid            metric.Counter
	settled         metric.CounterVec
	activeProposals metric.Gauge
	members         metric.Gauge
}

func (m *metricsImpl) MarkAccepted(b Block) error {
	m.numBlocks.Inc()
	m.blockTxs.Observe(float64(len(b.Block.Txs)))
	m.txsFailed.Add(float64(b.Failed))

	for _, tx := range b.Accepted {
		if err := tx.Unsigned.Visit(m.txMetrics); err != nil {
			return err
		}
	}
	for _, event := range b.Events {
		switch e := event.(type) {
		case *executor.Slashed:
			m.slashed.Add(float64(e.Amount))
		case *executor.Rewarded:
			m.paid.Add(float64(e.Amount))
		case *executor.Approved:
			m.settled.With(approvedLabels).Inc()
		case *executor.Disapproved:
			m.settled.With(disapprovedLabels).Inc()
		}
	}
	return nil
}

func (m *metricsImpl) IncTxsRejected() {
	m.txsRejected.Inc()
}

func (m *metricsImpl) SetActiveProposals(n int) {
	m.activeProposals.Set(float64(n))
}

func (m *metricsImpl) SetMembers(n uint32) {
	m.members.Set(float64(n))
}
