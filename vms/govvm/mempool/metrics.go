// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"github.com/luxfi/metric"
)

type metrics struct {
	numTxs    metric.Gauge
	bytesUsed metric.Gauge
}

func newMetrics(registerer metric.Registerer) (*metrics, error) {
	m := &metrics{
		numTxs: metric.NewGauge(metric.GaugeOpts{
			Name: "mempool_num_txs",
			Help: "Number of transactions in mempool",
		}),
		bytesUsed: metric.NewGauge(metric.GaugeOpts{
			Name: "mempool_bytes_used",
			Help: "Number of bytes used by mempool",
		}),
	}

	err := registerer.Register(metric.AsCollector(m.numTxs))
	if err != nil {
		return nil, err
	}
	err = registerer.Register(metric.AsCollector(m.bytesUsed))
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) update(numTxs, bytesUsed int) {
	m.numTxs.Set(float64(numTxs))
	m.bytesUsed.Set(float64(bytesUsed))
}
