// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/provisionvm/executor"
)

var _ executor.Metrics = (*executorMetrics)(nil)

type executorMetrics struct {
	blocked    prometheus.Counter
	executable prometheus.Counter
}

func (em *executorMetrics) RecordBlocked() {
	em.blocked.Inc()
}

func (em *executorMetrics) RecordExecutable() {
	em.executable.Inc()
}

type Metrics struct {
	txsSubmitted       prometheus.Counter
	txsDropped         prometheus.Counter
	txsAccepted        prometheus.Counter
	txsFailed          prometheus.Counter
	accountsCreated    prometheus.Counter
	stateChanges       prometheus.Counter
	blocksAccepted     prometheus.Counter
	executorBlocked    prometheus.Counter
	executorExecutable prometheus.Counter
	height             prometheus.Gauge
	waitSignatures     metric.Averager
	blockExecute       metric.Averager
	blockCommit        metric.Averager

	executorRecorder executor.Metrics
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	waitSignatures, err := metric.NewAverager(
		"chain_wait_signatures",
		"time spent waiting for signature verification in submit",
		r,
	)
	if err != nil {
		return nil, err
	}
	blockExecute, err := metric.NewAverager(
		"chain_block_execute",
		"time spent executing blocks",
		r,
	)
	if err != nil {
		return nil, err
	}
	blockCommit, err := metric.NewAverager(
		"chain_block_commit",
		"time spent committing blocks to disk",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of txs submitted to vm",
		}),
		txsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_dropped",
			Help:      "number of submitted txs not included in a block",
		}),
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_accepted",
			Help:      "number of txs accepted by vm",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_failed",
			Help:      "number of accepted txs whose actions failed",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "accounts_created",
			Help:      "number of accounts provisioned",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		blocksAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "blocks_accepted",
			Help:      "number of blocks accepted",
		}),
		executorBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "executor_blocked",
			Help:      "executor tasks blocked during execution",
		}),
		executorExecutable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "executor_executable",
			Help:      "executor tasks executable during execution",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "height",
			Help:      "height of the last accepted block",
		}),
		waitSignatures: waitSignatures,
		blockExecute:   blockExecute,
		blockCommit:    blockCommit,
	}
	m.executorRecorder = &executorMetrics{blocked: m.executorBlocked, executable: m.executorExecutable}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsDropped),
		r.Register(m.txsAccepted),
		r.Register(m.txsFailed),
		r.Register(m.accountsCreated),
		r.Register(m.stateChanges),
		r.Register(m.blocksAccepted),
		r.Register(m.executorBlocked),
		r.Register(m.executorExecutable),
		r.Register(m.height),
	)
	return m, errs.Err
}
