// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/provisionvm/actions"
	"github.com/ava-labs/provisionvm/api/indexer"
	"github.com/ava-labs/provisionvm/auth"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
	"github.com/ava-labs/provisionvm/utils"
)

// VM is a single-node ledger. Each call to [VM.Submit] executes the given
// transactions as one block and commits it atomically.
type VM struct {
	config       Config
	genesis      *genesis.Genesis
	genesisBytes []byte

	log      logging.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry
	metrics  *Metrics
	clock    mockable.Clock

	db        state.Database
	indexer   *indexer.Indexer
	processor *chain.Processor

	// l serializes block production
	l            sync.Mutex
	lastAccepted *Block
	closed       bool
}

// New opens a VM on top of [db]. Genesis is written the first time [db] is
// used; afterwards the VM resumes from the last accepted block.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	genesisBytes []byte,
	networkID uint32,
	chainID ids.ID,
	config Config,
) (*VM, error) {
	ctx, span := tracer.Start(ctx, "VM.New")
	defer span.End()

	if config.AuthVerificationCores < 1 || config.TransactionExecutionCores < 1 || config.MaxBlockTxs < 1 {
		return nil, fmt.Errorf("%w: cores and max block txs must be positive", ErrInvalidConfig)
	}
	g, err := genesis.Load(genesisBytes, networkID, chainID)
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	metrics, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}
	idx, err := indexer.New(db)
	if err != nil {
		return nil, err
	}
	vm := &VM{
		config:       config,
		genesis:      g,
		genesisBytes: genesisBytes,
		log:          log,
		tracer:       tracer,
		registry:     registry,
		metrics:      metrics,
		db:           db,
		indexer:      idx,
		processor: chain.NewProcessor(
			tracer,
			config.AuthVerificationCores,
			config.TransactionExecutionCores,
			metrics.executorRecorder,
			auth.Engines(),
		),
	}

	lastAccepted, ok, err := getLastAccepted(db)
	if err != nil {
		return nil, err
	}
	if !ok {
		lastAccepted, err = vm.initializeGenesis(ctx)
		if err != nil {
			return nil, err
		}
	}
	vm.lastAccepted = lastAccepted
	vm.metrics.height.Set(float64(lastAccepted.Height))
	vm.log.Info("initialized vm",
		zap.Stringer("chainID", chainID),
		zap.Uint32("networkID", networkID),
		zap.Stringer("lastAccepted", lastAccepted.ID()),
		zap.Uint64("height", lastAccepted.Height),
		zap.Int("allocations", len(g.CustomAllocation)),
	)
	return vm, nil
}

func (vm *VM) initializeGenesis(ctx context.Context) (*Block, error) {
	mu := state.MutableStorage{}
	if err := vm.genesis.InitializeState(ctx, vm.tracer, mu); err != nil {
		return nil, err
	}
	if err := storage.SetHeight(ctx, mu, 0); err != nil {
		return nil, err
	}
	blk := &Block{id: utils.ToID(vm.genesisBytes)}

	batch := vm.db.NewBatch()
	for k, v := range mu {
		if err := batch.Put([]byte(k), v); err != nil {
			return nil, err
		}
	}
	if err := batch.Put(lastAcceptedKey, blk.header()); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	vm.log.Info("wrote genesis",
		zap.Stringer("blkID", blk.ID()),
		zap.Int("keys", len(mu)),
	)
	return blk, nil
}

// Submit executes [txs] as the next block. The returned errors explain why a
// transaction was dropped (nil if it was included). Included transactions may
// still have failed; see [chain.Result]. A non-nil error means nothing was
// committed.
func (vm *VM) Submit(ctx context.Context, txs []*chain.Transaction) (*Block, []error, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil, nil, ErrClosed
	}
	if len(txs) > vm.config.MaxBlockTxs {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, len(txs), vm.config.MaxBlockTxs)
	}
	vm.metrics.txsSubmitted.Add(float64(len(txs)))

	parent := vm.lastAccepted
	timestamp := vm.clock.Time().UnixMilli()
	if timestamp < parent.Timestamp {
		timestamp = parent.Timestamp
	}

	var (
		errs       = make([]error, len(txs))
		candidates = make([]*chain.Transaction, 0, len(txs))
		positions  = make([]int, 0, len(txs))
		seen       = set.NewSet[ids.ID](len(txs))
	)
	for i, tx := range txs {
		if seen.Contains(tx.ID()) {
			errs[i] = ErrDuplicateTx
			continue
		}
		if err := tx.PreExecute(vm.genesis.Rules, timestamp); err != nil {
			errs[i] = err
			continue
		}
		accepted, err := vm.indexer.HasTransaction(tx.ID())
		if err != nil {
			return nil, nil, err
		}
		if accepted {
			errs[i] = ErrDuplicateTx
			continue
		}
		seen.Add(tx.ID())
		candidates = append(candidates, tx)
		positions = append(positions, i)
	}

	valid := candidates
	if vm.config.VerifyAuth {
		start := time.Now()
		verifyErrs := vm.processor.Verify(ctx, candidates)
		vm.metrics.waitSignatures.Observe(float64(time.Since(start)))
		valid = make([]*chain.Transaction, 0, len(candidates))
		for j, err := range verifyErrs {
			if err != nil {
				errs[positions[j]] = err
				continue
			}
			valid = append(valid, candidates[j])
		}
	}
	dropped := len(txs) - len(valid)
	vm.metrics.txsDropped.Add(float64(dropped))
	if len(valid) == 0 {
		vm.log.Debug("no valid transactions to include", zap.Int("submitted", len(txs)))
		return nil, errs, nil
	}

	blk, err := vm.execute(ctx, parent, timestamp, valid)
	if err != nil {
		return nil, nil, err
	}
	vm.lastAccepted = blk
	vm.log.Info("accepted block",
		zap.Stringer("blkID", blk.ID()),
		zap.Uint64("height", blk.Height),
		zap.Int64("timestamp", blk.Timestamp),
		zap.Int("txs", len(blk.Txs)),
		zap.Int("dropped", dropped),
	)
	return blk, errs, nil
}

// execute runs [txs] on top of [parent] and commits the resulting block.
func (vm *VM) execute(ctx context.Context, parent *Block, timestamp int64, txs []*chain.Transaction) (*Block, error) {
	start := time.Now()
	results, ts, err := vm.processor.Execute(
		ctx,
		state.NewReadOnlyDatabase(vm.db),
		vm.genesis.Rules,
		timestamp,
		txs,
	)
	if err != nil {
		return nil, err
	}
	blk := newBlock(parent, timestamp, txs, results)

	heightKey := string(storage.HeightKey())
	hv := ts.NewView(state.Keys{heightKey: state.All}, map[string][]byte{})
	if err := storage.SetHeight(ctx, hv, blk.Height); err != nil {
		return nil, err
	}
	hv.Commit()
	vm.metrics.blockExecute.Observe(float64(time.Since(start)))

	start = time.Now()
	batch := vm.db.NewBatch()
	changes, err := ts.WriteChanges(ctx, vm.tracer, batch)
	if err != nil {
		return nil, err
	}
	if err := vm.indexer.Accept(batch, blk.Height, blk.Timestamp, txs, results); err != nil {
		return nil, err
	}
	if err := batch.Put(lastAcceptedKey, blk.header()); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	vm.metrics.blockCommit.Observe(float64(time.Since(start)))

	vm.metrics.blocksAccepted.Inc()
	vm.metrics.height.Set(float64(blk.Height))
	vm.metrics.stateChanges.Add(float64(changes))
	vm.metrics.txsAccepted.Add(float64(len(txs)))
	for i, result := range results {
		if !result.Success {
			vm.metrics.txsFailed.Inc()
			vm.log.Debug("transaction failed",
				zap.Stringer("txID", txs[i].ID()),
				zap.ByteString("error", result.Error),
			)
			continue
		}
		vm.recordOutputs(txs[i], result)
	}
	return blk, nil
}

func (vm *VM) recordOutputs(tx *chain.Transaction, result *chain.Result) {
	for _, raw := range result.Outputs {
		output, err := chain.UnmarshalOutput(raw, OutputParser)
		if err != nil {
			vm.log.Warn("unable to parse output",
				zap.Stringer("txID", tx.ID()),
				zap.Error(err),
			)
			continue
		}
		switch o := output.(type) {
		case *actions.InitializeResult:
			vm.log.Info(o.Greeting, zap.Stringer("txID", tx.ID()))
		case *actions.CreateAccountResult:
			vm.metrics.accountsCreated.Inc()
			vm.log.Debug("created account",
				zap.Stringer("txID", tx.ID()),
				zap.Uint64("lamports", o.Lamports),
				zap.Uint64("space", o.Space),
			)
		}
	}
}

// Close stops the VM. The database is closed if it supports it.
func (vm *VM) Close() error {
	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil
	}
	vm.closed = true
	if closer, ok := vm.db.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
