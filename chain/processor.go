// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/neilotoole/errgroup"

	"github.com/ava-labs/provisionvm/executor"
	"github.com/ava-labs/provisionvm/keys"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/tstate"
)

// Processor verifies and executes the transactions of a block.
type Processor struct {
	tracer    trace.Tracer
	authCores int
	cores     int
	metrics   executor.Metrics
	engines   map[uint8]AuthEngine
}

func NewProcessor(
	tracer trace.Tracer,
	authCores int,
	executionCores int,
	metrics executor.Metrics,
	engines map[uint8]AuthEngine,
) *Processor {
	return &Processor{
		tracer:    tracer,
		authCores: max(authCores, 1),
		cores:     max(executionCores, 1),
		metrics:   metrics,
		engines:   engines,
	}
}

// Verify checks the signatures of [txs] and returns the verification error
// of each transaction (nil if valid).
//
// Signatures are first verified in batches. Only if a batch fails is each
// transaction verified on its own to find the offenders.
func (p *Processor) Verify(ctx context.Context, txs []*Transaction) []error {
	ctx, span := p.tracer.Start(ctx, "Processor.Verify")
	defer span.End()

	if err := verifyBatch(ctx, p.authCores, p.engines, txs); err == nil {
		return make([]error, len(txs))
	}
	return verifyEach(ctx, p.authCores, txs)
}

// Execute runs [txs] on top of [im] at [timestamp]. Transactions that touch
// disjoint state keys run concurrently; conflicting transactions run in the
// order provided.
//
// Every transaction must have passed [Transaction.PreExecute] and
// [Processor.Verify]. The returned [tstate.TState] holds the changes of all
// successful transactions.
func (p *Processor) Execute(
	ctx context.Context,
	im state.Immutable,
	r Rules,
	timestamp int64,
	txs []*Transaction,
) ([]*Result, *tstate.TState, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Execute")
	defer span.End()

	var (
		txKeys  = make([]state.Keys, len(txs))
		allKeys = make(state.Keys)
	)
	for i, tx := range txs {
		stateKeys, err := tx.StateKeys()
		if err != nil {
			return nil, nil, err
		}
		txKeys[i] = stateKeys
		allKeys.Union(stateKeys)
	}
	storage, err := p.prefetch(ctx, im, allKeys)
	if err != nil {
		return nil, nil, err
	}

	var (
		ts      = tstate.New(len(txs) * 2)
		e       = executor.New(len(txs), p.cores, p.metrics)
		results = make([]*Result, len(txs))
	)
	for i, tx := range txs {
		i, tx := i, tx
		stateKeys := txKeys[i]
		e.Run(stateKeys, func() error {
			// It is critical we explicitly set the scope before each transaction is
			// processed
			txStorage := make(map[string][]byte, len(stateKeys))
			for k := range stateKeys {
				if v, ok := storage[k]; ok {
					txStorage[k] = v
				}
			}
			tsv := ts.NewView(stateKeys, txStorage)
			result, err := tx.Execute(ctx, r, tsv, timestamp)
			if err != nil {
				return err
			}
			if result.Success {
				tsv.Commit()
			}
			results[i] = result
			return nil
		})
	}
	if err := e.Wait(); err != nil {
		return nil, nil, err
	}
	return results, ts, nil
}

// prefetch reads every key in [stateKeys] from [im] concurrently. Missing
// keys are omitted from the result.
func (p *Processor) prefetch(ctx context.Context, im state.Immutable, stateKeys state.Keys) (map[string][]byte, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.prefetch")
	defer span.End()

	var (
		l       sync.Mutex
		storage = make(map[string][]byte, len(stateKeys))
	)
	g, gctx := errgroup.WithContextN(ctx, p.cores, len(stateKeys))
	for k := range stateKeys {
		k := k
		g.Go(func() error {
			v, err := im.GetValue(gctx, []byte(k))
			if errors.Is(err, database.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			// Values are verified on the write path; a mismatch here means
			// the database was corrupted.
			if !keys.VerifyValue([]byte(k), v) {
				return tstate.ErrInvalidKeyValue
			}
			l.Lock()
			storage[k] = v
			l.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return storage, nil
}
