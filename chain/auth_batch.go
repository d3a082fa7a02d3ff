// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// verifyBatch verifies every auth of [txs], batching auth types that have a
// registered [AuthEngine]. A failure does not identify the offending
// transaction.
func verifyBatch(ctx context.Context, cores int, engines map[uint8]AuthEngine, txs []*Transaction) error {
	counts := map[uint8]int{}
	for _, tx := range txs {
		for _, auth := range tx.Auths {
			counts[auth.GetTypeID()]++
		}
	}
	bvs := make(map[uint8]AuthBatchVerifier, len(counts))
	for typeID, count := range counts {
		engine, ok := engines[typeID]
		if !ok {
			continue
		}
		bvs[typeID] = engine.GetBatchVerifier(cores, count)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cores)
	for _, tx := range txs {
		digest, err := tx.Digest()
		if err != nil {
			return err
		}
		for _, auth := range tx.Auths {
			bv, ok := bvs[auth.GetTypeID()]
			if !ok {
				a := auth
				g.Go(func() error { return a.Verify(gctx, digest) })
				continue
			}
			// May finish parts of batch early, let's start computing them as soon as possible
			if job := bv.Add(digest, auth); job != nil {
				g.Go(job)
			}
		}
	}
	for _, bv := range bvs {
		for _, job := range bv.Done() {
			g.Go(job)
		}
	}
	return g.Wait()
}

// verifyEach verifies each transaction on its own and reports the result
// per transaction.
func verifyEach(ctx context.Context, cores int, txs []*Transaction) []error {
	errs := make([]error, len(txs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cores)
	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			errs[i] = tx.Verify(gctx)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
