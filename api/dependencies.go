// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/provisionvm/api/indexer"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/storage"
)

type VM interface {
	Logger() logging.Logger
	Tracer() trace.Tracer
	NetworkID() uint32
	ChainID() ids.ID
	Rules() chain.Rules
	ProgramID() codec.Address
	ActionRegistry() chain.ActionRegistry
	AuthRegistry() chain.AuthRegistry

	// SubmitTx includes [tx] in a new block. An error means [tx] was not
	// included.
	SubmitTx(ctx context.Context, tx *chain.Transaction) (uint64, *chain.Result, error)
	LastAcceptedBlock() (ids.ID, uint64, int64)
	GetTx(ctx context.Context, txID ids.ID) (*indexer.Transaction, bool, error)

	Balance(ctx context.Context, addr codec.Address) (uint64, error)
	Account(ctx context.Context, addr codec.Address) (storage.Account, []byte, error)
	RentSchedule(ctx context.Context) (rent.Schedule, error)
	MinimumBalance(ctx context.Context, space uint64) (uint64, error)
}
