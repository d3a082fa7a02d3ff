// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/provisionvm/api"
	"github.com/ava-labs/provisionvm/api/indexer"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

var _ api.VM = (*VM)(nil)

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Tracer() trace.Tracer {
	return vm.tracer
}

// Registry holds the VM metrics.
func (vm *VM) Registry() *prometheus.Registry {
	return vm.registry
}

func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

func (vm *VM) Rules() chain.Rules {
	return vm.genesis.Rules
}

func (*VM) ActionRegistry() chain.ActionRegistry {
	return ActionParser
}

func (*VM) AuthRegistry() chain.AuthRegistry {
	return AuthParser
}

func (*VM) OutputRegistry() chain.OutputRegistry {
	return OutputParser
}

func (vm *VM) NetworkID() uint32 {
	return vm.genesis.Rules.GetNetworkID()
}

func (vm *VM) ChainID() ids.ID {
	return vm.genesis.Rules.GetChainID()
}

func (vm *VM) ProgramID() codec.Address {
	return vm.genesis.Rules.GetProgramID()
}

func (vm *VM) LastAccepted() *Block {
	vm.l.Lock()
	defer vm.l.Unlock()

	return vm.lastAccepted
}

// ImmutableState returns a view of the last committed state.
func (vm *VM) ImmutableState() state.Immutable {
	return state.NewReadOnlyDatabase(vm.db)
}

func (vm *VM) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Balance")
	defer span.End()

	return storage.GetBalance(ctx, vm.ImmutableState(), addr)
}

// Account returns the record of [addr] and its data.
func (vm *VM) Account(ctx context.Context, addr codec.Address) (storage.Account, []byte, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Account")
	defer span.End()

	im := vm.ImmutableState()
	acct, err := storage.GetAccount(ctx, im, addr)
	if err != nil {
		return storage.Account{}, nil, err
	}
	data, err := storage.GetAccountData(ctx, im, addr)
	if err != nil {
		return storage.Account{}, nil, err
	}
	return acct, data, nil
}

func (vm *VM) RentSchedule(ctx context.Context) (rent.Schedule, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.RentSchedule")
	defer span.End()

	return storage.GetRentSchedule(ctx, vm.ImmutableState())
}

// MinimumBalance returns the rent-exempt minimum for [space] bytes under the
// current schedule.
func (vm *VM) MinimumBalance(ctx context.Context, space uint64) (uint64, error) {
	schedule, err := vm.RentSchedule(ctx)
	if err != nil {
		return 0, err
	}
	return schedule.MinimumBalance(space)
}

func (vm *VM) GetTx(_ context.Context, txID ids.ID) (*indexer.Transaction, bool, error) {
	return vm.indexer.GetTransaction(txID)
}

// SubmitTx submits [tx] on its own.
func (vm *VM) SubmitTx(ctx context.Context, tx *chain.Transaction) (uint64, *chain.Result, error) {
	blk, errs, err := vm.Submit(ctx, []*chain.Transaction{tx})
	if err != nil {
		return 0, nil, err
	}
	if errs[0] != nil {
		return 0, nil, errs[0]
	}
	return blk.Height, blk.Results[0], nil
}

func (vm *VM) LastAcceptedBlock() (ids.ID, uint64, int64) {
	blk := vm.LastAccepted()
	return blk.ID(), blk.Height, blk.Timestamp
}
