// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/chain/chaintest"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

var (
	funder = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	target = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	other  = codec.ProgramAddress(ids.GenerateTestID())
)

// newStore returns a store holding the default rent schedule and the given
// accounts.
func newStore(t *testing.T, accounts map[codec.Address]storage.Account) *chaintest.InMemoryStore {
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()
	require.NoError(t, storage.SetRentSchedule(ctx, store, rent.Default()))
	for addr, acct := range accounts {
		require.NoError(t, storage.SetAccount(ctx, store, addr, acct))
	}
	return store
}

func requireAccount(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address, expected storage.Account) {
	acct, err := storage.GetAccount(ctx, im, addr)
	require.NoError(t, err)
	require.Equal(t, expected, acct)
}

func TestCreateAccountAction(t *testing.T) {
	rules := genesis.NewDefaultRules()
	program := rules.GetProgramID()
	bothSigned := set.Of(funder, target)

	tests := []chaintest.ActionTest{
		{
			Name:    "rent exempt empty account",
			Action:  &CreateAccount{From: funder, To: target},
			Rules:   rules,
			State:   newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}}),
			Actor:   funder,
			Signers: bothSigned,
			ExpectedOutputs: &CreateAccountResult{
				Lamports:       890_880,
				Owner:          program,
				FundingBalance: 109_120,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{Balance: 109_120})
				requireAccount(ctx, t, m, target, storage.Account{Balance: 890_880, Owner: program})
				data, err := storage.GetAccountData(ctx, m, target)
				require.NoError(t, err)
				require.Empty(t, data)
			},
		},
		{
			Name:    "explicit owner and data",
			Action:  &CreateAccount{From: funder, To: target, Space: 165, Owner: other},
			Rules:   rules,
			State:   newStore(t, map[codec.Address]storage.Account{funder: {Balance: 3_000_000}}),
			Actor:   funder,
			Signers: bothSigned,
			ExpectedOutputs: &CreateAccountResult{
				Lamports:       2_039_280,
				Space:          165,
				Owner:          other,
				FundingBalance: 960_720,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, target, storage.Account{Balance: 2_039_280, Owner: other, Space: 165})
				data, err := storage.GetAccountData(ctx, m, target)
				require.NoError(t, err)
				require.Equal(t, make([]byte, 165), data)
			},
		},
		{
			Name:        "insufficient funds",
			Action:      &CreateAccount{From: funder, To: target},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 500_000}}),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: ErrInsufficientFunds,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{Balance: 500_000})
				requireAccount(ctx, t, m, target, storage.Account{})
			},
		},
		{
			Name:   "target already funded",
			Action: &CreateAccount{From: funder, To: target},
			Rules:  rules,
			State: newStore(t, map[codec.Address]storage.Account{
				funder: {Balance: 1_000_000},
				target: {Balance: 1},
			}),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: ErrAccountAlreadyInitialized,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{Balance: 1_000_000})
				requireAccount(ctx, t, m, target, storage.Account{Balance: 1})
			},
		},
		{
			Name:   "target already owned",
			Action: &CreateAccount{From: funder, To: target},
			Rules:  rules,
			State: newStore(t, map[codec.Address]storage.Account{
				funder: {Balance: 1_000_000},
				target: {Owner: other},
			}),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: ErrAccountAlreadyInitialized,
		},
		{
			Name:        "target did not sign",
			Action:      &CreateAccount{From: funder, To: target},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}}),
			Actor:       funder,
			ExpectedErr: ErrMissingAuthorization,
		},
		{
			Name:        "funder did not sign",
			Action:      &CreateAccount{From: funder, To: target},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}}),
			Actor:       target,
			ExpectedErr: ErrMissingAuthorization,
		},
		{
			Name:        "funder is target",
			Action:      &CreateAccount{From: funder, To: funder},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}}),
			Actor:       funder,
			ExpectedErr: ErrFundingIsTarget,
		},
		{
			Name:        "owner is not a program",
			Action:      &CreateAccount{From: funder, To: target, Owner: funder},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}}),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: ErrInvalidOwner,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{Balance: 1_000_000})
				requireAccount(ctx, t, m, target, storage.Account{})
			},
		},
		{
			Name:        "data size above limit",
			Action:      &CreateAccount{From: funder, To: target, Space: rules.GetMaxAccountDataSize() + 1},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000_000_000}}),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: ErrInvalidDataSize,
		},
		{
			Name:        "rent unavailable",
			Action:      &CreateAccount{From: funder, To: target},
			Rules:       rules,
			State:       chaintest.NewInMemoryStore(),
			Actor:       funder,
			Signers:     bothSigned,
			ExpectedErr: storage.ErrRentUnavailable,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestCreateAccountNotIdempotent(t *testing.T) {
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	store := newStore(t, map[codec.Address]storage.Account{funder: {Balance: 2_000_000}})
	action := &CreateAccount{From: funder, To: target}

	first := chaintest.ActionTest{
		Name:    "first",
		Action:  action,
		Rules:   rules,
		State:   store,
		Actor:   funder,
		Signers: set.Of(funder, target),
		ExpectedOutputs: &CreateAccountResult{
			Lamports:       890_880,
			Owner:          rules.GetProgramID(),
			FundingBalance: 1_109_120,
		},
	}
	first.Run(ctx, t)

	second := first
	second.Name = "second"
	second.ExpectedOutputs = nil
	second.ExpectedErr = ErrAccountAlreadyInitialized
	second.Assertion = func(ctx context.Context, t *testing.T, m state.Mutable) {
		requireAccount(ctx, t, m, funder, storage.Account{Balance: 1_109_120})
	}
	second.Run(ctx, t)
}

func TestCreateAccountObservesRentChange(t *testing.T) {
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	store := newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1_000_000}})
	require.NoError(t, storage.SetRentSchedule(ctx, store, rent.Schedule{
		LamportsPerByteYear: 1000,
		ExemptionThreshold:  1,
	}))

	test := chaintest.ActionTest{
		Name:    "cheaper rent",
		Action:  &CreateAccount{From: funder, To: target},
		Rules:   rules,
		State:   store,
		Actor:   funder,
		Signers: set.Of(funder, target),
		ExpectedOutputs: &CreateAccountResult{
			Lamports:       128_000,
			Owner:          rules.GetProgramID(),
			FundingBalance: 872_000,
		},
	}
	test.Run(ctx, t)
}

func TestCreateAccountMarshal(t *testing.T) {
	require := require.New(t)
	action := &CreateAccount{From: funder, To: target, Space: 10, Owner: other}
	p := codec.NewWriter(action.Size(), consts.NetworkSizeLimit)
	action.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), action.Size())

	parsed, err := UnmarshalCreateAccount(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(action, parsed)

	// The owner may be left empty
	action.Owner = codec.EmptyAddress
	p = codec.NewWriter(action.Size(), consts.NetworkSizeLimit)
	action.Marshal(p)
	parsed, err = UnmarshalCreateAccount(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(action, parsed)
}
