// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/chain/chaintest"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

func TestTransferAction(t *testing.T) {
	rules := genesis.NewDefaultRules()

	tests := []chaintest.ActionTest{
		{
			Name:        "zero value",
			Action:      &Transfer{To: target},
			Rules:       rules,
			State:       newStore(t, nil),
			Actor:       funder,
			ExpectedErr: ErrOutputValueZero,
		},
		{
			Name:        "memo too large",
			Action:      &Transfer{To: target, Value: 1, Memo: make([]byte, MaxMemoSize+1)},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1}}),
			Actor:       funder,
			ExpectedErr: ErrOutputMemoTooLarge,
		},
		{
			Name:        "insufficient balance",
			Action:      &Transfer{To: target, Value: 2},
			Rules:       rules,
			State:       newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1}}),
			Actor:       funder,
			ExpectedErr: ErrInsufficientFunds,
		},
		{
			Name:   "transfer to new account",
			Action: &Transfer{To: target, Value: 1, Memo: []byte("hi")},
			Rules:  rules,
			State:  newStore(t, map[codec.Address]storage.Account{funder: {Balance: 1}}),
			Actor:  funder,
			ExpectedOutputs: &TransferResult{
				SenderBalance:   0,
				ReceiverBalance: 1,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{})
				requireAccount(ctx, t, m, target, storage.Account{Balance: 1})
			},
		},
		{
			Name:   "transfer to self",
			Action: &Transfer{To: funder, Value: 5},
			Rules:  rules,
			State:  newStore(t, map[codec.Address]storage.Account{funder: {Balance: 10}}),
			Actor:  funder,
			ExpectedOutputs: &TransferResult{
				SenderBalance:   10,
				ReceiverBalance: 10,
			},
		},
		{
			Name:   "owned account keeps its record",
			Action: &Transfer{To: target, Value: 10},
			Rules:  rules,
			State:  newStore(t, map[codec.Address]storage.Account{funder: {Balance: 10, Owner: other}}),
			Actor:  funder,
			ExpectedOutputs: &TransferResult{
				SenderBalance:   0,
				ReceiverBalance: 10,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requireAccount(ctx, t, m, funder, storage.Account{Owner: other})
			},
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestInitializeAction(t *testing.T) {
	rules := genesis.NewDefaultRules()
	test := chaintest.ActionTest{
		Name:   "greeting names the program",
		Action: &Initialize{},
		Rules:  rules,
		State:  chaintest.NewInMemoryStore(),
		Actor:  funder,
		ExpectedOutputs: &InitializeResult{
			Greeting: "Greetings from: " + genesis.DefaultProgramID,
		},
	}
	test.Run(context.Background(), t)
}

func TestUpdateRentAction(t *testing.T) {
	rules := genesis.NewDefaultRules()
	rules.RentAuthority = codec.MustAddressBech32(consts.HRP, funder)
	require.NoError(t, rules.Parse())

	cheaper := rent.Schedule{
		LamportsPerByteYear: 10,
		ExemptionThreshold:  1,
		BurnPercent:         0,
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "not the authority",
			Action:      &UpdateRent{Schedule: cheaper},
			Rules:       rules,
			State:       newStore(t, nil),
			Actor:       target,
			ExpectedErr: ErrUnauthorized,
		},
		{
			Name:        "immutable without authority",
			Action:      &UpdateRent{Schedule: cheaper},
			Rules:       genesis.NewDefaultRules(),
			State:       newStore(t, nil),
			Actor:       funder,
			ExpectedErr: ErrUnauthorized,
		},
		{
			Name:        "invalid schedule",
			Action:      &UpdateRent{},
			Rules:       rules,
			State:       newStore(t, nil),
			Actor:       funder,
			ExpectedErr: rent.ErrInvalidSchedule,
		},
		{
			Name:   "authority updates schedule",
			Action: &UpdateRent{Schedule: cheaper},
			Rules:  rules,
			State:  newStore(t, nil),
			Actor:  funder,
			ExpectedOutputs: &UpdateRentResult{
				Previous: rent.Default(),
				Current:  cheaper,
			},
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				s, err := storage.GetRentSchedule(ctx, m)
				require.NoError(t, err)
				require.Equal(t, cheaper, s)
			},
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestOutputMarshal(t *testing.T) {
	tests := []struct {
		name      string
		output    interface{ Marshal(*codec.Packer) }
		unmarshal func(*codec.Packer) (any, error)
	}{
		{
			name:   "create account",
			output: &CreateAccountResult{Lamports: 890_880, Owner: other, FundingBalance: 109_120},
			unmarshal: func(p *codec.Packer) (any, error) {
				return UnmarshalCreateAccountResult(p)
			},
		},
		{
			name:   "transfer",
			output: &TransferResult{SenderBalance: 1, ReceiverBalance: 2},
			unmarshal: func(p *codec.Packer) (any, error) {
				return UnmarshalTransferResult(p)
			},
		},
		{
			name:   "initialize",
			output: &InitializeResult{Greeting: "Greetings from: " + genesis.DefaultProgramID},
			unmarshal: func(p *codec.Packer) (any, error) {
				return UnmarshalInitializeResult(p)
			},
		},
		{
			name:   "update rent",
			output: &UpdateRentResult{Previous: rent.Default(), Current: rent.Default()},
			unmarshal: func(p *codec.Packer) (any, error) {
				return UnmarshalUpdateRentResult(p)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			p := codec.NewWriter(0, consts.NetworkSizeLimit)
			tt.output.Marshal(p)
			require.NoError(p.Err())

			parsed, err := tt.unmarshal(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
			require.NoError(err)
			require.Equal(tt.output, parsed)
		})
	}
}
