// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/state"
	"github.com/ava-labs/provisionvm/storage"
)

var testAddr = codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())

func TestDefaultRules(t *testing.T) {
	require := require.New(t)
	r := NewDefaultRules()
	expected, err := codec.ParseProgramID(DefaultProgramID)
	require.NoError(err)
	require.Equal(expected, r.GetProgramID())
	require.Equal(codec.EmptyAddress, r.GetRentAuthority())
	require.Equal(int64(60_000), r.GetValidityWindow())
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	chainID := ids.GenerateTestID()
	g := NewDefaultGenesis([]*CustomAllocation{
		{Address: codec.MustAddressBech32(consts.HRP, testAddr), Balance: 1_000_000},
	})
	g.Rules.RentAuthority = codec.MustAddressBech32(consts.HRP, testAddr)
	b, err := json.Marshal(g)
	require.NoError(err)

	loaded, err := Load(b, 7, chainID)
	require.NoError(err)
	require.Equal(uint32(7), loaded.Rules.GetNetworkID())
	require.Equal(chainID, loaded.Rules.GetChainID())
	require.Equal(testAddr, loaded.Rules.GetRentAuthority())
	require.Equal(rent.Default(), loaded.Rent)
	require.Len(loaded.CustomAllocation, 1)
}

func TestLoadKeepsDefaults(t *testing.T) {
	require := require.New(t)
	loaded, err := Load([]byte(`{"initialRules":{"maxActionsPerTx":2}}`), 1, ids.Empty)
	require.NoError(err)
	require.Equal(uint8(2), loaded.Rules.GetMaxActionsPerTx())
	require.Equal(NewDefaultRules().GetProgramID(), loaded.Rules.GetProgramID())
	require.Equal(rent.Default(), loaded.Rent)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name        string
		genesis     string
		expectedErr error
	}{
		{
			name:        "malformed json",
			genesis:     `{`,
			expectedErr: ErrInvalidGenesis,
		},
		{
			name:        "bad program id",
			genesis:     `{"initialRules":{"programID":"0OIl"}}`,
			expectedErr: ErrInvalidRules,
		},
		{
			name:        "data size above key limit",
			genesis:     `{"initialRules":{"maxAccountDataSize":4294967296}}`,
			expectedErr: ErrInvalidRules,
		},
		{
			name:        "unaligned validity window",
			genesis:     `{"initialRules":{"validityWindow":1500}}`,
			expectedErr: ErrInvalidRules,
		},
		{
			name:        "bad allocation",
			genesis:     `{"customAllocation":[{"address":"nope","balance":1}]}`,
			expectedErr: ErrInvalidGenesis,
		},
		{
			name:        "bad rent",
			genesis:     `{"rent":{"lamportsPerByteYear":0,"exemptionThreshold":2}}`,
			expectedErr: rent.ErrInvalidSchedule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.genesis), 1, ids.Empty)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	g := NewDefaultGenesis([]*CustomAllocation{
		{Address: codec.MustAddressBech32(consts.HRP, testAddr), Balance: 1_000_000},
	})
	mu := state.MutableStorage{}
	require.NoError(g.InitializeState(ctx, trace.Noop, mu))

	bal, err := storage.GetBalance(ctx, mu, testAddr)
	require.NoError(err)
	require.Equal(uint64(1_000_000), bal)

	s, err := storage.GetRentSchedule(ctx, mu)
	require.NoError(err)
	require.Equal(rent.Default(), s)
}
