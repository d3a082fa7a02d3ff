// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/actions"
	"github.com/ava-labs/provisionvm/api/jsonrpc"
	"github.com/ava-labs/provisionvm/auth"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/crypto/ed25519"
	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/vm"
)

const networkID uint32 = 1337

func newFactory(t *testing.T) *auth.ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func newServer(t *testing.T, funder codec.Address, balance uint64) (*vm.VM, *jsonrpc.JSONRPCClient) {
	require := require.New(t)

	g := genesis.NewDefaultGenesis([]*genesis.CustomAllocation{{
		Address: codec.MustAddressBech32(consts.HRP, funder),
		Balance: balance,
	}})
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)

	v, err := vm.New(
		context.Background(),
		logging.NoLog{},
		trace.Noop,
		memdb.New(),
		genesisBytes,
		networkID,
		ids.GenerateTestID(),
		vm.NewConfig(),
	)
	require.NoError(err)

	handler, err := jsonrpc.JSONRPCServerFactory{}.New(v)
	require.NoError(err)
	require.Equal(jsonrpc.Endpoint, handler.Path)

	mux := http.NewServeMux()
	mux.Handle(handler.Path, handler.Handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return v, jsonrpc.NewJSONRPCClient(server.URL)
}

func TestJSONRPCQueries(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	funder := newFactory(t)
	v, cli := newServer(t, funder.Address(), 1_000_000)

	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	gotNetworkID, chainID, err := cli.Network(ctx)
	require.NoError(err)
	require.Equal(networkID, gotNetworkID)
	require.Equal(v.ChainID(), chainID)

	rules, err := cli.Rules(ctx)
	require.NoError(err)
	require.Equal(v.Rules().GetValidityWindow(), rules.ValidityWindow)
	require.Equal(v.Rules().GetMaxAccountDataSize(), rules.MaxAccountDataSize)
	require.Equal(codec.EmptyAddress, rules.RentAuthority)

	programID, err := cli.ProgramID(ctx)
	require.NoError(err)
	require.Equal(genesis.DefaultProgramID, programID)

	blkID, height, _, err := cli.Accepted(ctx)
	require.NoError(err)
	require.Equal(uint64(0), height)
	require.Equal(v.LastAccepted().ID(), blkID)

	balance, err := cli.Balance(ctx, funder.Address())
	require.NoError(err)
	require.Equal(uint64(1_000_000), balance)

	schedule, err := cli.Rent(ctx)
	require.NoError(err)
	require.Equal(rent.Default(), schedule)

	for _, tt := range []struct {
		space    uint64
		lamports uint64
	}{
		{space: 0, lamports: 890_880},
		{space: 10, lamports: 960_480},
		{space: 165, lamports: 2_039_280},
	} {
		lamports, err := cli.MinimumBalance(ctx, tt.space)
		require.NoError(err)
		require.Equal(tt.lamports, lamports)
	}
}

func TestJSONRPCProvision(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	funder, target := newFactory(t), newFactory(t)
	v, cli := newServer(t, funder.Address(), 1_000_000)

	tx, err := cli.GenerateTransaction(
		ctx,
		[]chain.Action{&actions.CreateAccount{From: funder.Address(), To: target.Address()}},
		[]chain.AuthFactory{funder, target},
		v.ActionRegistry(),
		v.AuthRegistry(),
	)
	require.NoError(err)

	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), reply.TxID)
	require.Equal(uint64(1), reply.Height)
	require.True(reply.Result.Success)

	acct, err := cli.Account(ctx, target.Address())
	require.NoError(err)
	require.Equal(uint64(890_880), acct.Balance)
	require.Equal(genesis.DefaultProgramID, acct.Owner)
	require.Zero(acct.Space)

	balance, err := cli.Balance(ctx, funder.Address())
	require.NoError(err)
	require.Equal(uint64(1_000_000-890_880), balance)

	indexed, err := cli.GetTx(ctx, tx.ID())
	require.NoError(err)
	require.True(indexed.Found)
	require.True(indexed.Success)
	require.Equal(uint64(1), indexed.Height)
	require.Len(indexed.Outputs, 1)

	missing, err := cli.GetTx(ctx, ids.GenerateTestID())
	require.NoError(err)
	require.False(missing.Found)

	// Replays are rejected by the indexer.
	_, err = cli.SubmitTx(ctx, tx.Bytes())
	require.Error(err) //nolint:forbidigo

	// Trailing bytes are rejected before execution.
	extra := append([]byte{}, tx.Bytes()...)
	_, err = cli.SubmitTx(ctx, append(extra, 0))
	require.ErrorContains(err, jsonrpc.ErrTxExtraBytes.Error())
}
