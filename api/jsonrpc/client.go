// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/provisionvm/api"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/requester"
	"github.com/ava-labs/provisionvm/utils"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	networkID uint32
	chainID   ids.ID
	rules     *RulesReply
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	req := requester.New(uri, api.Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Network(ctx context.Context) (networkID uint32, chainID ids.ID, err error) {
	if cli.chainID != ids.Empty {
		return cli.networkID, cli.chainID, nil
	}

	resp := new(NetworkReply)
	err = cli.requester.SendRequest(
		ctx,
		"network",
		nil,
		resp,
	)
	if err != nil {
		return 0, ids.Empty, err
	}
	cli.networkID = resp.NetworkID
	cli.chainID = resp.ChainID
	return resp.NetworkID, resp.ChainID, nil
}

func (cli *JSONRPCClient) Rules(ctx context.Context) (*RulesReply, error) {
	if cli.rules != nil {
		return cli.rules, nil
	}

	resp := new(RulesReply)
	err := cli.requester.SendRequest(
		ctx,
		"rules",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.rules = resp
	return resp, nil
}

func (cli *JSONRPCClient) ProgramID(ctx context.Context) (string, error) {
	resp := new(ProgramIDReply)
	err := cli.requester.SendRequest(
		ctx,
		"programID",
		nil,
		resp,
	)
	return resp.ProgramID, err
}

func (cli *JSONRPCClient) Accepted(ctx context.Context) (ids.ID, uint64, int64, error) {
	resp := new(LastAcceptedReply)
	err := cli.requester.SendRequest(
		ctx,
		"lastAccepted",
		nil,
		resp,
	)
	return resp.BlockID, resp.Height, resp.Timestamp, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateTransaction builds and signs a transaction that expires at the end
// of the validity window. [factories][0] is the actor.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	actions []chain.Action,
	factories []chain.AuthFactory,
	actionRegistry chain.ActionRegistry,
	authRegistry chain.AuthRegistry,
) (*chain.Transaction, error) {
	_, chainID, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := cli.Rules(ctx)
	if err != nil {
		return nil, err
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(time.Now().UnixMilli(), rules.ValidityWindow),
		ChainID:   chainID,
	}
	return chain.NewTx(base, actions).Sign(factories, actionRegistry, authRegistry)
}

func (cli *JSONRPCClient) GetTx(ctx context.Context, txID ids.ID) (*GetTxReply, error) {
	resp := new(GetTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"getTx",
		&GetTxArgs{TxID: txID},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&AddressArgs{Address: codec.MustAddressBech32(consts.HRP, addr)},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Account(ctx context.Context, addr codec.Address) (*AccountReply, error) {
	resp := new(AccountReply)
	err := cli.requester.SendRequest(
		ctx,
		"account",
		&AddressArgs{Address: codec.MustAddressBech32(consts.HRP, addr)},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Rent(ctx context.Context) (rent.Schedule, error) {
	resp := new(RentReply)
	err := cli.requester.SendRequest(
		ctx,
		"rent",
		nil,
		resp,
	)
	return resp.Schedule, err
}

func (cli *JSONRPCClient) MinimumBalance(ctx context.Context, space uint64) (uint64, error) {
	resp := new(MinimumBalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"minimumBalance",
		&MinimumBalanceArgs{Space: space},
		resp,
	)
	return resp.Lamports, err
}
