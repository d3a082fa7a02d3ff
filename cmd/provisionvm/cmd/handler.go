// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/provisionvm/api/jsonrpc"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/utils"
	"github.com/ava-labs/provisionvm/vm"
)

func newClient() *jsonrpc.JSONRPCClient {
	return jsonrpc.NewJSONRPCClient(endpoint)
}

func printAccount(ctx context.Context, cli *jsonrpc.JSONRPCClient, addr codec.Address) error {
	acct, err := cli.Account(ctx, addr)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{yellow}}address:{{/}} %s {{yellow}}balance:{{/}} %s %s\n",
		codec.MustAddressBech32(consts.HRP, addr),
		utils.FormatBalance(acct.Balance),
		consts.Symbol,
	)
	if len(acct.Owner) > 0 {
		utils.Outf("{{yellow}}owner:{{/}} %s {{yellow}}space:{{/}} %d\n", acct.Owner, acct.Space)
	}
	return nil
}

// submit signs [actions] with [factories], submits them, and prints the
// outputs. [factories][0] is the actor.
func submit(ctx context.Context, cli *jsonrpc.JSONRPCClient, actions []chain.Action, factories []chain.AuthFactory) error {
	tx, err := cli.GenerateTransaction(ctx, actions, factories, vm.ActionParser, vm.AuthParser)
	if err != nil {
		return err
	}
	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return err
	}
	if !reply.Result.Success {
		utils.Outf("{{red}}%s failed:{{/}} %s\n", reply.TxID, string(reply.Result.Error))
		return ErrTxFailed
	}
	utils.Outf("{{green}}%s accepted at height %d{{/}}\n", reply.TxID, reply.Height)
	return printOutputs(reply.Result.Outputs)
}

func printOutputs(outputs [][]byte) error {
	for i, raw := range outputs {
		output, err := chain.UnmarshalOutput(raw, vm.OutputParser)
		if err != nil {
			return err
		}
		b, err := json.Marshal(output)
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}output %d:{{/}} %s\n", i, b)
	}
	return nil
}

func addressStrings(addrs []codec.Address) []string {
	return utils.Map(func(a codec.Address) string {
		return codec.MustAddressBech32(consts.HRP, a)
	}, addrs)
}

func describeSigners(factories []chain.AuthFactory) string {
	signers := make([]codec.Address, len(factories))
	for i, f := range factories {
		signers[i] = f.Address()
	}
	return fmt.Sprintf("%v", addressStrings(signers))
}
