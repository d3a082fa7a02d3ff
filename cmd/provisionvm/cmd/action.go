// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/ava-labs/provisionvm/actions"
	"github.com/ava-labs/provisionvm/auth"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/cli/prompt"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
	"github.com/ava-labs/provisionvm/utils"
)

var provisionCmd = &cobra.Command{
	Use:   "provision [options]",
	Short: "Funds a new account with its rent-exempt minimum",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		cli := newClient()

		funder, err := loadKey(keyPath)
		if err != nil {
			return err
		}
		var target *auth.ED25519Factory
		if len(targetKeyPath) > 0 {
			target, err = loadKey(targetKeyPath)
		} else {
			var path string
			target, path, err = generateAccountKey()
			if err == nil {
				utils.Outf("{{yellow}}saved new account key to:{{/}} %s\n", path)
			}
		}
		if err != nil {
			return err
		}

		owner, err := prompt.ProgramID("owner")
		if err != nil {
			return err
		}
		minimum, err := cli.MinimumBalance(ctx, space)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{yellow}}account:{{/}} %s {{yellow}}space:{{/}} %d {{yellow}}rent-exempt minimum:{{/}} %s %s\n",
			codec.MustAddressBech32(consts.HRP, target.Address()),
			space,
			utils.FormatBalance(minimum),
			consts.Symbol,
		)
		if err := printAccount(ctx, cli, funder.Address()); err != nil {
			return err
		}
		cont, err := prompt.Continue()
		if !cont || err != nil {
			return err
		}

		factories := []chain.AuthFactory{funder, target}
		utils.Outf("{{yellow}}signers:{{/}} %s\n", describeSigners(factories))
		return submit(ctx, cli, []chain.Action{&actions.CreateAccount{
			From:  funder.Address(),
			To:    target.Address(),
			Space: space,
			Owner: owner,
		}}, factories)
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfers lamports to an address",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		cli := newClient()

		factory, err := loadKey(keyPath)
		if err != nil {
			return err
		}
		balance, err := cli.Balance(ctx, factory.Address())
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %s %s\n", utils.FormatBalance(balance), consts.Symbol)

		recipient, err := prompt.Address("recipient")
		if err != nil {
			return err
		}
		amount, err := prompt.Amount("amount", balance, func(input uint64) error {
			if input == 0 {
				return actions.ErrOutputValueZero
			}
			return nil
		})
		if err != nil {
			return err
		}
		memo, err := prompt.String("memo", 0, actions.MaxMemoSize)
		if err != nil {
			return err
		}
		cont, err := prompt.Continue()
		if !cont || err != nil {
			return err
		}
		return submit(ctx, cli, []chain.Action{&actions.Transfer{
			To:    recipient,
			Value: amount,
			Memo:  []byte(memo),
		}}, []chain.AuthFactory{factory})
	},
}

var rentCmd = &cobra.Command{
	Use:   "rent [options]",
	Short: "Prints the rent schedule and the rent-exempt minimum for --space bytes",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		cli := newClient()

		schedule, err := cli.Rent(ctx)
		if err != nil {
			return err
		}
		minimum, err := cli.MinimumBalance(ctx, space)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{yellow}}lamports per byte-year:{{/}} %d {{yellow}}exemption threshold:{{/}} %.2f {{yellow}}burn percent:{{/}} %d\n",
			schedule.LamportsPerByteYear,
			schedule.ExemptionThreshold,
			schedule.BurnPercent,
		)
		utils.Outf("{{yellow}}minimum balance for %d bytes:{{/}} %d lamports\n", space, minimum)
		return nil
	},
}

var updateRentCmd = &cobra.Command{
	Use:   "update",
	Short: "Replaces the rent schedule (requires the rent authority key)",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		cli := newClient()

		factory, err := loadKey(keyPath)
		if err != nil {
			return err
		}
		lamports, err := prompt.Uint("lamports per byte-year", consts.MaxUint64)
		if err != nil {
			return err
		}
		threshold, err := prompt.Float("exemption threshold (years)", math.MaxUint16)
		if err != nil {
			return err
		}
		burn, err := prompt.Uint("burn percent", 100)
		if err != nil {
			return err
		}
		schedule := rent.Schedule{
			LamportsPerByteYear: lamports,
			ExemptionThreshold:  threshold,
			BurnPercent:         uint8(burn),
		}
		if err := schedule.Verify(); err != nil {
			return err
		}
		cont, err := prompt.Continue()
		if !cont || err != nil {
			return err
		}
		return submit(ctx, cli, []chain.Action{&actions.UpdateRent{
			Schedule: schedule,
		}}, []chain.AuthFactory{factory})
	},
}

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Looks up an accepted transaction",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		cli := newClient()

		txID, err := prompt.ID("txID")
		if err != nil {
			return err
		}
		reply, err := cli.GetTx(ctx, txID)
		if err != nil {
			return err
		}
		if !reply.Found {
			utils.Outf("{{red}}%s not found{{/}}\n", txID)
			return nil
		}
		utils.Outf(
			"{{yellow}}height:{{/}} %d {{yellow}}timestamp:{{/}} %d {{yellow}}success:{{/}} %t\n",
			reply.Height,
			reply.Timestamp,
			reply.Success,
		)
		if !reply.Success {
			utils.Outf("{{red}}error:{{/}} %s\n", string(reply.Error))
			return nil
		}
		return printOutputs(reply.Outputs)
	},
}
