// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/provisionvm/genesis"
	"github.com/ava-labs/provisionvm/utils"
)

const fsModeWrite = 0o600

var genesisCmd = &cobra.Command{
	Use: "genesis",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genGenesisCmd = &cobra.Command{
	Use:   "generate [custom allocations file] [options]",
	Short: "Creates a new genesis in the default location",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var allocs []*genesis.CustomAllocation
		if err := json.Unmarshal(a, &allocs); err != nil {
			return err
		}

		g := genesis.NewDefaultGenesis(allocs)
		if validityWindow >= 0 {
			g.Rules.ValidityWindow = validityWindow
		}
		if maxAccountDataSize > 0 {
			g.Rules.MaxAccountDataSize = maxAccountDataSize
		}
		if len(rentAuthority) > 0 {
			g.Rules.RentAuthority = rentAuthority
		}
		if len(programID) > 0 {
			g.Rules.ProgramID = programID
		}
		if err := g.Verify(); err != nil {
			return err
		}

		b, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis and saved to %s{{/}}\n", genesisFile)
		return nil
	},
}
