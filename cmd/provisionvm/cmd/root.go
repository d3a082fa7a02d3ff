// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

const (
	defaultEndpoint = "http://127.0.0.1:9650"
	defaultKey      = ".provisionvm.pk"
	defaultGenesis  = "genesis.json"
)

var (
	endpoint string
	keyPath  string

	configFile string

	genesisFile        string
	validityWindow     int64
	maxAccountDataSize uint64
	rentAuthority      string
	programID          string

	targetKeyPath string
	space         uint64

	rootCmd = &cobra.Command{
		Use:        "provisionvm",
		Short:      "ProvisionVM node and client",
		SuggestFor: []string{"provisionvm", "provision-vm"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		runCmd,
		genesisCmd,
		keyCmd,
		provisionCmd,
		transferCmd,
		rentCmd,
		txCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		defaultEndpoint,
		"node API endpoint",
	)
	rootCmd.PersistentFlags().StringVar(
		&keyPath,
		"key",
		defaultKey,
		"path to the ed25519 private key issuing transactions",
	)
	rootCmd.SilenceErrors = true

	// run
	runCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a YAML node config (defaults are used when empty)",
	)

	// genesis
	genGenesisCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		defaultGenesis,
		"genesis file path",
	)
	genGenesisCmd.PersistentFlags().Int64Var(
		&validityWindow,
		"validity-window",
		-1,
		"validity window (ms)",
	)
	genGenesisCmd.PersistentFlags().Uint64Var(
		&maxAccountDataSize,
		"max-account-data-size",
		0,
		"maximum data size of a provisioned account (bytes)",
	)
	genGenesisCmd.PersistentFlags().StringVar(
		&rentAuthority,
		"rent-authority",
		"",
		"address allowed to update the rent schedule (rent is immutable when empty)",
	)
	genGenesisCmd.PersistentFlags().StringVar(
		&programID,
		"program-id",
		"",
		"base58 program ID assigned to accounts provisioned without an owner",
	)
	genesisCmd.AddCommand(
		genGenesisCmd,
	)

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		addressKeyCmd,
		balanceKeyCmd,
	)

	// provision
	provisionCmd.PersistentFlags().StringVar(
		&targetKeyPath,
		"target-key",
		"",
		"private key of the account to provision (a new key is generated and saved when empty)",
	)
	provisionCmd.PersistentFlags().Uint64Var(
		&space,
		"space",
		0,
		"bytes of account data to allocate",
	)

	// rent
	rentCmd.PersistentFlags().Uint64Var(
		&space,
		"space",
		0,
		"bytes of account data to price",
	)
	rentCmd.AddCommand(
		updateRentCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}
