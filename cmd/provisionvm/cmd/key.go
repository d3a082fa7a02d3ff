// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/provisionvm/auth"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/crypto/ed25519"
	"github.com/ava-labs/provisionvm/utils"
)

var errKeyExists = errors.New("key file already exists")

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates an ed25519 key and saves it to the key path",
	RunE: func(*cobra.Command, []string) error {
		factory, err := generateKey(keyPath)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}created address:{{/}} %s\n",
			codec.MustAddressBech32(consts.HRP, factory.Address()),
		)
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Prints the address of the key",
	RunE: func(*cobra.Command, []string) error {
		factory, err := loadKey(keyPath)
		if err != nil {
			return err
		}
		utils.Outf("%s\n", codec.MustAddressBech32(consts.HRP, factory.Address()))
		return nil
	},
}

var balanceKeyCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Prints the balance of the key, or of [address] when given",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		var addr codec.Address
		if len(args) == 1 {
			parsed, err := codec.ParseAddressBech32(consts.HRP, args[0])
			if err != nil {
				return err
			}
			addr = parsed
		} else {
			factory, err := loadKey(keyPath)
			if err != nil {
				return err
			}
			addr = factory.Address()
		}
		return printAccount(context.Background(), newClient(), addr)
	},
}

func loadKey(path string) (*auth.ED25519Factory, error) {
	priv, err := ed25519.LoadKey(path)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(priv), nil
}

// generateKey refuses to overwrite an existing key at [path].
func generateKey(path string) (*auth.ED25519Factory, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, errKeyExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	if err := priv.Save(path); err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(priv), nil
}

// generateAccountKey saves a new key named after its address.
func generateAccountKey() (*auth.ED25519Factory, string, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, "", err
	}
	factory := auth.NewED25519Factory(priv)
	path := codec.MustAddressBech32(consts.HRP, factory.Address()) + ".pk"
	if err := priv.Save(path); err != nil {
		return nil, "", err
	}
	return factory, path, nil
}
