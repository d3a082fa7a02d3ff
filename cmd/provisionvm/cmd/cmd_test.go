// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
)

func TestGenerateKey(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "key.pk")

	generated, err := generateKey(path)
	require.NoError(err)

	loaded, err := loadKey(path)
	require.NoError(err)
	require.Equal(generated.Address(), loaded.Address())

	_, err = generateKey(path)
	require.ErrorIs(err, errKeyExists)
}

func TestAddressStrings(t *testing.T) {
	require := require.New(t)
	addr := codec.CreateAddress(0, [32]byte{1})
	require.Equal(
		[]string{codec.MustAddressBech32(consts.HRP, addr)},
		addressStrings([]codec.Address{addr}),
	)
}

func TestLogFactory(t *testing.T) {
	require := require.New(t)
	f := newLogFactory(logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			Directory: t.TempDir(),
			MaxSize:   1,
			MaxFiles:  1,
			MaxAge:    1,
		},
		DisableWriterDisplaying: true,
		LogLevel:                logging.Info,
		DisplayLevel:            logging.Info,
		LogFormat:               logging.Plain,
	})
	defer f.Close()

	log, err := f.Make("test")
	require.NoError(err)
	log.Info("hello")

	_, err = f.Make("test")
	require.ErrorContains(err, "already exists")
}
