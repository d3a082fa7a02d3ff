// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/provisionvm/utils"
)

var errUnmarshal = errors.New("unmarshal")

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require := require.New(t)
	c, err := Load("")
	require.NoError(err)
	require.Equal(NewDefaultConfig(), c)
	require.NoError(c.Verify())
}

func TestLoad(t *testing.T) {
	chainID := ids.GenerateTestID()
	tests := []struct {
		name        string
		contents    string
		expectedErr error
		check       func(*require.Assertions, Config)
	}{
		{
			name: "overrides",
			contents: `
dataDirectory: /tmp/provision
httpAddress: 0.0.0.0:9999
shutdownTimeout: 3s
chainId: ` + chainID.String() + `
log:
  level: debug
  displayLevel: warn
  format: json
  maxSize: 1
  maxFiles: 2
  maxAge: 3
trace:
  enabled: true
  endpoint: http://collector:9411/api/v2/spans
database:
  sync: false
vm:
  authVerificationCores: 4
`,
			check: func(require *require.Assertions, c Config) {
				require.Equal("/tmp/provision", c.DataDirectory)
				require.Equal("0.0.0.0:9999", c.HTTPAddress)
				require.Equal(3*time.Second, c.ShutdownTimeout)
				require.True(c.Trace.Enabled)
				require.Equal("http://collector:9411/api/v2/spans", c.Trace.Endpoint)
				require.False(c.Database.Sync)
				require.True(c.VM.VerifyAuth)
				require.Equal(4, c.VM.AuthVerificationCores)

				// Untouched fields keep their defaults.
				require.Equal(NewDefaultConfig().GenesisFile, c.GenesisFile)
				require.Equal(NewDefaultConfig().VM.MaxBlockTxs, c.VM.MaxBlockTxs)

				got, err := c.GetChainID([]byte("ignored"))
				require.NoError(err)
				require.Equal(chainID, got)

				logConfig, err := c.LoggingConfig("logs")
				require.NoError(err)
				require.Equal(logging.Debug, logConfig.LogLevel)
				require.Equal(logging.Warn, logConfig.DisplayLevel)
				require.Equal(logging.JSON, logConfig.LogFormat)
				require.Equal("logs", logConfig.Directory)
				require.Equal(2, logConfig.MaxFiles)
			},
		},
		{
			name:        "unknown field",
			contents:    "unknown: true\n",
			expectedErr: errUnmarshal,
		},
		{
			name:        "missing genesis",
			contents:    "genesisFile: \"\"\n",
			expectedErr: ErrMissingGenesis,
		},
		{
			name:        "missing directory",
			contents:    "dataDirectory: \"\"\n",
			expectedErr: ErrMissingDirectory,
		},
		{
			name:        "signature verification disabled",
			contents:    "vm:\n  verifyAuth: false\n",
			expectedErr: ErrAuthDisabled,
		},
		{
			name:        "invalid log limits",
			contents:    "log:\n  maxFiles: 0\n",
			expectedErr: ErrInvalidLogLimits,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			c, err := Load(writeConfig(t, tt.contents))
			if tt.expectedErr == errUnmarshal {
				require.Error(err) //nolint:forbidigo
				return
			}
			require.ErrorIs(err, tt.expectedErr)
			if tt.check != nil {
				tt.check(require, c)
			}
		})
	}
}

func TestGetChainIDFromGenesis(t *testing.T) {
	require := require.New(t)
	c := NewDefaultConfig()
	genesisBytes := []byte(`{"customAllocation":[]}`)
	chainID, err := c.GetChainID(genesisBytes)
	require.NoError(err)
	require.Equal(utils.ToID(genesisBytes), chainID)

	c.ChainID = "not an id"
	_, err = c.GetChainID(genesisBytes)
	require.Error(err) //nolint:forbidigo
}
