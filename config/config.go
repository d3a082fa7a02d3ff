// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//nolint:revive
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/pebble"
	"github.com/ava-labs/provisionvm/server"
	"github.com/ava-labs/provisionvm/trace"
	"github.com/ava-labs/provisionvm/utils"
	"github.com/ava-labs/provisionvm/vm"
)

var (
	ErrMissingGenesis    = errors.New("genesis file is required")
	ErrMissingDirectory  = errors.New("data directory is required")
	ErrInvalidLogLimits  = errors.New("log rotation limits must be positive")
	ErrInvalidHTTPConfig = errors.New("http address is required")
	ErrAuthDisabled      = errors.New("signature verification cannot be disabled on a node")
)

type LogConfig struct {
	Level        string `yaml:"level"`
	DisplayLevel string `yaml:"displayLevel"`
	Format       string `yaml:"format"`
	MaxSize      int    `yaml:"maxSize"`  // megabytes
	MaxFiles     int    `yaml:"maxFiles"` // files
	MaxAge       int    `yaml:"maxAge"`   // days
	Compress     bool   `yaml:"compress"`
}

// Config configures a provisionvm node.
type Config struct {
	DataDirectory string `yaml:"dataDirectory"`
	GenesisFile   string `yaml:"genesisFile"`
	NetworkID     uint32 `yaml:"networkId"`
	// ChainID defaults to the hash of the genesis file when empty.
	ChainID string `yaml:"chainId"`

	HTTPAddress     string            `yaml:"httpAddress"`
	HTTP            server.HTTPConfig `yaml:"http"`
	AllowedOrigins  []string          `yaml:"allowedOrigins"`
	AllowedHosts    []string          `yaml:"allowedHosts"`
	ShutdownTimeout time.Duration     `yaml:"shutdownTimeout"`

	Log      LogConfig     `yaml:"log"`
	Trace    trace.Config  `yaml:"trace"`
	Database pebble.Config `yaml:"database"`
	VM       vm.Config     `yaml:"vm"`
}

func NewDefaultConfig() Config {
	return Config{
		DataDirectory: ".provisionvm",
		GenesisFile:   "genesis.json",
		NetworkID:     consts.DefaultNetworkID,

		HTTPAddress: "127.0.0.1:9650",
		HTTP: server.HTTPConfig{
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: 10 * time.Second,

		Log: LogConfig{
			Level:        logging.Info.String(),
			DisplayLevel: logging.Info.String(),
			Format:       "auto",
			MaxSize:      8,
			MaxFiles:     7,
			MaxAge:       7,
		},
		Trace: trace.Config{
			TraceSampleRate: 0.1,
			AppName:         consts.Name,
			Agent:           consts.Name,
			Version:         consts.Version.String(),
		},
		Database: pebble.NewDefaultConfig(),
		VM:       vm.NewConfig(),
	}
}

// Load reads the YAML file at [path] over the default config. Unknown
// fields are rejected.
func Load(path string) (Config, error) {
	c := NewDefaultConfig()
	if len(path) == 0 {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, fmt.Errorf("%w: unable to parse config", err)
	}
	return c, c.Verify()
}

func (c Config) Verify() error {
	switch {
	case len(c.DataDirectory) == 0:
		return ErrMissingDirectory
	case len(c.GenesisFile) == 0:
		return ErrMissingGenesis
	case len(c.HTTPAddress) == 0:
		return ErrInvalidHTTPConfig
	case c.Log.MaxSize <= 0 || c.Log.MaxFiles <= 0 || c.Log.MaxAge <= 0:
		return ErrInvalidLogLimits
	case !c.VM.VerifyAuth:
		return ErrAuthDisabled
	}
	if _, err := c.LoggingConfig(""); err != nil {
		return err
	}
	_, err := c.GetChainID(nil)
	return err
}

// GetChainID returns the configured chain ID, or the ID derived from
// [genesisBytes] when none is set.
func (c Config) GetChainID(genesisBytes []byte) (ids.ID, error) {
	if len(c.ChainID) == 0 {
		return utils.ToID(genesisBytes), nil
	}
	return ids.FromString(c.ChainID)
}

// LoggingConfig converts [c.Log] into a logging config writing to [dir].
func (c Config) LoggingConfig(dir string) (logging.Config, error) {
	level, err := logging.ToLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, err
	}
	displayLevel, err := logging.ToLevel(c.Log.DisplayLevel)
	if err != nil {
		return logging.Config{}, err
	}
	format, err := logging.ToFormat(c.Log.Format, os.Stdout.Fd())
	if err != nil {
		return logging.Config{}, err
	}
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   c.Log.MaxSize,
			MaxFiles:  c.Log.MaxFiles,
			MaxAge:    c.Log.MaxAge,
			Directory: dir,
			Compress:  c.Log.Compress,
		},
		LogLevel:     level,
		DisplayLevel: displayLevel,
		LogFormat:    format,
	}, nil
}
