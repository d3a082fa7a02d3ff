// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/provisionvm/api/jsonrpc"
	"github.com/ava-labs/provisionvm/config"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/pebble"
	"github.com/ava-labs/provisionvm/server"
	"github.com/ava-labs/provisionvm/trace"
	"github.com/ava-labs/provisionvm/utils"
	"github.com/ava-labs/provisionvm/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [options]",
	Short: "Runs a node serving the JSON-RPC API",
	RunE: func(*cobra.Command, []string) error {
		return runNode(context.Background())
	},
}

func runNode(ctx context.Context) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logDir, err := utils.InitSubDirectory(c.DataDirectory, "logs")
	if err != nil {
		return err
	}
	logConfig, err := c.LoggingConfig(logDir)
	if err != nil {
		return err
	}
	logFactory := newLogFactory(logConfig)
	defer logFactory.Close()
	log, err := logFactory.Make(consts.Name)
	if err != nil {
		return err
	}

	genesisBytes, err := os.ReadFile(c.GenesisFile)
	if err != nil {
		return err
	}
	chainID, err := c.GetChainID(genesisBytes)
	if err != nil {
		return err
	}

	tracer, err := trace.New(&c.Trace)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("unable to close tracer", zap.Error(err))
		}
	}()

	dbDir, err := utils.InitSubDirectory(c.DataDirectory, "db")
	if err != nil {
		return err
	}
	db, dbRegistry, err := pebble.New(dbDir, c.Database)
	if err != nil {
		return err
	}

	node, err := vm.New(ctx, log, tracer, db, genesisBytes, c.NetworkID, chainID, c.VM)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			log.Error("unable to close vm", zap.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", c.HTTPAddress)
	if err != nil {
		return err
	}
	srv, err := server.New(
		log,
		listener,
		c.HTTP,
		c.AllowedOrigins,
		c.AllowedHosts,
		c.ShutdownTimeout,
	)
	if err != nil {
		return err
	}
	handler, err := jsonrpc.JSONRPCServerFactory{}.New(node)
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler.Handler, handler.Path); err != nil {
		return err
	}
	if err := srv.AddMetrics(prometheus.Gatherers{node.Registry(), dbRegistry}); err != nil {
		return err
	}

	dispatched := make(chan error, 1)
	go func() {
		dispatched <- srv.Dispatch()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	utils.Outf("{{green}}serving{{/}} {{cyan}}%s%s{{/}}\n", listener.Addr(), handler.Path)
	select {
	case sig := <-signals:
		log.Info("received signal", zap.Stringer("signal", sig))
	case err := <-dispatched:
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return srv.Shutdown()
}
