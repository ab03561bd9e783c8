// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/citegraph/internal/engine"
	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/internal/logging"
	"github.com/pdiddy/citegraph/internal/server"
	"github.com/pdiddy/citegraph/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph build engine over HTTP",
	Long: `Serve exposes the engine as an HTTP API: POST /api/graph/build runs a
build, GET /api/graph/{fingerprint} peeks at the cache, GET /healthz reports
liveness. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srvCfg := types.ServerConfig{
		Addr:           viper.GetString("server.addr"),
		RequestTimeout: viper.GetDuration("server.request_timeout"),
		Mode:           viper.GetString("server.mode"),
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		srvCfg.Addr = addr
	}
	if srvCfg.Mode == "" {
		srvCfg.Mode = "release"
	}

	log, err := logging.New(srvCfg.Mode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	opts := []engine.Option{engine.WithLogger(log)}

	storeCfg := graphStoreConfig()
	if storeCfg.URI != "" {
		connectCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		store, err := graphstore.NewNeo4j(connectCtx, storeCfg)
		cancel()
		if err != nil {
			return fmt.Errorf("connecting to graph store: %w", err)
		}
		defer func() {
			closeCtx, cancel := timeoutContext(10 * time.Second)
			defer cancel()
			store.Close(closeCtx)
		}()
		opts = append(opts, engine.WithStore(store), engine.WithPersistTimeout(storeCfg.Timeout))
		log.Info("graph store connected", zap.String("uri", storeCfg.URI))
	} else {
		log.Info("no graph store configured, persistence disabled")
	}

	eng := engine.New(engineConfig(), opts...)
	srv := server.New(eng, log, srvCfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func timeoutContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
