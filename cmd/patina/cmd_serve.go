package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	mcpserver "patina/internal/mcp"
	"patina/internal/metrics"
)

var serveFlags struct {
	metricsAddr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts the patina MCP tool server over stdin/stdout.

With --metrics-addr (or PATINA_METRICS_ADDR) a Prometheus /metrics endpoint
is served alongside. The server watches its parent process and exits once
the launching client goes away.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.metricsAddr, "metrics-addr", "", "Listen address for /metrics (empty disables)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	m := metrics.New()
	srv, err := mcpserver.NewServer(mcpserver.Options{
		Name:    app.cfg.Server.Name,
		Version: app.cfg.Server.Version,
		Content: app.content,
		Metrics: m,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, app.logger, cancel)

	addr := app.cfg.Metrics.Addr
	if serveFlags.metricsAddr != "" {
		addr = serveFlags.metricsAddr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The client closing stdin ends the session; stop the metrics listener with it.
		defer cancel()
		return srv.Run(gctx)
	})
	if addr != "" {
		g.Go(func() error {
			app.logger.Info("serving metrics", slog.String("addr", addr))
			return m.Serve(gctx, addr)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
