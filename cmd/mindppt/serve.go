package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve exposes analyze-text, generate-outline and generate-ppt under /api,
plus /health and Prometheus metrics on /metrics. The server shuts down
gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := logger.New(cfg.LogMode)
		if err != nil {
			return err
		}
		defer log.Sync()

		metrics := server.NewMetrics("mindppt")
		guard := llm.NewGuard(llm.DefaultGuardConfig(), func(name, from, to string) {
			log.Warn("circuit breaker state changed", "name", name, "from", from, "to", to)
			metrics.BreakerChanged(name, from, to)
		})
		p := pipeline.New(
			func() (llm.Provider, error) { return llm.NewProvider(cfg) },
			pipeline.WithLogger(log),
			pipeline.WithGuard(guard),
			pipeline.WithObserver(metrics.ObserveLLM),
		)

		srv := server.New(server.Options{
			Config:   cfg,
			Pipeline: p,
			Logger:   log,
			Metrics:  metrics,
			Guard:    guard,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
