// Package cmd: serve command.
// Runs the interactive web view until interrupted.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/seoprobe/metrics"
	"github.com/gaurav-prasanna/seoprobe/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive SEO analyzer in the browser",
	Long: `Serve starts a web UI where a URL can be analyzed and the report
downloaded as seo_report.pdf. It also exposes a JSON API, /healthz and
Prometheus /metrics.

Examples:
  seoprobe serve
  seoprobe serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appCfg.Server
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(reg)

	analyzer := newAnalyzer(appCfg, recorder, logger)
	srv := server.New(cfg, analyzer, recorder, logger.Named("server"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.Sync() }()

	logger.Info("seoprobe web view ready",
		zap.String("addr", cfg.Addr),
		zap.Bool("pagespeed", appCfg.PageSpeed.APIKey != ""),
	)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
