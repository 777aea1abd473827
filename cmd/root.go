// Package cmd implements the CLI commands for seoprobe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/seoprobe/config"
	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/gaurav-prasanna/seoprobe/core/pagespeed"
	"github.com/gaurav-prasanna/seoprobe/core/pipeline"
	"github.com/gaurav-prasanna/seoprobe/logging"
	"github.com/gaurav-prasanna/seoprobe/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string
	debug    bool

	v      = viper.New()
	appCfg *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "seoprobe",
	Short: "seoprobe analyzes the on-page SEO structure of a URL",
	Long: `seoprobe fetches a single page, extracts its SEO signals (meta tags,
headings, images, links, keywords, structured data), checks robots.txt and
sitemap.xml, optionally queries Google PageSpeed Insights and detects the
technologies behind the site.

Usage:
  seoprobe analyze <url> [flags]
  seoprobe serve [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging with console output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig resolves configuration and builds the logger before any
// subcommand runs.
func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Setup(v, cfgFile); err != nil {
		return err
	}
	if err := v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind log-level flag: %w", err)
	}
	if debug {
		v.Set(config.KeyLogLevel, "debug")
		v.Set(config.KeyLogDevelopment, true)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	appCfg = cfg

	l, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// newAnalyzer wires the pipeline from configuration. recorder may be nil.
func newAnalyzer(cfg *config.Config, recorder *metrics.Recorder, log *zap.Logger) *pipeline.Analyzer {
	primary := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	)
	siteFiles := fetch.New(
		fetch.WithTimeout(cfg.SiteFiles.Timeout),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithAcceptAnyStatus(),
	)

	psOpts := []pagespeed.Option{
		pagespeed.WithEndpoint(cfg.PageSpeed.Endpoint),
		pagespeed.WithTimeout(cfg.PageSpeed.Timeout),
		pagespeed.WithLogger(log.Named("pagespeed")),
	}
	opts := []pipeline.Option{
		pipeline.WithSiteFetcher(siteFiles),
		pipeline.WithLogger(log.Named("pipeline")),
	}
	if recorder != nil {
		psOpts = append(psOpts, pagespeed.WithRecorder(recorder))
		opts = append(opts, pipeline.WithRecorder(recorder))
	}
	opts = append(opts, pipeline.WithScoreClient(pagespeed.New(cfg.PageSpeed.APIKey, psOpts...)))

	return pipeline.New(primary, opts...)
}
