// Package cmd: analyze command.
// This is the main command that orchestrates one run:
// fetch → extract → site files → PageSpeed → technologies → render → write.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/output"
	"github.com/gaurav-prasanna/seoprobe/core/pipeline"
	"github.com/gaurav-prasanna/seoprobe/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
	flagQuiet     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a URL and write seo_report.pdf",
	Long: `Analyze fetches a webpage, extracts its SEO signals, prints them as tables
and writes the report to disk (PDF by default, or JSON / Markdown).

Set PAGESPEED_API_KEY to include Google PageSpeed Insights scores.

Examples:
  seoprobe analyze https://example.com
  seoprobe analyze https://example.com --json --output_dir ./out
  seoprobe analyze https://example.com --markdown --quiet`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output format flags (mutually exclusive, PDF when none is given).
	analyzeCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF (default)")
	analyzeCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	analyzeCmd.MarkFlagsMutuallyExclusive("pdf", "markdown", "json")

	analyzeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	analyzeCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Skip the spinner and the terminal tables")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return core.NewError(core.ErrCodeInvalidInput,
			fmt.Sprintf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL), nil)
	}

	renderer := selectRenderer()

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := newAnalyzer(appCfg, nil, logger)
	defer func() { _ = logger.Sync() }()

	res, err := analyze(ctx, analyzer, rawURL, cmd.ErrOrStderr())
	defer fmt.Fprintf(cmd.ErrOrStderr(), "Analysis completed in %.2f seconds.\n", res.Elapsed.Seconds())
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", rawURL, err)
	}

	stdout := cmd.OutOrStdout()
	if !flagQuiet {
		if err := printTables(stdout, res); err != nil {
			return err
		}
		if res.PageSpeedSkipped {
			fmt.Fprintln(cmd.ErrOrStderr(), "PageSpeed API key not provided. Skipping this section.")
		}
	}

	data, err := renderer.Render(res.Report())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ Written: %s\n", path)
	return nil
}

// analyze runs the pipeline behind a spinner unless --quiet is set.
func analyze(ctx context.Context, a *pipeline.Analyzer, rawURL string, w io.Writer) (*pipeline.Analysis, error) {
	if !flagQuiet {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
		s.Suffix = " Analyzing SEO structure... please wait"
		s.Start()
		defer s.Stop()
	}
	return a.Run(ctx, rawURL)
}

// printTables writes the terminal view of the analysis.
func printTables(w io.Writer, res *pipeline.Analysis) error {
	data, err := render.NewTableRenderer().Render(res.Report())
	if err != nil {
		return fmt.Errorf("render tables: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if n := res.SiteFiles.SitemapURLCount(); n >= 0 {
		fmt.Fprintf(w, "sitemap.xml lists %d URLs\n", n)
	}
	return nil
}

// selectRenderer creates the Renderer chosen by the format flags.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagJSON:
		return render.NewJSONRenderer()
	default:
		return render.NewPDFRenderer()
	}
}
