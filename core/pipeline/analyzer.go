// Package pipeline runs one analysis: fetch the page, run every extractor,
// query the optional services and collect the results into an Analysis.
// The primary fetch is the only fatal step; robots.txt, sitemap.xml and
// PageSpeed failures are recorded in the result and the run continues.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/extract"
	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/gaurav-prasanna/seoprobe/core/pagespeed"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
	"github.com/gaurav-prasanna/seoprobe/core/tech"
	"github.com/gaurav-prasanna/seoprobe/crawl"
	"github.com/gaurav-prasanna/seoprobe/logging"
	"go.uber.org/zap"
)

// DefaultSiteFilesTimeout bounds each robots.txt / sitemap.xml request.
const DefaultSiteFilesTimeout = 10 * time.Second

// ScoreClient provides PageSpeed scores. A disabled client is skipped.
type ScoreClient interface {
	Enabled() bool
	Scores(ctx context.Context, pageURL string) pagespeed.ScoreSet
}

// Recorder receives run-level metrics.
type Recorder interface {
	ObserveAnalysis(err error, elapsed time.Duration)
	SiteFilesFailed()
}

// Analyzer runs analyses. It holds no per-run state and is safe for
// concurrent use.
type Analyzer struct {
	fetcher     core.Fetcher
	siteFetcher core.Fetcher
	scores      ScoreClient
	recorder    Recorder
	log         *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSiteFetcher sets the fetcher for robots.txt and sitemap.xml.
// It should accept any status code.
func WithSiteFetcher(f core.Fetcher) Option {
	return func(a *Analyzer) { a.siteFetcher = f }
}

// WithScoreClient enables the PageSpeed section.
func WithScoreClient(c ScoreClient) Option {
	return func(a *Analyzer) { a.scores = c }
}

// WithRecorder reports run metrics to r.
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// WithLogger sets the analyzer logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		a.log = logging.OrNop(log)
	}
}

// New creates an Analyzer around the primary page fetcher.
func New(fetcher core.Fetcher, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher: fetcher,
		siteFetcher: fetch.New(
			fetch.WithTimeout(DefaultSiteFilesTimeout),
			fetch.WithAcceptAnyStatus(),
		),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyzes pageURL. The returned Analysis is never nil and always
// carries Elapsed; on error its other fields may be incomplete.
func (a *Analyzer) Run(ctx context.Context, pageURL string) (res *Analysis, err error) {
	start := time.Now()
	pageURL = strings.TrimSpace(pageURL)
	res = &Analysis{URL: pageURL}
	log := a.log.With(zap.String("url", pageURL))

	defer func() {
		if r := recover(); r != nil {
			err = core.NewError(core.ErrCodeInternal, fmt.Sprintf("analysis aborted: %v", r), nil)
			log.Error("Analysis panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
		res.Elapsed = time.Since(start)
		if a.recorder != nil {
			a.recorder.ObserveAnalysis(err, res.Elapsed)
		}
		log.Info("Analysis finished",
			zap.Duration("elapsed", res.Elapsed),
			zap.Bool("ok", err == nil),
		)
	}()

	if pageURL == "" {
		return res, core.NewError(core.ErrCodeInvalidInput, "please enter a valid URL", nil)
	}

	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Error("Primary fetch failed", zap.Error(err))
		return res, err
	}
	res.StatusCode = page.StatusCode
	res.Header = page.Header
	log.Debug("Fetched page", zap.Int("status", page.StatusCode), zap.Int("bytes", len(page.Body)))

	doc, err := parse.Parse(page.Body, page.ContentType())
	if err != nil {
		return res, core.NewError(core.ErrCodeInternal, "parsing page", err)
	}

	res.Meta = extract.Meta(doc)
	res.Headings = extract.Headings(doc)
	res.Images = extract.Images(doc)
	res.Links = extract.Links(doc, pageURL)
	res.Keywords = extract.Keywords(doc.Text(), extract.TopKeywordCount)
	res.Schema = extract.StructuredData(doc)
	log.Debug("Extracted page signals",
		zap.Int("images", res.Images.Total),
		zap.Int("links", res.Links.Total),
		zap.Int("json_ld", len(res.Schema.Scripts)),
	)

	res.SiteFiles, res.SiteFilesErr = crawl.FetchSiteFiles(ctx, a.siteFetcher, pageURL)
	if res.SiteFilesErr != nil {
		log.Warn("robots.txt / sitemap.xml unavailable", zap.Error(res.SiteFilesErr))
		if a.recorder != nil {
			a.recorder.SiteFilesFailed()
		}
	}

	if a.scores != nil && a.scores.Enabled() {
		res.PageSpeed = a.scores.Scores(ctx, pageURL)
	} else {
		res.PageSpeedSkipped = true
		log.Debug("PageSpeed API key not provided, skipping")
	}

	res.Technologies = tech.Detect(pageURL, doc, page.Header)
	return res, nil
}
