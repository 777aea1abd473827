// Package metrics exposes Prometheus instrumentation for analysis runs.
// A nil *Recorder is valid and records nothing, so the CLI can run
// without a registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seoprobe"

// Analysis outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the analysis metrics.
type Recorder struct {
	gatherer prometheus.Gatherer

	AnalysesTotal     *prometheus.CounterVec
	AnalysisDuration  prometheus.Histogram
	PageSpeedRequests *prometheus.CounterVec
	SiteFileFailures  prometheus.Counter
}

// NewRecorder registers the metrics on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the global registry.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Analysis runs by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of a full analysis run.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
		PageSpeedRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagespeed_requests_total",
			Help:      "PageSpeed Insights requests by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		SiteFileFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "site_files_failures_total",
			Help:      "robots.txt / sitemap.xml fetches that failed.",
		}),
	}
}

// ObserveAnalysis records one finished run.
func (r *Recorder) ObserveAnalysis(err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.AnalysesTotal.WithLabelValues(outcome).Inc()
	r.AnalysisDuration.Observe(elapsed.Seconds())
}

// PageSpeedRequest records one strategy outcome.
func (r *Recorder) PageSpeedRequest(strategy, outcome string) {
	if r == nil {
		return
	}
	r.PageSpeedRequests.WithLabelValues(strategy, outcome).Inc()
}

// SiteFilesFailed records a failed robots.txt / sitemap.xml fetch.
func (r *Recorder) SiteFilesFailed() {
	if r == nil {
		return
	}
	r.SiteFileFailures.Inc()
}

// Handler serves the registry for /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
