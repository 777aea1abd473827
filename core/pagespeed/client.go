// Package pagespeed queries the Google PageSpeed Insights API for the
// desktop and mobile strategies and normalizes the Lighthouse category
// scores to 0-100 integers. Each strategy fails on its own: an error in
// one never hides the other's result.
package pagespeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/tidwall/gjson"
	"github.com/gaurav-prasanna/seoprobe/logging"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	DefaultTimeout  = 20 * time.Second

	// TimeoutMessage is the placeholder for a strategy whose request timed out.
	TimeoutMessage = "Error: PageSpeed API request timed out"
)

// Strategies are queried in this order.
var Strategies = []string{"desktop", "mobile"}

// category maps a Lighthouse category id to its report label.
type category struct {
	ID    string
	Label string
}

var categories = []category{
	{ID: "performance", Label: "Performance"},
	{ID: "accessibility", Label: "Accessibility"},
	{ID: "best-practices", Label: "Best Practices"},
	{ID: "seo", Label: "SEO"},
}

// Scores are the four Lighthouse category scores as percentages.
type Scores struct {
	Performance   int
	Accessibility int
	BestPractices int
	SEO           int
}

// Labeled returns the scores with their report labels, in report order.
func (s Scores) Labeled() []LabeledScore {
	byID := map[string]int{
		"performance":    s.Performance,
		"accessibility":  s.Accessibility,
		"best-practices": s.BestPractices,
		"seo":            s.SEO,
	}
	out := make([]LabeledScore, len(categories))
	for i, cat := range categories {
		out[i] = LabeledScore{Label: cat.Label, Value: byID[cat.ID]}
	}
	return out
}

// LabeledScore is one named score.
type LabeledScore struct {
	Label string
	Value int
}

// Result is the outcome for one strategy: either Scores or an Err placeholder.
type Result struct {
	Device string // "Desktop" or "Mobile"
	Scores Scores
	Err    string
}

// OK reports whether the strategy produced scores.
func (r Result) OK() bool { return r.Err == "" }

// ScoreSet holds one Result per strategy, in Strategies order.
type ScoreSet []Result

// Recorder receives per-strategy outcomes.
type Recorder interface {
	PageSpeedRequest(strategy, outcome string)
}

// Client calls the PageSpeed Insights API.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
	recorder Recorder
	log      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRecorder reports outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithLogger sets the client logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = logging.OrNop(log)
	}
}

// New creates a Client. An empty apiKey yields a disabled client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Scores queries every strategy in turn for pageURL.
func (c *Client) Scores(ctx context.Context, pageURL string) ScoreSet {
	set := make(ScoreSet, 0, len(Strategies))
	for _, strategy := range Strategies {
		res := Result{Device: deviceName(strategy)}
		scores, err := c.query(ctx, pageURL, strategy)
		outcome := "ok"
		switch {
		case err == nil:
			res.Scores = scores
		case fetch.IsTimeout(err):
			res.Err = TimeoutMessage
			outcome = "timeout"
		default:
			res.Err = "Error: " + err.Error()
			outcome = "error"
		}
		if err != nil {
			c.log.Warn("PageSpeed strategy failed",
				zap.String("strategy", strategy),
				zap.String("url", pageURL),
				zap.Error(err),
			)
		}
		if c.recorder != nil {
			c.recorder.PageSpeedRequest(strategy, outcome)
		}
		set = append(set, res)
	}
	return set
}

// query runs one strategy and extracts the four category scores.
func (c *Client) query(ctx context.Context, pageURL, strategy string) (Scores, error) {
	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("key", c.apiKey)
	params.Set("strategy", strategy)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Scores{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Keep the API key out of messages that end up in the report.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.endpoint
		}
		return Scores{}, core.NewError(core.ErrCodeScoreAPI, "calling PageSpeed API", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Scores{}, core.NewError(core.ErrCodeScoreAPI, "reading PageSpeed response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return Scores{}, core.NewError(core.ErrCodeScoreAPI,
			fmt.Sprintf("PageSpeed API returned %d: %s", resp.StatusCode, msg), nil)
	}

	return parseScores(body)
}

// parseScores reads lighthouseResult.categories.<id>.score for each category.
func parseScores(body []byte) (Scores, error) {
	if !gjson.ValidBytes(body) {
		return Scores{}, core.NewError(core.ErrCodeScoreAPI, "PageSpeed response is not valid JSON", nil)
	}

	values := make(map[string]int, len(categories))
	for _, cat := range categories {
		score := gjson.GetBytes(body, "lighthouseResult.categories."+cat.ID+".score")
		if score.Type != gjson.Number {
			return Scores{}, core.NewError(core.ErrCodeScoreAPI,
				fmt.Sprintf("missing %s score in PageSpeed response", cat.ID), nil)
		}
		values[cat.ID] = Percent(score.Float())
	}

	return Scores{
		Performance:   values["performance"],
		Accessibility: values["accessibility"],
		BestPractices: values["best-practices"],
		SEO:           values["seo"],
	}, nil
}

// Percent converts a 0.0-1.0 score to a 0-100 integer, rounding halves to even.
func Percent(score float64) int {
	return int(math.RoundToEven(score * 100))
}

func deviceName(strategy string) string {
	if strategy == "" {
		return strategy
	}
	return strings.ToUpper(strategy[:1]) + strategy[1:]
}
