// Package fetch implements the Fetcher interface.
// It performs single HTTP GET requests with a browser-like user agent and a
// hard timeout. There are no retries: a failed fetch is returned as-is.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	maxBodyBytes = 10 * 1024 * 1024
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	anyStatus bool
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the whole-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithAcceptAnyStatus returns non-2xx responses instead of failing on them.
func WithAcceptAnyStatus() Option {
	return func(f *HTTPFetcher) { f.anyStatus = true }
}

// WithClient replaces the underlying HTTP client. The timeout set by
// WithTimeout applies to this client if given after it.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the given URL and returns status, headers and body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.NewError(core.ErrCodeInvalidInput, "creating request for "+url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return nil, core.NewError(core.ErrCodeTimeout, "fetching "+url+" timed out", err)
		}
		return nil, core.NewError(core.ErrCodeNetwork, "fetching "+url, err)
	}
	defer resp.Body.Close()

	if !f.anyStatus && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return nil, core.NewError(core.ErrCodeNetwork,
			fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, url), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if IsTimeout(err) {
			return nil, core.NewError(core.ErrCodeTimeout, "reading "+url+" timed out", err)
		}
		return nil, core.NewError(core.ErrCodeNetwork, "reading response body", err)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// IsTimeout reports whether err came from a deadline rather than a refusal.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
