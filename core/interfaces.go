// Package core defines the pipeline interfaces for seoprobe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"net/http"

	"github.com/gaurav-prasanna/seoprobe/core/report"
)

// FetchResult holds the raw response of a single GET.
type FetchResult struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the Content-Type header of the response.
func (r *FetchResult) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Fetcher retrieves a URL over HTTP.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts an aggregated report into a final output format.
type Renderer interface {
	Render(rep *report.Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".pdf").
	Extension() string
	// ContentType is the MIME type served for downloads.
	ContentType() string
}
