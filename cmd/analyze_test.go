package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/seoprobe/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagPDF, flagMarkdown, flagJSON, flagQuiet = false, false, false, false
	flagOutputDir = ""
}

func TestSelectRenderer(t *testing.T) {
	t.Cleanup(resetFlags)

	resetFlags()
	assert.IsType(t, &render.PDFRenderer{}, selectRenderer())

	flagJSON = true
	assert.IsType(t, &render.JSONRenderer{}, selectRenderer())

	resetFlags()
	flagMarkdown = true
	assert.IsType(t, &render.MarkdownRenderer{}, selectRenderer())
}

func TestAnalyzeCommand_WritesReport(t *testing.T) {
	t.Cleanup(resetFlags)
	t.Setenv("PAGESPEED_API_KEY", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *"))
		case "/sitemap.xml":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte(`<html><head><title>Hi</title></head><body><h1>Hello</h1></body></html>`))
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"analyze", srv.URL, "--json", "--quiet", "--output_dir", dir, "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "seo_report.json"))
	require.NoError(t, err)

	var rep map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Contains(t, rep, "Meta Information")
	assert.Contains(t, rep, "robots.txt")
	assert.NotContains(t, rep, "PageSpeed Insights")

	assert.Contains(t, stdout.String(), "seo_report.json")
	assert.Contains(t, stderr.String(), "Analysis completed in")
}

func TestAnalyzeCommand_RejectsRelativeURL(t *testing.T) {
	t.Cleanup(resetFlags)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"analyze", "example.com", "--quiet", "--output_dir", t.TempDir()})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")
}
