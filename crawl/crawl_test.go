package crawl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/seoprobe/core"
	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteRoot(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain domain", "https://example.com/about", "https://example.com"},
		{"subdomain dropped", "https://www.example.com/a/b?q=1", "https://example.com"},
		{"multi-part suffix", "https://www.example.co.uk/x", "https://example.co.uk"},
		{"scheme kept", "http://blog.example.org", "http://example.org"},
		{"ip with port", "http://127.0.0.1:8080/page", "http://127.0.0.1:8080"},
		{"localhost", "http://localhost:3000/", "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SiteRoot(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSiteRoot_RejectsRelative(t *testing.T) {
	_, err := SiteRoot("/just/a/path")
	assert.Error(t, err)
}

func TestDomainLabel(t *testing.T) {
	assert.Equal(t, "example", DomainLabel("https://example.com"))
	assert.Equal(t, "example", DomainLabel("https://shop.example.co.uk/cart"))
	assert.Equal(t, "127.0.0.1", DomainLabel("http://127.0.0.1:9000/"))
}

func TestIsInternalHref_SubstringHeuristic(t *testing.T) {
	label := DomainLabel("https://example.com")

	assert.True(t, IsInternalHref("https://example.com/about", label))
	assert.False(t, IsInternalHref("https://other.com/x", label))
	// Unrelated domains containing the label count as internal.
	assert.True(t, IsInternalHref("https://notexample.net/", label))
	// Relative links never contain the label.
	assert.False(t, IsInternalHref("/contact", label))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "hé...", Truncate("héllo", 2))
}

func TestFetchSiteFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /admin\n"))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := fetch.New(fetch.WithAcceptAnyStatus())
	files, err := FetchSiteFiles(context.Background(), f, srv.URL+"/deep/page")
	require.NoError(t, err)

	assert.Equal(t, srv.URL, files.Root)
	assert.Equal(t, http.StatusOK, files.RobotsStatus)
	assert.Contains(t, files.Robots, "Disallow: /admin")
	assert.Equal(t, http.StatusNotFound, files.SitemapStatus)
	assert.Equal(t, -1, files.SitemapURLCount())
}

func TestFetchSiteFiles_FailureIsAuxiliary(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := FetchSiteFiles(context.Background(), fetch.New(fetch.WithAcceptAnyStatus()), url)
	require.Error(t, err)
	assert.True(t, core.HasCode(err, core.ErrCodeAuxiliaryFetch))
	assert.True(t, strings.HasPrefix(err.Error(), "fetching robots.txt"))
}

func TestSitemapURLCount(t *testing.T) {
	urlset := &SiteFiles{Sitemap: `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>`}
	assert.Equal(t, 2, urlset.SitemapURLCount())

	index := &SiteFiles{Sitemap: `<sitemapindex><sitemap><loc>https://example.com/s1.xml</loc></sitemap></sitemapindex>`}
	assert.Equal(t, 1, index.SitemapURLCount())

	assert.Equal(t, -1, (&SiteFiles{Sitemap: "<html>nope</html>"}).SitemapURLCount())
}
