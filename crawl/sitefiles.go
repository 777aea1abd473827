// Package crawl fetches the crawl-control files of a site.
// robots.txt and sitemap.xml are read from the registrable domain root,
// keeping these auxiliary fetches separate from the page pipeline.
package crawl

import (
	"context"
	"encoding/xml"

	"github.com/gaurav-prasanna/seoprobe/core"
)

// sitemapLoc holds a <loc> entry from a sitemap or sitemap index.
type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// sitemapDoc covers both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

// SiteFiles holds robots.txt and sitemap.xml as fetched from the site root.
type SiteFiles struct {
	Root          string
	RobotsURL     string
	RobotsStatus  int
	Robots        string
	SitemapURL    string
	SitemapStatus int
	Sitemap       string
}

// FetchSiteFiles fetches robots.txt and then sitemap.xml from the root of
// pageURL's registrable domain. fetcher should accept any status code so
// that a 404 is reported rather than treated as a failure. Any error
// fails both files together.
func FetchSiteFiles(ctx context.Context, fetcher core.Fetcher, pageURL string) (*SiteFiles, error) {
	root, err := SiteRoot(pageURL)
	if err != nil {
		return nil, core.NewError(core.ErrCodeAuxiliaryFetch, "deriving site root", err)
	}

	files := &SiteFiles{
		Root:       root,
		RobotsURL:  root + "/robots.txt",
		SitemapURL: root + "/sitemap.xml",
	}

	robots, err := fetcher.Fetch(ctx, files.RobotsURL)
	if err != nil {
		return nil, core.NewError(core.ErrCodeAuxiliaryFetch, "fetching robots.txt", err)
	}
	files.RobotsStatus = robots.StatusCode
	files.Robots = string(robots.Body)

	sitemap, err := fetcher.Fetch(ctx, files.SitemapURL)
	if err != nil {
		return nil, core.NewError(core.ErrCodeAuxiliaryFetch, "fetching sitemap.xml", err)
	}
	files.SitemapStatus = sitemap.StatusCode
	files.Sitemap = string(sitemap.Body)

	return files, nil
}

// SitemapURLCount returns how many <loc> entries the sitemap lists, or -1
// when the body is not a sitemap.
func (f *SiteFiles) SitemapURLCount() int {
	if f == nil || f.Sitemap == "" {
		return -1
	}
	var doc sitemapDoc
	if err := xml.Unmarshal([]byte(f.Sitemap), &doc); err != nil {
		return -1
	}
	switch doc.XMLName.Local {
	case "urlset":
		return len(doc.URLs)
	case "sitemapindex":
		return len(doc.Sitemaps)
	}
	return -1
}
