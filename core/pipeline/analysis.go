package pipeline

import (
	"net/http"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core/extract"
	"github.com/gaurav-prasanna/seoprobe/core/pagespeed"
	"github.com/gaurav-prasanna/seoprobe/core/report"
	"github.com/gaurav-prasanna/seoprobe/crawl"
)

// SiteFilesErrorPrefix starts the combined robots.txt / sitemap.xml error.
const SiteFilesErrorPrefix = "Error fetching robots.txt or sitemap.xml: "

// Analysis is the typed result of one run. Views read it directly;
// Report flattens it into the ordered sections used for downloads.
type Analysis struct {
	URL        string
	StatusCode int
	Header     http.Header

	Meta      extract.MetaInfo
	Headings  extract.HeadingSet
	Images    extract.ImageStats
	Links     extract.LinkStats
	Keywords  []extract.Keyword
	Schema    extract.Schema
	SiteFiles *crawl.SiteFiles
	// SiteFilesErr is set when robots.txt or sitemap.xml could not be fetched.
	SiteFilesErr error

	PageSpeed        pagespeed.ScoreSet
	PageSpeedSkipped bool

	Technologies []string

	// Elapsed is wall time of the whole run, set even when it fails.
	Elapsed time.Duration
}

// SiteFilesError is the message shown in place of robots.txt and sitemap.xml.
func (a *Analysis) SiteFilesError() string {
	if a.SiteFilesErr == nil {
		return ""
	}
	return SiteFilesErrorPrefix + a.SiteFilesErr.Error()
}

// RobotsPreview is robots.txt cut to the display length.
func (a *Analysis) RobotsPreview() string {
	if a.SiteFiles == nil {
		return ""
	}
	return crawl.Truncate(a.SiteFiles.Robots, crawl.PreviewLength)
}

// SitemapPreview is sitemap.xml cut to the display length.
func (a *Analysis) SitemapPreview() string {
	if a.SiteFiles == nil {
		return ""
	}
	return crawl.Truncate(a.SiteFiles.Sitemap, crawl.PreviewLength)
}

// Report builds the sections in their fixed order. Identical analyses
// yield identical reports: nothing time-dependent is included.
func (a *Analysis) Report() *report.Report {
	rep := report.New(a.URL)

	rep.Add(report.SectionMeta, report.Mapping(
		report.E("Title", report.Text(a.Meta.Title)),
		report.E("Meta Description", report.Text(a.Meta.Description)),
		report.E("Canonical URL", report.Text(a.Meta.Canonical)),
	))

	headings := make([]report.Entry, 0, len(a.Headings))
	for _, level := range a.Headings {
		headings = append(headings, report.E(level.Name, report.List(level.Texts)))
	}
	rep.Add(report.SectionHeadings, report.Mapping(headings...))

	rep.Add(report.SectionImages, report.Mapping(
		report.E("Total Images", report.Number(a.Images.Total)),
		report.E("Missing Alt Attributes", report.Number(a.Images.MissingAlt)),
	))
	rep.Add(report.SectionLinks, report.Mapping(
		report.E("Total", report.Number(a.Links.Total)),
		report.E("Internal", report.Number(a.Links.Internal)),
		report.E("External", report.Number(a.Links.External)),
	))

	keywords := make([]report.Entry, 0, len(a.Keywords))
	for _, kw := range a.Keywords {
		keywords = append(keywords, report.E(kw.Word, report.Number(kw.Count)))
	}
	rep.Add(report.SectionKeywords, report.Mapping(keywords...))

	rep.Add(report.SectionSchema, report.Text(a.Schema.Summary()))

	switch {
	case a.SiteFilesErr != nil:
		rep.Add(report.SectionSiteFiles, report.Text(a.SiteFilesError()))
	case a.SiteFiles != nil:
		rep.Add(report.SectionRobots, report.Text(crawl.Truncate(a.SiteFiles.Robots, crawl.ReportLength)))
		rep.Add(report.SectionSitemap, report.Text(crawl.Truncate(a.SiteFiles.Sitemap, crawl.ReportLength)))
	}

	if !a.PageSpeedSkipped {
		devices := make([]report.Entry, 0, len(a.PageSpeed))
		for _, res := range a.PageSpeed {
			if !res.OK() {
				devices = append(devices, report.E(res.Device, report.Text(res.Err)))
				continue
			}
			labeled := res.Scores.Labeled()
			scores := make([]report.Entry, len(labeled))
			for i, s := range labeled {
				scores[i] = report.E(s.Label, report.Number(s.Value))
			}
			devices = append(devices, report.E(res.Device, report.Mapping(scores...)))
		}
		rep.Add(report.SectionPageSpeed, report.Mapping(devices...))
	}

	rep.Add(report.SectionTechnologies, report.List(a.Technologies))
	return rep
}
