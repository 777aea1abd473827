package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
	"github.com/gaurav-prasanna/seoprobe/crawl"
)

var (
	imgSel  = cascadia.MustCompile("img")
	linkSel = cascadia.MustCompile("a[href]")
)

// ImageStats counts images and those without a non-empty alt attribute.
type ImageStats struct {
	Total      int
	MissingAlt int
}

// LinkStats counts anchors with an href, split by the domain-label heuristic.
type LinkStats struct {
	Total    int
	Internal int
	External int
}

// Images counts <img> elements and those missing alt text.
func Images(doc *parse.Document) ImageStats {
	var stats ImageStats
	doc.FindMatcher(imgSel).Each(func(_ int, s *goquery.Selection) {
		stats.Total++
		if alt, _ := s.Attr("alt"); alt == "" {
			stats.MissingAlt++
		}
	})
	return stats
}

// Links classifies every <a href> as internal when the page's domain label
// appears anywhere in the href, external otherwise.
func Links(doc *parse.Document, pageURL string) LinkStats {
	label := crawl.DomainLabel(pageURL)

	var stats LinkStats
	doc.FindMatcher(linkSel).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		stats.Total++
		if crawl.IsInternalHref(href, label) {
			stats.Internal++
		} else {
			stats.External++
		}
	})
	return stats
}
