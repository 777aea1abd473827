// Package extract holds the page extractors. Each one is a pure function of
// a parsed document (plus the page URL where needed) and never fails:
// missing elements produce sentinel values instead of errors.
package extract

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
)

// NotAvailable stands in for a missing meta value.
const NotAvailable = "N/A"

var (
	titleSel       = cascadia.MustCompile("title")
	descriptionSel = cascadia.MustCompile(`meta[name="description"]`)
	canonicalSel   = cascadia.MustCompile(`link[rel~="canonical"]`)
)

// MetaInfo is the page's title, meta description and canonical URL.
type MetaInfo struct {
	Title       string
	Description string
	Canonical   string
}

// Meta reads the title, description and canonical link of doc.
func Meta(doc *parse.Document) MetaInfo {
	info := MetaInfo{
		Title:       NotAvailable,
		Description: NotAvailable,
		Canonical:   NotAvailable,
	}

	if title := doc.FindMatcher(titleSel).First(); title.Length() > 0 {
		info.Title = strings.TrimSpace(title.Text())
	}
	if content, ok := doc.FindMatcher(descriptionSel).First().Attr("content"); ok {
		info.Description = content
	}
	if href, ok := doc.FindMatcher(canonicalSel).First().Attr("href"); ok {
		info.Canonical = href
	}
	return info
}
