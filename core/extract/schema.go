package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
)

// SchemaNotFound is reported when a page has no JSON-LD.
const SchemaNotFound = "Not Found"

var jsonLDSel = cascadia.MustCompile(`script[type="application/ld+json"]`)

// Schema holds the trimmed bodies of the page's JSON-LD scripts.
type Schema struct {
	Scripts []string
}

// StructuredData finds every <script type="application/ld+json">.
func StructuredData(doc *parse.Document) Schema {
	scripts := []string{}
	doc.FindMatcher(jsonLDSel).Each(func(_ int, s *goquery.Selection) {
		scripts = append(scripts, strings.TrimSpace(s.Text()))
	})
	return Schema{Scripts: scripts}
}

// Found reports whether any JSON-LD script was present.
func (s Schema) Found() bool {
	return len(s.Scripts) > 0
}

// Summary is the user-facing line for the report.
func (s Schema) Summary() string {
	if !s.Found() {
		return SchemaNotFound
	}
	return fmt.Sprintf("%d JSON-LD scripts found", len(s.Scripts))
}
