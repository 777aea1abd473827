// Package tech guesses the platform, framework and server behind a page
// from response headers, the generator meta tag and a fixed vocabulary
// searched in the serialized document. It is a heuristic: false positives
// and negatives are expected.
package tech

import (
	"net/http"
	"regexp"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
)

// NotDetected is the single tag reported when no rule matched.
const NotDetected = "Technology not detected"

// substringRule adds Tag when any of Needles occurs in the lower-cased document.
type substringRule struct {
	Tag     string
	Needles []string
}

// patternRule adds Tag when Pattern matches the lower-cased document.
type patternRule struct {
	Tag     string
	Pattern *regexp.Regexp
}

// serverRule adds Tag when Needle occurs in the lower-cased Server header.
type serverRule struct {
	Tag    string
	Needle string
}

var substringRules = []substringRule{
	// CMS and hosted platforms.
	{Tag: "WordPress", Needles: []string{"wp-content", "wordpress"}},
	{Tag: "Shopify", Needles: []string{"shopify"}},
	{Tag: "Drupal", Needles: []string{"drupal"}},
	{Tag: "Joomla", Needles: []string{"joomla"}},
	{Tag: "Magento", Needles: []string{"magento"}},
	{Tag: "Wix", Needles: []string{"wix.com"}},
	{Tag: "Squarespace", Needles: []string{"squarespace"}},
	// Backend frameworks and languages.
	{Tag: "Django", Needles: []string{"django"}},
	{Tag: "Flask", Needles: []string{"flask"}},
	{Tag: "Laravel", Needles: []string{"laravel"}},
	{Tag: "Ruby on Rails", Needles: []string{"ruby on rails", "rails"}},
	{Tag: "Express.js", Needles: []string{"express"}},
	{Tag: "PHP", Needles: []string{"php"}},
}

// Frontend frameworks. Short names are word-anchored; the dotted names keep
// "." as a wildcard.
var patternRules = []patternRule{
	{Tag: "React.js", Pattern: regexp.MustCompile(`\breact\b`)},
	{Tag: "Angular", Pattern: regexp.MustCompile(`\bangular\b`)},
	{Tag: "Vue.js", Pattern: regexp.MustCompile(`\bvue\b`)},
	{Tag: "Next.js", Pattern: regexp.MustCompile(`next.js`)},
	{Tag: "Nuxt.js", Pattern: regexp.MustCompile(`nuxt.js`)},
	{Tag: "Ember.js", Pattern: regexp.MustCompile(`ember.js`)},
}

var serverRules = []serverRule{
	{Tag: "Apache HTTP Server", Needle: "apache"},
	{Tag: "Nginx", Needle: "nginx"},
}

// headerRules are recorded verbatim as "<Header>: <value>".
var headerRules = []string{"X-Powered-By", "Server"}

// vocabulary flattens substringRules for a single Aho-Corasick pass.
var (
	vocabulary []string
	needleTag  []string
	matcher    *ahocorasick.Matcher
)

func init() {
	for _, rule := range substringRules {
		for _, needle := range rule.Needles {
			vocabulary = append(vocabulary, needle)
			needleTag = append(needleTag, rule.Tag)
		}
	}
	matcher = ahocorasick.NewStringMatcher(vocabulary)
}

// Detect returns the sorted, deduplicated technology tags for a page.
// pageURL is not consulted by the current rule set.
func Detect(pageURL string, doc *parse.Document, header http.Header) []string {
	found := make(map[string]struct{})
	add := func(tag string) { found[tag] = struct{}{} }

	for _, name := range headerRules {
		if v := header.Get(name); v != "" {
			add(name + ": " + v)
		}
	}

	if gen, ok := doc.Find(`meta[name="generator"]`).First().Attr("content"); ok && gen != "" {
		add("Generator: " + gen)
	}

	page := strings.ToLower(doc.HTML())
	for _, idx := range matcher.MatchThreadSafe([]byte(page)) {
		add(needleTag[idx])
	}
	for _, rule := range patternRules {
		if rule.Pattern.MatchString(page) {
			add(rule.Tag)
		}
	}

	server := strings.ToLower(header.Get("Server"))
	for _, rule := range serverRules {
		if strings.Contains(server, rule.Needle) {
			add(rule.Tag)
		}
	}

	if len(found) == 0 {
		return []string{NotDetected}
	}
	tags := make([]string, 0, len(found))
	for tag := range found {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
