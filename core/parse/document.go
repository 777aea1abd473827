// Package parse turns response bytes into a navigable, read-only HTML tree.
// Parsing is best effort: malformed markup never fails, only unreadable
// input does.
package parse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// skipText lists elements whose contents are not page text.
var skipText = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// Document is a parsed page owned by one analysis run.
type Document struct {
	doc *goquery.Document
}

// Parse decodes body using the charset from contentType (or the document's
// own meta declaration) and builds the HTML tree.
func Parse(body []byte, contentType string) (*Document, error) {
	var r io.Reader = bytes.NewReader(body)
	if decoded, err := charset.NewReader(r, contentType); err == nil {
		r = decoded
	} else {
		r = bytes.NewReader(body)
	}

	return parseReader(r)
}

// ParseString parses an HTML string already known to be UTF-8.
func ParseString(s string) (*Document, error) {
	return parseReader(strings.NewReader(s))
}

// parseReader builds the tree with scripting disabled so <noscript>
// children are parsed as elements rather than raw text.
func parseReader(r io.Reader) (*Document, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Find returns elements matching a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// FindMatcher returns elements matching a precompiled selector.
func (d *Document) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return d.doc.FindMatcher(m)
}

// HTML serializes the whole document.
func (d *Document) HTML() string {
	out, err := d.doc.Html()
	if err != nil {
		return ""
	}
	return out
}

// Text returns every visible text node joined by a single space.
// Script, style and template bodies and comments are skipped.
func (d *Document) Text() string {
	var parts []string
	for _, n := range d.doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			*parts = append(*parts, n.Data)
		}
		return
	case html.ElementNode:
		if skipText[n.Data] {
			return
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
