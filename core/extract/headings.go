package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/seoprobe/core/parse"
)

// HeadingLevels is the number of HTML heading levels (h1..h6).
const HeadingLevels = 6

// HeadingLevel holds the texts of one heading level in document order.
type HeadingLevel struct {
	Name  string // "H1".."H6"
	Texts []string
}

// HeadingSet always holds all six levels, H1 first.
type HeadingSet [HeadingLevels]HeadingLevel

// Headings collects the text of every h1..h6 element.
func Headings(doc *parse.Document) HeadingSet {
	var out HeadingSet
	for i := 0; i < HeadingLevels; i++ {
		level := i + 1
		texts := []string{}
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, collapseSpace(s.Text()))
		})
		out[i] = HeadingLevel{Name: fmt.Sprintf("H%d", level), Texts: texts}
	}
	return out
}

// collapseSpace trims s and folds internal whitespace runs to one space.
// Whitespace between inline children survives as a separator, so
// "Sub  <b>one</b>" reads "Sub one", not the node-stripped "Subone".
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
