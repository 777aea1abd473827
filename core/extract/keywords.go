package extract

import (
	"sort"
	"strings"
	"unicode"
)

// TopKeywordCount is how many keywords the report lists.
const TopKeywordCount = 10

// Keyword is a token and how often it occurs.
type Keyword struct {
	Word  string
	Count int
}

// NormalizeText lower-cases text and drops every rune that is neither a
// word character (letter, number, underscore) nor whitespace.
func NormalizeText(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))
}

// Keywords returns the n most frequent tokens of text. Equal counts keep the
// order in which the tokens first appeared.
func Keywords(text string, n int) []Keyword {
	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(NormalizeText(text)) {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	ranked := make([]Keyword, len(order))
	for i, w := range order {
		ranked[i] = Keyword{Word: w, Count: counts[w]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
