package search

import (
	"sort"
	"strings"

	"github.com/poiesic/searchit/core"
)

// Tokens shorter than this carry little signal ("a", "of", "is").
const minTokenLength = 3

// tokenSet splits text on whitespace, lowercases, and keeps tokens longer
// than two characters.
func tokenSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, word := range words {
		if len(word) >= minTokenLength {
			set[word] = true
		}
	}
	return set
}

// Explain computes the keyword-overlap explanation for a query against a
// document. The query is tokenized as-is; the document goes through the
// canonical cleaning transform first. OverlapRatio guards against empty or
// very short queries with the max(1, |queryTokens|) denominator, and
// LengthNorm decays smoothly with the raw word count so shorter documents
// score closer to 1.
func Explain(query string, doc *core.Document) *core.Explanation {
	queryTokens := tokenSet(query)
	docTokens := tokenSet(core.CleanText(doc.Text))

	matched := make([]string, 0, len(queryTokens))
	for token := range queryTokens {
		if docTokens[token] {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)

	denominator := len(queryTokens)
	if denominator < 1 {
		denominator = 1
	}

	return &core.Explanation{
		MatchedKeywords: matched,
		OverlapRatio:    float64(len(matched)) / float64(denominator),
		LengthNorm:      1.0 / (1.0 + float64(doc.WordCount)/500.0),
	}
}
