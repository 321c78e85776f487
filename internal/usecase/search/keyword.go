package search

import "strings"

// Text fields of a document that keyword scoring matches against.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// DefaultKeywordFields matches the title and description of each document.
var DefaultKeywordFields = []string{FieldTitle, FieldDescription}

// keywordScore sums non-overlapping substring occurrences of each query term
// in the text. Terms come from lowercasing the query and splitting on
// whitespace. Matching is substring-based: "cat" matches inside "category".
func keywordScore(query, text string) int {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}

	text = strings.ToLower(text)

	score := 0
	for _, term := range terms {
		score += strings.Count(text, term)
	}
	return score
}
