// Package qa implements the two-tier quality gate for research runs:
// source relevance filtering and reasoning-quality scoring. All scoring
// functions are pure; the Validator is responsible for annotating source
// records with the decisions.
package qa

import "strings"

// stopWords are excluded from keyword extraction. Articles, conjunctions,
// and common prepositions carry no relevance signal.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "is": {}, "are": {},
	"to": {}, "in": {}, "on": {}, "of": {}, "for": {}, "with": {}, "by": {},
	"this": {}, "that": {},
}

// ExtractKeywords derives the relevance term set from a query: lowercase
// tokens with surrounding punctuation trimmed, longer than two characters,
// stop words excluded. Deterministic; preserves query order. A query made
// entirely of stop words yields an empty set, which scoring must treat as
// "cannot compute density" (neutral score), never as a divisor.
func ExtractKeywords(query string) []string {
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, stop := stopWords[w]; stop || len(w) <= 2 {
			continue
		}
		kw := strings.Trim(w, ".,!?;:")
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}
