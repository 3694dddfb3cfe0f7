// Package source defines the shared source record types that flow through
// the research pipeline. A Candidate is an unvalidated title/url/summary
// triple proposed by the generation stage; a Source is a candidate enriched
// with fetched content and a relevance decision.
package source

// Candidate is one proposed web source, pre-content and unvalidated.
type Candidate struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Source is a candidate with fetched content. Exactly one of
// RelevanceScore (accepted) or RejectionReason (rejected) is meaningful
// once QA filtering has run.
type Source struct {
	Candidate
	// Content holds the extracted page text. Falls back to the candidate
	// summary when extraction failed.
	Content         string  `json:"content"`
	RelevanceScore  float64 `json:"relevance_score,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
}
