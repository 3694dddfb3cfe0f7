// Package research drives the staged research workflow: candidate
// generation, content fetching, two-tier QA gating, findings synthesis,
// and persistence. One State is threaded through a fixed linear sequence
// of stages; each stage returns a Patch merged into it.
package research

import (
	"github.com/google/uuid"

	"fathom/internal/qa"
	"fathom/internal/source"
)

// Status marks pipeline progress. It only moves forward along the stage
// order; any stage may jump to its own error terminal.
type Status string

const (
	StatusInitializing      Status = "initializing"
	StatusFrameworkLoaded   Status = "framework_loaded"
	StatusFrameworkNotFound Status = "framework_not_found"
	StatusFrameworkError    Status = "framework_error"
	StatusSearchComplete    Status = "search_complete"
	StatusSearchError       Status = "search_error"
	StatusContentFetched    Status = "content_fetched"
	StatusQAValidated       Status = "qa_validated"
	StatusQAValidationError Status = "qa_validation_error"
	StatusAnalysisComplete  Status = "analysis_complete"
	StatusAnalysisError     Status = "analysis_error"
	StatusComplete          Status = "complete"
	StatusError             Status = "error"
)

// State is the mutable record passed through every stage. It is created
// fresh per query, lives for one traversal, and is never shared across
// runs. Query is immutable once set.
type State struct {
	RunID string
	Query string

	FrameworkLoaded bool
	FrameworkText   string

	// Candidates is the raw generation output, pre-content.
	Candidates []source.Candidate
	// Sources is candidates enriched with content; the QA stage narrows
	// it to the accepted subset and it never grows after that.
	Sources []source.Source
	// RejectedSources is append-only, never re-merged.
	RejectedSources []source.Source
	// QASourceReport holds one line per evaluated source, in input order.
	QASourceReport []string

	Findings   string
	FindingsQA qa.Result

	Status       Status
	ErrorMessage string
	OutputPath   string
}

// NewState builds the initial state for one run.
func NewState(query string) *State {
	return &State{
		RunID:  uuid.NewString(),
		Query:  query,
		Status: StatusInitializing,
	}
}
