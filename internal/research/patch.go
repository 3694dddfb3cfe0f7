package research

import (
	"fathom/internal/qa"
	"fathom/internal/source"
)

// Patch is a partial-state update returned by a stage. Nil fields leave
// the corresponding State field untouched; this is the update contract
// every stage honors. Slice fields distinguish nil (untouched) from
// empty (replace with nothing), so the QA stage can install an empty
// accepted set.
type Patch struct {
	FrameworkLoaded *bool
	FrameworkText   *string

	Candidates      []source.Candidate
	Sources         []source.Source
	RejectedSources []source.Source
	QASourceReport  []string

	Findings   *string
	FindingsQA *qa.Result

	Status       *Status
	ErrorMessage *string
	OutputPath   *string
}

// Apply merges the patch into st.
func (p Patch) Apply(st *State) {
	if p.FrameworkLoaded != nil {
		st.FrameworkLoaded = *p.FrameworkLoaded
	}
	if p.FrameworkText != nil {
		st.FrameworkText = *p.FrameworkText
	}
	if p.Candidates != nil {
		st.Candidates = p.Candidates
	}
	if p.Sources != nil {
		st.Sources = p.Sources
	}
	if p.RejectedSources != nil {
		st.RejectedSources = p.RejectedSources
	}
	if p.QASourceReport != nil {
		st.QASourceReport = p.QASourceReport
	}
	if p.Findings != nil {
		st.Findings = *p.Findings
	}
	if p.FindingsQA != nil {
		st.FindingsQA = *p.FindingsQA
	}
	if p.Status != nil {
		st.Status = *p.Status
	}
	if p.ErrorMessage != nil {
		st.ErrorMessage = *p.ErrorMessage
	}
	if p.OutputPath != nil {
		st.OutputPath = *p.OutputPath
	}
}

func boolPtr(b bool) *bool       { return &b }
func strPtr(s string) *string    { return &s }
func statusPtr(s Status) *Status { return &s }
