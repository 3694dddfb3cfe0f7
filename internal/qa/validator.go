package qa

import (
	"fmt"
	"strings"

	"fathom/internal/source"
)

// Result is the outcome of findings validation.
type Result struct {
	IsValid      bool     `json:"is_valid"`
	QualityScore float64  `json:"quality_score"`
	Issues       []string `json:"issues"`
	Message      string   `json:"message,omitempty"`
}

// Report is the consolidated output of ValidateAll.
type Report struct {
	SourcesEvaluated int             `json:"sources_evaluated"`
	SourcesAccepted  int             `json:"sources_accepted"`
	SourcesRejected  int             `json:"sources_rejected"`
	Accepted         []source.Source `json:"accepted"`
	Rejected         []source.Source `json:"rejected"`
	SourceDetails    []string        `json:"source_details"`
	Findings         Result          `json:"findings"`
	SourceQuality    float64         `json:"source_quality"`
	PassedQA         bool            `json:"passed_qa"`
}

// Validator composes the relevance filter and the reasoning scorer into
// one filtering pass over sources and one scoring pass over findings.
// Construct one per query; the keyword set is derived from the query.
type Validator struct {
	query  string
	filter *RelevanceFilter
}

// New builds a Validator for the given research query.
func New(query string) *Validator {
	return &Validator{query: query, filter: NewRelevanceFilter(query)}
}

// ValidateSources evaluates sources in input order and partitions them into
// accepted and rejected, preserving relative order on both sides. Accepted
// sources are annotated with their relevance score, rejected ones with the
// rejection reason. One report line per source is produced in input order,
// independent of the partition.
func (v *Validator) ValidateSources(sources []source.Source) (accepted, rejected []source.Source, report []string) {
	accepted = make([]source.Source, 0, len(sources))
	rejected = make([]source.Source, 0)
	report = make([]string, 0, len(sources))

	for i, src := range sources {
		ok, score, reason := v.filter.Evaluate(src.Candidate)
		if ok {
			src.RelevanceScore = score
			accepted = append(accepted, src)
			report = append(report, fmt.Sprintf("PASS source %d (%s): %s [score: %.2f]", i+1, src.Title, reason, score))
		} else {
			src.RejectionReason = reason
			rejected = append(rejected, src)
			report = append(report, fmt.Sprintf("FAIL source %d (%s): %s", i+1, src.Title, reason))
		}
	}
	return accepted, rejected, report
}

// ValidateFindings scores the synthesized findings text. accepted must be
// the post-filter source list: citation adequacy is judged against sources
// that survived filtering, not against raw candidates.
func (v *Validator) ValidateFindings(findings string, accepted []source.Source) Result {
	valid, score, issues := EvaluateReasoning(findings, len(accepted))

	msg := "findings meet quality standards"
	if !valid {
		msg = "reasoning quality concerns: " + strings.Join(issues, "; ")
	}
	return Result{
		IsValid:      valid,
		QualityScore: score,
		Issues:       issues,
		Message:      msg,
	}
}

// ValidateAll runs both passes and builds a consolidated report. The
// pipeline itself invokes the two passes separately at different stages;
// this combined form exists for reporting and front ends.
func (v *Validator) ValidateAll(sources []source.Source, findings string) *Report {
	accepted, rejected, details := v.ValidateSources(sources)
	findingsResult := v.ValidateFindings(findings, accepted)

	quality := 0.0
	if len(sources) > 0 {
		quality = float64(len(accepted)) / float64(len(sources))
	}
	return &Report{
		SourcesEvaluated: len(sources),
		SourcesAccepted:  len(accepted),
		SourcesRejected:  len(rejected),
		Accepted:         accepted,
		Rejected:         rejected,
		SourceDetails:    details,
		Findings:         findingsResult,
		SourceQuality:    quality,
		PassedQA:         len(accepted) > 0 && findingsResult.IsValid,
	}
}
