package qa

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// goodFindings is a findings text that trips none of the checks: long
// enough, cited, structured, hedge-free, with a conclusion.
var goodFindings = "## Executive Summary\n\n" +
	"The evidence establishes a clear pattern across all reviewed material [Source 1]. " +
	"Adoption accelerated through 2025, driven primarily through infrastructure cost declines [Source 2].\n\n" +
	"## Key Findings\n\n" +
	"1. Deployment doubled year over year [Source 1].\n" +
	"2. Operating costs fell 40% [Source 2].\n\n" +
	"## Conclusion\n\n" +
	"Overall, the data supports sustained growth through the decade."

func TestEvaluateReasoningCleanText(t *testing.T) {
	valid, score, issues := EvaluateReasoning(goodFindings, 2)
	if !valid {
		t.Errorf("want valid, got issues: %v", issues)
	}
	if score != 1.0 {
		t.Errorf("score = %v, want 1.0", score)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestEvaluateReasoningShortUncited(t *testing.T) {
	// Under 200 chars (-0.3) and no citations (-0.4): score <= 0.3, invalid.
	valid, score, issues := EvaluateReasoning("Too short.", 3)
	if valid {
		t.Error("want invalid")
	}
	if score > 0.3 {
		t.Errorf("score = %v, want <= 0.3", score)
	}
	if len(issues) < 2 {
		t.Errorf("issues = %v, want at least brevity and citation issues", issues)
	}
}

func TestEvaluateReasoningDeductionsMonotonic(t *testing.T) {
	// Scores must not increase as more deduction triggers are added.
	base := goodFindings
	hedged := base + strings.Repeat(" it seems maybe probably apparently.", 2)
	hedgedShortCited := "maybe it seems probably apparently it seems [Source 1]"

	_, s0, _ := EvaluateReasoning(base, 2)
	_, s1, _ := EvaluateReasoning(hedged, 2)
	_, s2, _ := EvaluateReasoning(hedgedShortCited, 2)
	if s1 > s0 {
		t.Errorf("adding hedging raised score: %v > %v", s1, s0)
	}
	if s2 > s1 {
		t.Errorf("adding brevity raised score: %v > %v", s2, s1)
	}
}

func TestEvaluateReasoningCitationRate(t *testing.T) {
	// One citation against 10 surviving sources is below the 30% floor.
	text := "## Analysis\n\n" +
		"Every reviewed dataset points toward the same structural shift in the market, with deployment " +
		"figures compounding steadily across regions and the cost curves bending downward in parallel " +
		"throughout the period examined [Source 1].\n\n" +
		"## Conclusion\n\nOverall, the trend is well supported."
	_, _, issues := EvaluateReasoning(text, 10)
	found := false
	for _, iss := range issues {
		if strings.Contains(iss, "citation rate") {
			found = true
		}
	}
	if !found {
		t.Errorf("want citation-rate issue, got %v", issues)
	}
}

func TestEvaluateReasoningContradiction(t *testing.T) {
	text := goodFindings + "\n\nThe defect was found in testing; later runs confirmed it was not found."
	_, _, issues := EvaluateReasoning(text, 2)
	found := false
	for _, iss := range issues {
		if strings.Contains(iss, "contradiction") {
			found = true
		}
	}
	if !found {
		t.Errorf("want contradiction issue, got %v", issues)
	}
}

func TestEvaluateReasoningValidityNeedsBoth(t *testing.T) {
	// A text with three mild issues but a passing score is still invalid:
	// issue count and score threshold are independent requirements.
	// Unstructured (-0.15), no conclusion (-0.1), low citation rate (-0.2)
	// leaves the score at 0.55 with 3 issues.
	text := "The reviewed material points in a single consistent direction and the figures agree across " +
		"every dataset examined during this review cycle, as established by the primary analysis [Source 1] " +
		"and corroborated again in later passages of the same report with further numbers"
	text = strings.ReplaceAll(text, "-", " ")
	valid, score, issues := EvaluateReasoning(text, 10)
	if score < 0.5 {
		t.Fatalf("score = %v, want >= 0.5 for this fixture", score)
	}
	if len(issues) <= 2 {
		t.Fatalf("issues = %v, want more than 2 for this fixture", issues)
	}
	if valid {
		t.Error("want invalid despite passing score: issue count exceeded")
	}
}

func TestEvaluateReasoningIdempotent(t *testing.T) {
	v1, s1, i1 := EvaluateReasoning(goodFindings, 2)
	v2, s2, i2 := EvaluateReasoning(goodFindings, 2)
	if v1 != v2 || s1 != s2 {
		t.Errorf("results differ: (%v,%v) vs (%v,%v)", v1, s1, v2, s2)
	}
	if diff := cmp.Diff(i1, i2); diff != "" {
		t.Errorf("issues differ:\n%s", diff)
	}
}

func TestEvaluateReasoningScoreClamped(t *testing.T) {
	// Everything wrong at once must clamp at 0, not go negative.
	text := "maybe it seems probably could be it seems no yes"
	_, score, _ := EvaluateReasoning(text, 5)
	if score < 0 || score > 1 {
		t.Errorf("score = %v, want within [0,1]", score)
	}
}
