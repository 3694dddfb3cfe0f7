package qa

import (
	"fmt"
	"regexp"
	"strings"
)

// citationPattern matches bracket or paren "Source N" references, e.g.
// [Source 1] or (Source 2).
var citationPattern = regexp.MustCompile(`(?i)\[source\s*\d+\]|\(source\s*\d+\)`)

// hedgingPhrases signal vague, non-committal reasoning. More than
// hedgingLimit total occurrences costs a deduction.
var hedgingPhrases = []string{
	"it seems", "maybe", "probably", "might be", "could be", "apparently",
	"i think", "in my opinion", "one could argue",
}

const hedgingLimit = 3

// contradictionPairs are antonym pairs that, when found within
// contradictionWindow characters of each other, suggest inconsistent
// reasoning.
var contradictionPairs = [][2]string{
	{"yes", "no"},
	{"true", "false"},
	{"proven", "unproven"},
	{"exists", "does not exist"},
	{"found", "not found"},
}

const contradictionWindow = 200

// structureMarkers indicate the findings carry headers, emphasis, or list
// structure rather than one undifferentiated blob.
var structureMarkers = []string{"##", "###", "**Key", "1.", "-"}

// conclusionPhrases indicate the findings close with a summary.
var conclusionPhrases = []string{"conclusion", "summary", "overall", "in summary", "in conclusion"}

const minFindingsLength = 200

// EvaluateReasoning scores a synthesized findings text against structural
// and citation heuristics. The score starts at 1.0 and accumulates fixed
// deductions; every check runs independently (no short-circuiting), and the
// final score is clamped to [0,1]. sourceCount must be the post-filter
// source count, since citation adequacy is judged against sources that
// survived filtering.
//
// Validity requires both score >= 0.5 and at most two issues: a single
// severe deduction can fail the result on score alone.
func EvaluateReasoning(findings string, sourceCount int) (valid bool, score float64, issues []string) {
	score = 1.0
	lower := strings.ToLower(findings)

	if len(findings) < minFindingsLength {
		issues = append(issues, "findings are too brief, lacking sufficient analysis")
		score -= 0.3
	}

	citations := len(citationPattern.FindAllString(findings, -1))
	if citations == 0 {
		issues = append(issues, "no sources cited in findings")
		score -= 0.4
	} else if float64(citations) < float64(sourceCount)*0.3 {
		issues = append(issues, fmt.Sprintf("low citation rate: %d/%d sources cited", citations, sourceCount))
		score -= 0.2
	}

	hedging := 0
	for _, phrase := range hedgingPhrases {
		hedging += strings.Count(lower, phrase)
	}
	if hedging > hedgingLimit {
		issues = append(issues, fmt.Sprintf("reasoning lacks acuteness: %d vague qualifiers found", hedging))
		score -= 0.2
	}

	if hasContradictions(lower) {
		issues = append(issues, "potential contradictions in reasoning detected")
		score -= 0.25
	}

	if !containsAny(findings, structureMarkers) {
		issues = append(issues, "findings lack clear structure or organization")
		score -= 0.15
	}

	if !containsAny(lower, conclusionPhrases) {
		issues = append(issues, "no clear conclusion or summary in findings")
		score -= 0.1
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	valid = score >= 0.5 && len(issues) <= 2
	return valid, score, issues
}

// hasContradictions reports whether any antonym pair appears with its two
// members within contradictionWindow characters of each other. First
// occurrences only; this is a cheap heuristic, not NLP.
func hasContradictions(lower string) bool {
	for _, pair := range contradictionPairs {
		posIdx := strings.Index(lower, pair[0])
		negIdx := strings.Index(lower, pair[1])
		if posIdx < 0 || negIdx < 0 {
			continue
		}
		dist := posIdx - negIdx
		if dist < 0 {
			dist = -dist
		}
		if dist < contradictionWindow {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
