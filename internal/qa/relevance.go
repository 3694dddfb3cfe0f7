package qa

import (
	"fmt"
	"net/url"
	"strings"

	"fathom/internal/source"
)

// domainBlacklist lists social-media domain substrings that are hard
// rejects regardless of keyword content. Page content from these is either
// inaccessible without auth or too low-signal to cite.
var domainBlacklist = []string{"facebook", "instagram", "twitter", "pinterest", "tiktok"}

// redditCommentsPattern rejects reddit comment threads. Checked against the
// full URL since the path is what distinguishes a thread from the site.
const redditCommentsPattern = "reddit.com/r/"

// neutralScore is assigned when the query produced no keywords and density
// cannot be computed.
const neutralScore = 0.5

// lowConfidenceThreshold marks the soft-accept band: sources scoring below
// it are still accepted, with a warning reason. The filter deliberately
// favours recall; synthesis can discount weak sources later.
const lowConfidenceThreshold = 0.2

// RelevanceFilter scores candidate sources against the keywords of one
// query. Construct one per run via NewRelevanceFilter.
type RelevanceFilter struct {
	keywords []string
}

// NewRelevanceFilter builds a filter from the raw query string.
func NewRelevanceFilter(query string) *RelevanceFilter {
	return &RelevanceFilter{keywords: ExtractKeywords(query)}
}

// Keywords returns the extracted keyword set (may be empty).
func (f *RelevanceFilter) Keywords() []string { return f.keywords }

// Evaluate scores a single candidate and decides acceptance.
// Pure: it never mutates the candidate; annotating the source record with
// the returned score or reason is the Validator's job.
func (f *RelevanceFilter) Evaluate(c source.Candidate) (accepted bool, score float64, reason string) {
	rawURL := strings.ToLower(c.URL)
	domain := parseDomain(rawURL)
	if domain == "" || blacklisted(domain, rawURL) {
		return false, 0.0, fmt.Sprintf("domain %q is not credible or accessible", domain)
	}

	text := strings.ToLower(c.Title + " " + c.Summary)
	matches := 0
	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}

	if len(f.keywords) == 0 {
		return true, neutralScore, "no keywords in query; accepting with neutral score"
	}

	score = float64(matches) / max(float64(len(f.keywords))*0.5, 1)
	if score > 1.0 {
		score = 1.0
	}

	if matches == 0 {
		missing := f.keywords
		if len(missing) > 3 {
			missing = missing[:3]
		}
		return false, score, fmt.Sprintf("no keywords found; query requires: %s", strings.Join(missing, ", "))
	}

	if score < lowConfidenceThreshold {
		return true, score, fmt.Sprintf("low keyword match (%d/%d), accepting anyway", matches, len(f.keywords))
	}

	return true, score, "relevant to the research query"
}

// parseDomain extracts the host from a URL, empty on failure.
func parseDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func blacklisted(domain, rawURL string) bool {
	for _, bad := range domainBlacklist {
		if strings.Contains(domain, bad) {
			return true
		}
	}
	return strings.Contains(rawURL, redditCommentsPattern)
}
