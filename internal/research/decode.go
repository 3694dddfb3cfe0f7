package research

import (
	"encoding/json"
	"strings"

	"fathom/internal/source"
)

// resultsEnvelope is the documented response shape: an object with a
// named list field.
type resultsEnvelope struct {
	Results []source.Candidate `json:"results"`
}

// DecodeCandidates parses an LLM search response into candidates,
// tolerating the shapes different models actually produce: an object
// with a "results" field, a bare array of candidate objects, and a
// single-element array wrapping the envelope object. Markdown code
// fences are stripped first. Anything else decodes to nil — malformed
// output degrades to an empty candidate list, never an error.
func DecodeCandidates(raw string) []source.Candidate {
	content := stripFences(raw)

	var env resultsEnvelope
	if err := json.Unmarshal([]byte(content), &env); err == nil && env.Results != nil {
		return env.Results
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil
	}
	if len(items) == 1 {
		var inner resultsEnvelope
		if err := json.Unmarshal(items[0], &inner); err == nil && inner.Results != nil {
			return inner.Results
		}
	}

	out := make([]source.Candidate, 0, len(items))
	for _, item := range items {
		var c source.Candidate
		if err := json.Unmarshal(item, &c); err != nil {
			return nil
		}
		out = append(out, c)
	}
	return out
}

// stripFences removes a leading ```json or ``` fence and a trailing ```
// fence, if present.
func stripFences(raw string) string {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```json") {
		content = content[len("```json"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[len("```"):]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
