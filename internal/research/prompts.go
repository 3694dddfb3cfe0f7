package research

import (
	"fmt"
	"strings"

	"fathom/internal/source"
)

// noSourcesFindings replaces the synthesis call when no sources survive
// filtering.
const noSourcesFindings = "No sources available to analyze. The web search returned no results."

const searchPromptFormat = `Search the web for: "%s"

Provide exactly %d relevant sources. For each source, return:
1. Title of the page
2. URL
3. Brief summary (2-3 sentences)

Format your response as JSON:
{
  "results": [
    {
      "title": "...",
      "url": "...",
      "summary": "..."
    }
  ]
}

IMPORTANT: Your response must be ONLY valid JSON, nothing else. No markdown, no explanations.`

// searchPrompt asks the model for exactly n candidate sources as
// title/url/summary triples.
func searchPrompt(query string, n int) string {
	return fmt.Sprintf(searchPromptFormat, query, n)
}

// synthesisPrompt concatenates the surviving sources, the optional
// framework text, and the citation/formatting instructions into the
// single analysis prompt.
func synthesisPrompt(query, framework string, sources []source.Source) string {
	blocks := make([]string, len(sources))
	for i, s := range sources {
		content := s.Content
		if content == "" {
			content = s.Summary
		}
		blocks[i] = fmt.Sprintf("SOURCE %d: %s\nURL: %s\nCONTENT: %s", i+1, s.Title, s.URL, content)
	}

	frameworkSection := ""
	if framework != "" {
		frameworkSection = "\n\nRESEARCH FRAMEWORK:\n" + framework
	}

	return fmt.Sprintf(`You are a research analyst. Analyze the following sources to answer this research question:

RESEARCH QUESTION: %s%s

SOURCES:
%s

Based on these sources, provide a comprehensive research report with:
1. Executive Summary
2. Key Findings (bullet points)
3. Detailed Analysis (Themes, Patterns, Data)
4. Source Reliability Assessment

FORMATTING RULES:
- Use CLEAN formatting with uppercase section labels.
- CITATIONS: You MUST use standard Markdown links: [Source N](URL).
  - CORRECT: "Matches [Source 1](https://example.com)" -> Renders as clickable "Source 1".
  - WRONG: "Source 1 (https://example.com)" -> DO NOT DO THIS.
  - WRONG: "[Source 1]" without a link -> DO NOT DO THIS.
- When listing multiple, comma-separate them: ([Source 1](URL), [Source 2](URL)).
- Keep the design professional.`, query, frameworkSection, strings.Join(blocks, "\n\n"))
}
