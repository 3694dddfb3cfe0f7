// Package extract turns web pages into bounded plain text for synthesis.
// Failure returns absence, not an error, by contract: the pipeline falls
// back to the candidate summary and rejection stays QA's job.
package extract

import (
	"context"
	"fmt"
	"strings"
)

// Extractor fetches a URL and returns cleaned text capped at maxLen runes
// of content (a truncation marker may follow). ok is false on any failure.
type Extractor interface {
	ExtractText(ctx context.Context, url string, maxLen int) (text string, ok bool)
}

// Kind names for New.
const (
	KindStatic  = "static"
	KindBrowser = "browser"
)

// New returns the extractor for the given kind.
func New(kind string, opts ...Option) (Extractor, error) {
	switch kind {
	case KindStatic, "":
		return NewStatic(opts...), nil
	case KindBrowser:
		return NewBrowser(opts...), nil
	default:
		return nil, fmt.Errorf("extract: unknown extractor kind %q", kind)
	}
}

// clean collapses all whitespace runs to single spaces and truncates to
// maxLen, appending an ellipsis when content was cut.
func clean(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen] + "..."
	}
	return text
}
