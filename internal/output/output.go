// Package output persists completed research runs as a pair of
// timestamp-named artifacts: a structured JSON record and a rendered
// markdown report.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fathom/internal/qa"
	"fathom/internal/source"
)

// timestampLayout names both artifacts of a run.
const timestampLayout = "20060102_150405"

// SourcesQA is the source-filtering portion of a run's QA record.
type SourcesQA struct {
	ValidationDetails []string        `json:"validation_details"`
	RejectedSources   []source.Source `json:"rejected_sources"`
}

// QAValidation groups both QA tiers for persistence.
type QAValidation struct {
	SourcesQA  SourcesQA `json:"sources_qa"`
	FindingsQA qa.Result `json:"findings_qa"`
}

// Record is the structured artifact persisted per run.
type Record struct {
	RunID         string          `json:"run_id"`
	ResearchQuery string          `json:"research_query"`
	Timestamp     string          `json:"timestamp"`
	FrameworkUsed bool            `json:"framework_used"`
	Sources       []source.Source `json:"sources"`
	Findings      string          `json:"findings"`
	QAValidation  QAValidation    `json:"qa_validation"`
	Status        string          `json:"status"`
}

// Writer persists run records into a flat directory.
type Writer struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// NewWriter builds a Writer rooted at dir. The directory is created on
// first Write, not here.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// Write persists both artifacts and returns the path of the JSON record.
// The record's Timestamp field is stamped here so both artifacts and the
// record body agree on one instant.
func (w *Writer) Write(rec *Record) (string, error) {
	ts := w.now().Format(timestampLayout)
	rec.Timestamp = ts

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("output: create dir: %w", err)
	}

	jsonPath := filepath.Join(w.dir, "research_"+ts+".json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("output: encode record: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("output: write record: %w", err)
	}

	mdPath := filepath.Join(w.dir, "research_"+ts+".md")
	if err := os.WriteFile(mdPath, []byte(renderReport(rec)), 0o644); err != nil {
		return "", fmt.Errorf("output: write report: %w", err)
	}

	w.logger.Info("run persisted", "json", jsonPath, "report", mdPath)
	return jsonPath, nil
}

// ReadRecord loads a previously written JSON record.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("output: read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("output: decode record: %w", err)
	}
	return &rec, nil
}

// renderReport produces the human-readable markdown companion.
func renderReport(rec *Record) string {
	var sb strings.Builder
	sb.WriteString("# Research Report\n\n")
	fmt.Fprintf(&sb, "**Query:** %s\n\n", rec.ResearchQuery)
	fmt.Fprintf(&sb, "**Date:** %s\n\n", rec.Timestamp)
	sb.WriteString("## Findings\n\n")
	sb.WriteString(rec.Findings)
	sb.WriteString("\n\n## Sources\n\n")
	for i, src := range rec.Sources {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, src.Title)
		fmt.Fprintf(&sb, "- Link: %s\n", src.URL)
		fmt.Fprintf(&sb, "- Summary: %s\n\n", src.Summary)
	}
	return sb.String()
}
