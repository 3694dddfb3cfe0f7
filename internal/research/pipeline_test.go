package research

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fathom/internal/output"
)

type genCall struct {
	text string
	err  error
}

type fakeProvider struct {
	calls   []genCall
	prompts []string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := len(f.prompts) - 1
	if i >= len(f.calls) {
		return "", errors.New("unexpected generate call")
	}
	return f.calls[i].text, f.calls[i].err
}

func (f *fakeProvider) Name() string { return "fake" }

type fakeStore struct {
	text string
	ok   bool
	err  error
}

func (f fakeStore) FetchNamedDocument(context.Context, string) (string, bool, error) {
	return f.text, f.ok, f.err
}

type fakeExtractor struct {
	pages map[string]string
}

func (f fakeExtractor) ExtractText(_ context.Context, url string, _ int) (string, bool) {
	text, ok := f.pages[url]
	return text, ok
}

const searchResponse = `{"results": [
	{"title": "Research Outlook 2026", "url": "https://energy.example.org/outlook", "summary": "A broad survey of research directions."},
	{"title": "Viral Research Memes", "url": "https://facebook.com/airesearch", "summary": "Research jokes and reposts."}
]}`

const validFindings = `EXECUTIVE SUMMARY

Residential adoption accelerated through 2025, driven by falling hardware costs and state incentives [Source 1](https://energy.example.org/outlook).

KEY FINDINGS
1. Install volume grew by double digits for the third consecutive year.
2. Permitting reform shortened deployment timelines in several states.

In conclusion, the adoption curve remains steep and policy support is the dominant variable.`

func TestPipelineRun(t *testing.T) {
	provider := &fakeProvider{calls: []genCall{{text: searchResponse}, {text: validFindings}}}
	extractor := fakeExtractor{pages: map[string]string{
		"https://energy.example.org/outlook": "Detailed research content about adoption and deployment.",
	}}
	store := fakeStore{text: "Open with an executive summary.", ok: true}
	writer := output.NewWriter(t.TempDir())

	p := New(provider, extractor, writer, WithDocStore(store))
	st := p.Run(context.Background(), "AI research trends")

	if st.Status != StatusComplete {
		t.Fatalf("status = %q, error = %q", st.Status, st.ErrorMessage)
	}
	if !st.FrameworkLoaded {
		t.Error("framework not loaded")
	}
	if len(st.Candidates) != 2 {
		t.Fatalf("candidates = %d", len(st.Candidates))
	}

	if len(st.Sources) != 1 {
		t.Fatalf("sources = %d", len(st.Sources))
	}
	if s := st.Sources[0]; s.RelevanceScore <= 0 || s.RelevanceScore > 1 {
		t.Errorf("relevance score = %v, want in (0,1]", s.RelevanceScore)
	}
	if s := st.Sources[0]; s.Content != extractor.pages[s.URL] {
		t.Errorf("content = %q", s.Content)
	}
	if len(st.RejectedSources) != 1 {
		t.Fatalf("rejected = %d", len(st.RejectedSources))
	}
	if reason := st.RejectedSources[0].RejectionReason; !strings.Contains(reason, "facebook.com") {
		t.Errorf("rejection reason = %q", reason)
	}
	if len(st.QASourceReport) != 2 {
		t.Fatalf("report lines = %d", len(st.QASourceReport))
	}
	if !strings.HasPrefix(st.QASourceReport[0], "PASS source 1") {
		t.Errorf("report[0] = %q", st.QASourceReport[0])
	}
	if !strings.HasPrefix(st.QASourceReport[1], "FAIL source 2") {
		t.Errorf("report[1] = %q", st.QASourceReport[1])
	}

	if st.Findings != validFindings {
		t.Errorf("findings = %q", st.Findings)
	}
	if !st.FindingsQA.IsValid {
		t.Errorf("findings QA invalid: %+v", st.FindingsQA)
	}

	if len(provider.prompts) != 2 {
		t.Fatalf("generate calls = %d", len(provider.prompts))
	}
	search := provider.prompts[0]
	if !strings.Contains(search, `"AI research trends"`) || !strings.Contains(search, "exactly 5") {
		t.Errorf("search prompt = %q", search)
	}
	analysis := provider.prompts[1]
	if !strings.Contains(analysis, "SOURCE 1: Research Outlook 2026") {
		t.Errorf("analysis prompt missing surviving source:\n%s", analysis)
	}
	if strings.Contains(analysis, "SOURCE 2") {
		t.Errorf("analysis prompt includes rejected source:\n%s", analysis)
	}
	if !strings.Contains(analysis, "RESEARCH FRAMEWORK:\nOpen with an executive summary.") {
		t.Errorf("analysis prompt missing framework:\n%s", analysis)
	}

	if st.OutputPath == "" {
		t.Fatal("no output path")
	}
	rec, err := output.ReadRecord(st.OutputPath)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if rec.ResearchQuery != "AI research trends" {
		t.Errorf("record query = %q", rec.ResearchQuery)
	}
	if rec.Status != string(StatusAnalysisComplete) {
		t.Errorf("record status = %q", rec.Status)
	}
	if len(rec.Sources) != 1 || len(rec.QAValidation.SourcesQA.RejectedSources) != 1 {
		t.Errorf("record sources = %d, rejected = %d", len(rec.Sources), len(rec.QAValidation.SourcesQA.RejectedSources))
	}
	if _, err := os.Stat(strings.TrimSuffix(st.OutputPath, ".json") + ".md"); err != nil {
		t.Errorf("markdown report missing: %v", err)
	}
}

func TestPipelineRunMalformedSearchResponse(t *testing.T) {
	provider := &fakeProvider{calls: []genCall{{text: "I could not find any sources, sorry."}}}
	writer := output.NewWriter(t.TempDir())

	p := New(provider, fakeExtractor{}, writer)
	st := p.Run(context.Background(), "quantum networking standards")

	if st.Status != StatusComplete {
		t.Fatalf("status = %q", st.Status)
	}
	if len(provider.prompts) != 1 {
		t.Fatalf("generate calls = %d, synthesis must short-circuit with zero sources", len(provider.prompts))
	}
	if len(st.Candidates) != 0 || len(st.Sources) != 0 || len(st.RejectedSources) != 0 {
		t.Errorf("candidates/sources/rejected = %d/%d/%d",
			len(st.Candidates), len(st.Sources), len(st.RejectedSources))
	}
	if st.Findings != noSourcesFindings {
		t.Errorf("findings = %q", st.Findings)
	}
	if st.FindingsQA.IsValid {
		t.Error("fixed no-sources text should not pass findings QA")
	}
	if st.OutputPath == "" {
		t.Error("run should still persist")
	}
}

func TestPipelineRunFrameworkError(t *testing.T) {
	provider := &fakeProvider{calls: []genCall{{text: searchResponse}, {text: validFindings}}}
	store := fakeStore{err: errors.New("drive unavailable")}
	writer := output.NewWriter(t.TempDir())

	p := New(provider, fakeExtractor{}, writer, WithDocStore(store))
	st := p.Run(context.Background(), "AI research trends")

	if st.Status != StatusComplete {
		t.Fatalf("framework failure must not abort the run, status = %q", st.Status)
	}
	if st.FrameworkLoaded {
		t.Error("framework marked loaded after store error")
	}
	if st.ErrorMessage != "drive unavailable" {
		t.Errorf("error message = %q", st.ErrorMessage)
	}
	if strings.Contains(provider.prompts[1], "RESEARCH FRAMEWORK") {
		t.Error("analysis prompt carries framework despite fetch failure")
	}
}

func TestPipelineRunSearchProviderError(t *testing.T) {
	provider := &fakeProvider{calls: []genCall{{err: errors.New("rate limited")}}}
	writer := output.NewWriter(t.TempDir())

	p := New(provider, fakeExtractor{}, writer)
	st := p.Run(context.Background(), "AI research trends")

	if st.Status != StatusComplete {
		t.Fatalf("status = %q", st.Status)
	}
	if st.ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", st.ErrorMessage)
	}
	if st.Findings != noSourcesFindings {
		t.Errorf("findings = %q", st.Findings)
	}
	if len(provider.prompts) != 1 {
		t.Errorf("generate calls = %d", len(provider.prompts))
	}
}

func TestPipelineRunSynthesisProviderError(t *testing.T) {
	provider := &fakeProvider{calls: []genCall{{text: searchResponse}, {err: errors.New("model overloaded")}}}
	extractor := fakeExtractor{pages: map[string]string{
		"https://energy.example.org/outlook": "Research content.",
	}}
	writer := output.NewWriter(t.TempDir())

	p := New(provider, extractor, writer)
	st := p.Run(context.Background(), "AI research trends")

	if st.Status != StatusComplete {
		t.Fatalf("status = %q", st.Status)
	}
	if st.ErrorMessage != "model overloaded" {
		t.Errorf("error message = %q", st.ErrorMessage)
	}
	if !strings.HasPrefix(st.Findings, "Error during analysis:") {
		t.Errorf("findings = %q", st.Findings)
	}
	rec, err := output.ReadRecord(st.OutputPath)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if rec.Status != string(StatusAnalysisError) {
		t.Errorf("record status = %q", rec.Status)
	}
}

func TestPipelineRunPersistFailure(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "file")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	provider := &fakeProvider{calls: []genCall{{text: searchResponse}, {text: validFindings}}}
	writer := output.NewWriter(filepath.Join(blocked, "out"))

	p := New(provider, fakeExtractor{}, writer)
	st := p.Run(context.Background(), "AI research trends")

	if st.Status != StatusError {
		t.Fatalf("status = %q, persistence failure is run-fatal", st.Status)
	}
	if st.ErrorMessage == "" {
		t.Error("error message not set")
	}
	if st.OutputPath != "" {
		t.Errorf("output path = %q", st.OutputPath)
	}
}
