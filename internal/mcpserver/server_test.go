package mcpserver

import (
	"context"
	"testing"

	"fathom/internal/output"
	"fathom/internal/research"
	"fathom/internal/source"
)

type fakeRunner struct {
	lastQuery string
	state     *research.State
}

func (f *fakeRunner) Run(_ context.Context, query string) *research.State {
	f.lastQuery = query
	return f.state
}

func TestHandleResearch(t *testing.T) {
	st := research.NewState("desalination energy costs")
	st.Status = research.StatusComplete
	st.Findings = "Costs fell sharply [Source 1](https://example.org/desal)."
	st.Sources = []source.Source{{Candidate: source.Candidate{Title: "Desal Report", URL: "https://example.org/desal"}}}
	st.QASourceReport = []string{"PASS source 1 (Desal Report): relevant to the research query [score: 1.00]"}

	runner := &fakeRunner{state: st}
	s := New(runner, "test")

	_, out, err := s.handleResearch(context.Background(), nil, researchInput{Query: "desalination energy costs"})
	if err != nil {
		t.Fatalf("handleResearch: %v", err)
	}
	if runner.lastQuery != "desalination energy costs" {
		t.Errorf("runner query = %q", runner.lastQuery)
	}
	if out.Status != "complete" || out.SourceCount != 1 || len(out.QADetails) != 1 {
		t.Errorf("output = %+v", out)
	}
	if out.RunID != st.RunID {
		t.Errorf("run id = %q", out.RunID)
	}
}

func TestHandleResearchRequiresQuery(t *testing.T) {
	s := New(&fakeRunner{state: research.NewState("")}, "test")
	if _, _, err := s.handleResearch(context.Background(), nil, researchInput{}); err == nil {
		t.Error("want error for empty query")
	}
}

func TestHandleReadReport(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(dir)
	path, err := w.Write(&output.Record{ResearchQuery: "desalination energy costs", Status: "analysis_complete"})
	if err != nil {
		t.Fatal(err)
	}

	s := New(&fakeRunner{state: research.NewState("")}, "test")
	_, out, err := s.handleReadReport(context.Background(), nil, readReportInput{Path: path})
	if err != nil {
		t.Fatalf("handleReadReport: %v", err)
	}
	if out.Record.ResearchQuery != "desalination energy costs" {
		t.Errorf("record = %+v", out.Record)
	}

	if _, _, err := s.handleReadReport(context.Background(), nil, readReportInput{Path: dir + "/absent.json"}); err == nil {
		t.Error("want error for missing record")
	}
}
