package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fathom/internal/llm"
	"fathom/internal/research"
)

type fakeRunner struct {
	lastQuery string
	state     *research.State
}

func (f *fakeRunner) Run(_ context.Context, query string) *research.State {
	f.lastQuery = query
	return f.state
}

func terminalState() *research.State {
	st := research.NewState("battery recycling capacity")
	st.Status = research.StatusComplete
	st.Findings = "Capacity doubled [Source 1](https://example.org/a)."
	st.FrameworkLoaded = true
	st.OutputPath = "/data/outputs/research_20260314_092653.json"
	st.QASourceReport = []string{"PASS source 1 (Recycling Report): relevant to the research query [score: 1.00]"}
	return st
}

func TestHandleResearch(t *testing.T) {
	runner := &fakeRunner{state: terminalState()}
	srv := httptest.NewServer(New(runner).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/research", "application/json",
		strings.NewReader(`{"query": "battery recycling capacity"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if runner.lastQuery != "battery recycling capacity" {
		t.Errorf("runner query = %q", runner.lastQuery)
	}

	var got researchResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "complete" {
		t.Errorf("status = %q", got.Status)
	}
	if got.Findings == "" || got.OutputPath == "" {
		t.Errorf("response = %+v", got)
	}
	if !got.FrameworkLoaded || len(got.QADetails) != 1 {
		t.Errorf("response = %+v", got)
	}
}

func TestHandleResearchBadRequests(t *testing.T) {
	srv := httptest.NewServer(New(&fakeRunner{state: terminalState()}).Handler())
	defer srv.Close()

	t.Run("empty query", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/research", "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/research", "application/json", strings.NewReader(`{not json`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/research")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d", resp.StatusCode)
		}
	})
}

func TestHandleHealthAndProviders(t *testing.T) {
	srv := httptest.NewServer(New(&fakeRunner{state: terminalState()},
		WithProviderKeys(llm.Keys{Anthropic: "sk-test"})).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/providers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Providers []llm.Info `json:"providers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Providers) != 4 {
		t.Fatalf("providers = %d", len(got.Providers))
	}
	byName := map[string]string{}
	for _, p := range got.Providers {
		byName[p.Name] = p.Status
	}
	if byName["anthropic"] != "configured" {
		t.Errorf("anthropic status = %q", byName["anthropic"])
	}
	if byName["openai"] != "missing key" {
		t.Errorf("openai status = %q", byName["openai"])
	}
}
