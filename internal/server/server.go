// Package server exposes the research pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"fathom/internal/llm"
	"fathom/internal/research"
)

// Runner executes one research query to a terminal state. Satisfied by
// *research.Pipeline.
type Runner interface {
	Run(ctx context.Context, query string) *research.State
}

// Server is the HTTP front end.
type Server struct {
	runner Runner
	keys   llm.Keys
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithProviderKeys enables the provider-listing endpoint.
func WithProviderKeys(keys llm.Keys) Option {
	return func(s *Server) { s.keys = keys }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a Server around a Runner.
func New(runner Runner, opts ...Option) *Server {
	s := &Server{runner: runner}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/research", s.handleResearch).Methods(http.MethodPost)
	r.HandleFunc("/api/providers", s.handleProviders).Methods(http.MethodGet)
	return r
}

type researchRequest struct {
	Query string `json:"query"`
}

// researchResponse is the transport shape of a terminal pipeline state.
type researchResponse struct {
	RunID           string   `json:"run_id"`
	Status          string   `json:"status"`
	Findings        string   `json:"findings"`
	SourceCount     int      `json:"source_count"`
	FrameworkLoaded bool     `json:"framework_loaded"`
	OutputPath      string   `json:"output_path,omitempty"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	QADetails       []string `json:"qa_details"`
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	s.logger.InfoContext(r.Context(), "research request", "query", req.Query)
	st := s.runner.Run(r.Context(), req.Query)

	writeJSON(w, http.StatusOK, researchResponse{
		RunID:           st.RunID,
		Status:          string(st.Status),
		Findings:        st.Findings,
		SourceCount:     len(st.Sources),
		FrameworkLoaded: st.FrameworkLoaded,
		OutputPath:      st.OutputPath,
		ErrorMessage:    st.ErrorMessage,
		QADetails:       st.QASourceReport,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": llm.Available(s.keys)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
