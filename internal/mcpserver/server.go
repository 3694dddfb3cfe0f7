// Package mcpserver exposes the research pipeline as MCP tools over a
// stdio transport, so agent hosts can drive research runs directly.
package mcpserver

import (
	"context"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"fathom/internal/output"
	"fathom/internal/server"
)

// Server wraps the MCP SDK server around a pipeline Runner.
type Server struct {
	MCPServer *sdkmcp.Server

	runner server.Runner
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an MCP server exposing the research tools.
func New(runner server.Runner, version string, opts ...Option) *Server {
	s := &Server{runner: runner}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "fathom", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "research",
		Description: "Run the full research workflow for a query: source generation, content fetching, QA gating, synthesis, and persistence. Returns the findings and QA report.",
	}, s.handleResearch)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "read_report",
		Description: "Read back a previously persisted research record by its JSON output path.",
	}, s.handleReadReport)
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

type researchInput struct {
	Query string `json:"query" jsonschema:"the research question or topic"`
}

type researchOutput struct {
	RunID           string   `json:"run_id"`
	Status          string   `json:"status"`
	Findings        string   `json:"findings"`
	SourceCount     int      `json:"source_count"`
	RejectedCount   int      `json:"rejected_count"`
	FrameworkLoaded bool     `json:"framework_loaded"`
	OutputPath      string   `json:"output_path,omitempty"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	QADetails       []string `json:"qa_details"`
}

func (s *Server) handleResearch(ctx context.Context, _ *sdkmcp.CallToolRequest, input researchInput) (*sdkmcp.CallToolResult, researchOutput, error) {
	if input.Query == "" {
		return nil, researchOutput{}, errNoQuery
	}
	s.logger.InfoContext(ctx, "mcp research request", "query", input.Query)

	st := s.runner.Run(ctx, input.Query)
	return nil, researchOutput{
		RunID:           st.RunID,
		Status:          string(st.Status),
		Findings:        st.Findings,
		SourceCount:     len(st.Sources),
		RejectedCount:   len(st.RejectedSources),
		FrameworkLoaded: st.FrameworkLoaded,
		OutputPath:      st.OutputPath,
		ErrorMessage:    st.ErrorMessage,
		QADetails:       st.QASourceReport,
	}, nil
}

type readReportInput struct {
	Path string `json:"path" jsonschema:"path to a research_*.json record"`
}

type readReportOutput struct {
	Record *output.Record `json:"record"`
}

func (s *Server) handleReadReport(_ context.Context, _ *sdkmcp.CallToolRequest, input readReportInput) (*sdkmcp.CallToolResult, readReportOutput, error) {
	rec, err := output.ReadRecord(input.Path)
	if err != nil {
		return nil, readReportOutput{}, err
	}
	return nil, readReportOutput{Record: rec}, nil
}
