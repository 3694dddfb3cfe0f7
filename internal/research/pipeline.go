package research

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fathom/internal/docstore"
	"fathom/internal/extract"
	"fathom/internal/llm"
	"fathom/internal/output"
	"fathom/internal/qa"
	"fathom/internal/source"
)

// Config carries per-run tunables.
type Config struct {
	// MaxSearchResults is the number of candidate sources requested from
	// the generation capability.
	MaxSearchResults int
	// MaxContentLength caps extracted text per source, in characters.
	MaxContentLength int
	// FrameworkDocName is the document-store query for the optional
	// research framework.
	FrameworkDocName string
}

// DefaultConfig returns the standard run configuration.
func DefaultConfig() Config {
	return Config{
		MaxSearchResults: 5,
		MaxContentLength: 5000,
		FrameworkDocName: "research framework",
	}
}

// Pipeline executes the six-stage research workflow. Stages run strictly
// in order with no retries; each catches its own failures and converts
// them to a status/error patch so a run always reaches the terminal
// stage with a best-effort state.
type Pipeline struct {
	llm       llm.Provider
	extractor extract.Extractor
	writer    *output.Writer
	docs      docstore.Store
	cfg       Config
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDocStore enables the optional framework-document stage backend.
func WithDocStore(s docstore.Store) Option {
	return func(p *Pipeline) { p.docs = s }
}

// WithConfig overrides the default run configuration.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New builds a Pipeline around the three required capabilities.
func New(provider llm.Provider, extractor extract.Extractor, writer *output.Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		llm:       provider,
		extractor: extractor,
		writer:    writer,
		cfg:       DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Run executes the full workflow for one query and returns the terminal
// state. It never returns an error: failure is signaled through
// Status != complete plus ErrorMessage, and the state is always
// well-formed.
func (p *Pipeline) Run(ctx context.Context, query string) *State {
	st := NewState(query)
	p.logger.InfoContext(ctx, "run started", "run_id", st.RunID, "query", query)

	p.fetchFramework(ctx).Apply(st)
	p.searchCandidates(ctx, st).Apply(st)
	p.fetchContent(ctx, st).Apply(st)
	p.qaFilterSources(ctx, st).Apply(st)
	p.synthesizeFindings(ctx, st).Apply(st)
	p.persistOutput(ctx, st).Apply(st)

	p.logger.InfoContext(ctx, "run finished",
		"run_id", st.RunID, "status", st.Status, "sources", len(st.Sources), "output", st.OutputPath)
	return st
}

// fetchFramework loads the optional guidance document. Absence is not
// fatal, and neither is a store failure: the framework is best-effort
// context, never a precondition.
func (p *Pipeline) fetchFramework(ctx context.Context) Patch {
	if p.docs == nil {
		return Patch{
			FrameworkLoaded: boolPtr(false),
			FrameworkText:   strPtr(""),
			Status:          statusPtr(StatusFrameworkNotFound),
		}
	}

	text, ok, err := p.docs.FetchNamedDocument(ctx, p.cfg.FrameworkDocName)
	if err != nil {
		p.logger.WarnContext(ctx, "framework fetch failed", "error", err)
		return Patch{
			FrameworkLoaded: boolPtr(false),
			FrameworkText:   strPtr(""),
			Status:          statusPtr(StatusFrameworkError),
			ErrorMessage:    strPtr(err.Error()),
		}
	}
	if !ok {
		p.logger.InfoContext(ctx, "no framework found, proceeding without guidelines")
		return Patch{
			FrameworkLoaded: boolPtr(false),
			FrameworkText:   strPtr(""),
			Status:          statusPtr(StatusFrameworkNotFound),
		}
	}
	p.logger.InfoContext(ctx, "framework loaded", "chars", len(text))
	return Patch{
		FrameworkLoaded: boolPtr(true),
		FrameworkText:   strPtr(text),
		Status:          statusPtr(StatusFrameworkLoaded),
	}
}

// searchCandidates asks the generation capability for candidate sources.
// A provider failure is a stage error; malformed output merely degrades
// to an empty candidate list.
func (p *Pipeline) searchCandidates(ctx context.Context, st *State) Patch {
	raw, err := p.llm.Generate(ctx, searchPrompt(st.Query, p.cfg.MaxSearchResults), llm.DefaultMaxTokens)
	if err != nil {
		p.logger.WarnContext(ctx, "search failed", "error", err)
		return Patch{
			Candidates:   []source.Candidate{},
			Status:       statusPtr(StatusSearchError),
			ErrorMessage: strPtr(err.Error()),
		}
	}

	candidates := DecodeCandidates(raw)
	if candidates == nil {
		p.logger.WarnContext(ctx, "unparseable search response", "chars", len(raw))
		candidates = []source.Candidate{}
	}
	p.logger.InfoContext(ctx, "candidates found", "count", len(candidates))
	return Patch{
		Candidates: candidates,
		Status:     statusPtr(StatusSearchComplete),
	}
}

// fetchContent enriches each candidate with extracted page text. On
// per-source failure the candidate's summary stands in for content;
// this stage never rejects a source.
func (p *Pipeline) fetchContent(ctx context.Context, st *State) Patch {
	sources := make([]source.Source, 0, len(st.Candidates))
	for i, c := range st.Candidates {
		p.logger.InfoContext(ctx, "fetching content", "n", i+1, "of", len(st.Candidates), "url", c.URL)
		content, ok := p.extractor.ExtractText(ctx, c.URL, p.cfg.MaxContentLength)
		if !ok || content == "" {
			content = c.Summary
		}
		sources = append(sources, source.Source{Candidate: c, Content: content})
	}
	return Patch{
		Sources: sources,
		Status:  statusPtr(StatusContentFetched),
	}
}

// qaFilterSources partitions sources through the relevance filter. A
// validator-level panic is caught and treated as "skip filtering":
// losing every source to a validator bug is worse than under-filtering.
func (p *Pipeline) qaFilterSources(ctx context.Context, st *State) (patch Patch) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "qa validation failed, passing sources through", "panic", r)
			patch = Patch{
				Sources:        st.Sources,
				QASourceReport: []string{fmt.Sprintf("Validation error: %v", r)},
				Status:         statusPtr(StatusQAValidationError),
			}
		}
	}()

	validator := qa.New(st.Query)
	accepted, rejected, report := validator.ValidateSources(st.Sources)
	p.logger.InfoContext(ctx, "sources validated", "accepted", len(accepted), "rejected", len(rejected))
	return Patch{
		Sources:         accepted,
		RejectedSources: rejected,
		QASourceReport:  report,
		Status:          statusPtr(StatusQAValidated),
	}
}

// synthesizeFindings builds one prompt over the surviving sources and
// calls generation once, then scores the result inline: quality scoring
// needs the just-produced text, so it is not a separate stage. Zero
// surviving sources short-circuits to a fixed findings text without
// calling the LLM.
func (p *Pipeline) synthesizeFindings(ctx context.Context, st *State) Patch {
	validator := qa.New(st.Query)

	if len(st.Sources) == 0 {
		result := validator.ValidateFindings(noSourcesFindings, nil)
		return Patch{
			Findings:   strPtr(noSourcesFindings),
			FindingsQA: &result,
			Status:     statusPtr(StatusAnalysisComplete),
		}
	}

	findings, err := p.llm.Generate(ctx, synthesisPrompt(st.Query, st.FrameworkText, st.Sources), llm.DefaultMaxTokens)
	if err != nil {
		p.logger.WarnContext(ctx, "analysis failed", "error", err)
		return Patch{
			Findings:     strPtr("Error during analysis: " + err.Error()),
			Status:       statusPtr(StatusAnalysisError),
			ErrorMessage: strPtr(err.Error()),
		}
	}

	result := validator.ValidateFindings(findings, st.Sources)
	if result.IsValid {
		p.logger.InfoContext(ctx, "reasoning quality passed", "score", result.QualityScore)
	} else {
		p.logger.WarnContext(ctx, "reasoning quality concerns", "score", result.QualityScore, "issues", result.Issues)
	}
	return Patch{
		Findings:   strPtr(findings),
		FindingsQA: &result,
		Status:     statusPtr(StatusAnalysisComplete),
	}
}

// persistOutput writes both run artifacts. This is the one stage whose
// failure is run-fatal: there is no fallback artifact location.
func (p *Pipeline) persistOutput(ctx context.Context, st *State) Patch {
	rec := &output.Record{
		RunID:         st.RunID,
		ResearchQuery: st.Query,
		FrameworkUsed: st.FrameworkLoaded,
		Sources:       st.Sources,
		Findings:      st.Findings,
		QAValidation: output.QAValidation{
			SourcesQA: output.SourcesQA{
				ValidationDetails: st.QASourceReport,
				RejectedSources:   st.RejectedSources,
			},
			FindingsQA: st.FindingsQA,
		},
		Status: string(st.Status),
	}

	path, err := p.writer.Write(rec)
	if err != nil {
		p.logger.ErrorContext(ctx, "persist failed", "error", err)
		return Patch{
			Status:       statusPtr(StatusError),
			ErrorMessage: strPtr(err.Error()),
		}
	}
	return Patch{
		OutputPath: strPtr(path),
		Status:     statusPtr(StatusComplete),
	}
}
