package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama2"
	// Local models are slower than hosted APIs; give them more room.
	defaultOllamaTimeout = 120 * time.Second
)

// Ollama calls a local Ollama server. No API key involved.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOllama builds an Ollama provider from cfg, filling defaults for model
// and base URL.
func NewOllama(cfg Config, opts ...Option) *Ollama {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultOllamaTimeout
	}
	httpClient, logger := applyOptions(timeout, opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &Ollama{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (o *Ollama) Name() string { return fmt.Sprintf("Ollama (%s, local)", o.model) }

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate implements Provider. maxTokens is accepted for interface
// symmetry; the non-streaming generate endpoint has no direct equivalent.
func (o *Ollama) Generate(ctx context.Context, prompt string, _ int) (string, error) {
	req := ollamaRequest{Model: o.model, Prompt: prompt, Stream: false}
	var resp ollamaResponse
	if err := postJSON(ctx, o.httpClient, o.logger, "ollama generate", o.baseURL+"/api/generate", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
