// Package llm abstracts text generation behind a single Provider interface
// with interchangeable backends (Anthropic, Gemini, OpenAI, Ollama).
// Backends are plain HTTP clients; selection happens once at startup via
// New, keyed by the configured provider name.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultMaxTokens is used when a call site passes maxTokens <= 0.
const DefaultMaxTokens = 4000

// Provider generates text from a prompt. One attempt per call; retry policy
// belongs to the caller, not here.
type Provider interface {
	// Generate returns the model's text for the prompt, or an error when
	// the provider call fails.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	// Name returns a human-readable provider name for logs and CLI output.
	Name() string
}

// Config selects and parameterizes a backend.
type Config struct {
	Provider string // "anthropic" (alias "claude"), "gemini", "openai", "ollama"
	APIKey   string
	Model    string        // empty = backend default
	BaseURL  string        // empty = backend default; tests point this at a local server
	Timeout  time.Duration // per-request timeout; 0 = defaultTimeout
}

const defaultTimeout = 60 * time.Second

// ErrUnknownProvider is returned by New for an unrecognized provider name.
var ErrUnknownProvider = errors.New("llm: unknown provider")

// New builds the Provider named by cfg.Provider.
func New(cfg Config, opts ...Option) (Provider, error) {
	switch cfg.Provider {
	case "anthropic", "claude":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm: anthropic: API key is required")
		}
		return NewAnthropic(cfg, opts...), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm: gemini: API key is required")
		}
		return NewGemini(cfg, opts...), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm: openai: API key is required")
		}
		return NewOpenAI(cfg, opts...), nil
	case "ollama":
		return NewOllama(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// Option configures a provider during construction.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = c }
}

// WithLogger configures structured logging for API calls.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = l }
}

func applyOptions(timeout time.Duration, opts []Option) (*http.Client, *slog.Logger) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	httpClient := cfg.httpClient
	if httpClient == nil {
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return httpClient, logger
}

// postJSON executes one JSON POST and decodes the response body into dst.
// Non-2xx statuses become errors carrying a body snippet for diagnosis.
func postJSON(ctx context.Context, client *http.Client, logger *slog.Logger, operation, url string, headers map[string]string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.DebugContext(ctx, "provider request", "operation", operation, "url", url)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	logger.DebugContext(ctx, "provider response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
