package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4-turbo-preview"
)

// OpenAI calls the OpenAI chat completions API.
type OpenAI struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAI builds an OpenAI provider from cfg, filling defaults for model
// and base URL.
func NewOpenAI(cfg Config, opts ...Option) *OpenAI {
	httpClient, logger := applyOptions(cfg.Timeout, opts)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (o *OpenAI) Name() string { return "GPT (OpenAI)" }

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate implements Provider.
func (o *OpenAI) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	req := openAIRequest{
		Model:     o.model,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	var resp openAIResponse
	if err := postJSON(ctx, o.httpClient, o.logger, "openai generate", o.baseURL+"/v1/chat/completions", headers, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai generate: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
