package main

import (
	"context"
	"fmt"
	"os"

	"fathom/internal/config"
	"fathom/internal/docstore"
	"fathom/internal/extract"
	"fathom/internal/llm"
	"fathom/internal/logging"
	"fathom/internal/output"
	"fathom/internal/research"
)

// loadConfig builds the effective configuration and initializes the
// global logger from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	return cfg, nil
}

// buildPipeline wires the configured capabilities into a runnable
// pipeline.
func buildPipeline(ctx context.Context, cfg config.Config) (*research.Pipeline, error) {
	provider, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	}, llm.WithLogger(logging.New("llm")))
	if err != nil {
		return nil, err
	}

	extractor, err := extract.New(cfg.Research.Extractor, extract.WithLogger(logging.New("extract")))
	if err != nil {
		return nil, err
	}

	writer := output.NewWriter(cfg.OutputDir, output.WithLogger(logging.New("output")))

	opts := []research.Option{
		research.WithConfig(research.Config{
			MaxSearchResults: cfg.Research.MaxSearchResults,
			MaxContentLength: cfg.Research.MaxContentLength,
			FrameworkDocName: cfg.Research.FrameworkDocName,
		}),
		research.WithLogger(logging.New("research")),
	}
	if store, err := buildDocStore(ctx, cfg); err != nil {
		return nil, err
	} else if store != nil {
		opts = append(opts, research.WithDocStore(store))
	}

	return research.New(provider, extractor, writer, opts...), nil
}

// buildDocStore selects the framework-document backend: Google Drive
// when credentials are configured, a local directory when one is set,
// otherwise none (the framework stage records not-found and proceeds).
func buildDocStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
	if cfg.Drive.CredentialsFile != "" {
		store, err := docstore.NewDrive(ctx, cfg.Drive.CredentialsFile, logging.New("docstore"))
		if err != nil {
			return nil, fmt.Errorf("drive store: %w", err)
		}
		return store, nil
	}
	if cfg.Research.FrameworkDir != "" {
		return docstore.NewDir(cfg.Research.FrameworkDir), nil
	}
	return nil, nil
}

// providerKeys reads the conventional key variables for availability
// listings.
func providerKeys() llm.Keys {
	return llm.Keys{
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		Gemini:    os.Getenv("GEMINI_API_KEY"),
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
	}
}
