package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.Research.MaxSearchResults != 5 || cfg.Research.MaxContentLength != 5000 {
		t.Errorf("research defaults = %+v", cfg.Research)
	}
	if cfg.Research.FrameworkDocName != "research framework" {
		t.Errorf("framework doc name = %q", cfg.Research.FrameworkDocName)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fathom.yaml")
	body := `
llm:
  provider: openai
  api_key: sk-test
  model: gpt-4o
research:
  max_search_results: 3
output_dir: /tmp/fathom-out
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "gpt-4o" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Research.MaxSearchResults != 3 {
		t.Errorf("max_search_results = %d", cfg.Research.MaxSearchResults)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Research.MaxContentLength != 5000 {
		t.Errorf("max_content_length = %d", cfg.Research.MaxContentLength)
	}
	if cfg.OutputDir != "/tmp/fathom-out" {
		t.Errorf("output_dir = %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FATHOM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("FATHOM_MAX_SEARCH_RESULTS", "7")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "g-test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.Research.MaxSearchResults != 7 {
		t.Errorf("max_search_results = %d", cfg.Research.MaxSearchResults)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("want error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("llm: [unterminated"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("want error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.LLM.Provider = "" }},
		{"zero search results", func(c *Config) { c.Research.MaxSearchResults = 0 }},
		{"negative content length", func(c *Config) { c.Research.MaxContentLength = -1 }},
		{"unknown extractor", func(c *Config) { c.Research.Extractor = "telepathy" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("want validation error")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
