// Package config loads runtime configuration from an optional YAML file,
// a .env file, and environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLM configures the generation provider.
type LLM struct {
	// Provider selects the backend: anthropic, claude, gemini, openai,
	// or ollama.
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

// Drive configures the optional Google Drive framework store.
type Drive struct {
	// CredentialsFile is a service-account JSON path; empty disables
	// the Drive backend.
	CredentialsFile string `yaml:"credentials_file"`
}

// Research configures the pipeline itself.
type Research struct {
	MaxSearchResults int    `yaml:"max_search_results"`
	MaxContentLength int    `yaml:"max_content_length"`
	FrameworkDocName string `yaml:"framework_doc_name"`
	// FrameworkDir points the local directory store at framework
	// documents; used when Drive credentials are absent.
	FrameworkDir string `yaml:"framework_dir"`
	// Extractor selects the content extractor: static or browser.
	Extractor string `yaml:"extractor"`
}

// Config is the root configuration.
type Config struct {
	LLM      LLM      `yaml:"llm"`
	Drive    Drive    `yaml:"drive"`
	Research Research `yaml:"research"`
	// OutputDir receives the per-run artifacts.
	OutputDir string `yaml:"output_dir"`
	// ServerAddr is the HTTP front end's listen address.
	ServerAddr string `yaml:"server_addr"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		LLM: LLM{Provider: "ollama"},
		Research: Research{
			MaxSearchResults: 5,
			MaxContentLength: 5000,
			FrameworkDocName: "research framework",
			Extractor:        "static",
		},
		OutputDir:  "data/outputs",
		ServerAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load builds the effective configuration. path may be empty (no YAML
// file). A .env file in the working directory is loaded first if
// present; real environment variables win over everything.
func Load(path string) (Config, error) {
	// Ignore a missing .env; it is a development convenience.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setStr(&cfg.LLM.Provider, "FATHOM_PROVIDER")
	setStr(&cfg.LLM.Model, "FATHOM_MODEL")
	setStr(&cfg.LLM.BaseURL, "FATHOM_BASE_URL")
	setStr(&cfg.Drive.CredentialsFile, "GOOGLE_CREDENTIALS_PATH")
	setStr(&cfg.Research.FrameworkDir, "FATHOM_FRAMEWORK_DIR")
	setStr(&cfg.Research.Extractor, "FATHOM_EXTRACTOR")
	setInt(&cfg.Research.MaxSearchResults, "FATHOM_MAX_SEARCH_RESULTS")
	setInt(&cfg.Research.MaxContentLength, "FATHOM_MAX_CONTENT_LENGTH")
	setStr(&cfg.OutputDir, "FATHOM_OUTPUT_DIR")
	setStr(&cfg.ServerAddr, "FATHOM_ADDR")
	setStr(&cfg.LogLevel, "FATHOM_LOG_LEVEL")
	setStr(&cfg.LogFormat, "FATHOM_LOG_FORMAT")

	// Provider keys come from the conventional variables; an explicit
	// api_key in the YAML file still wins over an unset environment.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

// Validate checks the effective configuration for contradictions.
func (c Config) Validate() error {
	if c.LLM.Provider == "" {
		return errors.New("config: llm provider is required")
	}
	if c.Research.MaxSearchResults <= 0 {
		return fmt.Errorf("config: max_search_results must be positive, got %d", c.Research.MaxSearchResults)
	}
	if c.Research.MaxContentLength <= 0 {
		return fmt.Errorf("config: max_content_length must be positive, got %d", c.Research.MaxContentLength)
	}
	switch c.Research.Extractor {
	case "static", "browser":
	default:
		return fmt.Errorf("config: unknown extractor %q", c.Research.Extractor)
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir is required")
	}
	return nil
}
