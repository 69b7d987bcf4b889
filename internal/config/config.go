package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the multihop pipeline
type Config struct {
	LLM        LLMConfig        `json:"llm"`
	Embedding  EmbeddingConfig  `json:"embedding"`
	Retriever  RetrieverConfig  `json:"retriever"`
	Database   DatabaseConfig   `json:"database"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Evaluation EvaluationConfig `json:"evaluation"`
	Server     ServerConfig     `json:"server"`
}

// LLMConfig holds LLM API configuration (any OpenAI-compatible endpoint)
type LLMConfig struct {
	URL         string  `json:"url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// EmbeddingConfig holds embedding API configuration, used only by the
// pgvector retrieval backend
type EmbeddingConfig struct {
	URL        string `json:"url"`
	APIKey     string `json:"api_key"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
}

// RetrieverConfig holds passage retrieval configuration
type RetrieverConfig struct {
	// Backend selects the retrieval implementation: "http" or "pgvector"
	Backend string `json:"backend"`
	// URL of the search service (http backend)
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
}

// DatabaseConfig holds the pgvector backend connection
type DatabaseConfig struct {
	PostgresURL string `json:"postgres_url"`
	// Table holding passages for the pgvector backend
	PassageTable string `json:"passage_table"`
}

// PipelineConfig holds the multi-hop loop parameters
type PipelineConfig struct {
	MaxHops        int `json:"max_hops"`
	PassagesPerHop int `json:"passages_per_hop"`
}

// EvaluationConfig holds evaluation harness parameters
type EvaluationConfig struct {
	Workers   int `json:"workers"`    // concurrent pipeline runs (default: 4)
	QueueSize int `json:"queue_size"` // size of the buffered example queue (default: 64)
}

// ServerConfig holds HTTP API server configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// BackendHTTP and BackendPgvector are the supported retriever backends
const (
	BackendHTTP     = "http"
	BackendPgvector = "pgvector"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			URL:         "http://localhost:8000/v1",
			APIKey:      "",
			Model:       "Qwen/Qwen3-8B-AWQ",
			MaxTokens:   1024,
			Temperature: 0.0,
		},
		Embedding: EmbeddingConfig{
			URL:        "http://localhost:11434/v1",
			APIKey:     "",
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
		Retriever: RetrieverConfig{
			Backend: BackendHTTP,
			URL:     "http://localhost:8893",
			APIKey:  "",
		},
		Database: DatabaseConfig{
			PostgresURL:  "",
			PassageTable: "multihop_passages",
		},
		Pipeline: PipelineConfig{
			MaxHops:        2,
			PassagesPerHop: 3,
		},
		Evaluation: EvaluationConfig{
			Workers:   4,
			QueueSize: 64,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	envString("MULTIHOP_LLM_URL", &cfg.LLM.URL)
	envString("MULTIHOP_LLM_API_KEY", &cfg.LLM.APIKey)
	envString("MULTIHOP_LLM_MODEL", &cfg.LLM.Model)
	envInt("MULTIHOP_LLM_MAX_TOKENS", &cfg.LLM.MaxTokens)
	envFloat("MULTIHOP_LLM_TEMPERATURE", &cfg.LLM.Temperature)

	envString("MULTIHOP_EMBEDDING_URL", &cfg.Embedding.URL)
	envString("MULTIHOP_EMBEDDING_API_KEY", &cfg.Embedding.APIKey)
	envString("MULTIHOP_EMBEDDING_MODEL", &cfg.Embedding.Model)
	envInt("MULTIHOP_EMBEDDING_DIMENSIONS", &cfg.Embedding.Dimensions)

	envString("MULTIHOP_RETRIEVER_BACKEND", &cfg.Retriever.Backend)
	envString("MULTIHOP_RETRIEVER_URL", &cfg.Retriever.URL)
	envString("MULTIHOP_RETRIEVER_API_KEY", &cfg.Retriever.APIKey)

	envString("MULTIHOP_POSTGRES_URL", &cfg.Database.PostgresURL)
	envString("MULTIHOP_PASSAGE_TABLE", &cfg.Database.PassageTable)

	envInt("MULTIHOP_MAX_HOPS", &cfg.Pipeline.MaxHops)
	envInt("MULTIHOP_PASSAGES_PER_HOP", &cfg.Pipeline.PassagesPerHop)

	envInt("MULTIHOP_EVAL_WORKERS", &cfg.Evaluation.Workers)
	envInt("MULTIHOP_EVAL_QUEUE_SIZE", &cfg.Evaluation.QueueSize)

	envString("MULTIHOP_SERVER_HOST", &cfg.Server.Host)
	envInt("MULTIHOP_SERVER_PORT", &cfg.Server.Port)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsPgvectorConfigured returns true if the pgvector backend can be used
func (c *Config) IsPgvectorConfigured() bool {
	return c.Database.PostgresURL != "" && c.Embedding.URL != ""
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "LLM temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens < 1 {
		errs = append(errs, "LLM max_tokens must be positive")
	}
	if c.LLM.URL == "" {
		errs = append(errs, "LLM URL is required")
	} else if !isValidURL(c.LLM.URL) {
		errs = append(errs, "LLM URL must be a valid URL")
	}

	switch c.Retriever.Backend {
	case BackendHTTP:
		if c.Retriever.URL == "" {
			errs = append(errs, "retriever URL is required for the http backend")
		} else if !isValidURL(c.Retriever.URL) {
			errs = append(errs, "retriever URL must be a valid URL")
		}
	case BackendPgvector:
		if c.Database.PostgresURL == "" {
			errs = append(errs, "PostgreSQL URL is required for the pgvector backend")
		}
		if c.Embedding.URL == "" {
			errs = append(errs, "embedding URL is required for the pgvector backend")
		}
		if c.Database.PassageTable == "" {
			errs = append(errs, "passage table is required for the pgvector backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown retriever backend: %s", c.Retriever.Backend))
	}

	if c.Database.PostgresURL != "" && !isValidURL(c.Database.PostgresURL) {
		errs = append(errs, "PostgreSQL URL must be a valid URL")
	}

	if c.Embedding.URL != "" {
		if !isValidURL(c.Embedding.URL) {
			errs = append(errs, "embedding URL must be a valid URL")
		}
		if c.Embedding.Dimensions < 1 {
			errs = append(errs, "embedding dimensions must be positive when URL is set")
		}
	}

	// MaxHops = 0 is a valid pipeline: the loop is skipped and the answer
	// is generated from empty context.
	if c.Pipeline.MaxHops < 0 {
		errs = append(errs, "max hops must not be negative")
	}
	if c.Pipeline.PassagesPerHop < 1 {
		errs = append(errs, "passages per hop must be positive")
	}

	if c.Evaluation.Workers < 1 {
		errs = append(errs, "evaluation workers must be at least 1")
	}
	if c.Evaluation.QueueSize < 1 {
		errs = append(errs, "evaluation queue size must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	if path := os.Getenv("MULTIHOP_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}

	configDir := filepath.Join(homeDir, ".config", "multihop")
	configPath := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	altPath := filepath.Join(homeDir, ".multihop", "config.json")
	if _, err := os.Stat(altPath); err == nil {
		return altPath
	}

	return configPath
}
