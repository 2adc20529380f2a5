package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends for summary records.
const (
	StorageFS       = "fs"
	StorageS3       = "s3"
	StoragePostgres = "postgres"
)

// Inference providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogFile     string `envconfig:"LOG_FILE"`

	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"50"`

	Storage   string `envconfig:"STORAGE" default:"fs"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"docsum-summaries"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Prefix    string `envconfig:"S3_PREFIX" default:"output"`

	Provider      string `envconfig:"PROVIDER" default:"openai"`
	Model         string `envconfig:"MODEL"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`

	// ChunkSize is the window in characters fed to the model per call.
	// Zero picks 1024, 2048 or 4096 from the document length.
	ChunkSize        int  `envconfig:"CHUNK_SIZE" default:"2048"`
	SummaryMaxTokens int  `envconfig:"SUMMARY_MAX_TOKENS" default:"100"`
	Latin1Only       bool `envconfig:"LATIN1_ONLY" default:"false"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DOCSUM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the selected storage backend and provider have what
// they need to start.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFS:
		if c.OutputDir == "" {
			return fmt.Errorf("DOCSUM_OUTPUT_DIR is required for fs storage")
		}
	case StorageS3:
		if !c.HasS3() {
			return fmt.Errorf("s3 storage requires DOCSUM_S3_ENDPOINT, DOCSUM_S3_ACCESS_KEY_ID and DOCSUM_S3_SECRET_ACCESS_KEY")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("postgres storage requires DOCSUM_DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	switch c.Provider {
	case ProviderOpenAI:
	case ProviderGemini:
		if !c.HasGemini() {
			return fmt.Errorf("gemini provider requires DOCSUM_GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.ChunkSize < 0 {
		return fmt.Errorf("DOCSUM_CHUNK_SIZE must not be negative")
	}
	if c.SummaryMaxTokens <= 0 {
		return fmt.Errorf("DOCSUM_SUMMARY_MAX_TOKENS must be positive")
	}

	return nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != "" || c.OpenAIBaseURL != ""
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// MaxUploadBytes returns the request body limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}
