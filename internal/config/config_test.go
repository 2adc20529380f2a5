package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageFS, cfg.Storage)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, 2048, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.SummaryMaxTokens)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DOCSUM_PORT", "9090")
	t.Setenv("DOCSUM_CHUNK_SIZE", "0")
	t.Setenv("DOCSUM_PROVIDER", "gemini")
	t.Setenv("DOCSUM_GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0, cfg.ChunkSize)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.True(t, cfg.HasGemini())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage:          StorageFS,
			OutputDir:        "output",
			Provider:         ProviderOpenAI,
			ChunkSize:        2048,
			SummaryMaxTokens: 100,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage = "ftp" }, "unknown storage"},
		{"s3 without credentials", func(c *Config) { c.Storage = StorageS3 }, "s3 storage requires"},
		{"s3 with credentials", func(c *Config) {
			c.Storage = StorageS3
			c.S3Endpoint = "http://localhost:9000"
			c.S3AccessKey = "a"
			c.S3SecretKey = "b"
		}, ""},
		{"postgres without url", func(c *Config) { c.Storage = StoragePostgres }, "DOCSUM_DATABASE_URL"},
		{"unknown provider", func(c *Config) { c.Provider = "llama" }, "unknown provider"},
		{"gemini without key", func(c *Config) { c.Provider = ProviderGemini }, "DOCSUM_GEMINI_API_KEY"},
		{"gemini with key", func(c *Config) {
			c.Provider = ProviderGemini
			c.GeminiAPIKey = "g-key"
		}, ""},
		{"negative chunk", func(c *Config) { c.ChunkSize = -1 }, "CHUNK_SIZE"},
		{"zero tokens", func(c *Config) { c.SummaryMaxTokens = 0 }, "SUMMARY_MAX_TOKENS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_GeminiWithoutKey(t *testing.T) {
	t.Setenv("DOCSUM_PROVIDER", "gemini")
	t.Setenv("DOCSUM_GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCSUM_GEMINI_API_KEY")
}
