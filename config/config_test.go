package config

import (
	"testing"
	"time"

	"justlaw-backend/storage"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "GEMINI_MODEL", "SEARCH_SOURCE_TIMEOUT_SECONDS", "STORAGE_TYPE", "GEMINI_TEMPERATURE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 8*time.Second, cfg.BranchTimeout)
	assert.Equal(t, 30*time.Second, cfg.FallbackTimeout)
	assert.Equal(t, storage.StorageTypeLocal, cfg.Storage.Type)
	assert.InDelta(t, 0.3, cfg.GeminiTemperature, 0.0001)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_SOURCE_TIMEOUT_SECONDS", "3")
	t.Setenv("SEARCH_FALLBACK_TIMEOUT_SECONDS", "-1")
	t.Setenv("STORAGE_TYPE", "s3")
	t.Setenv("AWS_S3_BUCKET", "justlaw-contracts")
	t.Setenv("GEMINI_TEMPERATURE", "abc")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.BranchTimeout)
	assert.Equal(t, 30*time.Second, cfg.FallbackTimeout, "non-positive values fall back")
	assert.Equal(t, storage.StorageTypeS3, cfg.Storage.Type)
	assert.Equal(t, "justlaw-contracts", cfg.Storage.S3Bucket)
	assert.InDelta(t, 0.3, cfg.GeminiTemperature, 0.0001)
}
