package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.AIProvider)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, 20*time.Second, cfg.AICallTimeout)
	assert.Equal(t, "Algenib", cfg.GeminiVoice)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadPicksProviderFromKeys(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AIProvider)
}

func TestLoadParsesOriginsAndDurations(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("AI_AUDIO_TIMEOUT", "90s")
	t.Setenv("SUBMISSION_RATE_PER_MIN", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.AIAudioTimeout)
	assert.Equal(t, 6, cfg.SubmissionsPerMinute)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StoreBackend:         "memory",
			AIProvider:           "none",
			AICallTimeout:        time.Second,
			AIAudioTimeout:       time.Second,
			SubmissionsPerMinute: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.StoreBackend = "sqlite" }, wantErr: "STORE_BACKEND"},
		{name: "unknown provider", mutate: func(c *Config) { c.AIProvider = "claude" }, wantErr: "AI_PROVIDER"},
		{name: "gemini without key", mutate: func(c *Config) { c.AIProvider = "gemini" }, wantErr: "GEMINI_API_KEY"},
		{name: "openai without key", mutate: func(c *Config) { c.AIProvider = "openai" }, wantErr: "OPENAI_API_KEY"},
		{name: "zero timeout", mutate: func(c *Config) { c.AICallTimeout = 0 }, wantErr: "timeouts"},
		{name: "zero rate", mutate: func(c *Config) { c.SubmissionsPerMinute = 0 }, wantErr: "SUBMISSION_RATE_PER_MIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
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
