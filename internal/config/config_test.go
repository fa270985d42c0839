package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, FetchModeHTTP, cfg.Fetch.Mode)
	assert.Equal(t, time.Hour, cfg.Model.CacheTTL)
	assert.Equal(t, 512, cfg.Model.MaxSequenceLen)
	assert.Equal(t, 1, cfg.Spelling.Threshold)
	assert.Zero(t, cfg.Fetch.Timeout)
	assert.Contains(t, cfg.Fetch.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FETCH_MODE", "Browser")
	t.Setenv("MODEL_CACHE_TTL", "15m")
	t.Setenv("MODEL_MAX_SEQ_LEN", "384")
	t.Setenv("SPELLING_DICTIONARY", "/srv/words.txt")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("MODEL_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, FetchModeBrowser, cfg.Fetch.Mode)
	assert.Equal(t, 15*time.Minute, cfg.Model.CacheTTL)
	assert.Equal(t, 384, cfg.Model.MaxSequenceLen)
	assert.Equal(t, "/srv/words.txt", cfg.Spelling.DictionaryPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Browser.Headless)
	assert.Zero(t, cfg.Model.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"Unknown fetch mode", func(c *Config) { c.Fetch.Mode = "curl" }, "FETCH_MODE"},
		{"Missing vocab", func(c *Config) { c.Model.VocabPath = "" }, "MODEL_VOCAB_PATH"},
		{"Missing inference url", func(c *Config) { c.Model.InferenceURL = "" }, "MODEL_INFERENCE_URL"},
		{"Tiny sequence", func(c *Config) { c.Model.MaxSequenceLen = 4 }, "MODEL_MAX_SEQ_LEN"},
		{"Zero ttl", func(c *Config) { c.Model.CacheTTL = 0 }, "MODEL_CACHE_TTL"},
		{"Zero depth", func(c *Config) { c.Spelling.Depth = 0 }, "SPELLING_DEPTH"},
		{"Zero threshold", func(c *Config) { c.Spelling.Threshold = 0 }, "SPELLING_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
