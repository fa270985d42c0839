package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

type Config struct {
	Server   ServerConfig
	Fetch    FetchConfig
	Browser  BrowserConfig
	Model    ModelConfig
	Spelling SpellingConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type FetchConfig struct {
	Mode      string
	UserAgent string
	// Timeout of zero leaves a hung fetch blocking until the caller's context
	// ends.
	Timeout time.Duration
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	Locale         string
}

type ModelConfig struct {
	VocabPath      string
	InferenceURL   string
	CacheTTL       time.Duration
	MaxSequenceLen int
	Timeout        time.Duration
}

type SpellingConfig struct {
	DictionaryPath string
	Depth          int
	Threshold      int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getStringSliceOrDefault("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:*", "https://localhost:*"}),
		},
		Fetch: FetchConfig{
			Mode:      strings.ToLower(getEnvOrDefault("FETCH_MODE", FetchModeHTTP)),
			UserAgent: getEnvOrDefault("FETCH_USER_AGENT", defaultUserAgent),
			Timeout:   getDurationOrDefault("FETCH_TIMEOUT", 0),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "en-IN,en;q=0.9"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-IN"),
		},
		Model: ModelConfig{
			VocabPath:      getEnvOrDefault("MODEL_VOCAB_PATH", "models/distilbert-base-uncased/vocab.txt"),
			InferenceURL:   getEnvOrDefault("MODEL_INFERENCE_URL", "http://localhost:8501"),
			CacheTTL:       getDurationOrDefault("MODEL_CACHE_TTL", time.Hour),
			MaxSequenceLen: getIntOrDefault("MODEL_MAX_SEQ_LEN", 512),
			Timeout:        getDurationOrDefault("MODEL_TIMEOUT", 0),
		},
		Spelling: SpellingConfig{
			DictionaryPath: getEnvOrDefault("SPELLING_DICTIONARY", ""),
			Depth:          getIntOrDefault("SPELLING_DEPTH", 2),
			Threshold:      getIntOrDefault("SPELLING_THRESHOLD", 1),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Fetch.Mode != FetchModeHTTP && c.Fetch.Mode != FetchModeBrowser {
		return fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.Fetch.Mode)
	}

	if c.Model.VocabPath == "" {
		return fmt.Errorf("MODEL_VOCAB_PATH is required")
	}

	if c.Model.InferenceURL == "" {
		return fmt.Errorf("MODEL_INFERENCE_URL is required")
	}

	if c.Model.MaxSequenceLen < 8 {
		return fmt.Errorf("MODEL_MAX_SEQ_LEN must be at least 8")
	}

	if c.Model.CacheTTL <= 0 {
		return fmt.Errorf("MODEL_CACHE_TTL must be positive")
	}

	if c.Spelling.Depth < 1 {
		return fmt.Errorf("SPELLING_DEPTH must be at least 1")
	}

	if c.Spelling.Threshold < 1 {
		return fmt.Errorf("SPELLING_THRESHOLD must be at least 1")
	}

	return nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/78.0.3904.108 Safari/537.36"
