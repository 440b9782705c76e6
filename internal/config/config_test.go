package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	for _, e := range []string{"MONITORIA_API_PORT", "MONITORIA_LOGGING_LEVEL", "MONITORIA_NEWS_MAX_PER_TERM"} {
		os.Unsetenv(e)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Analysis defaults
	assert.Equal(t, 3, cfg.Analysis.NegationWindow)
	assert.Equal(t, 4, cfg.Analysis.MinWordLength)
	assert.Equal(t, 50, cfg.Analysis.MaxCloudWords)
	assert.Empty(t, cfg.Analysis.LexiconFile)

	// News defaults
	assert.Equal(t, "https://news.google.com/rss/search", cfg.News.BaseURL)
	assert.Len(t, cfg.News.SearchTerms, len(DefaultSearchTerms))
	assert.Equal(t, 5, cfg.News.MaxPerTerm)
	assert.Equal(t, 15*time.Second, cfg.News.Timeout())
	assert.Equal(t, 3, cfg.News.MaxRetries)
	assert.Equal(t, time.Second, cfg.News.BackoffBase())

	// Schedule defaults
	assert.False(t, cfg.Schedule.Enabled, "scheduling is off by default")
	assert.Equal(t, "@every 1h", cfg.Schedule.Spec)

	// API defaults
	assert.Equal(t, "0.0.0.0:8080", cfg.API.Addr())

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "test_config.yaml")
	content := []byte(`
analysis:
  lexicon_file: "/etc/monitoria/lexico.yaml"
  negation_window: 4
  workers: 8
news:
  search_terms:
    - "IA Teresina"
  max_per_term: 20
  backoff_base_ms: 10
schedule:
  enabled: true
  spec: "*/30 * * * *"
api:
  port: 9090
logging:
  level: "debug"
  format: "json"
`)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := LoadFromFile(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/etc/monitoria/lexico.yaml", cfg.Analysis.LexiconFile)
	assert.Equal(t, 4, cfg.Analysis.NegationWindow)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, []string{"IA Teresina"}, cfg.News.SearchTerms)
	assert.Equal(t, 20, cfg.News.MaxPerTerm)
	assert.Equal(t, 10*time.Millisecond, cfg.News.BackoffBase())
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.News.MaxRetries)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule.Spec)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromFileInvalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("news:\n  max_per_term: 500\n"), 0644))

	_, err := LoadFromFile(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_per_term")
}

// ── Environment overrides ──

func TestEnvOverride(t *testing.T) {
	t.Setenv("MONITORIA_API_PORT", "7070")
	t.Setenv("MONITORIA_ANALYSIS_NEGATION_WINDOW", "2")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api:\n  port: 9090\n"), 0644))

	cfg, err := LoadFromFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.API.Port, "env wins over file")
	assert.Equal(t, 2, cfg.Analysis.NegationWindow)
}

// ── Validate ──

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Analysis: AnalysisConfig{NegationWindow: 3},
			News:     NewsConfig{MaxPerTerm: 5, MaxRetries: 3},
			API:      APIConfig{Port: 8080},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero window", func(c *Config) { c.Analysis.NegationWindow = 0 }, false},
		{"confidence above one", func(c *Config) { c.Analysis.MinConfidence = 1.5 }, false},
		{"too many per term", func(c *Config) { c.News.MaxPerTerm = 51 }, false},
		{"no retries", func(c *Config) { c.News.MaxRetries = 0 }, false},
		{"bad port", func(c *Config) { c.API.Port = 70000 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if tc.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

// ── Logger ──

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(LoggingConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("component", "test").Debug("hello")
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestNewLoggerDefaults(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNewLoggerInvalid(t *testing.T) {
	_, err := NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err, "invalid level")
	_, err = NewLogger(LoggingConfig{Format: "xml"})
	assert.Error(t, err, "invalid format")
}

// ── homeDir ──

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	assert.NotEmpty(t, homeDir())
}
