// Package config handles configuration loading for monitoria.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MONITORIA"

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"     json:"news"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule" json:"schedule"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"      json:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"  json:"logging"`
}

// AnalysisConfig holds sentiment engine settings.
type AnalysisConfig struct {
	LexiconFile    string  `mapstructure:"lexicon_file"    yaml:"lexicon_file"    json:"lexicon_file"` // optional YAML/JSON override
	NegationWindow int     `mapstructure:"negation_window" yaml:"negation_window" json:"negation_window"`
	Workers        int     `mapstructure:"workers"         yaml:"workers"         json:"workers"` // 0 = GOMAXPROCS
	MinWordLength  int     `mapstructure:"min_word_length" yaml:"min_word_length" json:"min_word_length"`
	MaxCloudWords  int     `mapstructure:"max_cloud_words" yaml:"max_cloud_words" json:"max_cloud_words"`
	MinConfidence  float64 `mapstructure:"min_confidence"  yaml:"min_confidence"  json:"min_confidence"`
}

// NewsConfig holds news collector settings.
type NewsConfig struct {
	BaseURL           string   `mapstructure:"base_url"            yaml:"base_url"            json:"base_url"`
	SearchTerms       []string `mapstructure:"search_terms"        yaml:"search_terms"        json:"search_terms"`
	MaxPerTerm        int      `mapstructure:"max_per_term"        yaml:"max_per_term"        json:"max_per_term"`
	TimeoutSec        int      `mapstructure:"timeout_sec"         yaml:"timeout_sec"         json:"timeout_sec"`
	MaxRetries        int      `mapstructure:"max_retries"         yaml:"max_retries"         json:"max_retries"`
	BackoffBaseMs     int      `mapstructure:"backoff_base_ms"     yaml:"backoff_base_ms"     json:"backoff_base_ms"`
	RequestIntervalMs int      `mapstructure:"request_interval_ms" yaml:"request_interval_ms" json:"request_interval_ms"`
	CacheTTL          int      `mapstructure:"cache_ttl"           yaml:"cache_ttl"           json:"cache_ttl"` // seconds
}

// ScheduleConfig controls periodic news refresh while serving.
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Spec    string `mapstructure:"spec"    yaml:"spec"    json:"spec"` // cron expression or @every
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"         json:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         json:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins" json:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}

// DefaultSearchTerms are the queries tracked when none are configured.
var DefaultSearchTerms = []string{
	"Inteligência Artificial Piauí",
	"SIA Piauí",
	"IA Piauí",
	"Artificial Intelligence Piauí",
	"Secretaria Inteligência Artificial Piauí",
	"SoberanIA Piauí",
}

// Timeout returns the per-request news timeout.
func (n NewsConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSec) * time.Second
}

// BackoffBase returns the unit of the exponential retry backoff.
func (n NewsConfig) BackoffBase() time.Duration {
	return time.Duration(n.BackoffBaseMs) * time.Millisecond
}

// RequestInterval returns the minimum spacing between feed requests.
func (n NewsConfig) RequestInterval() time.Duration {
	return time.Duration(n.RequestIntervalMs) * time.Millisecond
}

// CacheDuration returns how long fetched feeds are reused.
func (n NewsConfig) CacheDuration() time.Duration {
	return time.Duration(n.CacheTTL) * time.Second
}

// Addr returns the listen address of the API server.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.monitoria/config.yaml (home directory)
//  3. /etc/monitoria/config.yaml (system)
//
// Environment variables override config file values.
// Format: MONITORIA_<SECTION>_<KEY>, e.g., MONITORIA_API_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".monitoria"))
	v.AddConfigPath("/etc/monitoria")

	bindEnv(v)

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Analysis.NegationWindow < 1:
		return fmt.Errorf("analysis.negation_window must be >= 1, got %d", c.Analysis.NegationWindow)
	case c.Analysis.MinConfidence < 0 || c.Analysis.MinConfidence > 1:
		return fmt.Errorf("analysis.min_confidence must be within [0, 1], got %.2f", c.Analysis.MinConfidence)
	case c.News.MaxPerTerm < 1 || c.News.MaxPerTerm > 50:
		return fmt.Errorf("news.max_per_term must be within [1, 50], got %d", c.News.MaxPerTerm)
	case c.News.MaxRetries < 1:
		return fmt.Errorf("news.max_retries must be >= 1, got %d", c.News.MaxRetries)
	case c.API.Port < 0 || c.API.Port > 65535:
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.lexicon_file", "")
	v.SetDefault("analysis.negation_window", 3)
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("analysis.min_word_length", 4)
	v.SetDefault("analysis.max_cloud_words", 50)
	v.SetDefault("analysis.min_confidence", 0.0)

	// News defaults
	v.SetDefault("news.base_url", "https://news.google.com/rss/search")
	v.SetDefault("news.search_terms", DefaultSearchTerms)
	v.SetDefault("news.max_per_term", 5)
	v.SetDefault("news.timeout_sec", 15)
	v.SetDefault("news.max_retries", 3)
	v.SetDefault("news.backoff_base_ms", 1000) // 1s, 2s, 4s
	v.SetDefault("news.request_interval_ms", 1000)
	v.SetDefault("news.cache_ttl", 600) // 10 minutes

	// Schedule defaults
	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.spec", "@every 1h")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:8501"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
