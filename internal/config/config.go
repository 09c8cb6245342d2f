// Package config handles configuration loading for News Pulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"  yaml:"analysis"`
	Store     StoreConfig     `mapstructure:"store"     yaml:"store"`
	Auth      AuthConfig      `mapstructure:"auth"      yaml:"auth"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Web       WebConfig       `mapstructure:"web"       yaml:"web"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// NewsConfig holds news provider configuration.
type NewsConfig struct {
	Provider    string            `mapstructure:"provider"      yaml:"provider"` // "gnews" or "rss"
	GNewsAPIKey string            `mapstructure:"gnews_api_key" yaml:"gnews_api_key"`
	Lang        string            `mapstructure:"lang"          yaml:"lang"`
	Country     string            `mapstructure:"country"       yaml:"country"`
	MaxArticles int               `mapstructure:"max_articles"  yaml:"max_articles"`
	Trending    []string          `mapstructure:"trending"      yaml:"trending"`
	RSSFeeds    map[string]string `mapstructure:"rss_feeds"     yaml:"rss_feeds"` // category -> feed URL
}

// SentimentConfig holds sentiment engine settings.
type SentimentConfig struct {
	Engine string `mapstructure:"engine" yaml:"engine"` // "auto", "vader", "keyword"
}

// AnalysisConfig holds analysis settings.
type AnalysisConfig struct {
	ConcurrentFetches int `mapstructure:"concurrent_fetches" yaml:"concurrent_fetches"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // SQLite database file
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	SessionTTLHours int `mapstructure:"session_ttl_hours" yaml:"session_ttl_hours"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// WebConfig holds frontend configuration.
type WebConfig struct {
	URL string `mapstructure:"url" yaml:"url"` // e.g., "http://localhost:3000"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newspulse/config.yaml (home directory)
//  3. /etc/newspulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSPULSE_<SECTION>_<KEY>, e.g., NEWSPULSE_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newspulse"))
	v.AddConfigPath("/etc/newspulse")

	// Environment variable settings
	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override sensitive values from environment
	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// News defaults
	v.SetDefault("news.provider", "gnews")
	v.SetDefault("news.lang", "en")
	v.SetDefault("news.country", "us")
	v.SetDefault("news.max_articles", 10)
	v.SetDefault("news.trending", []string{
		"AI", "Tesla", "iPhone", "Cricket", "Startups", "SpaceX", "Bitcoin", "Climate",
	})
	v.SetDefault("news.rss_feeds", defaultRSSFeeds())

	// Sentiment defaults
	v.SetDefault("sentiment.engine", "auto")

	// Analysis defaults
	v.SetDefault("analysis.concurrent_fetches", 5)

	// Store defaults
	v.SetDefault("store.path", filepath.Join(homeDir(), ".newspulse", "newspulse.db"))

	// Auth defaults
	v.SetDefault("auth.session_ttl_hours", 24)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Web defaults
	v.SetDefault("web.url", "http://localhost:3000")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// defaultRSSFeeds maps headline categories to Google News RSS feeds.
// Used by the key-free rss provider.
func defaultRSSFeeds() map[string]string {
	const suffix = "?hl=en-US&gl=US&ceid=US:en"
	section := func(topic string) string {
		return "https://news.google.com/rss/headlines/section/topic/" + topic + suffix
	}
	return map[string]string{
		"general":       "https://news.google.com/rss" + suffix,
		"world":         section("WORLD"),
		"nation":        section("NATION"),
		"business":      section("BUSINESS"),
		"technology":    section("TECHNOLOGY"),
		"entertainment": section("ENTERTAINMENT"),
		"sports":        section("SPORTS"),
		"science":       section("SCIENCE"),
		"health":        section("HEALTH"),
	}
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
// GNEWS_API_KEY (unprefixed) is honored for compatibility with existing
// deployments.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("NEWSPULSE_GNEWS_API_KEY"); key != "" {
		cfg.News.GNewsAPIKey = key
	} else if key := os.Getenv("GNEWS_API_KEY"); key != "" {
		cfg.News.GNewsAPIKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
