package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey           string `mapstructure:"api_key"`
	BaseURL          string `mapstructure:"base_url"`
	ImageBaseURL     string `mapstructure:"image_base_url"`
	PlaceholderImage string `mapstructure:"placeholder_image"`
	Timeout          int    `mapstructure:"timeout"` // seconds
	// BreakerThreshold is the number of consecutive failures that opens the circuit.
	BreakerThreshold uint32 `mapstructure:"breaker_threshold"`
	// BreakerCooldown is how long (seconds) the circuit stays open.
	BreakerCooldown int `mapstructure:"breaker_cooldown"`
}

// GeminiConfig holds text-generation configuration.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// DiscoveryConfig holds recommendation flow tuning.
type DiscoveryConfig struct {
	DebounceMillis int `mapstructure:"debounce_ms"`
	TrendingLimit  int `mapstructure:"trending_limit"`
	CastLimit      int `mapstructure:"cast_limit"`
}

// SessionsConfig holds server-side session settings.
type SessionsConfig struct {
	IdleMinutes int    `mapstructure:"idle_minutes"`
	PruneCron   string `mapstructure:"prune_cron"`
	// InsightPerMinute caps insight generation requests per client IP.
	InsightPerMinute int `mapstructure:"insight_per_minute"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "./data/moodk.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TMDB: TMDBConfig{
			APIKey:           EmbeddedTMDBKey,
			BaseURL:          "https://api.themoviedb.org/3",
			ImageBaseURL:     "https://image.tmdb.org/t/p",
			PlaceholderImage: defaultPlaceholderImage,
			Timeout:          15,
			BreakerThreshold: 5,
			BreakerCooldown:  30,
		},
		Gemini: GeminiConfig{
			APIKey:  EmbeddedGeminiKey,
			Model:   "gemini-3-flash-preview",
			Timeout: 20,
		},
		Discovery: DiscoveryConfig{
			DebounceMillis: 500,
			TrendingLimit:  12,
			CastLimit:      8,
		},
		Sessions: SessionsConfig{
			IdleMinutes:      60,
			PruneCron:        "*/10 * * * *",
			InsightPerMinute: 20,
		},
	}
}

const defaultPlaceholderImage = "https://images.unsplash.com/photo-1485846234645-a62644f84728?auto=format&fit=crop&q=80&w=500"

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.moodk")
	}

	v.SetEnvPrefix("MOODK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults mirrors Default() into viper so env vars can override every key.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("tmdb.api_key", d.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.placeholder_image", d.TMDB.PlaceholderImage)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)
	v.SetDefault("tmdb.breaker_threshold", d.TMDB.BreakerThreshold)
	v.SetDefault("tmdb.breaker_cooldown", d.TMDB.BreakerCooldown)

	v.SetDefault("gemini.api_key", d.Gemini.APIKey)
	v.SetDefault("gemini.model", d.Gemini.Model)
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.timeout", d.Gemini.Timeout)

	v.SetDefault("discovery.debounce_ms", d.Discovery.DebounceMillis)
	v.SetDefault("discovery.trending_limit", d.Discovery.TrendingLimit)
	v.SetDefault("discovery.cast_limit", d.Discovery.CastLimit)

	v.SetDefault("sessions.idle_minutes", d.Sessions.IdleMinutes)
	v.SetDefault("sessions.prune_cron", d.Sessions.PruneCron)
	v.SetDefault("sessions.insight_per_minute", d.Sessions.InsightPerMinute)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
