package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "moodk",
	Short: "Mood-driven film and series recommendations",
	Long: `MOODK picks films and series from TMDB based on a mood, a regional
cinema and a time budget, and explains each match with a short blurb.

Examples:
  moodk serve
  moodk recommend --type movie --mood epic --region hollywood --time feature
  moodk trending
  moodk trailer --type tv --id 1399`,
	SilenceUsage: true,
	Version:      config.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(serveCmd, recommendCmd, trendingCmd, trailerCmd)
}

func main() {
	// A missing .env is fine; the environment and config file still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
// CLI commands log to stderr so stdout carries only results.
func setup(quiet bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	lc := logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
	if quiet {
		lc.Output = os.Stderr
		if logLevel == "" {
			lc.Level = "warn"
		}
	}

	return cfg, logger.New(lc), nil
}
