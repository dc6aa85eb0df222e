package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moodk/moodk/internal/api"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/database"
	"github.com/moodk/moodk/internal/insight"
	"github.com/moodk/moodk/internal/metadata/tmdb"
	"github.com/moodk/moodk/internal/preferences"
	"github.com/moodk/moodk/internal/recommend"
	"github.com/moodk/moodk/internal/scheduler"
	"github.com/moodk/moodk/internal/scheduler/tasks"
	"github.com/moodk/moodk/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info().
		Str("version", config.Version).
		Str("logLevel", cfg.Logging.Level).
		Msg("starting MOODK")

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if err := db.Migrate(ctx); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	cat := catalog.Default()
	client := tmdb.NewClient(cfg.TMDB, log.Logger)
	if !client.IsConfigured() {
		log.Warn().Msg("TMDB API key not set; recommendations will be empty")
	}
	rec := recommend.NewService(client, cfg.Discovery, log.Logger)

	gen, err := insight.NewGeminiGenerator(ctx, cfg.Gemini, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Gemini client")
		return err
	}
	if !gen.IsConfigured() {
		log.Warn().Msg("Gemini API key not set; match reasons will use the fallback text")
	}
	ins := insight.NewService(gen, log.Logger)

	prefs := preferences.NewService(db.Conn(), log.Logger)
	sessions := session.NewManager(cat, rec, ins, prefs, cfg.Discovery, cfg.Sessions, log.Logger)
	defer sessions.Close()

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to create scheduler")
		return err
	}
	if err := tasks.RegisterSessionPruneTask(sched, sessions, cfg.Sessions.PruneCron); err != nil {
		log.Error().Err(err).Msg("failed to register session prune task")
		return err
	}

	server := api.NewServer(cfg, api.Services{
		Catalog:     cat,
		TMDB:        client,
		Recommend:   rec,
		Insight:     ins,
		Preferences: prefs,
		Sessions:    sessions,
		Scheduler:   sched,
	}, log.Logger)

	if err := tasks.RegisterLimiterCleanupTask(sched, server.InsightLimiter(), ""); err != nil {
		log.Error().Err(err).Msg("failed to register limiter cleanup task")
		return err
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info().Msg("received shutdown signal")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := sched.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}
