package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moodk/moodk/internal/api/ratelimit"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/insight"
	"github.com/moodk/moodk/internal/metadata/tmdb"
	"github.com/moodk/moodk/internal/preferences"
	"github.com/moodk/moodk/internal/recommend"
	"github.com/moodk/moodk/internal/scheduler"
	"github.com/moodk/moodk/internal/session"
)

// Services are the dependencies the API is built on.
type Services struct {
	Catalog     *catalog.Catalog
	TMDB        *tmdb.Client
	Recommend   *recommend.Service
	Insight     *insight.Service
	Preferences *preferences.Service
	Sessions    *session.Manager
	Scheduler   *scheduler.Scheduler
}

// Server handles HTTP requests for the MOODK API.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	logger  zerolog.Logger
	started time.Time

	catalog        *catalog.Catalog
	tmdb           *tmdb.Client
	recommend      *recommend.Service
	insight        *insight.Service
	preferences    *preferences.Service
	sessions       *session.Manager
	scheduler      *scheduler.Scheduler
	insightLimiter *ratelimit.IPLimiter
}

// NewServer creates a new API server instance.
func NewServer(cfg *config.Config, svc Services, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &Server{
		echo:           e,
		cfg:            cfg,
		logger:         logger.With().Str("component", "api").Logger(),
		started:        time.Now(),
		catalog:        svc.Catalog,
		tmdb:           svc.TMDB,
		recommend:      svc.Recommend,
		insight:        svc.Insight,
		preferences:    svc.Preferences,
		sessions:       svc.Sessions,
		scheduler:      svc.Scheduler,
		insightLimiter: ratelimit.NewIPLimiter(cfg.Sessions.InsightPerMinute, time.Minute),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// InsightLimiter returns the per-IP limiter guarding insight generation.
func (s *Server) InsightLimiter() *ratelimit.IPLimiter {
	return s.insightLimiter
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":          config.Version,
		"startTime":        s.started.Format(time.RFC3339),
		"tmdbConfigured":   s.tmdb.IsConfigured(),
		"geminiConfigured": s.cfg.Gemini.APIKey != "",
		"sessions":         s.sessions.Len(),
	})
}
