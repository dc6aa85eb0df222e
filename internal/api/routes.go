package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/moodk/moodk/internal/api/handlers"
	apimw "github.com/moodk/moodk/internal/api/middleware"
	"github.com/moodk/moodk/internal/preferences"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(apimw.SecurityHeaders())
	s.echo.Use(middleware.BodyLimit("1M"))
	s.echo.Use(apimw.ContentLanguage(func(c echo.Context) string { return requestLanguage(c).String() }))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Debug().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	api := s.echo.Group("/api/v1")
	api.GET("/health", s.healthCheck)
	api.GET("/status", s.getStatus)

	s.setupDiscoveryRoutes(api)
	s.setupSessionRoutes(api)

	preferences.NewHandlers(s.preferences).RegisterRoutes(api)

	if s.scheduler != nil {
		handlers.NewSchedulerHandler(s.scheduler).RegisterRoutes(api.Group("/scheduler"))
	}
}

func (s *Server) setupDiscoveryRoutes(api *echo.Group) {
	api.GET("/catalog", s.getCatalog)
	api.POST("/recommendations", s.postRecommendations)
	api.GET("/trending", s.getTrending)
	api.GET("/titles/:kind/:id", s.getTitle)
	api.POST("/insight", s.postInsight, s.insightLimiter.Middleware())
}

func (s *Server) setupSessionRoutes(api *echo.Group) {
	g := api.Group("/sessions")
	g.POST("", s.createSession)
	g.GET("/:id", s.getSession)
	g.DELETE("/:id", s.deleteSession)
	g.POST("/:id/actions", s.dispatchAction)
}
