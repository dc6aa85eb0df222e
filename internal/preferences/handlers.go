package preferences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/consent", h.GetConsent)
	g.POST("/consent", h.AcceptConsent)

	g.GET("/watchlist", h.ListWatchlist)
	g.GET("/watchlist/:id", h.GetWatchlistStatus)
	g.POST("/watchlist/:id/toggle", h.ToggleWatchlist)
}

type consentResponse struct {
	Accepted bool `json:"accepted"`
}

type watchlistStatusResponse struct {
	ID      int64 `json:"id"`
	InWatch bool  `json:"inWatchlist"`
}

// GetConsent returns the cookie consent flag
// GET /api/v1/consent
func (h *Handlers) GetConsent(c echo.Context) error {
	return c.JSON(http.StatusOK, consentResponse{Accepted: h.service.CookieAccepted(c.Request().Context())})
}

// AcceptConsent records cookie consent
// POST /api/v1/consent
func (h *Handlers) AcceptConsent(c echo.Context) error {
	if err := h.service.AcceptCookies(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, consentResponse{Accepted: true})
}

// ListWatchlist returns saved titles
// GET /api/v1/watchlist
func (h *Handlers) ListWatchlist(c echo.Context) error {
	items, err := h.service.Watchlist(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// GetWatchlistStatus reports whether a title is saved
// GET /api/v1/watchlist/:id
func (h *Handlers) GetWatchlistStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	in, err := h.service.InWatchlist(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, watchlistStatusResponse{ID: id, InWatch: in})
}

// ToggleWatchlist flips a title's membership
// POST /api/v1/watchlist/:id/toggle
func (h *Handlers) ToggleWatchlist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	in, err := h.service.ToggleWatchlist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrInvalidID) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, watchlistStatusResponse{ID: id, InWatch: in})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
