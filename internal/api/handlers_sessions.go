package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moodk/moodk/internal/appstate"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/session"
)

type sessionResponse struct {
	ID    string         `json:"id"`
	State appstate.State `json:"state"`
}

// createSession starts a server-held application state.
// POST /api/v1/sessions
func (s *Server) createSession(c echo.Context) error {
	id, state := s.sessions.Create(c.Request().Context(), requestLanguage(c))
	return c.JSON(http.StatusCreated, sessionResponse{ID: id, State: state})
}

// getSession returns the current state of a session.
// GET /api/v1/sessions/:id
func (s *Server) getSession(c echo.Context) error {
	id := c.Param("id")
	state, err := s.sessions.State(id)
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, sessionResponse{ID: id, State: state})
}

// deleteSession ends a session.
// DELETE /api/v1/sessions/:id
func (s *Server) deleteSession(c echo.Context) error {
	if !s.sessions.Remove(c.Param("id")) {
		return sessionError(session.ErrNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// dispatchAction applies a named action to a session.
// POST /api/v1/sessions/:id/actions
func (s *Server) dispatchAction(c echo.Context) error {
	var req session.ActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	state, err := s.sessions.Dispatch(c.Request().Context(), id, req)
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, sessionResponse{ID: id, State: state})
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidAction), errors.Is(err, catalog.ErrUnknownOption):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
