package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
	"github.com/moodk/moodk/internal/recommend"
)

const (
	posterSize   = "w500"
	backdropSize = "original"
)

// requestLanguage resolves ?lang= first, then Accept-Language.
func requestLanguage(c echo.Context) locale.Language {
	if lang := c.QueryParam("lang"); lang != "" {
		return locale.Parse(lang)
	}
	return locale.Parse(c.Request().Header.Get(echo.HeaderAcceptLanguage))
}

type catalogResponse struct {
	Language locale.Language                            `json:"language"`
	RTL      bool                                       `json:"rtl"`
	Moods    []catalog.Mood                             `json:"moods"`
	Regions  []catalog.Region                           `json:"regions"`
	Times    map[catalog.MediaKind][]catalog.TimeBudget `json:"times"`
}

// getCatalog lists the wizard options.
// GET /api/v1/catalog?lang=
func (s *Server) getCatalog(c echo.Context) error {
	lang := requestLanguage(c)
	return c.JSON(http.StatusOK, catalogResponse{
		Language: lang,
		RTL:      lang.RTL(),
		Moods:    s.catalog.Moods(lang),
		Regions:  s.catalog.Regions(lang),
		Times: map[catalog.MediaKind][]catalog.TimeBudget{
			catalog.Film:   s.catalog.Times(catalog.Film, lang),
			catalog.Series: s.catalog.Times(catalog.Series, lang),
		},
	})
}

// selectionRequest carries wizard option ids.
type selectionRequest struct {
	MediaType string `json:"mediaType" validate:"required,oneof=movie tv film series show"`
	MoodID    string `json:"moodId"`
	RegionID  string `json:"regionId"`
	TimeID    string `json:"timeId"`
	Lang      string `json:"lang"`
}

// language prefers the body's lang over the request language.
func (req selectionRequest) language(c echo.Context) locale.Language {
	if req.Lang != "" {
		return locale.Parse(req.Lang)
	}
	return requestLanguage(c)
}

func (s *Server) criteria(req selectionRequest, lang locale.Language) (catalog.SelectionCriteria, error) {
	kind, err := catalog.ParseMediaKind(req.MediaType)
	if err != nil {
		return catalog.SelectionCriteria{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	criteria, err := s.catalog.Criteria(kind, req.MoodID, req.RegionID, req.TimeID, lang)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownOption) {
			return catalog.SelectionCriteria{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return catalog.SelectionCriteria{}, err
	}
	return criteria, nil
}

// postRecommendations resolves a wizard selection into titles.
// POST /api/v1/recommendations
func (s *Server) postRecommendations(c echo.Context) error {
	var req selectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	criteria, err := s.criteria(req, req.language(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, s.recommend.Resolve(c.Request().Context(), criteria))
}

// getTrending lists this week's trending titles.
// GET /api/v1/trending
func (s *Server) getTrending(c echo.Context) error {
	return c.JSON(http.StatusOK, s.recommend.Trending(c.Request().Context()))
}

type titleResponse struct {
	recommend.Bundle
	PosterURL   string `json:"posterUrl"`
	BackdropURL string `json:"backdropUrl"`
}

// getTitle returns details, trailer and cast for one title.
// GET /api/v1/titles/:kind/:id
func (s *Server) getTitle(c echo.Context) error {
	kind, err := catalog.ParseMediaKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	bundle := s.recommend.Bundle(c.Request().Context(), id, kind)

	resp := titleResponse{Bundle: bundle}
	if bundle.Details != nil {
		resp.PosterURL = s.tmdb.GetImageURL(bundle.Details.PosterPath, posterSize)
		resp.BackdropURL = s.tmdb.GetImageURL(bundle.Details.BackdropPath, backdropSize)
	} else {
		resp.PosterURL = s.tmdb.GetImageURL("", posterSize)
		resp.BackdropURL = resp.PosterURL
	}
	return c.JSON(http.StatusOK, resp)
}

type insightRequest struct {
	selectionRequest
	Item *tmdb.ResultItem `json:"item" validate:"required"`
}

type insightResponse struct {
	Reason string `json:"reason"`
}

// postInsight writes the match blurb for a title.
// POST /api/v1/insight
func (s *Server) postInsight(c echo.Context) error {
	var req insightRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lang := req.language(c)
	criteria, err := s.criteria(req.selectionRequest, lang)
	if err != nil {
		return err
	}

	reason := s.insight.Reason(c.Request().Context(), *req.Item, criteria, lang)
	return c.JSON(http.StatusOK, insightResponse{Reason: reason})
}
