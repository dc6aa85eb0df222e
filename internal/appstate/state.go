// Package appstate holds the application state as an explicit record that
// only changes through named actions applied by a pure reducer.
package appstate

import (
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// View is the top-level screen being shown.
type View string

const (
	ViewWizard View = "WIZARD"
	ViewSwiper View = "SWIPER"
	ViewResult View = "RESULT"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewWizard, ViewSwiper, ViewResult:
		return true
	}
	return false
}

// LegalPage is an open legal modal, or "" when none is open.
type LegalPage string

const (
	LegalNone    LegalPage = ""
	LegalPrivacy LegalPage = "privacy"
	LegalAbout   LegalPage = "about"
	LegalContact LegalPage = "contact"
	LegalTerms   LegalPage = "terms"
)

// Valid reports whether p is a known page (or none).
func (p LegalPage) Valid() bool {
	switch p {
	case LegalNone, LegalPrivacy, LegalAbout, LegalContact, LegalTerms:
		return true
	}
	return false
}

// FilterKey names one of the dashboard filters.
type FilterKey string

const (
	FilterMood   FilterKey = "moodId"
	FilterRegion FilterKey = "regionId"
	FilterTime   FilterKey = "timeId"
)

// Filters are the dashboard's option ids. Empty means unset.
type Filters struct {
	MoodID   string `json:"moodId"`
	RegionID string `json:"regionId"`
	TimeID   string `json:"timeId"`
}

// Any reports whether at least one filter is set.
func (f Filters) Any() bool {
	return f.MoodID != "" || f.RegionID != "" || f.TimeID != ""
}

// Article is a knowledge-hub entry opened by the user.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
	Icon    string `json:"icon"`
}

// State is the full application state.
type State struct {
	View     View            `json:"view"`
	Language locale.Language `json:"language"`

	Wizard          catalog.SelectionCriteria `json:"wizard"`
	Recommendations []tmdb.ResultItem         `json:"recommendations"`
	CurrentMatch    *tmdb.ResultItem          `json:"currentMatch"`
	MatchReason     *string                   `json:"matchReason"`

	Movies        []tmdb.ResultItem `json:"movies"`
	SelectedMovie *tmdb.ResultItem  `json:"selectedMovie"`
	Loading       bool              `json:"isLoading"`
	Filters       Filters           `json:"filters"`

	LegalPage      LegalPage `json:"activeLegalPage"`
	CookieAccepted bool      `json:"cookieAccepted"`

	SelectedArticle *Article `json:"selectedArticle"`
}

// Initial returns the starting state.
func Initial(lang locale.Language, cookieAccepted bool) State {
	return State{
		View:            ViewWizard,
		Language:        lang,
		Recommendations: []tmdb.ResultItem{},
		Movies:          []tmdb.ResultItem{},
		CookieAccepted:  cookieAccepted,
	}
}
