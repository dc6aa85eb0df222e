package appstate

import (
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// Action is a named state transition.
type Action interface {
	ActionType() string
}

type (
	SetView            struct{ View View }
	SetLanguage        struct{ Language locale.Language }
	SelectMediaKind    struct{ Kind catalog.MediaKind }
	SelectMood         struct{ Mood *catalog.Mood }
	SelectRegion       struct{ Region *catalog.Region }
	SelectTime         struct{ Time *catalog.TimeBudget }
	SetRecommendations struct{ Items []tmdb.ResultItem }

	// SwipeRight accepts Item as the match and opens the result view.
	SwipeRight struct{ Item tmdb.ResultItem }

	// SwipeLeft drops every recommendation sharing Item's id.
	SwipeLeft struct{ Item tmdb.ResultItem }

	SetMatchReason struct{ Reason *string }
	SetMovies      struct{ Items []tmdb.ResultItem }
	SelectMovie    struct{ Item *tmdb.ResultItem }
	SetLoading     struct{ Loading bool }

	SetFilter struct {
		Key   FilterKey
		Value string
	}

	SetLegalPage       struct{ Page LegalPage }
	AcceptCookies      struct{}
	SetSelectedArticle struct{ Article *Article }

	// Reset returns to the wizard. Language and cookie consent survive.
	Reset struct{}
)

func (SetView) ActionType() string            { return "setView" }
func (SetLanguage) ActionType() string        { return "setLanguage" }
func (SelectMediaKind) ActionType() string    { return "selectMediaKind" }
func (SelectMood) ActionType() string         { return "selectMood" }
func (SelectRegion) ActionType() string       { return "selectRegion" }
func (SelectTime) ActionType() string         { return "selectTime" }
func (SetRecommendations) ActionType() string { return "setRecommendations" }
func (SwipeRight) ActionType() string         { return "swipeRight" }
func (SwipeLeft) ActionType() string          { return "swipeLeft" }
func (SetMatchReason) ActionType() string     { return "setMatchReason" }
func (SetMovies) ActionType() string          { return "setMovies" }
func (SelectMovie) ActionType() string        { return "selectMovie" }
func (SetLoading) ActionType() string         { return "setLoading" }
func (SetFilter) ActionType() string          { return "setFilter" }
func (SetLegalPage) ActionType() string       { return "setLegalPage" }
func (AcceptCookies) ActionType() string      { return "acceptCookies" }
func (SetSelectedArticle) ActionType() string { return "setSelectedArticle" }
func (Reset) ActionType() string              { return "resetApp" }
