package session

import (
	"errors"
	"fmt"

	"github.com/moodk/moodk/internal/appstate"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// ErrInvalidAction is returned for malformed or unknown action requests.
var ErrInvalidAction = errors.New("invalid action")

// ActionRequest is the wire form of an appstate action. Only the fields
// relevant to Type are read.
type ActionRequest struct {
	Type string `json:"type" validate:"required"`

	View      string `json:"view,omitempty"`
	Language  string `json:"language,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
	ID        string `json:"id,omitempty"`

	Item    *tmdb.ResultItem  `json:"item,omitempty"`
	Items   []tmdb.ResultItem `json:"items,omitempty"`
	Reason  *string           `json:"reason,omitempty"`
	Loading bool              `json:"loading,omitempty"`
	Key     string            `json:"key,omitempty"`
	Value   string            `json:"value,omitempty"`
	Page    string            `json:"page,omitempty"`
	Article *appstate.Article `json:"article,omitempty"`
}

// toAction resolves r against the catalogue using the session's current
// language and media kind.
func (r ActionRequest) toAction(cat *catalog.Catalog, s appstate.State) (appstate.Action, error) {
	switch r.Type {
	case "setView":
		v := appstate.View(r.View)
		if !v.Valid() {
			return nil, fmt.Errorf("%w: view %q", ErrInvalidAction, r.View)
		}
		return appstate.SetView{View: v}, nil

	case "setLanguage":
		return appstate.SetLanguage{Language: locale.Parse(r.Language)}, nil

	case "selectMediaKind":
		kind, err := catalog.ParseMediaKind(r.MediaType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return appstate.SelectMediaKind{Kind: kind}, nil

	case "selectMood":
		m, ok := cat.Mood(r.ID, s.Language)
		if !ok {
			return nil, fmt.Errorf("%w: mood %q", catalog.ErrUnknownOption, r.ID)
		}
		return appstate.SelectMood{Mood: &m}, nil

	case "selectRegion":
		reg, ok := cat.Region(r.ID, s.Language)
		if !ok {
			return nil, fmt.Errorf("%w: region %q", catalog.ErrUnknownOption, r.ID)
		}
		return appstate.SelectRegion{Region: &reg}, nil

	case "selectTime":
		t, ok := cat.Time(s.Wizard.Kind(), r.ID, s.Language)
		if !ok {
			return nil, fmt.Errorf("%w: time %q", catalog.ErrUnknownOption, r.ID)
		}
		return appstate.SelectTime{Time: &t}, nil

	case "setRecommendations":
		return appstate.SetRecommendations{Items: r.Items}, nil

	case "swipeRight", "swipeLeft":
		if r.Item == nil {
			return nil, fmt.Errorf("%w: %s requires item", ErrInvalidAction, r.Type)
		}
		if r.Type == "swipeRight" {
			return appstate.SwipeRight{Item: *r.Item}, nil
		}
		return appstate.SwipeLeft{Item: *r.Item}, nil

	case "setMatchReason":
		return appstate.SetMatchReason{Reason: r.Reason}, nil

	case "setMovies":
		return appstate.SetMovies{Items: r.Items}, nil

	case "selectMovie":
		return appstate.SelectMovie{Item: r.Item}, nil

	case "setLoading":
		return appstate.SetLoading{Loading: r.Loading}, nil

	case "setFilter":
		key := appstate.FilterKey(r.Key)
		switch key {
		case appstate.FilterMood, appstate.FilterRegion, appstate.FilterTime:
		default:
			return nil, fmt.Errorf("%w: filter %q", ErrInvalidAction, r.Key)
		}
		return appstate.SetFilter{Key: key, Value: r.Value}, nil

	case "setLegalPage":
		p := appstate.LegalPage(r.Page)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: legal page %q", ErrInvalidAction, r.Page)
		}
		return appstate.SetLegalPage{Page: p}, nil

	case "acceptCookies":
		return appstate.AcceptCookies{}, nil

	case "setSelectedArticle":
		return appstate.SetSelectedArticle{Article: r.Article}, nil

	case "resetApp":
		return appstate.Reset{}, nil
	}

	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAction, r.Type)
}
