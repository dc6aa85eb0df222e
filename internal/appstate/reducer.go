package appstate

import (
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// Reduce applies a to s and returns the next state. s is not modified and the
// result shares no slices or pointers with a.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetView:
		s.View = a.View
	case SetLanguage:
		s.Language = a.Language
	case SelectMediaKind:
		s.Wizard.MediaKind = a.Kind
	case SelectMood:
		s.Wizard.Mood = a.Mood.Clone()
	case SelectRegion:
		s.Wizard.Region = a.Region.Clone()
	case SelectTime:
		s.Wizard.Time = a.Time.Clone()
	case SetRecommendations:
		s.Recommendations = cloneItems(a.Items)
	case SwipeRight:
		s.CurrentMatch = cloneItem(&a.Item)
		s.View = ViewResult
	case SwipeLeft:
		kept := make([]tmdb.ResultItem, 0, len(s.Recommendations))
		for _, r := range s.Recommendations {
			if r.ID != a.Item.ID {
				kept = append(kept, r)
			}
		}
		s.Recommendations = kept
	case SetMatchReason:
		s.MatchReason = cloneString(a.Reason)
	case SetMovies:
		s.Movies = cloneItems(a.Items)
	case SelectMovie:
		s.SelectedMovie = cloneItem(a.Item)
	case SetLoading:
		s.Loading = a.Loading
	case SetFilter:
		switch a.Key {
		case FilterMood:
			s.Filters.MoodID = a.Value
		case FilterRegion:
			s.Filters.RegionID = a.Value
		case FilterTime:
			s.Filters.TimeID = a.Value
		}
	case SetLegalPage:
		s.LegalPage = a.Page
	case AcceptCookies:
		s.CookieAccepted = true
	case SetSelectedArticle:
		if a.Article == nil {
			s.SelectedArticle = nil
		} else {
			article := *a.Article
			s.SelectedArticle = &article
		}
	case Reset:
		s = Initial(s.Language, s.CookieAccepted)
	}
	return s
}

func cloneItems(items []tmdb.ResultItem) []tmdb.ResultItem {
	out := make([]tmdb.ResultItem, len(items))
	for i, item := range items {
		item.GenreIDs = append([]int(nil), item.GenreIDs...)
		out[i] = item
	}
	return out
}

func cloneItem(item *tmdb.ResultItem) *tmdb.ResultItem {
	if item == nil {
		return nil
	}
	c := *item
	c.GenreIDs = append([]int(nil), item.GenreIDs...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
