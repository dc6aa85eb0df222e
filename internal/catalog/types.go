package catalog

import "errors"

var (
	ErrUnknownOption    = errors.New("unknown selection option")
	ErrInvalidMediaKind = errors.New("invalid media kind")
)

// MediaKind selects the film or series side of the upstream catalogue.
type MediaKind string

const (
	Film   MediaKind = "movie"
	Series MediaKind = "tv"
)

// ParseMediaKind accepts the upstream spellings plus a few common aliases.
func ParseMediaKind(s string) (MediaKind, error) {
	switch s {
	case "movie", "film":
		return Film, nil
	case "tv", "series", "show":
		return Series, nil
	default:
		return "", ErrInvalidMediaKind
	}
}

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	return k == Film || k == Series
}

// Mood is a coarse emotional-tone filter mapped to upstream genre ids.
// An empty GenreIDs set means "no genre restriction".
type Mood struct {
	ID       string `json:"id" yaml:"id"`
	Emoji    string `json:"emoji" yaml:"emoji"`
	Label    string `json:"label" yaml:"-"`
	GenreIDs []int  `json:"genreIds" yaml:"genres"`
}

// Region is a cultural/origin filter.
type Region struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"-"`
	SubLabel    string   `json:"subLabel" yaml:"-"`
	Languages   []string `json:"languages" yaml:"languages"`
	Countries   []string `json:"countries,omitempty" yaml:"countries"`
	ExtraGenres []int    `json:"extraGenres,omitempty" yaml:"extra_genres"`
}

// TimeBudget bounds runtime in minutes. Nil bounds are absent.
type TimeBudget struct {
	ID         string `json:"id" yaml:"id"`
	Label      string `json:"label" yaml:"-"`
	SubLabel   string `json:"subLabel" yaml:"-"`
	MinMinutes *int   `json:"minMinutes,omitempty" yaml:"min_minutes"`
	MaxMinutes *int   `json:"maxMinutes,omitempty" yaml:"max_minutes"`
}

// SelectionCriteria is the finalized wizard selection. Mood, Region and Time
// are optional; use the Has* helpers rather than nil checks at call sites.
type SelectionCriteria struct {
	MediaKind MediaKind   `json:"mediaType"`
	Mood      *Mood       `json:"mood,omitempty"`
	Region    *Region     `json:"region,omitempty"`
	Time      *TimeBudget `json:"time,omitempty"`
}

// HasMood reports whether a mood was selected.
func (c SelectionCriteria) HasMood() bool { return c.Mood != nil }

// HasRegion reports whether a region was selected.
func (c SelectionCriteria) HasRegion() bool { return c.Region != nil }

// HasTime reports whether a time budget was selected.
func (c SelectionCriteria) HasTime() bool { return c.Time != nil }

// Kind returns the media kind, defaulting to Film when unset.
func (c SelectionCriteria) Kind() MediaKind {
	if c.MediaKind == "" {
		return Film
	}
	return c.MediaKind
}

// MoodLabel returns the mood label or "" when absent.
func (c SelectionCriteria) MoodLabel() string {
	if c.Mood == nil {
		return ""
	}
	return c.Mood.Label
}

// RegionLabel returns the region label or "" when absent.
func (c SelectionCriteria) RegionLabel() string {
	if c.Region == nil {
		return ""
	}
	return c.Region.Label
}

// TimeLabel returns the time budget label or "" when absent.
func (c SelectionCriteria) TimeLabel() string {
	if c.Time == nil {
		return ""
	}
	return c.Time.Label
}

// Clone returns a deep copy of m. A nil receiver yields nil.
func (m *Mood) Clone() *Mood {
	if m == nil {
		return nil
	}
	c := *m
	c.GenreIDs = append([]int{}, m.GenreIDs...)
	return &c
}

// Clone returns a deep copy of r. A nil receiver yields nil.
func (r *Region) Clone() *Region {
	if r == nil {
		return nil
	}
	c := *r
	c.Languages = append([]string(nil), r.Languages...)
	c.Countries = append([]string(nil), r.Countries...)
	c.ExtraGenres = append([]int(nil), r.ExtraGenres...)
	return &c
}

// Clone returns a deep copy of t. A nil receiver yields nil.
func (t *TimeBudget) Clone() *TimeBudget {
	if t == nil {
		return nil
	}
	c := *t
	if t.MinMinutes != nil {
		v := *t.MinMinutes
		c.MinMinutes = &v
	}
	if t.MaxMinutes != nil {
		v := *t.MaxMinutes
		c.MaxMinutes = &v
	}
	return &c
}
