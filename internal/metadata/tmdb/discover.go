package tmdb

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/moodk/moodk/internal/catalog"
)

// Discovery query parameter names.
const (
	ParamSortBy           = "sort_by"
	ParamVoteCountGTE     = "vote_count.gte"
	ParamVoteAverageGTE   = "vote_average.gte"
	ParamIncludeAdult     = "include_adult"
	ParamPage             = "page"
	ParamOriginalLanguage = "with_original_language"
	ParamGenres           = "with_genres"
	ParamRuntimeGTE       = "with_runtime.gte"
	ParamRuntimeLTE       = "with_runtime.lte"
)

const (
	defaultSortBy         = "popularity.desc"
	defaultMinVoteCount   = 15
	defaultMinVoteAverage = "5.0"
	animationGenreID      = 16
)

// DiscoveryQuery is the parameter set for a /discover request. Each key holds
// a single value; multi-valued constraints are already joined with "|".
type DiscoveryQuery map[string]string

// BuildDiscoveryQuery maps a wizard selection onto discover parameters.
//
// The mood genre constraint is applied after the region rule, so a mood with
// genres replaces the anime region's animation constraint.
func BuildDiscoveryQuery(c catalog.SelectionCriteria) DiscoveryQuery {
	q := DiscoveryQuery{
		ParamSortBy:         defaultSortBy,
		ParamVoteCountGTE:   strconv.Itoa(defaultMinVoteCount),
		ParamVoteAverageGTE: defaultMinVoteAverage,
		ParamIncludeAdult:   "false",
		ParamPage:           "1",
	}

	if c.HasRegion() {
		switch c.Region.ID {
		case "anime":
			q[ParamOriginalLanguage] = "ja"
			q[ParamGenres] = strconv.Itoa(animationGenreID)
		case "arab":
			q[ParamOriginalLanguage] = "ar"
			// sparse catalogue
			q[ParamVoteCountGTE] = "0"
		case "turkish":
			q[ParamOriginalLanguage] = "tr"
		case "korean":
			q[ParamOriginalLanguage] = "ko"
		case "bollywood":
			q[ParamOriginalLanguage] = "hi|te|ta"
		case "hollywood":
			q[ParamOriginalLanguage] = "en"
		}
	}

	if c.HasMood() && len(c.Mood.GenreIDs) > 0 {
		q[ParamGenres] = joinInts(c.Mood.GenreIDs, "|")
	}

	if c.HasTime() {
		if c.Time.MinMinutes != nil && *c.Time.MinMinutes > 0 {
			q[ParamRuntimeGTE] = strconv.Itoa(*c.Time.MinMinutes)
		}
		if c.Time.MaxMinutes != nil && *c.Time.MaxMinutes > 0 {
			q[ParamRuntimeLTE] = strconv.Itoa(*c.Time.MaxMinutes)
		}
	}

	return q
}

// DiscoverPath returns the discover endpoint path for kind.
func DiscoverPath(kind catalog.MediaKind) string {
	if kind == catalog.Series {
		return "/discover/tv"
	}
	return "/discover/movie"
}

// Get returns the value for key and whether it is set.
func (q DiscoveryQuery) Get(key string) (string, bool) {
	v, ok := q[key]
	return v, ok
}

// HasGenres reports whether a genre constraint is present.
func (q DiscoveryQuery) HasGenres() bool {
	_, ok := q[ParamGenres]
	return ok
}

// WithoutGenres returns a copy of q with the genre constraint removed.
func (q DiscoveryQuery) WithoutGenres() DiscoveryQuery {
	out := q.Clone()
	delete(out, ParamGenres)
	return out
}

// Clone returns an independent copy of q.
func (q DiscoveryQuery) Clone() DiscoveryQuery {
	out := make(DiscoveryQuery, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Values converts q to url.Values.
func (q DiscoveryQuery) Values() url.Values {
	v := make(url.Values, len(q))
	for k, val := range q {
		v.Set(k, val)
	}
	return v
}

// String renders q as a stable, sorted query string for logging.
func (q DiscoveryQuery) String() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(q[k])
	}
	return b.String()
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
