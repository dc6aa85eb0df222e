package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodk/moodk/internal/catalog"
)

func intPtr(i int) *int { return &i }

func mood(id string, genres ...int) *catalog.Mood {
	return &catalog.Mood{ID: id, GenreIDs: genres}
}

func region(id string) *catalog.Region {
	return &catalog.Region{ID: id}
}

func TestBuildDiscoveryQuery_Baseline(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{MediaKind: catalog.Film})

	assert.Equal(t, DiscoveryQuery{
		"sort_by":          "popularity.desc",
		"vote_count.gte":   "15",
		"vote_average.gte": "5.0",
		"include_adult":    "false",
		"page":             "1",
	}, q)
}

func TestBuildDiscoveryQuery_EpicHollywoodFeature(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Film,
		Mood:      mood("epic", 12, 878, 14),
		Region:    region("hollywood"),
		Time:      &catalog.TimeBudget{ID: "feature", MinMinutes: intPtr(61)},
	})

	assert.Equal(t, "popularity.desc", q["sort_by"])
	assert.Equal(t, "15", q["vote_count.gte"])
	assert.Equal(t, "5.0", q["vote_average.gte"])
	assert.Equal(t, "false", q["include_adult"])
	assert.Equal(t, "en", q["with_original_language"])
	assert.Equal(t, "12|878|14", q["with_genres"])
	assert.Equal(t, "61", q["with_runtime.gte"])
	_, hasMax := q.Get(ParamRuntimeLTE)
	assert.False(t, hasMax)
}

func TestBuildDiscoveryQuery_ArabSeriesNoMood(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Series,
		Region:    region("arab"),
	})

	assert.Equal(t, "0", q["vote_count.gte"])
	assert.Equal(t, "ar", q["with_original_language"])
	assert.False(t, q.HasGenres())
}

func TestBuildDiscoveryQuery_ArabAlwaysZeroVotes(t *testing.T) {
	moods := []*catalog.Mood{nil, mood("any"), mood("fun", 35, 16, 10751)}
	kinds := []catalog.MediaKind{catalog.Film, catalog.Series}
	times := []*catalog.TimeBudget{nil, {MaxMinutes: intPtr(30)}, {MinMinutes: intPtr(45)}}

	for _, k := range kinds {
		for _, m := range moods {
			for _, tb := range times {
				q := BuildDiscoveryQuery(catalog.SelectionCriteria{MediaKind: k, Mood: m, Region: region("arab"), Time: tb})
				assert.Equal(t, "0", q[ParamVoteCountGTE])
			}
		}
	}
}

func TestBuildDiscoveryQuery_Regions(t *testing.T) {
	tests := []struct {
		region     string
		wantLang   string
		wantGenres string
	}{
		{"anime", "ja", "16"},
		{"arab", "ar", ""},
		{"turkish", "tr", ""},
		{"korean", "ko", ""},
		{"bollywood", "hi|te|ta", ""},
		{"hollywood", "en", ""},
		{"unknown", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			q := BuildDiscoveryQuery(catalog.SelectionCriteria{MediaKind: catalog.Film, Region: region(tt.region)})

			lang, ok := q.Get(ParamOriginalLanguage)
			assert.Equal(t, tt.wantLang != "", ok)
			assert.Equal(t, tt.wantLang, lang)

			genres, ok := q.Get(ParamGenres)
			assert.Equal(t, tt.wantGenres != "", ok)
			assert.Equal(t, tt.wantGenres, genres)
		})
	}
}

func TestBuildDiscoveryQuery_MoodOverridesAnimeGenre(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Series,
		Mood:      mood("intense", 28, 53, 27, 80),
		Region:    region("anime"),
	})

	assert.Equal(t, "28|53|27|80", q[ParamGenres])
	assert.Equal(t, "ja", q[ParamOriginalLanguage])
}

func TestBuildDiscoveryQuery_EmptyMoodAddsNoGenres(t *testing.T) {
	for _, r := range []*catalog.Region{nil, region("hollywood"), region("korean")} {
		q := BuildDiscoveryQuery(catalog.SelectionCriteria{MediaKind: catalog.Film, Mood: mood("any"), Region: r})
		assert.False(t, q.HasGenres())
	}

	// The anime genre still applies when the mood carries none.
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{MediaKind: catalog.Film, Mood: mood("any"), Region: region("anime")})
	assert.Equal(t, "16", q[ParamGenres])
}

func TestBuildDiscoveryQuery_TimeBounds(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Series,
		Time:      &catalog.TimeBudget{MinMinutes: intPtr(20), MaxMinutes: intPtr(30)},
	})
	assert.Equal(t, "20", q[ParamRuntimeGTE])
	assert.Equal(t, "30", q[ParamRuntimeLTE])

	q = BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Series,
		Time:      &catalog.TimeBudget{MaxMinutes: intPtr(30)},
	})
	_, ok := q.Get(ParamRuntimeGTE)
	assert.False(t, ok)
	assert.Equal(t, "30", q[ParamRuntimeLTE])
}

func TestBuildDiscoveryQuery_DoesNotMutateCriteria(t *testing.T) {
	m := mood("epic", 12, 878, 14)
	c := catalog.SelectionCriteria{MediaKind: catalog.Film, Mood: m, Region: region("anime")}

	q := BuildDiscoveryQuery(c)
	q[ParamGenres] = "x"

	assert.Equal(t, []int{12, 878, 14}, m.GenreIDs)
	assert.Equal(t, "12|878|14", BuildDiscoveryQuery(c)[ParamGenres])
}

func TestDiscoveryQuery_WithoutGenres(t *testing.T) {
	q := BuildDiscoveryQuery(catalog.SelectionCriteria{
		MediaKind: catalog.Film,
		Mood:      mood("mystery", 9648, 80, 53),
		Region:    region("korean"),
		Time:      &catalog.TimeBudget{MaxMinutes: intPtr(60)},
	})
	require.True(t, q.HasGenres())

	relaxed := q.WithoutGenres()
	assert.False(t, relaxed.HasGenres())
	assert.True(t, q.HasGenres(), "original must be untouched")

	expected := q.Clone()
	delete(expected, ParamGenres)
	assert.Equal(t, expected, relaxed)
}

func TestDiscoveryQuery_ValuesAndString(t *testing.T) {
	q := DiscoveryQuery{"b": "2", "a": "1|3"}
	assert.Equal(t, "a=1|3&b=2", q.String())
	assert.Equal(t, "1|3", q.Values().Get("a"))
}

func TestDiscoverPath(t *testing.T) {
	assert.Equal(t, "/discover/movie", DiscoverPath(catalog.Film))
	assert.Equal(t, "/discover/tv", DiscoverPath(catalog.Series))
}
