package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodk/moodk/internal/appstate"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

type fakeRecommender struct {
	mu    sync.Mutex
	calls []catalog.SelectionCriteria
	items []tmdb.ResultItem
	// release, when set, holds Resolve until it is closed.
	release chan struct{}
}

func (f *fakeRecommender) Resolve(_ context.Context, c catalog.SelectionCriteria) []tmdb.ResultItem {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	items, release := f.items, f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return items
}

func (f *fakeRecommender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRecommender) last() catalog.SelectionCriteria {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeReasoner struct{}

func (fakeReasoner) Reason(_ context.Context, item tmdb.ResultItem, _ catalog.SelectionCriteria, lang locale.Language) string {
	return lang.String() + ":" + item.DisplayTitle()
}

type fakeFlags struct {
	mu       sync.Mutex
	accepted bool
	err      error
}

func (f *fakeFlags) CookieAccepted(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accepted
}

func (f *fakeFlags) AcceptCookies(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.accepted = true
	return nil
}

func newTestManager(t *testing.T, rec *fakeRecommender, flags *fakeFlags) *Manager {
	t.Helper()
	m := NewManager(
		catalog.Default(),
		rec,
		fakeReasoner{},
		flags,
		config.DiscoveryConfig{DebounceMillis: 50},
		config.SessionsConfig{IdleMinutes: 30},
		zerolog.Nop(),
	)
	t.Cleanup(m.Close)
	return m
}

func dispatch(t *testing.T, m *Manager, id string, req ActionRequest) appstate.State {
	t.Helper()
	s, err := m.Dispatch(context.Background(), id, req)
	require.NoError(t, err, req.Type)
	return s
}

func TestCreate_ReadsConsent(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{accepted: true})

	id, state := m.Create(context.Background(), locale.Arabic)

	assert.NotEmpty(t, id)
	assert.Equal(t, appstate.ViewWizard, state.View)
	assert.Equal(t, locale.Arabic, state.Language)
	assert.True(t, state.CookieAccepted)
	assert.Equal(t, 1, m.Len())
}

func TestDispatch_UnknownSession(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{})

	_, err := m.Dispatch(context.Background(), "missing", ActionRequest{Type: "resetApp"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.State("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDispatch_InvalidActions(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)
	ctx := context.Background()

	tests := []struct {
		req  ActionRequest
		want error
	}{
		{ActionRequest{Type: "fly"}, ErrInvalidAction},
		{ActionRequest{Type: "setView", View: "HOME"}, ErrInvalidAction},
		{ActionRequest{Type: "selectMediaKind", MediaType: "book"}, ErrInvalidAction},
		{ActionRequest{Type: "selectMood", ID: "grumpy"}, catalog.ErrUnknownOption},
		{ActionRequest{Type: "selectRegion", ID: "mars"}, catalog.ErrUnknownOption},
		{ActionRequest{Type: "selectTime", ID: "quick"}, catalog.ErrUnknownOption},
		{ActionRequest{Type: "swipeRight"}, ErrInvalidAction},
		{ActionRequest{Type: "setFilter", Key: "genre", Value: "x"}, ErrInvalidAction},
		{ActionRequest{Type: "setLegalPage", Page: "cookies"}, ErrInvalidAction},
	}

	for _, tt := range tests {
		_, err := m.Dispatch(ctx, id, tt.req)
		assert.ErrorIs(t, err, tt.want, tt.req.Type)
	}
}

func TestWizardFlow_FetchesAfterTimeSelection(t *testing.T) {
	rec := &fakeRecommender{items: []tmdb.ResultItem{{ID: 1, Title: "Dune", MediaType: catalog.Film}}}
	m := newTestManager(t, rec, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	dispatch(t, m, id, ActionRequest{Type: "selectMediaKind", MediaType: "movie"})
	dispatch(t, m, id, ActionRequest{Type: "selectMood", ID: "epic"})
	dispatch(t, m, id, ActionRequest{Type: "selectRegion", ID: "hollywood"})
	state := dispatch(t, m, id, ActionRequest{Type: "selectTime", ID: "feature"})

	require.NotNil(t, state.Wizard.Time)
	assert.Equal(t, "feature", state.Wizard.Time.ID)

	require.Eventually(t, func() bool {
		s, _ := m.State(id)
		return s.View == appstate.ViewSwiper && !s.Loading
	}, 2*time.Second, 5*time.Millisecond)

	s, err := m.State(id)
	require.NoError(t, err)
	require.Len(t, s.Recommendations, 1)
	assert.Equal(t, "Dune", s.Recommendations[0].Title)

	assert.Equal(t, 1, rec.callCount())
	got := rec.last()
	assert.Equal(t, catalog.Film, got.MediaKind)
	assert.Equal(t, "epic", got.Mood.ID)
	assert.Equal(t, "hollywood", got.Region.ID)
	require.NotNil(t, got.Time.MinMinutes)
	assert.Equal(t, 61, *got.Time.MinMinutes)
}

func TestWizardFlow_RapidTimeChangesFetchOnce(t *testing.T) {
	rec := &fakeRecommender{}
	m := newTestManager(t, rec, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	dispatch(t, m, id, ActionRequest{Type: "selectMediaKind", MediaType: "tv"})
	dispatch(t, m, id, ActionRequest{Type: "selectTime", ID: "quick"})
	dispatch(t, m, id, ActionRequest{Type: "selectTime", ID: "prestige"})

	require.Eventually(t, func() bool { return rec.callCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 1, rec.callCount())
	assert.Equal(t, "prestige", rec.last().Time.ID)
}

func TestReset_DropsInFlightWizardFetch(t *testing.T) {
	rec := &fakeRecommender{
		items:   []tmdb.ResultItem{{ID: 1, Title: "Dune"}},
		release: make(chan struct{}),
	}
	m := newTestManager(t, rec, &fakeFlags{})
	release := sync.OnceFunc(func() { close(rec.release) })
	t.Cleanup(release)

	id, _ := m.Create(context.Background(), locale.English)
	dispatch(t, m, id, ActionRequest{Type: "selectMediaKind", MediaType: "movie"})
	dispatch(t, m, id, ActionRequest{Type: "selectTime", ID: "feature"})

	require.Eventually(t, func() bool { return rec.callCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	state := dispatch(t, m, id, ActionRequest{Type: "resetApp"})
	assert.Equal(t, appstate.ViewWizard, state.View)

	release()
	time.Sleep(150 * time.Millisecond)

	s, err := m.State(id)
	require.NoError(t, err)
	assert.Equal(t, appstate.ViewWizard, s.View)
	assert.Empty(t, s.Recommendations)
	assert.False(t, s.Loading)
}

func TestReset_LaterFetchStillApplies(t *testing.T) {
	rec := &fakeRecommender{items: []tmdb.ResultItem{{ID: 2, Title: "Arrival"}}}
	m := newTestManager(t, rec, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	dispatch(t, m, id, ActionRequest{Type: "resetApp"})
	dispatch(t, m, id, ActionRequest{Type: "selectMediaKind", MediaType: "movie"})
	dispatch(t, m, id, ActionRequest{Type: "selectTime", ID: "short"})

	require.Eventually(t, func() bool {
		s, _ := m.State(id)
		return s.View == appstate.ViewSwiper && len(s.Recommendations) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDashboardFilters(t *testing.T) {
	rec := &fakeRecommender{items: []tmdb.ResultItem{{ID: 9, Title: "Parasite"}}}
	m := newTestManager(t, rec, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	dispatch(t, m, id, ActionRequest{Type: "setFilter", Key: "moodId", Value: "mystery"})
	dispatch(t, m, id, ActionRequest{Type: "setFilter", Key: "regionId", Value: "korean"})

	require.Eventually(t, func() bool {
		s, _ := m.State(id)
		return len(s.Movies) == 1 && !s.Loading
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, rec.callCount())
	got := rec.last()
	assert.Equal(t, "mystery", got.Mood.ID)
	assert.Equal(t, "korean", got.Region.ID)
}

func TestDashboardFilters_ClearedSkipsFetch(t *testing.T) {
	rec := &fakeRecommender{}
	m := newTestManager(t, rec, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	dispatch(t, m, id, ActionRequest{Type: "setFilter", Key: "moodId", Value: ""})
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 0, rec.callCount())
}

func TestSwipeRight_GeneratesReason(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.Arabic)

	item := tmdb.ResultItem{ID: 4, Title: "Arrival"}
	dispatch(t, m, id, ActionRequest{Type: "setRecommendations", Items: []tmdb.ResultItem{item}})
	state := dispatch(t, m, id, ActionRequest{Type: "swipeRight", Item: &item})

	assert.Equal(t, appstate.ViewResult, state.View)
	require.NotNil(t, state.CurrentMatch)

	require.Eventually(t, func() bool {
		s, _ := m.State(id)
		return s.MatchReason != nil
	}, 2*time.Second, 5*time.Millisecond)

	s, _ := m.State(id)
	assert.Equal(t, "ar:Arrival", *s.MatchReason)
}

func TestAcceptCookies_Persists(t *testing.T) {
	flags := &fakeFlags{}
	m := newTestManager(t, &fakeRecommender{}, flags)
	id, _ := m.Create(context.Background(), locale.English)

	state := dispatch(t, m, id, ActionRequest{Type: "acceptCookies"})
	assert.True(t, state.CookieAccepted)
	assert.True(t, flags.CookieAccepted(context.Background()))

	// New sessions start with consent given.
	_, fresh := m.Create(context.Background(), locale.English)
	assert.True(t, fresh.CookieAccepted)
}

func TestAcceptCookies_StoreFailure(t *testing.T) {
	flags := &fakeFlags{err: errors.New("disk full")}
	m := newTestManager(t, &fakeRecommender{}, flags)
	id, _ := m.Create(context.Background(), locale.English)

	_, err := m.Dispatch(context.Background(), id, ActionRequest{Type: "acceptCookies"})
	require.Error(t, err)

	s, _ := m.State(id)
	assert.False(t, s.CookieAccepted)
}

func TestPrune(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{})

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale, _ := m.Create(context.Background(), locale.English)
	now = now.Add(20 * time.Minute)
	fresh, _ := m.Create(context.Background(), locale.English)

	now = now.Add(15 * time.Minute)
	require.NoError(t, m.Prune(context.Background()))

	_, err := m.State(stale)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.State(fresh)
	assert.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestRemove(t *testing.T) {
	m := newTestManager(t, &fakeRecommender{}, &fakeFlags{})
	id, _ := m.Create(context.Background(), locale.English)

	assert.True(t, m.Remove(id))
	assert.False(t, m.Remove(id))
	assert.Equal(t, 0, m.Len())
}
