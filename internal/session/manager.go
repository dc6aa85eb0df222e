// Package session keeps server-side application state stores, one per
// client, and runs the side effects that follow certain actions.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/moodk/moodk/internal/appstate"
	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

var ErrNotFound = errors.New("session not found")

// Recommender resolves wizard criteria into titles.
type Recommender interface {
	Resolve(ctx context.Context, criteria catalog.SelectionCriteria) []tmdb.ResultItem
}

// Reasoner writes the match blurb for a title.
type Reasoner interface {
	Reason(ctx context.Context, item tmdb.ResultItem, criteria catalog.SelectionCriteria, lang locale.Language) string
}

// Flags persists cookie consent.
type Flags interface {
	CookieAccepted(ctx context.Context) bool
	AcceptCookies(ctx context.Context) error
}

type session struct {
	id     string
	store  *appstate.Store
	wizard *appstate.Debouncer
	board  *appstate.Debouncer
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	lastSeen time.Time

	// gen counts resets; fetch results are committed only if it is unchanged.
	genMu sync.Mutex
	gen   uint64
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *session) generation() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gen
}

// reset dispatches Reset and invalidates every fetch started before it.
func (s *session) reset() appstate.State {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.gen++
	return s.store.Dispatch(appstate.Reset{})
}

// commit dispatches actions unless a reset happened since gen was read.
func (s *session) commit(gen uint64, actions ...appstate.Action) bool {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gen != gen {
		return false
	}
	for _, a := range actions {
		s.store.Dispatch(a)
	}
	return true
}

func (s *session) stop() {
	s.wizard.Stop()
	s.board.Stop()
	s.cancel()
}

// Manager owns all live sessions.
type Manager struct {
	catalog     *catalog.Catalog
	recommender Recommender
	reasoner    Reasoner
	flags       Flags
	debounce    time.Duration
	idle        time.Duration
	logger      zerolog.Logger
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
	wg       conc.WaitGroup
}

// NewManager creates a session manager.
func NewManager(
	cat *catalog.Catalog,
	recommender Recommender,
	reasoner Reasoner,
	flags Flags,
	discovery config.DiscoveryConfig,
	cfg config.SessionsConfig,
	logger zerolog.Logger,
) *Manager {
	idle := time.Duration(cfg.IdleMinutes) * time.Minute
	if idle <= 0 {
		idle = time.Hour
	}

	return &Manager{
		catalog:     cat,
		recommender: recommender,
		reasoner:    reasoner,
		flags:       flags,
		debounce:    time.Duration(discovery.DebounceMillis) * time.Millisecond,
		idle:        idle,
		logger:      logger.With().Str("component", "session").Logger(),
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Create starts a session in lang and returns its id and initial state.
func (m *Manager) Create(ctx context.Context, lang locale.Language) (string, appstate.State) {
	accepted := false
	if m.flags != nil {
		accepted = m.flags.CookieAccepted(ctx)
	}

	sctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:       uuid.NewString(),
		store:    appstate.NewStore(appstate.Initial(lang, accepted)),
		wizard:   appstate.NewDebouncer(m.debounce),
		board:    appstate.NewDebouncer(m.debounce),
		ctx:      sctx,
		cancel:   cancel,
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Debug().Str("session", s.id).Str("lang", lang.String()).Msg("Session created")
	return s.id, s.store.State()
}

// State returns the current state of session id.
func (m *Manager) State(id string) (appstate.State, error) {
	s, err := m.get(id)
	if err != nil {
		return appstate.State{}, err
	}
	return s.store.State(), nil
}

// Dispatch applies req to session id and starts any follow-up work.
func (m *Manager) Dispatch(ctx context.Context, id string, req ActionRequest) (appstate.State, error) {
	s, err := m.get(id)
	if err != nil {
		return appstate.State{}, err
	}

	action, err := req.toAction(m.catalog, s.store.State())
	if err != nil {
		return appstate.State{}, err
	}

	if _, ok := action.(appstate.AcceptCookies); ok && m.flags != nil {
		if err := m.flags.AcceptCookies(ctx); err != nil {
			return appstate.State{}, err
		}
	}

	var state appstate.State
	if _, ok := action.(appstate.Reset); ok {
		state = s.reset()
	} else {
		state = s.store.Dispatch(action)
	}

	switch a := action.(type) {
	case appstate.SelectTime:
		gen := s.generation()
		s.wizard.Trigger(func() { m.run(s, func(s *session) { m.fetchWizard(s, gen) }) })
	case appstate.SetFilter:
		if state.Filters.Any() {
			gen := s.generation()
			s.board.Trigger(func() { m.run(s, func(s *session) { m.fetchDashboard(s, gen) }) })
		}
	case appstate.SwipeRight:
		item := a.Item
		s.store.Dispatch(appstate.SetMatchReason{})
		m.run(s, func(s *session) { m.explain(s, item) })
	case appstate.Reset:
		s.wizard.Stop()
		s.board.Stop()
	}

	return s.store.State(), nil
}

// Remove ends session id.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.stop()
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune removes sessions idle for longer than the configured window.
func (m *Manager) Prune(ctx context.Context) error {
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	var stale []*session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.stop()
	}

	if len(stale) > 0 {
		m.logger.Info().Int("removed", len(stale)).Int("remaining", m.Len()).Msg("Pruned idle sessions")
	}
	return ctx.Err()
}

// Close stops every session and waits for in-flight work.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range all {
		s.stop()
	}
	m.wg.Wait()
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.now())
	return s, nil
}

func (m *Manager) run(s *session, fn func(*session)) {
	m.wg.Go(func() {
		if s.ctx.Err() != nil {
			return
		}
		fn(s)
	})
}

func (m *Manager) fetchWizard(s *session, gen uint64) {
	criteria := s.store.State().Wizard

	if !s.commit(gen, appstate.SetLoading{Loading: true}) {
		return
	}
	items := m.recommender.Resolve(s.ctx, criteria)
	if s.ctx.Err() != nil {
		return
	}
	if !s.commit(gen,
		appstate.SetRecommendations{Items: items},
		appstate.SetLoading{Loading: false},
		appstate.SetView{View: appstate.ViewSwiper},
	) {
		m.logger.Debug().Str("session", s.id).Msg("Dropping wizard results after reset")
		return
	}

	m.logger.Debug().Str("session", s.id).Int("results", len(items)).Msg("Wizard recommendations ready")
}

func (m *Manager) fetchDashboard(s *session, gen uint64) {
	state := s.store.State()
	if !state.Filters.Any() {
		return
	}

	criteria, err := m.catalog.Criteria(state.Wizard.Kind(), state.Filters.MoodID, state.Filters.RegionID, state.Filters.TimeID, state.Language)
	if err != nil {
		m.logger.Warn().Err(err).Str("session", s.id).Msg("Ignoring dashboard filters")
		return
	}

	if !s.commit(gen, appstate.SetLoading{Loading: true}) {
		return
	}
	items := m.recommender.Resolve(s.ctx, criteria)
	if s.ctx.Err() != nil {
		return
	}
	if !s.commit(gen, appstate.SetMovies{Items: items}, appstate.SetLoading{Loading: false}) {
		m.logger.Debug().Str("session", s.id).Msg("Dropping dashboard results after reset")
	}
}

func (m *Manager) explain(s *session, item tmdb.ResultItem) {
	if m.reasoner == nil {
		return
	}

	state := s.store.State()
	reason := m.reasoner.Reason(s.ctx, item, state.Wizard, state.Language)
	if s.ctx.Err() != nil {
		return
	}

	// The user may have moved on to another match meanwhile.
	if cur := s.store.State().CurrentMatch; cur == nil || cur.ID != item.ID {
		return
	}
	s.store.Dispatch(appstate.SetMatchReason{Reason: &reason})
}
