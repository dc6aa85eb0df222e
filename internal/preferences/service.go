// Package preferences persists the two client flags: cookie consent and
// watchlist membership.
package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moodk/moodk/internal/database"
)

const (
	boolTrue = "true"

	// KeyCookieConsent is the settings key of the consent flag.
	KeyCookieConsent = "cookie_consent"
)

// ErrInvalidID is returned for non-positive title ids.
var ErrInvalidID = errors.New("invalid title id")

// WatchlistItem is one saved title.
type WatchlistItem struct {
	ID      int64     `json:"id"`
	AddedAt time.Time `json:"addedAt"`
}

type Service struct {
	db      *sql.DB
	queries *database.Queries
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:      db,
		queries: database.NewQueries(db),
		logger:  logger.With().Str("component", "preferences").Logger(),
		now:     time.Now,
	}
}

// CookieAccepted reports whether consent was given. Read errors count as
// not accepted.
func (s *Service) CookieAccepted(ctx context.Context) bool {
	val, err := s.getString(ctx, KeyCookieConsent)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().Err(err).Msg("Failed to read cookie consent")
		}
		return false
	}
	return val == boolTrue
}

// AcceptCookies records consent.
func (s *Service) AcceptCookies(ctx context.Context) error {
	return s.setString(ctx, KeyCookieConsent, boolTrue)
}

// InWatchlist reports whether id is saved.
func (s *Service) InWatchlist(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidID
	}

	_, err := s.queries.GetWatchlistEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ToggleWatchlist flips membership of id and returns the new membership.
func (s *Service) ToggleWatchlist(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	q := s.queries.WithTx(tx)

	removed, err := q.DeleteWatchlistEntry(ctx, id)
	if err != nil {
		return false, err
	}

	saved := removed == 0
	if saved {
		if err := q.AddWatchlistEntry(ctx, id, s.now().UTC()); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Debug().Int64("id", id).Bool("saved", saved).Msg("Watchlist toggled")
	return saved, nil
}

// Watchlist lists saved titles, most recent first.
func (s *Service) Watchlist(ctx context.Context) ([]WatchlistItem, error) {
	rows, err := s.queries.ListWatchlist(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]WatchlistItem, len(rows))
	for i, r := range rows {
		items[i] = WatchlistItem{ID: r.TmdbID, AddedAt: r.AddedAt}
	}
	return items, nil
}

func (s *Service) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.queries.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *Service) setString(ctx context.Context, key, value string) error {
	return s.queries.SetSetting(ctx, key, value)
}
