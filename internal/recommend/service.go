package recommend

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// Source is the subset of the TMDB client the recommendation flow needs.
type Source interface {
	Discover(ctx context.Context, kind catalog.MediaKind, q tmdb.DiscoveryQuery) ([]tmdb.ResultItem, error)
	Trending(ctx context.Context) ([]tmdb.ResultItem, error)
	GetDetails(ctx context.Context, kind catalog.MediaKind, id int) (*tmdb.TitleDetails, error)
	GetVideos(ctx context.Context, kind catalog.MediaKind, id int) ([]tmdb.Video, error)
	GetCredits(ctx context.Context, kind catalog.MediaKind, id int) ([]tmdb.CastMember, error)
}

// Bundle is the result view's ancillary data for one title.
type Bundle struct {
	Details    *tmdb.TitleDetails `json:"details"`
	TrailerKey *string            `json:"trailerKey"`
	Cast       []tmdb.CastMember  `json:"cast"`
}

// Service resolves wizard selections into recommendations.
// Upstream failures never escape it: every operation degrades to an empty value.
type Service struct {
	source        Source
	trendingLimit int
	castLimit     int
	logger        zerolog.Logger
}

// NewService creates a new recommendation service.
func NewService(source Source, cfg config.DiscoveryConfig, logger zerolog.Logger) *Service {
	trending := cfg.TrendingLimit
	if trending <= 0 {
		trending = 12
	}
	cast := cfg.CastLimit
	if cast <= 0 {
		cast = 8
	}

	return &Service{
		source:        source,
		trendingLimit: trending,
		castLimit:     cast,
		logger:        logger.With().Str("component", "recommend").Logger(),
	}
}

// Resolve runs the discovery query for criteria. When the query comes back
// empty and a mood was selected, the genre restriction is dropped and the
// query is reissued once. Every returned item is stamped with the requested kind.
func (s *Service) Resolve(ctx context.Context, criteria catalog.SelectionCriteria) []tmdb.ResultItem {
	kind := criteria.Kind()
	q := tmdb.BuildDiscoveryQuery(criteria)

	items, err := s.source.Discover(ctx, kind, q)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", q.String()).Msg("Discovery failed")
		return []tmdb.ResultItem{}
	}

	if len(items) == 0 && criteria.HasMood() {
		relaxed := q.WithoutGenres()
		s.logger.Debug().
			Str("mood", criteria.Mood.ID).
			Str("query", relaxed.String()).
			Msg("No results, retrying without genre restriction")

		items, err = s.source.Discover(ctx, kind, relaxed)
		if err != nil {
			s.logger.Warn().Err(err).Str("query", relaxed.String()).Msg("Relaxed discovery failed")
			return []tmdb.ResultItem{}
		}
	}

	return stamp(items, kind)
}

func stamp(items []tmdb.ResultItem, kind catalog.MediaKind) []tmdb.ResultItem {
	out := make([]tmdb.ResultItem, len(items))
	for i, item := range items {
		item.MediaType = kind
		out[i] = item
	}
	return out
}

// Trending returns the first trending titles of the week.
func (s *Service) Trending(ctx context.Context) []tmdb.ResultItem {
	items, err := s.source.Trending(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch trending titles")
		return []tmdb.ResultItem{}
	}
	return head(items, s.trendingLimit)
}

// Details returns the detail payload for a title, or nil.
func (s *Service) Details(ctx context.Context, id int, kind catalog.MediaKind) *tmdb.TitleDetails {
	details, err := s.source.GetDetails(ctx, kind, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("id", id).Str("kind", string(kind)).Msg("Failed to fetch details")
		return nil
	}
	return details
}

// TrailerKey returns the YouTube key of the title's trailer, or nil.
func (s *Service) TrailerKey(ctx context.Context, id int, kind catalog.MediaKind) *string {
	videos, err := s.source.GetVideos(ctx, kind, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("id", id).Str("kind", string(kind)).Msg("Failed to fetch videos")
		return nil
	}

	trailer := tmdb.SelectTrailer(videos)
	if trailer == nil {
		return nil
	}
	key := trailer.Key
	return &key
}

// Cast returns the first billed cast members of a title.
func (s *Service) Cast(ctx context.Context, id int, kind catalog.MediaKind) []tmdb.CastMember {
	cast, err := s.source.GetCredits(ctx, kind, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("id", id).Str("kind", string(kind)).Msg("Failed to fetch cast")
		return []tmdb.CastMember{}
	}
	return head(cast, s.castLimit)
}

// Bundle fetches details, trailer and cast concurrently. Each branch degrades
// on its own; a failing branch does not cancel the others.
func (s *Service) Bundle(ctx context.Context, id int, kind catalog.MediaKind) Bundle {
	var b Bundle
	var wg conc.WaitGroup

	wg.Go(func() { b.Details = s.Details(ctx, id, kind) })
	wg.Go(func() { b.TrailerKey = s.TrailerKey(ctx, id, kind) })
	wg.Go(func() { b.Cast = s.Cast(ctx, id, kind) })
	wg.Wait()

	return b
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
