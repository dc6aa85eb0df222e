// Package insight produces the short "why this matches you" blurb shown next
// to a matched title.
package insight

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

// ErrNotConfigured is returned by generators that have no credentials.
var ErrNotConfigured = errors.New("text generation is not configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	IsConfigured() bool
}

// Service renders match reasons, falling back to fixed localized strings.
type Service struct {
	generator Generator
	logger    zerolog.Logger
}

// NewService creates a new insight service.
func NewService(generator Generator, logger zerolog.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger.With().Str("component", "insight").Logger(),
	}
}

// Reason returns the match blurb for item. It never fails: an empty
// generation yields the "empty" fallback and any error the "error" fallback.
func (s *Service) Reason(ctx context.Context, item tmdb.ResultItem, criteria catalog.SelectionCriteria, lang locale.Language) string {
	if lang != locale.Arabic {
		lang = locale.English
	}

	if s.generator == nil || !s.generator.IsConfigured() {
		s.logger.Debug().Msg("Text generation not configured, using fallback")
		return locale.ErrorReason(lang)
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(item, criteria, lang))
	if err != nil {
		s.logger.Warn().Err(err).Int("id", item.ID).Str("lang", lang.String()).Msg("Insight generation failed")
		return locale.ErrorReason(lang)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return locale.EmptyReason(lang)
	}
	return text
}
