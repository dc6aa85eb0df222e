package insight

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/moodk/moodk/internal/config"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiGenerator creates a generator. With no API key it returns an
// unconfigured generator that never touches the network.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, logger zerolog.Logger) (*GeminiGenerator, error) {
	g := &GeminiGenerator{
		model:  cfg.Model,
		logger: logger.With().Str("component", "gemini").Logger(),
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.client = client
	return g, nil
}

// IsConfigured reports whether an API key was supplied.
func (g *GeminiGenerator) IsConfigured() bool {
	return g.client != nil
}

// Model returns the model id in use.
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends prompt to the model and returns the response text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	g.logger.Debug().
		Str("model", g.model).
		Dur("elapsed", time.Since(start)).
		Msg("Generated insight")

	return resp.Text(), nil
}
