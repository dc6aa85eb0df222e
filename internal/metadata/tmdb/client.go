package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/config"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrNotFound      = errors.New("TMDB resource not found")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
	ErrUnavailable   = errors.New("TMDB temporarily unavailable")
)

// errCallerDone marks a request abandoned by its caller. The breaker treats it
// as neutral since upstream never got to answer.
var errCallerDone = errors.New("caller context done")

const trendingPath = "/trending/all/week"

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
	breaker    *gobreaker.CircuitBreaker[any]
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
	c.breaker = c.newBreaker()
	return c
}

func (c *Client) newBreaker() *gobreaker.CircuitBreaker[any] {
	threshold := c.config.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}
	cooldown := c.config.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30
	}

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: time.Duration(cooldown) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A missing title is an answer, not an upstream fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, errCallerDone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("TMDB circuit breaker state changed")
		},
	})
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}

	return c.get(ctx, "/configuration", nil, &result)
}

// Discover runs a discover query against the endpoint family for kind.
// Results are returned as listed upstream; MediaType is not stamped here.
func (c *Client) Discover(ctx context.Context, kind catalog.MediaKind, q DiscoveryQuery) ([]ResultItem, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var response DiscoverResponse
	if err := c.get(ctx, DiscoverPath(kind), q.Values(), &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("kind", string(kind)).
		Str("query", q.String()).
		Int("results", len(response.Results)).
		Msg("Discover completed")

	if response.Results == nil {
		return []ResultItem{}, nil
	}
	return response.Results, nil
}

// Trending returns this week's trending films and series.
func (c *Client) Trending(ctx context.Context) ([]ResultItem, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var response DiscoverResponse
	if err := c.get(ctx, trendingPath, nil, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("results", len(response.Results)).Msg("Got trending titles")

	if response.Results == nil {
		return []ResultItem{}, nil
	}
	return response.Results, nil
}

// GetDetails gets the detail payload of a film or series.
func (c *Client) GetDetails(ctx context.Context, kind catalog.MediaKind, id int) (*TitleDetails, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var details TitleDetails
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", kind, id), nil, &details); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("id", id).
		Str("kind", string(kind)).
		Msg("Got title details")

	return &details, nil
}

// GetVideos lists the videos attached to a film or series.
func (c *Client) GetVideos(ctx context.Context, kind catalog.MediaKind, id int) ([]Video, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var response VideosResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), nil, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}

// GetCredits lists the billed cast of a film or series.
func (c *Client) GetCredits(ctx context.Context, kind catalog.MediaKind, id int) ([]CastMember, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	var response CreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/credits", kind, id), nil, &response); err != nil {
		return nil, err
	}

	return response.Cast, nil
}

// GetImageURL returns a full image URL for a given path and size.
// Size options: "w92", "w154", "w185", "w342", "w500", "w780", "original".
// An empty path yields the configured placeholder image.
func (c *Client) GetImageURL(path string, size string) string {
	if path == "" {
		return c.config.PlaceholderImage
	}
	return fmt.Sprintf("%s/%s%s", c.config.ImageBaseURL, size, path)
}

// get issues a GET through the circuit breaker.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.breaker.Execute(func() (any, error) {
		err := c.doRequest(ctx, path, params, result)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errCallerDone, ctx.Err())
		}
		return nil, err
	})
	if errors.Is(err, errCallerDone) {
		return ctx.Err()
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// doRequest performs an HTTP GET request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.config.APIKey)

	endpoint := c.config.BaseURL + path
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("path", path).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: invalid API key", ErrAPIError)
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
