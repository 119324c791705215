// Package tmdb provides a read-only client for The Movie Database API.
package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/"
)

// Client provides access to the TMDB API for movie search and details.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new TMDB client.
// Rate limited well under TMDB's documented ceiling of ~50 requests/second.
func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// 4 requests per second steady state, burst of 10.
		rateLimiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 10),
		logger:      logger,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// posterURL expands a TMDB poster path into a full image URL at the given
// width preset ("w200", "w500", "original").
func posterURL(path, size string) *string {
	if path == "" {
		return nil
	}
	u := imageBaseURL + size + path
	return &u
}
