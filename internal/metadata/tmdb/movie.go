package tmdb

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNotFound means the catalog has no movie with the requested ID.
var ErrNotFound = errors.New("movie not found in catalog")

// GetMovie fetches the full catalog record for one movie by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*MovieDetails, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")

	detailsURL := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, tmdbID, params.Encode())

	c.logger.Debug("fetching TMDB movie", "tmdb_id", tmdbID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("details request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("details failed: status %d", resp.StatusCode)
	}

	var r movieResult
	if err := json.UnmarshalRead(resp.Body, &r); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &MovieDetails{
		TmdbID:           r.ID,
		Title:            r.Title,
		OriginalTitle:    r.OriginalTitle,
		PosterPath:       posterURL(r.PosterPath, "w500"),
		BackdropPath:     posterURL(r.BackdropPath, "original"),
		ReleaseDate:      r.ReleaseDate,
		Overview:         r.Overview,
		Genres:           r.Genres,
		Runtime:          r.Runtime,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
	}, nil
}
