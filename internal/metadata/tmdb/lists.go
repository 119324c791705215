package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

// PopularMovies returns a page of the catalog's currently popular movies.
func (c *Client) PopularMovies(ctx context.Context, page int) (*SearchPage, error) {
	return c.listMovies(ctx, "/movie/popular", page)
}

// NowPlayingMovies returns a page of movies currently in theaters.
func (c *Client) NowPlayingMovies(ctx context.Context, page int) (*SearchPage, error) {
	return c.listMovies(ctx, "/movie/now_playing", page)
}

// UpcomingMovies returns a page of movies with upcoming release dates.
func (c *Client) UpcomingMovies(ctx context.Context, page int) (*SearchPage, error) {
	return c.listMovies(ctx, "/movie/upcoming", page)
}

// listMovies fetches one of TMDB's curated movie lists. The lists share the
// search result wire format, just without a query.
func (c *Client) listMovies(ctx context.Context, path string, page int) (*SearchPage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("language", "en-US")

	listURL := c.baseURL + path + "?" + params.Encode()

	c.logger.Debug("fetching TMDB list",
		"path", path,
		"page", page,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list failed: status %d", resp.StatusCode)
	}

	var listResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &listResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return listResp.toPage(), nil
}
