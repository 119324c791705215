package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

// SearchMovies searches the TMDB catalog for movies matching the query.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchPage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("language", "en-US")
	params.Set("include_adult", "false")

	searchURL := c.baseURL + "/search/movie?" + params.Encode()

	c.logger.Debug("searching TMDB",
		"query", query,
		"page", page,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("TMDB search results",
		"query", query,
		"count", len(searchResp.Results),
	)

	return searchResp.toPage(), nil
}
