package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reellog/reellog-server/internal/metadata/tmdb"
)

func (s *Server) registerMetadataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata/search",
		Summary:     "Search catalog",
		Description: "Searches the TMDB catalog by title",
		Tags:        []string{"Metadata"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "popularCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata/popular",
		Summary:     "Popular movies",
		Description: "Returns the TMDB catalog's currently popular movies",
		Tags:        []string{"Metadata"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePopularCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "nowPlayingCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata/now-playing",
		Summary:     "Now playing movies",
		Description: "Returns catalog movies currently in theaters",
		Tags:        []string{"Metadata"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleNowPlayingCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "upcomingCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata/upcoming",
		Summary:     "Upcoming movies",
		Description: "Returns catalog movies with upcoming release dates",
		Tags:        []string{"Metadata"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpcomingCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/metadata/movies/{tmdbId}",
		Summary:     "Get catalog movie",
		Description: "Returns the full TMDB record for one movie",
		Tags:        []string{"Metadata"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCatalogMovie)
}

// === DTOs ===

// SearchCatalogInput contains catalog search parameters.
type SearchCatalogInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"query" doc:"Search term"`
	Page          int    `query:"page" doc:"Result page, starting at 1"`
}

// SearchCatalogOutput wraps a catalog search page for Huma.
type SearchCatalogOutput struct {
	Body tmdb.SearchPage
}

// CatalogListInput contains parameters for the curated catalog lists.
type CatalogListInput struct {
	Authorization string `header:"Authorization"`
	Page          int    `query:"page" doc:"Result page, starting at 1"`
}

// GetCatalogMovieInput contains parameters for a catalog details lookup.
type GetCatalogMovieInput struct {
	Authorization string `header:"Authorization"`
	TmdbID        int64  `path:"tmdbId" doc:"TMDB movie ID"`
}

// CatalogMovieOutput wraps a catalog details record for Huma.
type CatalogMovieOutput struct {
	Body tmdb.MovieDetails
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*SearchCatalogOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	page, err := s.services.Metadata.Search(ctx, input.Query, input.Page)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{Body: *page}, nil
}

func (s *Server) handlePopularCatalog(ctx context.Context, input *CatalogListInput) (*SearchCatalogOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	page, err := s.services.Metadata.Popular(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{Body: *page}, nil
}

func (s *Server) handleNowPlayingCatalog(ctx context.Context, input *CatalogListInput) (*SearchCatalogOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	page, err := s.services.Metadata.NowPlaying(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{Body: *page}, nil
}

func (s *Server) handleUpcomingCatalog(ctx context.Context, input *CatalogListInput) (*SearchCatalogOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	page, err := s.services.Metadata.Upcoming(ctx, input.Page)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{Body: *page}, nil
}

func (s *Server) handleGetCatalogMovie(ctx context.Context, input *GetCatalogMovieInput) (*CatalogMovieOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	details, err := s.services.Metadata.GetMovie(ctx, input.TmdbID)
	if err != nil {
		return nil, err
	}

	return &CatalogMovieOutput{Body: *details}, nil
}
