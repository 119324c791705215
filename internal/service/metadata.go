package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/reellog/reellog-server/internal/errors"
	"github.com/reellog/reellog-server/internal/metadata/tmdb"
)

// MetadataService proxies read-only catalog lookups to TMDB.
type MetadataService struct {
	client *tmdb.Client
	logger *slog.Logger
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(client *tmdb.Client, logger *slog.Logger) *MetadataService {
	return &MetadataService{client: client, logger: logger}
}

// Search looks up catalog movies by title.
func (s *MetadataService) Search(ctx context.Context, query string, page int) (*tmdb.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query is required")
	}

	result, err := s.client.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return result, nil
}

// Popular returns a page of currently popular catalog movies.
func (s *MetadataService) Popular(ctx context.Context, page int) (*tmdb.SearchPage, error) {
	result, err := s.client.PopularMovies(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}
	return result, nil
}

// NowPlaying returns a page of catalog movies currently in theaters.
func (s *MetadataService) NowPlaying(ctx context.Context, page int) (*tmdb.SearchPage, error) {
	result, err := s.client.NowPlayingMovies(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("now playing movies: %w", err)
	}
	return result, nil
}

// Upcoming returns a page of catalog movies with upcoming releases.
func (s *MetadataService) Upcoming(ctx context.Context, page int) (*tmdb.SearchPage, error) {
	result, err := s.client.UpcomingMovies(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("upcoming movies: %w", err)
	}
	return result, nil
}

// GetMovie fetches one catalog record by TMDB ID.
func (s *MetadataService) GetMovie(ctx context.Context, tmdbID int64) (*tmdb.MovieDetails, error) {
	details, err := s.client.GetMovie(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found in catalog")
		}
		return nil, fmt.Errorf("get catalog movie: %w", err)
	}
	return details, nil
}
