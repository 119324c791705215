package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reellog/reellog-server/internal/domain"
	domainerrors "github.com/reellog/reellog-server/internal/errors"
	"github.com/reellog/reellog-server/internal/store"
	"github.com/reellog/reellog-server/internal/util"
)

// MovieService handles an account's movie collection.
type MovieService struct {
	store  store.Store
	logger *slog.Logger
}

// NewMovieService creates a new movie service.
func NewMovieService(store store.Store, logger *slog.Logger) *MovieService {
	return &MovieService{store: store, logger: logger}
}

// CreateMovieRequest contains a new collection entry. Title is the only
// required field.
type CreateMovieRequest struct {
	Title       string     `json:"title" validate:"required,max=500"`
	TmdbID      *int64     `json:"tmdb_id"`
	PosterPath  *string    `json:"poster_path"`
	ReleaseDate *time.Time `json:"release_date"`
	Rating      *float64   `json:"rating"`
	Comment     *string    `json:"comment"`
	WatchDate   *time.Time `json:"watch_date"`
	Tags        []string   `json:"tags"`
}

// UpdateMovieRequest is a partial update. Nil fields are left unchanged;
// a non-nil Tags is the complete desired tag set.
type UpdateMovieRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=500"`
	TmdbID      *int64     `json:"tmdb_id"`
	PosterPath  *string    `json:"poster_path"`
	ReleaseDate *time.Time `json:"release_date"`
	Rating      *float64   `json:"rating"`
	Comment     *string    `json:"comment"`
	WatchDate   *time.Time `json:"watch_date"`
	Tags        []string   `json:"tags"`
}

// ListMoviesRequest carries the collection query parameters.
type ListMoviesRequest struct {
	Rating  *float64
	Search  string
	OrderBy string
	Order   string
}

// Create adds a movie to the account's collection, attaching any tags in
// the same transaction.
func (s *MovieService) Create(ctx context.Context, ownerID int64, req CreateMovieRequest) (*domain.Movie, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.Rating != nil && !domain.ValidRating(*req.Rating) {
		return nil, domainerrors.Validationf("rating must be between %g and %g", domain.RatingMin, domain.RatingMax)
	}

	now := time.Now()
	movie := &domain.Movie{
		OwnerID:     ownerID,
		TmdbID:      req.TmdbID,
		Title:       strings.TrimSpace(req.Title),
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
		Comment:     req.Comment,
		WatchDate:   req.WatchDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if movie.Title == "" {
		return nil, domainerrors.Validation("title is required")
	}

	if err := s.store.CreateMovie(ctx, movie, normalizeTagNames(req.Tags)); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.Info("movie logged",
		"account_id", ownerID,
		"movie_id", movie.ID,
		"title", movie.Title,
	)
	return movie, nil
}

// Get returns one of the account's movies.
func (s *MovieService) Get(ctx context.Context, ownerID, movieID int64) (*domain.Movie, error) {
	movie, err := s.store.GetMovie(ctx, ownerID, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// List returns the account's collection, filtered and ordered.
func (s *MovieService) List(ctx context.Context, ownerID int64, req ListMoviesRequest) ([]*domain.Movie, error) {
	if req.Rating != nil && !domain.ValidRating(*req.Rating) {
		return nil, domainerrors.Validationf("rating must be between %g and %g", domain.RatingMin, domain.RatingMax)
	}

	filter := store.MovieFilter{
		Rating:    req.Rating,
		Search:    strings.TrimSpace(req.Search),
		Ascending: strings.EqualFold(req.Order, "asc"),
	}
	if req.OrderBy != "" {
		if !store.MovieOrderColumns[req.OrderBy] {
			return nil, domainerrors.Validationf("orderBy must be one of: watch_date, rating, title, release_date, created_at")
		}
		filter.OrderBy = req.OrderBy
	}

	movies, err := s.store.ListMovies(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// Update applies a partial update to one of the account's movies. A tag set
// in the request reconciles the associations atomically with the field
// changes.
func (s *MovieService) Update(ctx context.Context, ownerID, movieID int64, req UpdateMovieRequest) (*domain.Movie, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if req.Rating != nil && !domain.ValidRating(*req.Rating) {
		return nil, domainerrors.Validationf("rating must be between %g and %g", domain.RatingMin, domain.RatingMax)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, domainerrors.Validation("title cannot be empty")
	}

	patch := domain.MoviePatch{
		TmdbID:      req.TmdbID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
		Comment:     req.Comment,
		WatchDate:   req.WatchDate,
	}
	if req.Tags != nil {
		patch.Tags = normalizeTagNames(req.Tags)
	}

	movie, err := s.store.UpdateMovie(ctx, ownerID, movieID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return movie, nil
}

// Delete removes one of the account's movies.
func (s *MovieService) Delete(ctx context.Context, ownerID, movieID int64) error {
	if err := s.store.DeleteMovie(ctx, ownerID, movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("movie not found")
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.logger.Info("movie deleted", "account_id", ownerID, "movie_id", movieID)
	return nil
}

// normalizeTagNames normalizes each name and drops duplicates and empties.
func normalizeTagNames(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		normalized := util.NormalizeTagName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
