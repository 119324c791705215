package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/service"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies",
		Summary:     "List movies",
		Description: "Returns the account's collection, filtered and ordered",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovieStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/stats",
		Summary:     "Collection stats",
		Description: "Returns entry count, average rating and months logged",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStats)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createMovie",
		Method:        http.MethodPost,
		Path:          "/api/v1/movies",
		Summary:       "Log movie",
		Description:   "Adds a movie to the collection, with optional tags",
		Tags:          []string{"Movies"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMovie",
		Method:      http.MethodPut,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Update movie",
		Description: "Partially updates a movie; a tags array replaces the whole tag set atomically",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMovie",
		Method:      http.MethodDelete,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Delete movie",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteMovie)
}

// === DTOs ===

// MovieResponse contains movie data in API responses.
type MovieResponse struct {
	ID          int64      `json:"id" doc:"Movie ID"`
	TmdbID      *int64     `json:"tmdb_id,omitempty" doc:"TMDB catalog reference"`
	Title       string     `json:"title" doc:"Title"`
	PosterPath  *string    `json:"poster_path,omitempty" doc:"Poster image URL"`
	ReleaseDate *time.Time `json:"release_date,omitempty" doc:"Theatrical release date"`
	Rating      *float64   `json:"rating,omitempty" doc:"Personal rating, 0-10"`
	Comment     *string    `json:"comment,omitempty" doc:"Viewing notes"`
	WatchDate   *time.Time `json:"watch_date,omitempty" doc:"When it was watched"`
	Tags        []string   `json:"tags" doc:"Attached tag names"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time  `json:"updated_at" doc:"Last update time"`
}

func toMovieResponse(m *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		TmdbID:      m.TmdbID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		Comment:     m.Comment,
		WatchDate:   m.WatchDate,
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ListMoviesInput contains the collection query parameters.
type ListMoviesInput struct {
	Authorization string   `header:"Authorization"`
	Rating        *float64 `query:"rating" doc:"Exact rating to match"`
	Search        string   `query:"search" doc:"Case-insensitive substring over title and comment"`
	OrderBy       string   `query:"orderBy" doc:"Sort column: watch_date, rating, title, release_date, created_at"`
	Order         string   `query:"order" doc:"Sort direction: asc or desc (default desc)"`
}

// ListMoviesResponse contains a list of movies.
type ListMoviesResponse struct {
	Movies []MovieResponse `json:"movies" doc:"Collection entries"`
}

// ListMoviesOutput wraps the list response for Huma.
type ListMoviesOutput struct {
	Body ListMoviesResponse
}

// StatsResponse contains collection statistics.
type StatsResponse struct {
	TotalMovies   int64    `json:"total_movies" doc:"Number of logged entries"`
	AverageRating *float64 `json:"average_rating" doc:"Average of rated entries; null when none rated"`
	MonthsLogged  int64    `json:"months_logged" doc:"Distinct calendar months with a watch date"`
}

// StatsOutput wraps the stats response for Huma.
type StatsOutput struct {
	Body StatsResponse
}

// GetStatsInput contains parameters for the stats endpoint.
type GetStatsInput struct {
	Authorization string `header:"Authorization"`
}

// CreateMovieRequest is the request body for logging a movie.
type CreateMovieRequest struct {
	Title       string     `json:"title" minLength:"1" maxLength:"500" doc:"Title"`
	TmdbID      *int64     `json:"tmdb_id,omitempty" doc:"TMDB catalog reference"`
	PosterPath  *string    `json:"poster_path,omitempty" doc:"Poster image URL"`
	ReleaseDate *time.Time `json:"release_date,omitempty" doc:"Theatrical release date"`
	Rating      *float64   `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Personal rating"`
	Comment     *string    `json:"comment,omitempty" doc:"Viewing notes"`
	WatchDate   *time.Time `json:"watch_date,omitempty" doc:"When it was watched"`
	Tags        []string   `json:"tags,omitempty" doc:"Tag names to attach"`
}

// CreateMovieInput wraps the create request for Huma.
type CreateMovieInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateMovieRequest
}

// MovieOutput wraps a single movie response for Huma.
type MovieOutput struct {
	Body MovieResponse
}

// GetMovieInput contains parameters for fetching one movie.
type GetMovieInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Movie ID"`
}

// UpdateMovieRequest is the request body for a partial update.
// Omitted fields are left unchanged; a tags array is the complete desired set.
type UpdateMovieRequest struct {
	Title       *string    `json:"title,omitempty" minLength:"1" maxLength:"500" doc:"Title"`
	TmdbID      *int64     `json:"tmdb_id,omitempty" doc:"TMDB catalog reference"`
	PosterPath  *string    `json:"poster_path,omitempty" doc:"Poster image URL"`
	ReleaseDate *time.Time `json:"release_date,omitempty" doc:"Theatrical release date"`
	Rating      *float64   `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Personal rating"`
	Comment     *string    `json:"comment,omitempty" doc:"Viewing notes"`
	WatchDate   *time.Time `json:"watch_date,omitempty" doc:"When it was watched"`
	Tags        []string   `json:"tags,omitempty" doc:"Complete tag set to reconcile to"`
}

// UpdateMovieInput wraps the update request for Huma.
type UpdateMovieInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Movie ID"`
	Body          UpdateMovieRequest
}

// DeleteMovieInput contains parameters for deleting a movie.
type DeleteMovieInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Movie ID"`
}

// === Handlers ===

func (s *Server) handleListMovies(ctx context.Context, input *ListMoviesInput) (*ListMoviesOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	movies, err := s.services.Movie.List(ctx, accountID, service.ListMoviesRequest{
		Rating:  input.Rating,
		Search:  input.Search,
		OrderBy: input.OrderBy,
		Order:   input.Order,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}

	return &ListMoviesOutput{Body: ListMoviesResponse{Movies: resp}}, nil
}

func (s *Server) handleGetStats(ctx context.Context, input *GetStatsInput) (*StatsOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Stats.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: StatsResponse{
		TotalMovies:   stats.TotalMovies,
		AverageRating: stats.AverageRating,
		MonthsLogged:  stats.MonthsLogged,
	}}, nil
}

func (s *Server) handleCreateMovie(ctx context.Context, input *CreateMovieInput) (*MovieOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.Create(ctx, accountID, service.CreateMovieRequest{
		Title:       input.Body.Title,
		TmdbID:      input.Body.TmdbID,
		PosterPath:  input.Body.PosterPath,
		ReleaseDate: input.Body.ReleaseDate,
		Rating:      input.Body.Rating,
		Comment:     input.Body.Comment,
		WatchDate:   input.Body.WatchDate,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleGetMovie(ctx context.Context, input *GetMovieInput) (*MovieOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.Get(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleUpdateMovie(ctx context.Context, input *UpdateMovieInput) (*MovieOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.Update(ctx, accountID, input.ID, service.UpdateMovieRequest{
		Title:       input.Body.Title,
		TmdbID:      input.Body.TmdbID,
		PosterPath:  input.Body.PosterPath,
		ReleaseDate: input.Body.ReleaseDate,
		Rating:      input.Body.Rating,
		Comment:     input.Body.Comment,
		WatchDate:   input.Body.WatchDate,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleDeleteMovie(ctx context.Context, input *DeleteMovieInput) (*MessageOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Movie.Delete(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Movie deleted"}}, nil
}
