// Package store defines the persistence interface for the ReelLog server.
package store

import (
	"context"

	"github.com/reellog/reellog-server/internal/domain"
)

// MovieFilter narrows and orders a ListMovies query. The zero value lists
// the full collection in the default order (watch_date descending).
type MovieFilter struct {
	// Rating, when set, matches entries with exactly this rating.
	Rating *float64
	// Search, when non-empty, matches entries whose title or comment
	// contains the string case-insensitively.
	Search string
	// OrderBy names the sort column; empty means watch_date. Must be one
	// of MovieOrderColumns.
	OrderBy string
	// Ascending flips the sort direction; default is descending.
	Ascending bool
}

// MovieOrderColumns is the allow-list of sortable movie columns.
var MovieOrderColumns = map[string]bool{
	"watch_date":   true,
	"rating":       true,
	"title":        true,
	"release_date": true,
	"created_at":   true,
}

// Store defines the interface for all persistence operations.
//
// Movie reads and writes are owner-scoped: a movie that exists but belongs
// to a different account is indistinguishable from one that doesn't exist
// (ErrNotFound).
type Store interface {
	// Lifecycle
	Close() error

	// Accounts
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error

	// Movies
	CreateMovie(ctx context.Context, movie *domain.Movie, tags []string) error
	GetMovie(ctx context.Context, ownerID, movieID int64) (*domain.Movie, error)
	ListMovies(ctx context.Context, ownerID int64, filter MovieFilter) ([]*domain.Movie, error)
	UpdateMovie(ctx context.Context, ownerID, movieID int64, patch domain.MoviePatch) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, ownerID, movieID int64) error

	// Tags
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error)
	AttachTag(ctx context.Context, ownerID, movieID int64, name string) (*domain.Tag, error)
	DetachTag(ctx context.Context, ownerID, movieID, tagID int64) error

	// Stats
	GetStats(ctx context.Context, ownerID int64) (*domain.Stats, error)
}
