package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/store"
)

// movieColumns is the ordered list of columns selected in movie queries.
// Must match the scan order in scanMovie.
const movieColumns = `id, owner_id, tmdb_id, title, poster_path, release_date,
	rating, comment, watch_date, created_at, updated_at`

// scanMovie scans a sql.Row (or sql.Rows via its Scan method) into a domain.Movie.
// Tags are left empty; callers load them separately.
func scanMovie(scanner interface{ Scan(dest ...any) error }) (*domain.Movie, error) {
	var m domain.Movie

	var (
		tmdbID      sql.NullInt64
		posterPath  sql.NullString
		releaseDate sql.NullString
		rating      sql.NullFloat64
		comment     sql.NullString
		watchDate   sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&m.ID,
		&m.OwnerID,
		&tmdbID,
		&m.Title,
		&posterPath,
		&releaseDate,
		&rating,
		&comment,
		&watchDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tmdbID.Valid {
		m.TmdbID = &tmdbID.Int64
	}
	if posterPath.Valid {
		m.PosterPath = &posterPath.String
	}
	if rating.Valid {
		m.Rating = &rating.Float64
	}
	if comment.Valid {
		m.Comment = &comment.String
	}

	m.ReleaseDate, err = parseNullableTime(releaseDate)
	if err != nil {
		return nil, err
	}
	m.WatchDate, err = parseNullableTime(watchDate)
	if err != nil {
		return nil, err
	}
	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	m.Tags = []string{}
	return &m, nil
}

// CreateMovie inserts a movie and attaches the given tag names, all in one
// transaction. The movie's assigned ID and final tag set are filled in.
func (s *Store) CreateMovie(ctx context.Context, movie *domain.Movie, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO movies (owner_id, tmdb_id, title, poster_path, release_date,
			rating, comment, watch_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.OwnerID,
		nullableInt64(movie.TmdbID),
		movie.Title,
		nullableString(movie.PosterPath),
		nullTimeString(movie.ReleaseDate),
		nullableFloat64(movie.Rating),
		nullableString(movie.Comment),
		nullTimeString(movie.WatchDate),
		formatTime(movie.CreatedAt),
		formatTime(movie.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}

	movieID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, name := range tags {
		tag, err := findOrCreateTagTx(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_tags (movie_id, tag_id) VALUES (?, ?)`,
			movieID, tag.ID); err != nil {
			return fmt.Errorf("insert movie_tag: %w", err)
		}
	}

	names, err := movieTagNamesTx(ctx, tx, movieID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	movie.ID = movieID
	movie.Tags = names
	return nil
}

// GetMovie retrieves one movie scoped to its owner, tags included.
// Returns store.ErrNotFound if the movie does not exist or belongs to a
// different account.
func (s *Store) GetMovie(ctx context.Context, ownerID, movieID int64) (*domain.Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ? AND owner_id = ?`,
		movieID, ownerID)

	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tagsByMovie, err := s.loadMovieTags(ctx, []int64{m.ID})
	if err != nil {
		return nil, err
	}
	if names, ok := tagsByMovie[m.ID]; ok {
		m.Tags = names
	}
	return m, nil
}

// ListMovies returns an account's collection, filtered and ordered, with
// tags embedded per row.
func (s *Store) ListMovies(ctx context.Context, ownerID int64, filter store.MovieFilter) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE owner_id = ?`
	args := []any{ownerID}

	if filter.Rating != nil {
		query += ` AND rating = ?`
		args = append(args, *filter.Rating)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += ` AND (title LIKE ? OR comment LIKE ?)`
		args = append(args, pattern, pattern)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "watch_date"
	}
	if !store.MovieOrderColumns[orderBy] {
		return nil, store.ErrInvalidInput.WithCause(fmt.Errorf("order column %q", orderBy))
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	query += ` ORDER BY ` + orderBy + ` ` + direction

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*domain.Movie
	var ids []int64
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if movies == nil {
		return []*domain.Movie{}, nil
	}

	tagsByMovie, err := s.loadMovieTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		if names, ok := tagsByMovie[m.ID]; ok {
			m.Tags = names
		}
	}
	return movies, nil
}

// UpdateMovie applies a partial update to an owner's movie. When the patch
// carries a tag set, the associations are reconciled to exactly that set in
// the same transaction as the field update.
// Returns the updated movie, or store.ErrNotFound if the movie does not
// exist or belongs to a different account.
func (s *Store) UpdateMovie(ctx context.Context, ownerID, movieID int64, patch domain.MoviePatch) (*domain.Movie, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Ownership check up front; everything after operates on a row we know
	// belongs to this account.
	row := tx.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ? AND owner_id = ?`,
		movieID, ownerID)
	if _, err := scanMovie(row); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	// An empty patch is a no-op read: the row keeps its updated_at.
	touches := patch.HasFieldChanges() || patch.Tags != nil

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now())}
	if patch.TmdbID != nil {
		sets = append(sets, "tmdb_id = ?")
		args = append(args, *patch.TmdbID)
	}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.PosterPath != nil {
		sets = append(sets, "poster_path = ?")
		args = append(args, *patch.PosterPath)
	}
	if patch.ReleaseDate != nil {
		sets = append(sets, "release_date = ?")
		args = append(args, formatTime(*patch.ReleaseDate))
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *patch.Rating)
	}
	if patch.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *patch.Comment)
	}
	if patch.WatchDate != nil {
		sets = append(sets, "watch_date = ?")
		args = append(args, formatTime(*patch.WatchDate))
	}
	args = append(args, movieID)

	if touches {
		if _, err := tx.ExecContext(ctx,
			`UPDATE movies SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
			args...); err != nil {
			return nil, fmt.Errorf("update movie: %w", err)
		}
	}

	if patch.Tags != nil {
		if err := replaceMovieTagsTx(ctx, tx, movieID, patch.Tags); err != nil {
			return nil, err
		}
	}

	row = tx.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, movieID)
	m, err := scanMovie(row)
	if err != nil {
		return nil, err
	}
	m.Tags, err = movieTagNamesTx(ctx, tx, movieID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMovie removes an owner's movie; associations go with it via the
// movie_tags cascade, tag rows stay.
// Returns store.ErrNotFound if the movie does not exist or belongs to a
// different account.
func (s *Store) DeleteMovie(ctx context.Context, ownerID, movieID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM movies WHERE id = ? AND owner_id = ?`, movieID, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// loadMovieTags returns tag names per movie ID, each list ordered by name.
func (s *Store) loadMovieTags(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	if len(movieIDs) == 0 {
		return map[int64][]string{}, nil
	}

	placeholders := strings.Repeat("?,", len(movieIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(movieIDs))
	for i, id := range movieIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT mt.movie_id, t.name
		FROM movie_tags mt
		JOIN tags t ON t.id = mt.tag_id
		WHERE mt.movie_id IN (`+placeholders+`)
		ORDER BY t.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query movie_tags: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]string)
	for rows.Next() {
		var movieID int64
		var name string
		if err := rows.Scan(&movieID, &name); err != nil {
			return nil, fmt.Errorf("scan movie_tag: %w", err)
		}
		result[movieID] = append(result[movieID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}
