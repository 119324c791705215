package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTags returns the whole vocabulary ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

// FindOrCreateTag finds an existing tag by its (already normalized) name or
// creates a new one. Returns (tag, created, error) where created reports
// whether a new row was made. Concurrent callers racing on the same name
// both get the surviving row: the insert is ON CONFLICT DO NOTHING and the
// read-back happens after it.
func (s *Store) FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	existing, err := s.getTagByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
	if err != nil {
		return nil, false, fmt.Errorf("insert tag: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	t, err := s.getTagByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return t, n > 0, nil
}

// AttachTag associates a tag (created if necessary) with an owner's movie.
// Attaching a tag that is already present is a no-op. The whole operation
// runs in one transaction.
// Returns store.ErrNotFound if the movie does not exist or belongs to a
// different account.
func (s *Store) AttachTag(ctx context.Context, ownerID, movieID int64, name string) (*domain.Tag, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := movieOwnedTx(ctx, tx, ownerID, movieID); err != nil {
		return nil, err
	}

	tag, err := findOrCreateTagTx(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO movie_tags (movie_id, tag_id) VALUES (?, ?)`,
		movieID, tag.ID); err != nil {
		return nil, fmt.Errorf("insert movie_tag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return tag, nil
}

// DetachTag removes a tag association from an owner's movie. Detaching a
// tag that is not attached is a no-op; the tag row itself is never removed.
// Returns store.ErrNotFound if the movie does not exist or belongs to a
// different account.
func (s *Store) DetachTag(ctx context.Context, ownerID, movieID, tagID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := movieOwnedTx(ctx, tx, ownerID, movieID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM movie_tags WHERE movie_id = ? AND tag_id = ?`,
		movieID, tagID); err != nil {
		return fmt.Errorf("delete movie_tag: %w", err)
	}

	return tx.Commit()
}

// getTagByName retrieves a tag by its normalized name.
func (s *Store) getTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// movieOwnedTx verifies that the movie exists and belongs to the account.
// Returns store.ErrNotFound otherwise.
func movieOwnedTx(ctx context.Context, tx *sql.Tx, ownerID, movieID int64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM movies WHERE id = ? AND owner_id = ?`,
		movieID, ownerID).Scan(&one)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	return err
}

// findOrCreateTagTx is FindOrCreateTag inside an existing transaction.
func findOrCreateTagTx(ctx context.Context, tx *sql.Tx, name string) (*domain.Tag, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)
	t, err := scanTag(row)
	if err != nil {
		return nil, fmt.Errorf("read tag back: %w", err)
	}
	return t, nil
}

// replaceMovieTagsTx reconciles a movie's associations to exactly the given
// set of normalized names, creating missing tags along the way.
func replaceMovieTagsTx(ctx context.Context, tx *sql.Tx, movieID int64, names []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM movie_tags WHERE movie_id = ?`, movieID); err != nil {
		return fmt.Errorf("delete movie_tags: %w", err)
	}

	for _, name := range names {
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
	return nil
}

// movieTagNamesTx returns a movie's tag names ordered by name, inside an
// existing transaction.
func movieTagNamesTx(ctx context.Context, tx *sql.Tx, movieID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT t.name
		FROM movie_tags mt
		JOIN tags t ON t.id = mt.tag_id
		WHERE mt.movie_id = ?
		ORDER BY t.name ASC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("query movie_tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan movie_tag: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return names, nil
}
