package sqlite

import (
	"context"
	"database/sql"

	"github.com/reellog/reellog-server/internal/domain"
)

// GetStats aggregates an account's collection in one query.
// The month count leans on the stored time format: RFC3339 text starts with
// "YYYY-MM", so the first seven characters identify the calendar month.
func (s *Store) GetStats(ctx context.Context, ownerID int64) (*domain.Stats, error) {
	var (
		stats     domain.Stats
		avgRating sql.NullFloat64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			AVG(rating),
			COUNT(DISTINCT substr(watch_date, 1, 7))
		FROM movies
		WHERE owner_id = ?`, ownerID).Scan(
		&stats.TotalMovies,
		&avgRating,
		&stats.MonthsLogged,
	)
	if err != nil {
		return nil, err
	}

	if avgRating.Valid {
		stats.AverageRating = &avgRating.Float64
	}
	return &stats, nil
}
