package domain

import "time"

// Rating bounds for a logged movie.
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// Movie represents one logged entry in an account's collection.
// Every field except Title is optional: an entry can be as thin as a
// title, or carry the full catalog reference plus viewing notes.
type Movie struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	TmdbID      *int64     `json:"tmdb_id,omitempty"`
	Title       string     `json:"title"`
	PosterPath  *string    `json:"poster_path,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Comment     *string    `json:"comment,omitempty"`
	WatchDate   *time.Time `json:"watch_date,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (m *Movie) Touch() {
	m.UpdatedAt = time.Now()
}

// ValidRating reports whether r is inside the allowed rating range.
func ValidRating(r float64) bool {
	return r >= RatingMin && r <= RatingMax
}

// MoviePatch is a partial update of a movie's mutable fields.
// Nil fields are left unchanged. Tags, when non-nil, is the complete
// desired tag set and triggers an atomic reconcile of associations.
type MoviePatch struct {
	TmdbID      *int64
	Title       *string
	PosterPath  *string
	ReleaseDate *time.Time
	Rating      *float64
	Comment     *string
	WatchDate   *time.Time
	Tags        []string
}

// HasFieldChanges reports whether the patch touches any column besides tags.
func (p MoviePatch) HasFieldChanges() bool {
	return p.TmdbID != nil || p.Title != nil || p.PosterPath != nil ||
		p.ReleaseDate != nil || p.Rating != nil || p.Comment != nil ||
		p.WatchDate != nil
}
