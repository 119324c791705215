package tmdb

// searchResponse mirrors the TMDB /search/movie wire format.
type searchResponse struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []movieResult `json:"results"`
}

// movieResult mirrors a TMDB movie object; details responses carry the
// extra fields, search rows leave them zero.
type movieResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	Overview         string  `json:"overview"`
	Genres           []Genre `json:"genres"`
	Runtime          int     `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// toPage converts a wire-format response into a SearchPage, expanding poster
// paths to full image URLs.
func (r *searchResponse) toPage() *SearchPage {
	results := make([]SearchResult, 0, len(r.Results))
	for i := range r.Results {
		m := &r.Results[i]
		results = append(results, SearchResult{
			TmdbID:      m.ID,
			Title:       m.Title,
			PosterPath:  posterURL(m.PosterPath, "w200"),
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
		})
	}
	return &SearchPage{
		Page:         r.Page,
		TotalPages:   r.TotalPages,
		TotalResults: r.TotalResults,
		Results:      results,
	}
}

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResult is one row of a catalog search, trimmed to what the client
// needs to render a picker.
type SearchResult struct {
	TmdbID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// SearchPage is a page of catalog search results.
type SearchPage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []SearchResult `json:"results"`
}

// MovieDetails is the full catalog record for one movie.
type MovieDetails struct {
	TmdbID           int64   `json:"tmdb_id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	Overview         string  `json:"overview"`
	Genres           []Genre `json:"genres"`
	Runtime          int     `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}
