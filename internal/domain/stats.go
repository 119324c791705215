package domain

// Stats summarizes one account's collection.
type Stats struct {
	// TotalMovies is the number of logged entries.
	TotalMovies int64 `json:"total_movies"`
	// AverageRating averages the rated entries only; nil when none are rated.
	AverageRating *float64 `json:"average_rating"`
	// MonthsLogged counts distinct calendar months that have at least one
	// entry with a watch date.
	MonthsLogged int64 `json:"months_logged"`
}
