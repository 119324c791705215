package domain

// Tag is one entry in the global tag vocabulary.
// Tags are shared across all accounts — no ownership model. Name holds the
// normalized form ("slow burn", not "Slow Burn"); normalization is the
// source of truth for tag identity.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
