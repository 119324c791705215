package domain

import "time"

// Account represents a registered user of the movie log.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (a *Account) Touch() {
	a.UpdatedAt = time.Now()
}

// AccountPatch is a partial update of an account's mutable profile fields.
// Nil fields are left unchanged. The allow-list is deliberately small:
// email and password changes go through their own flows.
type AccountPatch struct {
	Username     *string
	ProfileImage *string
}

// IsEmpty reports whether the patch would change nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Username == nil && p.ProfileImage == nil
}
