package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/store"
)

// accountColumns is the ordered list of columns selected in account queries.
// Must match the scan order in scanAccount.
const accountColumns = `id, username, email, password_hash, profile_image, created_at, updated_at`

// scanAccount scans a sql.Row (or sql.Rows via its Scan method) into a domain.Account.
func scanAccount(scanner interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account

	var (
		profileImage sql.NullString
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&profileImage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profileImage.Valid {
		a.ProfileImage = &profileImage.String
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// accountConstraintError maps a UNIQUE constraint violation to the sentinel
// for the colliding column, so callers can report which field was taken.
func accountConstraintError(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "accounts.email"):
		return store.ErrEmailExists
	case strings.Contains(msg, "accounts.username"):
		return store.ErrUsernameExists
	default:
		return store.ErrAlreadyExists
	}
}

// CreateAccount inserts a new account and fills in its assigned ID.
// Returns store.ErrEmailExists or store.ErrUsernameExists on collision.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (username, email, password_hash, profile_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		account.Username,
		account.Email,
		account.PasswordHash,
		nullableString(account.ProfileImage),
		formatTime(account.CreatedAt),
		formatTime(account.UpdatedAt),
	)
	if err != nil {
		return accountConstraintError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	account.ID = id
	return nil
}

// GetAccount retrieves an account by ID.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccountByEmail retrieves an account by exact email match.
// Returns store.ErrNotFound if the account does not exist.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)

	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAccount performs a full row update on an existing account.
// Returns store.ErrNotFound if the account does not exist, or a uniqueness
// sentinel if the new username or email is taken.
func (s *Store) UpdateAccount(ctx context.Context, account *domain.Account) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET
			username = ?,
			email = ?,
			password_hash = ?,
			profile_image = ?,
			updated_at = ?
		WHERE id = ?`,
		account.Username,
		account.Email,
		account.PasswordHash,
		nullableString(account.ProfileImage),
		formatTime(account.UpdatedAt),
		account.ID,
	)
	if err != nil {
		return accountConstraintError(err)
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
