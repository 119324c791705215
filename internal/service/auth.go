// Package service holds the business logic between the HTTP layer and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/reellog/reellog-server/internal/auth"
	"github.com/reellog/reellog-server/internal/domain"
	domainerrors "github.com/reellog/reellog-server/internal/errors"
	"github.com/reellog/reellog-server/internal/store"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// AuthService handles account registration, login, profile updates and
// access token verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial profile update. Only the fields present
// here can be changed through the profile endpoint; anything else a client
// sends is ignored.
type UpdateProfileRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=3,max=32"`
	ProfileImage *string `json:"profile_image"`
}

// AuthResponse contains the account and its freshly issued access token.
type AuthResponse struct {
	Account   *domain.Account `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Register creates a new account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			return nil, domainerrors.AlreadyExists("email already in use")
		case errors.Is(err, store.ErrUsernameExists):
			return nil, domainerrors.AlreadyExists("username already taken")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	resp, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		"account_id", account.ID,
		"username", account.Username,
	)
	return resp, nil
}

// Login authenticates an account by email and password.
// A missing account and a wrong password produce the same error, so callers
// can't probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	account, err := s.store.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	valid, err := auth.VerifyPassword(account.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	resp, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account logged in", "account_id", account.ID)
	return resp, nil
}

// GetAccount returns one account by ID.
func (s *AuthService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("account not found")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// UpdateProfile applies the allow-listed profile fields and returns the
// updated account.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID int64, req UpdateProfileRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	patch := domain.AccountPatch{
		Username:     req.Username,
		ProfileImage: req.ProfileImage,
	}
	if patch.IsEmpty() {
		// Nothing to change; don't touch the row.
		return account, nil
	}

	if patch.Username != nil {
		account.Username = *patch.Username
	}
	if patch.ProfileImage != nil {
		account.ProfileImage = patch.ProfileImage
	}
	account.Touch()

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, domainerrors.AlreadyExists("username already taken")
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// VerifyAccessToken validates a bearer token and resolves its account.
// The returned error is a domain error naming the exact rejection reason.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.Account, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return nil, nil, domainerrors.TokenExpired("token expired")
		case errors.Is(err, auth.ErrMalformedToken):
			return nil, nil, domainerrors.Unauthorized("malformed token")
		default:
			return nil, nil, domainerrors.Unauthorized("invalid token")
		}
	}

	account, err := s.store.GetAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Valid token for an account that no longer exists.
			return nil, nil, domainerrors.Unauthorized("account not found")
		}
		return nil, nil, fmt.Errorf("get account: %w", err)
	}

	return account, claims, nil
}

// issueToken wraps an account with a fresh access token.
func (s *AuthService) issueToken(account *domain.Account) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{
		Account:   account,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

// formatValidationError converts validator errors to user-friendly domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Return first validation error as a domain error
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return domainerrors.Validationf("%s is required", field)
			case "email":
				return domainerrors.Validationf("%s must be a valid email address", field)
			case "min":
				return domainerrors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return domainerrors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			default:
				return domainerrors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
