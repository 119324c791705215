package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/accounts",
		Summary:       "Register account",
		Description:   "Creates a new account and returns it with an access token",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions",
		Summary:     "Log in",
		Description: "Authenticates by email and password, returns an access token",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMe",
		Method:      http.MethodGet,
		Path:        "/api/v1/me",
		Summary:     "Get current account",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMe",
		Method:      http.MethodPut,
		Path:        "/api/v1/me",
		Summary:     "Update profile",
		Description: "Updates the current account's profile fields (username, profile image)",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMe)
}

// === DTOs ===

// AccountResponse contains account data in API responses.
// The password hash never appears here.
type AccountResponse struct {
	ID           int64     `json:"id" doc:"Account ID"`
	Username     string    `json:"username" doc:"Display name"`
	Email        string    `json:"email" doc:"Email address"`
	ProfileImage *string   `json:"profile_image,omitempty" doc:"Profile image URL"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		ProfileImage: a.ProfileImage,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AuthResponse contains an account plus its access token.
type AuthResponse struct {
	Account   AccountResponse `json:"account" doc:"The account"`
	Token     string          `json:"token" doc:"PASETO access token"`
	ExpiresAt time.Time       `json:"expires_at" doc:"Token expiry"`
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" minLength:"3" maxLength:"32" doc:"Display name"`
	Email    string `json:"email" format:"email" doc:"Email address"`
	Password string `json:"password" minLength:"6" maxLength:"1024" doc:"Password"`
}

// RegisterInput wraps the registration request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" format:"email" doc:"Email address"`
	Password string `json:"password" doc:"Password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// GetMeInput contains parameters for fetching the current account.
type GetMeInput struct {
	Authorization string `header:"Authorization"`
}

// AccountOutput wraps the account response for Huma.
type AccountOutput struct {
	Body AccountResponse
}

// UpdateMeRequest is the request body for profile updates.
// Fields outside this allow-list are ignored.
type UpdateMeRequest struct {
	Username     *string `json:"username,omitempty" minLength:"3" maxLength:"32" doc:"Display name"`
	ProfileImage *string `json:"profile_image,omitempty" doc:"Profile image URL"`
}

// UpdateMeInput wraps the profile update request for Huma.
type UpdateMeInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateMeRequest
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		Account:   toAccountResponse(resp.Account),
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		Account:   toAccountResponse(resp.Account),
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}}, nil
}

func (s *Server) handleGetMe(ctx context.Context, input *GetMeInput) (*AccountOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.services.Auth.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: toAccountResponse(account)}, nil
}

func (s *Server) handleUpdateMe(ctx context.Context, input *UpdateMeInput) (*AccountOutput, error) {
	accountID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	account, err := s.services.Auth.UpdateProfile(ctx, accountID, service.UpdateProfileRequest{
		Username:     input.Body.Username,
		ProfileImage: input.Body.ProfileImage,
	})
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: toAccountResponse(account)}, nil
}
