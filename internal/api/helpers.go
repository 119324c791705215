package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// authenticateRequest validates the Authorization header and returns the
// account ID. Each failure mode gets its own message: missing header,
// non-bearer header, and every token rejection the auth service reports
// (malformed, bad signature, expired, unknown account).
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (int64, error) {
	if authHeader == "" {
		return 0, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, huma.Error401Unauthorized("Invalid authorization header format")
	}

	account, _, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		// Already a domain error with the precise rejection reason.
		return 0, err
	}

	return account.ID, nil
}
