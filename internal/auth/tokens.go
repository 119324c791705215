package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/reellog/reellog-server/internal/domain"
	"github.com/reellog/reellog-server/internal/id"
)

const (
	tokenIssuer   = "reellog-server"
	tokenAudience = "reellog-client"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string

	tokenHeader = "v4.local."
)

// Verification failures, classified so callers can report the exact
// rejection reason.
var (
	// ErrMalformedToken means the string is not a v4.local token at all.
	ErrMalformedToken = errors.New("malformed token")
	// ErrBadSignature means the token did not decrypt/authenticate under our
	// key, or carried claims we never issue.
	ErrBadSignature = errors.New("token authentication failed")
	// ErrTokenExpired means the token was valid but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenService handles PASETO token generation and verification.
// Tokens are self-contained: there is no revocation store, a token stays
// valid until its expiry.
type TokenService struct {
	symmetricKey        paseto.V4SymmetricKey
	accessTokenDuration time.Duration
}

// NewTokenService creates a new token service with the given configuration.
func NewTokenService(keyHex string, accessDuration time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:        key,
		accessTokenDuration: accessDuration,
	}, nil
}

// GenerateAccessToken creates a new PASETO v4.local access token for the account.
// The token is encrypted and contains the account claims.
func (s *TokenService) GenerateAccessToken(account *domain.Account) (string, error) {
	now := time.Now()

	token := paseto.NewToken()

	token.SetIssuer(tokenIssuer)
	token.SetSubject(strconv.FormatInt(account.ID, 10))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.accessTokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	// Custom claims. Token.Set only errors on unmarshalable values.
	_ = token.Set("account_id", account.ID)
	_ = token.Set("email", account.Email)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyAccessToken verifies and parses a PASETO access token.
// Returns the claims if valid. On failure the returned error wraps exactly
// one of ErrMalformedToken, ErrBadSignature or ErrTokenExpired.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	if !strings.HasPrefix(tokenString, tokenHeader) {
		return nil, fmt.Errorf("%w: missing %q header", ErrMalformedToken, tokenHeader)
	}

	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, classifyParseError(err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrBadSignature, err)
	}

	return &claims, nil
}

// classifyParseError maps go-paseto parse failures onto our sentinel errors.
// Rule failures surface as *paseto.RuleError; an expiry failure is the only
// rule that maps to ErrTokenExpired, everything else means the token was not
// issued by us or did not authenticate.
func classifyParseError(err error) error {
	var ruleErr paseto.RuleError
	if errors.As(err, &ruleErr) {
		if strings.Contains(err.Error(), "expired") {
			return fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if strings.Contains(err.Error(), "decrypt") || strings.Contains(err.Error(), "authenticat") {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedToken, err)
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessTokenDuration
}
