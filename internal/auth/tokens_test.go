package auth

import (
	"errors"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/reellog/reellog-server/internal/domain"
)

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()
	key := paseto.NewV4SymmetricKey()
	svc, err := NewTokenService(key.ExportHex(), duration)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func testAccount() *domain.Account {
	now := time.Now()
	return &domain.Account{
		ID:        42,
		Username:  "tester",
		Email:     "tester@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewTokenService_BadKey(t *testing.T) {
	if _, err := NewTokenService("tooshort", time.Hour); err == nil {
		t.Error("expected error for short key")
	}
	// Right length, invalid hex.
	bad := make([]byte, 64)
	for i := range bad {
		bad[i] = 'z'
	}
	if _, err := NewTokenService(string(bad), time.Hour); err == nil {
		t.Error("expected error for non-hex key")
	}
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	account := testAccount()

	token, err := svc.GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}

	if claims.AccountID != 42 {
		t.Errorf("AccountID: got %d, want 42", claims.AccountID)
	}
	if claims.Email != "tester@example.com" {
		t.Errorf("Email: got %q, want %q", claims.Email, "tester@example.com")
	}
	if claims.Subject != "42" {
		t.Errorf("Subject: got %q, want %q", claims.Subject, "42")
	}
	if claims.Issuer != "reellog-server" {
		t.Errorf("Issuer: got %q, want %q", claims.Issuer, "reellog-server")
	}
	if claims.TokenID == "" {
		t.Error("TokenID: expected non-empty jti")
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	// Negative duration produces an already-expired token.
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.GenerateAccessToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = svc.VerifyAccessToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, token := range []string{"", "garbage", "v2.local.abcdef", "Bearer something"} {
		_, err := svc.VerifyAccessToken(token)
		if !errors.Is(err, ErrMalformedToken) {
			t.Errorf("VerifyAccessToken(%q): expected ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)
	verifier := newTestTokenService(t, time.Hour)

	token, err := issuer.GenerateAccessToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	_, err = verifier.VerifyAccessToken(token)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature for foreign key, got %v", err)
	}
}

func TestVerifyAccessToken_Tampered(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.GenerateAccessToken(testAccount())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	// Flip a character in the ciphertext.
	tampered := []byte(token)
	pos := len(tampered) - 5
	if tampered[pos] == 'A' {
		tampered[pos] = 'B'
	} else {
		tampered[pos] = 'A'
	}

	_, err = svc.VerifyAccessToken(string(tampered))
	if err == nil {
		t.Fatal("expected error for tampered token, got nil")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Errorf("tampered token should not classify as expired: %v", err)
	}
}

func TestAccessTokenDuration(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour)
	if svc.AccessTokenDuration() != 24*time.Hour {
		t.Errorf("AccessTokenDuration: got %v, want 24h", svc.AccessTokenDuration())
	}
}
