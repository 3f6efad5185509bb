package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestMaker(t *testing.T) *JWTMaker {
	t.Helper()
	maker, err := NewJWTMaker("test-secret", "HS256", 0)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}
	return maker
}

func TestIssueAndDecode(t *testing.T) {
	maker := newTestMaker(t)
	signed, _, err := maker.IssueAccessToken("a@example.com", "user-1", "admin", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := maker.DecodeAccessToken(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "a@example.com" || claims.UserID != "user-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDefaultTTLIsFifteenMinutes(t *testing.T) {
	maker := newTestMaker(t)
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	maker.now = func() time.Time { return fixed }

	_, claims, err := maker.IssueAccessToken("a@example.com", "u", "user", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(fixed); got != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %v", got)
	}
}

func TestDecodeExpired(t *testing.T) {
	maker := newTestMaker(t)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	maker.now = func() time.Time { return issued }
	signed, _, err := maker.IssueAccessToken("a@example.com", "u", "user", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	maker.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := maker.DecodeAccessToken(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	maker := newTestMaker(t)
	other, err := NewJWTMaker("other-secret", "HS256", 0)
	if err != nil {
		t.Fatalf("new maker: %v", err)
	}
	signed, _, _ := other.IssueAccessToken("a@example.com", "u", "user", 0)
	if _, err := maker.DecodeAccessToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	maker := newTestMaker(t)
	if _, err := maker.DecodeAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeRejectsMissingSubject(t *testing.T) {
	maker := newTestMaker(t)
	claims := &Claims{
		UserID: "u",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := maker.DecodeAccessToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeRejectsOtherAlgorithm(t *testing.T) {
	maker := newTestMaker(t)
	claims, _ := NewClaims("a@example.com", "u", "user", time.Now(), time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := maker.DecodeAccessToken(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewJWTMakerRejectsUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewJWTMaker("secret", "RS256", 0); err == nil {
		t.Fatalf("expected error for RS256")
	}
	if _, err := NewJWTMaker("", "HS256", 0); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}
	b, _ := NewRefreshToken()
	if a == b {
		t.Fatalf("refresh tokens should differ")
	}
	raw, err := base64.RawURLEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("not url-safe base64: %v", err)
	}
	if len(raw) < 32 {
		t.Fatalf("expected at least 32 bytes, got %d", len(raw))
	}
}
