// Package token issues and validates access tokens and mints opaque refresh tokens.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	refreshTokenBytes = 32
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type JWTMaker struct {
	secretKey  []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWTMaker accepts HS256, HS384 or HS512. A non-positive defaultTTL falls
// back to DefaultAccessTTL.
func NewJWTMaker(secretKey, algorithm string, defaultTTL time.Duration) (*JWTMaker, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultAccessTTL
	}
	return &JWTMaker{
		secretKey:  []byte(secretKey),
		method:     method,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

func (maker *JWTMaker) DefaultTTL() time.Duration {
	return maker.defaultTTL
}

// IssueAccessToken signs {sub, user_id, role, exp}. ttl <= 0 uses the maker default.
func (maker *JWTMaker) IssueAccessToken(email, userID, role string, ttl time.Duration) (string, *Claims, error) {
	if ttl <= 0 {
		ttl = maker.defaultTTL
	}
	claims, err := NewClaims(email, userID, role, maker.now(), ttl)
	if err != nil {
		return "", nil, fmt.Errorf("build claims: %w", err)
	}
	signed, err := jwt.NewWithClaims(maker.method, claims).SignedString(maker.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// DecodeAccessToken returns ErrTokenExpired for a well-signed token past its
// exp and ErrTokenInvalid for anything else that fails.
func (maker *JWTMaker) DecodeAccessToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return maker.secretKey, nil
	},
		jwt.WithValidMethods([]string{maker.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(maker.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrTokenInvalid)
	}
	return claims, nil
}

// NewRefreshToken returns 32 random bytes, URL-safe base64 encoded.
func NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
