package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/token"
)

// TokenIssuer mints and decodes access tokens.
type TokenIssuer interface {
	IssueAccessToken(email, userID, role string, ttl time.Duration) (string, *token.Claims, error)
	DecodeAccessToken(tokenStr string) (*token.Claims, error)
}

// Gate resolves the caller behind an access token.
type Gate struct {
	tokens TokenIssuer
	users  repository.UserRepository
}

func NewGate(tokens TokenIssuer, users repository.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate decodes the token and loads the user named by its sub claim.
// Failures wrap ErrUnauthenticated and, for decode failures, the token error.
func (g *Gate) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := g.tokens.DecodeAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	user, err := g.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
		}
		return nil, err
	}
	return user, nil
}

func RequireAdmin(user *models.User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func RequireOwnerOrAdmin(ownerID uuid.UUID, user *models.User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.IsAdmin() || user.ID == ownerID {
		return nil
	}
	return ErrForbidden
}
