package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

const MinPasswordLength = 6

type AuthConfig struct {
	AccessTTL          time.Duration
	RefreshTTLDays     int
	RotateRefreshToken bool
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService struct {
	users    repository.UserRepository
	hasher   utils.PasswordHasher
	tokens   TokenIssuer
	sessions *SessionRegistry
	cfg      AuthConfig
}

func NewAuthService(users repository.UserRepository, hasher utils.PasswordHasher, tokens TokenIssuer, sessions *SessionRegistry, cfg AuthConfig) *AuthService {
	if cfg.RefreshTTLDays <= 0 {
		cfg.RefreshTTLDays = 7
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, sessions: sessions, cfg: cfg}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email", "is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return invalid("password", "must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Register creates a regular user. The role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Name: name, Email: email, Password: hash, Role: models.RoleUser}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return false, err
	}
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, repository.ErrNotFound):
		return true, nil
	}
	return false, err
}

func (s *AuthService) issue(user *models.User, refresh string) (*TokenPair, error) {
	access, claims, err := s.tokens.IssueAccessToken(user.Email, user.ID.String(), user.Role, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(time.Until(claims.ExpiresAt.Time).Round(time.Second).Seconds()),
	}, nil
}

// Login checks the password and opens a new session for the device.
func (s *AuthService) Login(ctx context.Context, email, password, deviceName string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID, deviceName, s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	return s.issue(user, session.RefreshToken)
}

// Refresh exchanges an active refresh token for a new access token. The
// session row is reused; with rotation on, its refresh token is replaced.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (*TokenPair, error) {
	session, err := s.sessions.FindActiveByToken(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if s.cfg.RotateRefreshToken {
		if refresh, err = s.sessions.Rotate(ctx, session.ID); err != nil {
			return nil, err
		}
	} else if err := s.sessions.Touch(ctx, session.ID); err != nil {
		return nil, err
	}
	return s.issue(user, refresh)
}

// Logout revokes the caller's session behind refresh. Revoking a session
// that is already inactive succeeds without changes.
func (s *AuthService) Logout(ctx context.Context, caller *models.User, refresh string) error {
	session, err := s.sessions.FindByToken(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if caller == nil || session.UserID != caller.ID {
		return ErrForbidden
	}
	if !session.ActiveAt(s.sessions.now()) {
		return nil
	}
	return s.sessions.Revoke(ctx, session.ID)
}

func (s *AuthService) LogoutAll(ctx context.Context, caller *models.User) (int64, error) {
	return s.sessions.RevokeAll(ctx, caller.ID)
}

func (s *AuthService) Sessions(ctx context.Context, caller *models.User) ([]models.Session, error) {
	return s.sessions.ListActive(ctx, caller.ID)
}

// RevokeSession revokes one session by id for its owner or an admin.
func (s *AuthService) RevokeSession(ctx context.Context, caller *models.User, id uuid.UUID) error {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwnerOrAdmin(session.UserID, caller); err != nil {
		return err
	}
	if !session.ActiveAt(s.sessions.now()) {
		return nil
	}
	return s.sessions.Revoke(ctx, session.ID)
}
