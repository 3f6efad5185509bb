package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/token"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.user(t, "dup@example.com")

	_, err := f.auth.Register(context.Background(), RegisterInput{Name: "Other", Email: " DUP@example.com ", Password: "password123"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterAlwaysCreatesRegularUser(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "plain@example.com")
	if user.Role != models.RoleUser {
		t.Fatalf("expected role user, got %q", user.Role)
	}
	if user.Password == "password123" {
		t.Fatalf("password stored in clear text")
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	cases := []RegisterInput{
		{Name: "", Email: "a@example.com", Password: "password123"},
		{Name: "A", Email: "not-an-email", Password: "password123"},
		{Name: "A", Email: "a@example.com", Password: "123"},
	}
	for _, in := range cases {
		var verr *ValidationError
		if _, err := f.auth.Register(context.Background(), in); !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestEmailAvailable(t *testing.T) {
	f := newFixture(t)
	f.user(t, "taken@example.com")
	ctx := context.Background()

	if ok, err := f.auth.EmailAvailable(ctx, "taken@example.com"); err != nil || ok {
		t.Fatalf("expected taken, got ok=%v err=%v", ok, err)
	}
	if ok, err := f.auth.EmailAvailable(ctx, "free@example.com"); err != nil || !ok {
		t.Fatalf("expected available, got ok=%v err=%v", ok, err)
	}
}

func TestLoginIssuesTokenAndOneSession(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "login@example.com")

	pair, err := f.auth.Login(context.Background(), "login@example.com", "password123", "pixel")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := f.tokens.DecodeAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != user.Email || claims.UserID != user.ID.String() || claims.Role != models.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if pair.TokenType != "bearer" || pair.RefreshToken == "" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
	if n := f.activeSessions(t, user); n != 1 {
		t.Fatalf("expected 1 active session, got %d", n)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.user(t, "wrong@example.com")
	ctx := context.Background()

	if _, err := f.auth.Login(ctx, "wrong@example.com", "nope-nope", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "ghost@example.com", "password123", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRefreshBeforeAndAfterRevocation(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "refresh@example.com")
	ctx := context.Background()

	pair, err := f.auth.Login(ctx, user.Email, "password123", "web")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	before, _ := f.registry.FindByToken(ctx, pair.RefreshToken)

	time.Sleep(2 * time.Millisecond)
	refreshed, err := f.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken != pair.RefreshToken {
		t.Fatalf("unexpected refresh result: %+v", refreshed)
	}
	after, _ := f.registry.FindByToken(ctx, pair.RefreshToken)
	if !after.LastUsedAt.After(before.LastUsedAt) {
		t.Fatalf("last_used_at not updated")
	}
	if n := f.activeSessions(t, user); n != 1 {
		t.Fatalf("refresh must not create sessions, got %d", n)
	}

	if err := f.auth.Logout(ctx, user, pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials after revoke, got %v", err)
	}
}

func TestRefreshWithRotation(t *testing.T) {
	f := newFixture(t)
	f.auth.cfg.RotateRefreshToken = true
	user := f.user(t, "rotate@example.com")
	ctx := context.Background()

	pair, _ := f.auth.Login(ctx, user.Email, "password123", "")
	rotated, err := f.auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}
	if _, err := f.auth.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old refresh token should be dead, got %v", err)
	}
	if n := f.activeSessions(t, user); n != 1 {
		t.Fatalf("rotation must reuse the session row, got %d", n)
	}
}

func TestLogoutOtherUsersSessionForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	ctx := context.Background()

	pair, _ := f.auth.Login(ctx, owner.Email, "password123", "")
	if err := f.auth.Logout(ctx, other, pair.RefreshToken); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if n := f.activeSessions(t, owner); n != 1 {
		t.Fatalf("session should still be active")
	}
}

func TestLogoutTwiceIsNoop(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "twice@example.com")
	ctx := context.Background()

	pair, _ := f.auth.Login(ctx, user.Email, "password123", "")
	if err := f.auth.Logout(ctx, user, pair.RefreshToken); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	first, _ := f.registry.FindByToken(ctx, pair.RefreshToken)
	if err := f.auth.Logout(ctx, user, pair.RefreshToken); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	second, _ := f.registry.FindByToken(ctx, pair.RefreshToken)
	if !first.RevokedAt.Equal(*second.RevokedAt) {
		t.Fatalf("second logout changed revoked_at")
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "all@example.com")
	bystander := f.user(t, "bystander@example.com")
	ctx := context.Background()

	const n = 4
	for i := 0; i < n; i++ {
		if _, err := f.auth.Login(ctx, user.Email, "password123", ""); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	f.auth.Login(ctx, bystander.Email, "password123", "")

	revoked, err := f.auth.LogoutAll(ctx, user)
	if err != nil {
		t.Fatalf("logout all: %v", err)
	}
	if revoked != n {
		t.Fatalf("expected %d revoked, got %d", n, revoked)
	}
	if got := f.activeSessions(t, user); got != 0 {
		t.Fatalf("expected 0 active sessions, got %d", got)
	}
	if got := f.activeSessions(t, bystander); got != 1 {
		t.Fatalf("other users keep their sessions, got %d", got)
	}
}

func TestRevokeSessionByID(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "byid@example.com")
	other := f.user(t, "byid-other@example.com")
	ctx := context.Background()

	pair, _ := f.auth.Login(ctx, user.Email, "password123", "")
	session, _ := f.registry.FindByToken(ctx, pair.RefreshToken)

	if err := f.auth.RevokeSession(ctx, other, session.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.auth.RevokeSession(ctx, user, session.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if got := f.activeSessions(t, user); got != 0 {
		t.Fatalf("expected session revoked")
	}
}

func TestSweepExpiredSessions(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "sweep@example.com")
	ctx := context.Background()

	if _, err := f.registry.Create(ctx, user.ID, "old", 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.registry.now = func() time.Time { return time.Now().UTC().Add(48 * time.Hour) }
	n, err := f.registry.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
}

func TestSessionRegistryRejectsNonPositiveTTL(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "ttl@example.com")
	var verr *ValidationError
	if _, err := f.registry.Create(context.Background(), user.ID, "", 0); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSessionRegistryRetriesTokenCollision(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "collide@example.com")
	ctx := context.Background()

	tokens := []string{"same", "same", "fresh"}
	f.registry.newToken = func() (string, error) {
		next := tokens[0]
		tokens = tokens[1:]
		return next, nil
	}
	if _, err := f.registry.Create(ctx, user.ID, "", 1); err != nil {
		t.Fatalf("first create: %v", err)
	}
	session, err := f.registry.Create(ctx, user.ID, "", 1)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if session.RefreshToken != "fresh" {
		t.Fatalf("expected retry to pick a fresh token, got %q", session.RefreshToken)
	}
}

func TestGateAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "gate@example.com")
	ctx := context.Background()

	access, _, _ := f.tokens.IssueAccessToken(user.Email, user.ID.String(), user.Role, 0)
	got, err := f.gate.Authenticate(ctx, access)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("wrong user resolved")
	}

	if _, err := f.gate.Authenticate(ctx, "garbage"); !errors.Is(err, ErrUnauthenticated) || !errors.Is(err, token.ErrTokenInvalid) {
		t.Fatalf("expected unauthenticated invalid token, got %v", err)
	}

	ghost, _, _ := f.tokens.IssueAccessToken("ghost@example.com", "x", models.RoleUser, 0)
	if _, err := f.gate.Authenticate(ctx, ghost); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for unknown user, got %v", err)
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "o@example.com")
	stranger := f.user(t, "s@example.com")
	admin := f.admin(t, "a@example.com")

	if err := RequireOwnerOrAdmin(owner.ID, owner); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	if err := RequireOwnerOrAdmin(owner.ID, admin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if err := RequireOwnerOrAdmin(owner.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger should be forbidden, got %v", err)
	}
	if err := RequireOwnerOrAdmin(owner.ID, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("nil caller should be unauthenticated, got %v", err)
	}
	if err := RequireAdmin(owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin should be forbidden, got %v", err)
	}
}
