package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository/memory"
	"github.com/ishala/illegal-waste-reporter-BE/storage"
	"github.com/ishala/illegal-waste-reporter-BE/token"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store         *memory.Store
	objects       *storage.MemoryStore
	tokens        *token.JWTMaker
	hasher        *utils.BcryptHasher
	registry      *SessionRegistry
	gate          *Gate
	auth          *AuthService
	media         *MediaService
	reports       *ReportService
	verifications *VerificationService
	locations     *LocationService
	users         *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	objects := storage.NewMemoryStore("")
	tokens, err := token.NewJWTMaker("test-secret", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("jwt maker: %v", err)
	}
	hasher := utils.NewBcryptHasher(bcrypt.MinCost)
	registry := NewSessionRegistry(store.Sessions())
	media := NewMediaService(store, objects, MediaConfig{MaxImageBytes: 1 << 20, MaxVideoBytes: 4 << 20})
	return &fixture{
		store:         store,
		objects:       objects,
		tokens:        tokens,
		hasher:        hasher,
		registry:      registry,
		gate:          NewGate(tokens, store.Users()),
		auth:          NewAuthService(store.Users(), hasher, tokens, registry, AuthConfig{RefreshTTLDays: 7}),
		media:         media,
		reports:       NewReportService(store, media),
		verifications: NewVerificationService(store),
		locations:     NewLocationService(store.Locations()),
		users:         NewUserService(store, hasher, media),
	}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), RegisterInput{Name: "Test User", Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (f *fixture) admin(t *testing.T, email string) *models.User {
	t.Helper()
	user := f.user(t, email)
	user.Role = models.RoleAdmin
	if err := f.store.Users().Update(context.Background(), user); err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	return user
}

func (f *fixture) report(t *testing.T, owner *models.User, files ...MediaFile) *models.Report {
	t.Helper()
	report, err := f.reports.Create(context.Background(), owner, CreateReportInput{
		Category:    "household",
		Description: "bags dumped by the river",
		Latitude:    -6.2088,
		Longitude:   106.8456,
		Address:     "Jl. Sudirman",
		City:        "Jakarta",
		Files:       files,
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	return report
}

func file(name, contentType, body string) MediaFile {
	return MediaFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func (f *fixture) activeSessions(t *testing.T, user *models.User) int {
	t.Helper()
	sessions, err := f.registry.ListActive(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	return len(sessions)
}
