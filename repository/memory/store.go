// Package memory keeps every repository in process. It backs DB_DRIVER=memory
// for local runs and is the fixture store in handler and service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type state struct {
	users         map[uuid.UUID]models.User
	sessions      map[uuid.UUID]models.Session
	locations     map[uuid.UUID]models.Location
	reports       map[uuid.UUID]models.Report
	statuses      map[uuid.UUID]models.ReportStatus
	verifications map[uuid.UUID]models.Verification
	media         map[uuid.UUID]models.Media
}

func newState() *state {
	return &state{
		users:         make(map[uuid.UUID]models.User),
		sessions:      make(map[uuid.UUID]models.Session),
		locations:     make(map[uuid.UUID]models.Location),
		reports:       make(map[uuid.UUID]models.Report),
		statuses:      make(map[uuid.UUID]models.ReportStatus),
		verifications: make(map[uuid.UUID]models.Verification),
		media:         make(map[uuid.UUID]models.Media),
	}
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		users:         cloneMap(s.users),
		sessions:      cloneMap(s.sessions),
		locations:     cloneMap(s.locations),
		reports:       cloneMap(s.reports),
		statuses:      cloneMap(s.statuses),
		verifications: cloneMap(s.verifications),
		media:         cloneMap(s.media),
	}
}

// Store implements repository.Store with maps guarded by one mutex.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
	last time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty store with the report statuses seeded.
func NewStore() *Store {
	s := &Store{data: newState()}
	for _, name := range models.SeedStatuses {
		s.Statuses().Ensure(context.Background(), name)
	}
	return s
}

// stamp returns a strictly increasing timestamp so created_at ordering is stable.
// Callers must hold mu.
func (s *Store) stamp() time.Time {
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

func (s *Store) Users() repository.UserRepository                 { return &userRepository{s} }
func (s *Store) Sessions() repository.SessionRepository           { return &sessionRepository{s} }
func (s *Store) Locations() repository.LocationRepository         { return &locationRepository{s} }
func (s *Store) Reports() repository.ReportRepository             { return &reportRepository{s} }
func (s *Store) Statuses() repository.ReportStatusRepository      { return &statusRepository{s} }
func (s *Store) Verifications() repository.VerificationRepository { return &verificationRepository{s} }
func (s *Store) Media() repository.MediaRepository                { return &mediaRepository{s} }

// Transaction snapshots the data and restores it when fn fails. Transactions
// are serialized with each other but not with writes made outside one.
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func window[T any](items []T, page repository.Page) []T {
	page = page.Normalize()
	if page.Skip >= len(items) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}
