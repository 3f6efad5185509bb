package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Users() UserRepository                 { return &gormUserRepository{db: s.db} }
func (s *GormStore) Sessions() SessionRepository           { return &gormSessionRepository{db: s.db} }
func (s *GormStore) Locations() LocationRepository         { return &gormLocationRepository{db: s.db} }
func (s *GormStore) Reports() ReportRepository             { return &gormReportRepository{db: s.db} }
func (s *GormStore) Statuses() ReportStatusRepository      { return &gormReportStatusRepository{db: s.db} }
func (s *GormStore) Verifications() VerificationRepository { return &gormVerificationRepository{db: s.db} }
func (s *GormStore) Media() MediaRepository                { return &gormMediaRepository{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInUse
	}
	return err
}

// affected turns a zero-row write into ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func paginate(page Page) func(*gorm.DB) *gorm.DB {
	page = page.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Skip).Limit(page.Limit)
	}
}
