package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to PostgreSQL with the configured pool and pings it.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.DBLogMode {
		logLevel = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database (host %s): %w", cfg.DBHost, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established")
	return db, nil
}

// Migrate enables PostGIS and creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		return fmt.Errorf("enable postgis: %w", err)
	}
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ReportStatus{},
		&models.Location{},
		&models.Report{},
		&models.Verification{},
		&models.Media{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedStatuses makes sure Pending, Verified and Rejected exist.
func SeedStatuses(ctx context.Context, store repository.Store) error {
	for _, name := range models.SeedStatuses {
		if _, err := store.Statuses().Ensure(ctx, name); err != nil {
			return fmt.Errorf("seed status %s: %w", name, err)
		}
	}
	return nil
}

// SeedAdmin creates the configured admin once. It does nothing unless
// ADMIN_EMAIL and ADMIN_PASSWORD are both set.
func SeedAdmin(ctx context.Context, cfg *Config, store repository.Store, hasher utils.PasswordHasher) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	email := services.NormalizeEmail(cfg.AdminEmail)
	if _, err := store.Users().GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.User{
		Name:     cfg.AdminName,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := store.Users().Create(ctx, admin); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("create admin: %w", err)
	}
	slog.Info("admin account seeded", "email", email)
	return nil
}
