package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/config"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/repository/memory"
	"github.com/ishala/illegal-waste-reporter-BE/routes"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/token"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Info("loaded environment", "environment", cfg.Environment)

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := utils.NewBcryptHasher(cfg.BcryptCost)
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := config.SeedAdmin(ctx, cfg, store, hasher); err != nil {
		return err
	}

	objects, err := config.NewObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	limiter, closeLimiter, err := config.NewAuthLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	secret := cfg.SecretKey
	if secret == "" {
		slog.Warn("SECRET_KEY not set, using an insecure development key")
		secret = "development-only-secret"
	}
	tokens, err := token.NewJWTMaker(secret, cfg.Algorithm, cfg.AccessTTL())
	if err != nil {
		return err
	}

	registry := services.NewSessionRegistry(store.Sessions())
	media := services.NewMediaService(store, objects, services.MediaConfig{
		MaxImageBytes: cfg.MediaMaxImageBytes,
		MaxVideoBytes: cfg.MediaMaxVideoBytes,
		URLExpiry:     cfg.MediaURLExpiry(),
	})
	deps := routes.Dependencies{
		Store: store,
		Gate:  services.NewGate(tokens, store.Users()),
		Auth: services.NewAuthService(store.Users(), hasher, tokens, registry, services.AuthConfig{
			AccessTTL:          cfg.AccessTTL(),
			RefreshTTLDays:     cfg.RefreshTokenExpireDays,
			RotateRefreshToken: cfg.RotateRefreshTokens,
		}),
		Users:         services.NewUserService(store, hasher, media),
		Reports:       services.NewReportService(store, media),
		Locations:     services.NewLocationService(store.Locations()),
		Media:         media,
		Verifications: services.NewVerificationService(store),
		AuthLimiter:   limiter,
	}
	router := routes.NewRouter(deps, routes.RouterOptions{
		Prefix:      cfg.APIV1Prefix,
		CORSOrigins: cfg.CORSOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return services.RunSessionSweeper(gctx, registry, cfg.SessionSweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore returns the repository store selected by DB_DRIVER, migrated and seeded.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.DBDriver == config.DBDriverMemory {
		slog.Warn("DB_DRIVER=memory, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := config.Migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	store := repository.NewGormStore(db)
	if err := config.SeedStatuses(ctx, store); err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}
