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

	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/domain"
	"github.com/campushub/campushub/internal/geo"
	"github.com/campushub/campushub/internal/handler"
	"github.com/campushub/campushub/internal/repository/sqlite"
	"github.com/campushub/campushub/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenManager(cfg.JWTSecret)
	geoClient := geo.NewClient(cfg.GeoEndpoint)

	authService := service.NewAuthService(db.Users(), hasher, tokens, geoClient)
	mediaService := service.NewMediaService(db.Files(), cfg.PublicBaseURL)
	userService := service.NewUserService(db.Users(), hasher, tokens, mediaService)

	// Bootstrap the initial super_admin (idempotent).
	if cfg.SeedAdminEmail != "" {
		if err := seedAdmin(context.Background(), authService, db.Users(), cfg); err != nil {
			slog.Error("failed to seed admin account", "error", err)
			os.Exit(1)
		}
	}

	// Allow short bursts against the credential endpoints, refill slowly.
	limiter := service.NewLoginLimiter(0.5, 10)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, userService, mediaService, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// seedAdmin registers the configured super_admin account if it does not
// already exist.
func seedAdmin(ctx context.Context, auth *service.AuthService, users domain.UserRepository, cfg *config.Config) error {
	if _, err := users.GetByEmail(ctx, cfg.SeedAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	_, _, err := auth.Register(ctx, "Administrator", cfg.SeedAdminEmail, cfg.SeedAdminPassword, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	slog.Info("seeded super_admin account", "email", cfg.SeedAdminEmail)
	return nil
}
