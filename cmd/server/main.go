package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	specpkg "github.com/jack-dao/team-management/api"
	"github.com/jack-dao/team-management/internal/api"
	"github.com/jack-dao/team-management/internal/api/handler"
	"github.com/jack-dao/team-management/internal/config"
	"github.com/jack-dao/team-management/internal/database"
	"github.com/jack-dao/team-management/internal/member"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	repo, pinger, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	router := api.NewRouter(api.RouterDeps{
		DBPinger:       pinger,
		Version:        cfg.Version,
		Members:        member.NewService(repo),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		OpenAPISpec:    specpkg.OpenAPISpec,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting team management server", "port", cfg.Port, "version", cfg.Version, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		closeStore()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		closeStore()
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openStore builds the repository for the configured backend. The returned
// pinger is nil for the in-memory backend.
func openStore(ctx context.Context, cfg *config.Config) (member.Repository, handler.DBPinger, func(), error) {
	if cfg.StorageBackend == config.BackendMemory {
		slog.Warn("using in-memory storage; data is lost on restart")
		return member.NewMemoryRepository(), nil, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.New(connectCtx, database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}

	return member.NewRepository(db.Pool()), db, db.Close, nil
}
