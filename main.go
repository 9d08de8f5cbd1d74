package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/cyber-thread/internal/config"
	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/handler"
	"github.com/msomdec/cyber-thread/internal/media/imagekit"
	"github.com/msomdec/cyber-thread/internal/media/s3store"
	"github.com/msomdec/cyber-thread/internal/metrics"
	"github.com/msomdec/cyber-thread/internal/repository/mysql"
	"github.com/msomdec/cyber-thread/internal/repository/postgres"
	"github.com/msomdec/cyber-thread/internal/repository/sqlite"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore"
	"github.com/msomdec/cyber-thread/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "driver", db.Dialect())

	m := metrics.New()
	if err := m.RegisterDB(db.SqlDB, db.Dialect()); err != nil {
		slog.Error("failed to register database metrics", "error", err)
		os.Exit(1)
	}

	uploader, err := newUploader(ctx, cfg.Media)
	if err != nil {
		slog.Error("failed to configure media host", "backend", cfg.Media.Backend, "error", err)
		os.Exit(1)
	}

	deps := handler.Deps{
		Auth:          service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost),
		Posts:         service.NewPostService(db.Posts()),
		Profiles:      service.NewProfileService(db.Users(), db.Posts()),
		Media:         service.NewMediaService(m.InstrumentUploader(uploader, cfg.Media.Backend), cfg.Media.TempDir, cfg.Media.MaxUploadBytes),
		Store:         db,
		Metrics:       m,
		CookieSecure:  cfg.CookieSecure,
		PostFolder:    cfg.Media.PostFolder,
		ProfileFolder: cfg.Media.ProfileFolder,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv, "media", cfg.Media.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlstore.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(cfg.URL)
	case "postgres":
		return postgres.New(ctx, cfg.URL, cfg.MaxConns)
	case "mysql":
		return mysql.New(ctx, cfg.URL, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func newUploader(ctx context.Context, cfg config.MediaConfig) (domain.MediaUploader, error) {
	switch cfg.Backend {
	case "imagekit":
		client, err := imagekit.New(cfg.ImageKit)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "s3":
		uploader, err := s3store.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return uploader, nil
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}
