package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	web "hotelchain/internal/adapters/http"
	"hotelchain/internal/adapters/http/middleware"
	"hotelchain/internal/adapters/storage"
	bookingStore "hotelchain/internal/adapters/storage/booking"
	roomStore "hotelchain/internal/adapters/storage/room"
	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/application/orchestrators"
	"hotelchain/internal/config"
	"hotelchain/internal/telemetry"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("startup_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))

	shutdownTelemetry := telemetry.Setup(ctx, "hotelchain", version, cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	db, err := storage.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	timedDB := storage.NewTimedDB(db, cfg.DB.Driver, cfg.SlowQuery())
	defer timedDB.Close()

	// Postgres schemas are managed outside the app.
	if cfg.DB.Driver == storage.DriverSQLite {
		if err := storage.MigrateDB(timedDB.RawDB()); err != nil {
			return err
		}
	}

	stores := &web.Stores{
		UserStore:    userStore.NewSQLStore(timedDB),
		RoomStore:    roomStore.NewSQLStore(timedDB),
		BookingStore: bookingStore.NewSQLStore(timedDB),
	}

	seedDeps := orchestrators.SeedDeps{
		UserStore:    stores.UserStore,
		RoomStore:    stores.RoomStore,
		BookingStore: stores.BookingStore,
	}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}
	if !cfg.IsProduction() {
		if err := orchestrators.ExecuteSeedDemo(ctx, seedDeps); err != nil {
			return err
		}
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	srv := web.NewServer(stores, sessions, web.Options{
		CSRFKey:        []byte(cfg.CSRFKey),
		SecureCookies:  cfg.IsProduction(),
		TrustedOrigins: cfg.TrustedOrigins(),
		SlowRequest:    cfg.SlowRequest(),
		DB:             timedDB,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      otelhttp.NewHandler(srv.Handler(), "hotelchain"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_start", "version", version, "addr", cfg.Addr, "env", cfg.Env,
			"db_driver", cfg.DB.Driver, "sessions", cfg.Session.Backend, "schema", storage.LatestSchemaVersion())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_error", "error", err.Error())
	}
	slog.Info("server_stopped")
	return nil
}

// newLogger returns a JSON logger in production and a text logger otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newSessionStore picks the session backend and returns a matching close func.
func newSessionStore(ctx context.Context, cfg *config.Config) (middleware.SessionStore, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return middleware.NewMemoryStore(), func() {}, nil
	}
	client, err := middleware.ConnectRedis(ctx, cfg.Session.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return middleware.NewRedisStore(client), func() { _ = client.Close() }, nil
}
