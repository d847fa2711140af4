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

	"github.com/urfave/cli/v2"

	"github.com/Shivanand-hulikatti/event-calendar/internal/config"
	"github.com/Shivanand-hulikatti/event-calendar/internal/database"
	"github.com/Shivanand-hulikatti/event-calendar/internal/handler"
	"github.com/Shivanand-hulikatti/event-calendar/internal/logging"
	"github.com/Shivanand-hulikatti/event-calendar/internal/repository"
	"github.com/Shivanand-hulikatti/event-calendar/internal/service"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Listen host (overrides HOST)."},
			&cli.StringFlag{Name: "port", Usage: "Listen port (overrides PORT)."},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	path := c.String("config")
	loader, err := config.NewLoader(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := loader.Config()
	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Port = c.String("port")
	}

	logger, level := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	loader.OnChange(func(next *config.Config) {
		level.Set(logging.ParseLevel(next.LogLevel))
		logger.Info("config reloaded", "log_level", next.LogLevel, "frontend_urls", next.FrontendURLs)
	})
	loader.OnError(func(err error) {
		logger.Warn("config reload failed, keeping previous settings", "err", err)
	})
	if path != "" {
		stop, err := loader.Watch()
		if err != nil {
			logger.Warn("config watcher disabled", "err", err)
		} else {
			defer stop()
		}
	}

	// ── 1. Connect to the event store ───────────────────────────────────
	ctx := c.Context
	repo, closeStore, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.NewEventService(repo)
	router := handler.NewRouter(svc, logger, func() []string {
		return loader.Config().FrontendURLs
	})

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, db config.DatabaseConfig, logger *slog.Logger) (repository.EventRepository, func(), error) {
	switch db.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory event store; data is lost on exit")
		return repository.NewMemoryEventRepository(), func() {}, nil

	case config.DriverMongo:
		client, err := database.NewMongo(ctx, db.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		repo, err := repository.NewMongoEventRepository(ctx, client.Database(db.Name))
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		logger.Info("connected to MongoDB", "database", db.Name)
		return repo, closeFn, nil

	default:
		pool, err := database.NewPool(ctx, db.DSN(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		logger.Info("connected to PostgreSQL")
		return repository.NewPostgresEventRepository(pool), pool.Close, nil
	}
}
