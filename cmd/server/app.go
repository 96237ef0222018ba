package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/history"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/filekv"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/provider"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/rediskv"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/sqlkv"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv      store.KVStore
	closeKV func() error

	backend   generation.Backend
	generator generation.Generator
	history   *history.Store
	sessions  *session.Manager
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	backend, err := provider.NewBackend(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	kv, closeKV, err := openKVStore(ctx, cfg.History, logger)
	if err != nil {
		return nil, err
	}

	app, err := assembleApplication(ctx, cfg, logger, backend, kv)
	if err != nil {
		if closeErr := closeKV(); closeErr != nil {
			logger.Error("Error closing history store", "error", closeErr)
		}
		return nil, err
	}
	app.closeKV = closeKV

	logger.Info("Application initialized successfully")
	return app, nil
}

// assembleApplication wires the generation client, history and sessions
// over an already-built backend and key-value store.
func assembleApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	backend generation.Backend,
	kv store.KVStore,
) (*application, error) {
	client, err := provider.WrapBackend(backend, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	hist, err := history.New(ctx, kv, logger,
		history.WithCapacity(cfg.History.Capacity),
		history.WithKey(cfg.History.Key))
	if err != nil {
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}
	logger.Info("History loaded", "entries", len(hist.List()), "capacity", hist.Capacity())

	sessions, err := session.NewManager(client, hist, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    logger,
		kv:        kv,
		closeKV:   func() error { return nil },
		backend:   backend,
		generator: client,
		history:   hist,
		sessions:  sessions,
	}, nil
}

// openKVStore opens the history backend named in the configuration. The
// returned close function is never nil.
func openKVStore(ctx context.Context, cfg config.HistoryConfig, logger *slog.Logger) (store.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("History is kept in memory only and is lost on restart")
		return store.NewMemoryStore(), noop, nil

	case config.BackendFile:
		kv, err := filekv.New(cfg.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history file: %w", err)
		}
		logger.Info("History store ready", "backend", cfg.Backend, "path", kv.Path())
		return kv, noop, nil

	case config.BackendSQLite, config.BackendPostgres:
		dialect, dsn := sqlkv.DialectSQLite, cfg.SQLitePath
		if cfg.Backend == config.BackendPostgres {
			dialect, dsn = sqlkv.DialectPostgres, cfg.DatabaseURL
		}
		kv, err := sqlkv.Open(ctx, dialect, dsn, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s history store: %w", cfg.Backend, err)
		}
		logger.Info("History store ready", "backend", cfg.Backend)
		return kv, kv.Close, nil

	case config.BackendRedis:
		kv, err := rediskv.Open(ctx, rediskv.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis history store: %w", err)
		}
		logger.Info("History store ready", "backend", cfg.Backend, "addr", cfg.RedisAddr)
		return kv, kv.Close, nil

	default:
		return nil, nil, errors.New("unknown history backend: " + cfg.Backend)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	pruneCtx, cancelPrune := context.WithCancel(ctx)
	defer cancelPrune()
	idle := time.Duration(app.config.Server.SessionIdleMinutes) * time.Minute
	go app.sessions.RunPruner(pruneCtx, idle/4+time.Minute, idle)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closeKV != nil {
		if err := app.closeKV(); err != nil {
			app.logger.Error("Error closing history store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
