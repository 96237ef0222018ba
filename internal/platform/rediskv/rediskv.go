// Package rediskv implements store.KVStore on Redis strings.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const backendName = "redis"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// client is the subset of *goredis.Client used by Store.
type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Close() error
}

// Store is a store.KVStore backed by Redis. Values never expire.
type Store struct {
	rdb    client
	logger *slog.Logger
}

var _ store.KVStore = (*Store)(nil)

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		return nil, store.NewStoreError(backendName, "open", "", "missing address", store.ErrNotInitialized)
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, store.NewStoreError(backendName, "open", "", "ping failed", mapError(err))
	}

	logger = logger.With(slog.String("component", "rediskv"))
	logger.InfoContext(ctx, "Redis connection established", "addr", opts.Addr, "db", opts.DB)

	return &Store{rdb: rdb, logger: logger}, nil
}

// Get implements store.KVStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.NewStoreError(backendName, "get", key, "key cannot be empty", store.ErrInvalidKey)
	}

	value, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.NewStoreError(backendName, "get", key, "GET failed", mapError(err))
	}
	return value, true, nil
}

// Set implements store.KVStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.NewStoreError(backendName, "set", key, "key cannot be empty", store.ErrInvalidKey)
	}

	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return store.NewStoreError(backendName, "set", key, "SET failed", mapError(err))
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// mapError classifies connection failures as store.ErrUnavailable.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, goredis.ErrClosed) {
		return fmt.Errorf("%w: %v", store.ErrClosed, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}
