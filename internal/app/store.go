package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warrick-io/warrick/internal/platform/cache"
	"github.com/warrick-io/warrick/internal/platform/db"
	"github.com/warrick-io/warrick/internal/storage"
)

// OpenStore connects the document store selected by cfg.StoreDriver. The
// returned cleanup releases every connection it opened.
func OpenStore(ctx context.Context, cfg *Config, logger *slog.Logger) (storage.Store, func(), error) {
	switch cfg.StoreDriver {
	case DriverMemory:
		logger.Warn("using in-memory store; data is lost on exit")
		return storage.NewMemory(), func() {}, nil
	case DriverRedis:
		client, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewRedis(client, cfg.StorePrefix)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}, nil
	case DriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns})
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewPostgres(ctx, pool, cfg.StorePrefix)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
