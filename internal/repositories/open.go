package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fraudscope/internal/config"
	"fraudscope/internal/repositories/cache"
)

const connectTimeout = 5 * time.Second

// Open builds the Store selected by cfg.Store.Driver and checks that it
// answers before returning it.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, error) {
	var store Store

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store = NewGormStore(db)
	case config.DriverRedis:
		client := cache.NewRedisClient(cfg.Redis)
		store = cache.NewRedisStore(client, cfg.Redis.KeyPrefix)
	case config.DriverMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s store unreachable: %w", store.Name(), err)
	}

	logger.Info("store connected", "driver", store.Name())
	return store, nil
}
