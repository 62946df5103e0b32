package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shirokuma-tools/shirokuma-docs/internal/storage"
)

// CachedFetch returns the cached value under key when it is fresh, and
// otherwise calls fetch and stores the result. The cache is advisory:
// store failures are logged and the live result is returned regardless.
func CachedFetch[T any](ctx context.Context, store storage.Store, logger *slog.Logger, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	var zero T
	if store != nil {
		payload, hit, err := store.GetCached(ctx, key, ttl)
		if err != nil {
			logger.Warn("cache read failed", "key", key, "error", err)
		} else if hit {
			var cached T
			if err := json.Unmarshal(payload, &cached); err == nil {
				logger.Debug("cache hit", "key", key)
				return cached, nil
			}
			logger.Warn("cache entry corrupt, refetching", "key", key)
		}
	}

	value, err := fetch()
	if err != nil {
		return zero, err
	}

	if store != nil {
		payload, err := json.Marshal(value)
		if err == nil {
			err = store.PutCached(ctx, key, payload)
		}
		if err != nil {
			logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}

// InvalidateCache drops one cache entry, logging instead of failing.
func InvalidateCache(ctx context.Context, store storage.Store, logger *slog.Logger, key string) {
	if store == nil {
		return
	}
	if err := store.InvalidateCached(ctx, key); err != nil {
		logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
