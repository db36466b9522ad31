package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/utafrali/PrinterCatalog/pkg/cache"
)

// Cache keys, relative to the cache prefix.
const (
	keyBrandCount   = "brands:count"
	keyBrandList    = "brands:list"
	keyPrinterCount = "printers:count"
	keyPrinterList  = "printers:list"
)

// readCache serves count and list reads from the cache. Cache failures
// are logged and never surface to the caller.
type readCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func readThrough[T any](ctx context.Context, rc readCache, key string, load func(context.Context) (T, error)) (T, error) {
	data, err := rc.cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal(data, &v)
		if jsonErr == nil {
			return v, nil
		}
		rc.logger.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", jsonErr.Error()),
		)
	case !errors.Is(err, cache.ErrMiss):
		rc.logger.WarnContext(ctx, "cache read failed, falling back to database",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	encoded, err := json.Marshal(v)
	if err == nil {
		err = rc.cache.Set(ctx, key, encoded, rc.ttl)
	}
	if err != nil {
		rc.logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return v, nil
}

func (rc readCache) invalidate(ctx context.Context, keys ...string) {
	if err := rc.cache.Delete(ctx, keys...); err != nil {
		rc.logger.WarnContext(ctx, "cache invalidation failed",
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}
