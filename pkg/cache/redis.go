package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned when the breaker rejects a call without
// reaching Redis.
var ErrUnavailable = errors.New("cache unavailable")

var cacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Cache lookups by result (hit, miss, error)",
	},
	[]string{"result"},
)

// Redis is a Cache backed by Redis and guarded by a circuit breaker. Keys
// are namespaced with prefix.
type Redis struct {
	client  redis.Cmdable
	prefix  string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewRedis wraps client as a Cache.
func NewRedis(client redis.Cmdable, prefix string, cfg BreakerConfig, logger *slog.Logger) *Redis {
	return &Redis{
		client:  client,
		prefix:  prefix,
		breaker: newBreaker(cfg, logger),
	}
}

func (c *Redis) key(k string) string {
	return c.prefix + k
}

// Get returns the cached value or ErrMiss.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		b, err := c.client.Get(ctx, c.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return b, err
	})
	switch {
	case err == nil:
		cacheRequestsTotal.WithLabelValues("hit").Inc()
		return data, nil
	case errors.Is(err, ErrMiss):
		cacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, ErrMiss
	default:
		cacheRequestsTotal.WithLabelValues("error").Inc()
		return nil, c.wrap("get", key, err)
	}
}

// Set stores value under key for ttl.
func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, c.key(key), value, ttl).Err()
	})
	if err != nil {
		return c.wrap("set", key, err)
	}
	return nil
}

// Delete removes keys. Missing keys are not an error.
func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, full...).Err()
	})
	if err != nil {
		return c.wrap("del", fmt.Sprint(keys), err)
	}
	return nil
}

func (c *Redis) wrap(op, key string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("redis %s %s: %w: %w", op, key, ErrUnavailable, err)
	}
	return fmt.Errorf("redis %s %s: %w", op, key, err)
}
