// Package cache provides a small byte-oriented cache used for read-through
// caching of list and count queries.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache stores opaque values under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Nop is a Cache that never stores anything. Every Get is a miss.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error                  { return nil }
