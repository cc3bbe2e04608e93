// Package cache provides a Redis-backed expiring JSON store.
//
// The store is deliberately generic: keys are opaque strings constructed by
// callers, values cross the boundary as JSON, and expiry is owned entirely by
// Redis. Cache failures never reach callers; a failed read is a miss and a
// failed write is skipped, so the service keeps serving fresh data without a
// cache rather than failing requests.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is an expiring key-value store over Redis. A Store with a nil client
// is valid and behaves as "always miss, never store", which lets the service
// run without a cache when Redis is unavailable.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Store backed by the given Redis client. rdb may be nil.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// GetJSON reads key and unmarshals the stored JSON into dest, reporting
// whether it was a hit. Missing keys, expired entries, read failures and
// corrupt payloads are all reported as a miss; corrupt entries are deleted
// so the next miss rewrites a clean value.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(b, dest); err != nil {
		slog.Warn("corrupt cache entry dropped", "key", key, "error", err)
		_ = s.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// SetJSON stores value under key, overwriting any existing entry, with expiry
// ttl from now. Writes are best effort: a marshal or store failure is logged
// and the caller proceeds uncached.
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.rdb == nil {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}
