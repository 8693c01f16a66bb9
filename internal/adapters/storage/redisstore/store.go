// Package redisstore keeps designer layouts in Redis, one string value per
// layout key, and announces every change on a pub/sub channel.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// DefaultPrefix namespaces keys when the configured prefix is empty.
const DefaultPrefix = "quotation"

// Store implements ports.LayoutStore. It is safe for concurrent use.
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ ports.LayoutStore = (*Store)(nil)

// New creates a store. Connections are opened lazily by the client.
func New(opts *redis.Options, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Store{rdb: redis.NewClient(opts), prefix: prefix}
}

// Close closes the Redis connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Checker exposes Ping to the readiness registry.
func (s *Store) Checker() ports.HealthChecker {
	return ports.NewChecker("redis", s.Ping)
}

// LayoutKey returns the Redis key for a layout, e.g. "quotation:layout:global:default".
func (s *Store) LayoutKey(key layout.Key) string {
	return s.prefix + ":layout:" + key.String()
}

// EventsChannel is where saves and deletes are announced. The message is
// the layout key string.
func (s *Store) EventsChannel() string {
	return s.prefix + ":layout_events"
}

// LoadLayout reads the layout at LayoutKey(key).
func (s *Store) LoadLayout(ctx context.Context, key layout.Key) ([]byte, bool, error) {
	if err := key.Validate(); err != nil {
		return nil, false, err
	}

	data, err := s.rdb.Get(ctx, s.LayoutKey(key)).Bytes()
	if isMiss(err) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to read layout %s from Redis: %w", key, err)
	}

	return data, true, nil
}

// SaveLayout writes the layout without expiry and publishes a change event.
func (s *Store) SaveLayout(ctx context.Context, key layout.Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, s.LayoutKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write layout %s to Redis: %w", key, err)
	}

	s.publish(ctx, key)

	return nil
}

// DeleteLayout removes the layout and publishes an event only when one
// existed.
func (s *Store) DeleteLayout(ctx context.Context, key layout.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	n, err := s.rdb.Del(ctx, s.LayoutKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete layout %s from Redis: %w", key, err)
	}

	if n > 0 {
		s.publish(ctx, key)
	}

	return nil
}

// Subscribe returns a subscription to layout change events. The caller
// must close it.
func (s *Store) Subscribe(ctx context.Context) *redis.PubSub {
	return s.rdb.Subscribe(ctx, s.EventsChannel())
}

// publish announces a change. The write already succeeded, so a failed
// publish is only logged.
func (s *Store) publish(ctx context.Context, key layout.Key) {
	if err := s.rdb.Publish(ctx, s.EventsChannel(), key.String()).Err(); err != nil {
		logging.FromContext(ctx).Warn("layout event not published", "key", key.String(), "error", err)
	}
}

// isMiss reports whether err is a Redis miss.
func isMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
