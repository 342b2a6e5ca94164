// Package idempotency deduplicates Telegram callback deliveries. Telegram
// retries callback queries that are not answered quickly, so a slow handler
// can see the same callback id twice.
package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "halskey:callback:"

// Store marks callback ids as seen with a TTL.
type Store interface {
	// FirstSeen reports whether this is the first delivery of the callback id.
	FirstSeen(ctx context.Context, callbackID string, ttl time.Duration) (bool, error)
}

type redisStore struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStore builds a Store backed by redis SETNX.
func NewRedisStore(client *redis.Client, log *slog.Logger) Store {
	if log == nil {
		log = slog.Default()
	}

	return &redisStore{
		client: client,
		log:    log,
	}
}

func (s *redisStore) FirstSeen(ctx context.Context, callbackID string, ttl time.Duration) (bool, error) {
	if callbackID == "" {
		return true, nil
	}

	acquired, err := s.client.SetNX(ctx, keyPrefix+callbackID, 1, ttl).Result()
	if err != nil {
		s.log.Error("callback dedupe check failed", slog.String("callback_id", callbackID), slog.Any("error", err))
		return false, fmt.Errorf("dedupe setnx: %w", err)
	}

	return acquired, nil
}
