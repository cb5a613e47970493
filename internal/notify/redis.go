// Copyright (c) 2026 Residents Book. All rights reserved.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abhay4510/residents-book/internal/platform/constants"
)

// RedisStore keeps each session queue in a Redis list with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store backed by client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func toastKey(sessionID string) string {
	return constants.RedisPrefixToasts + sessionID
}

// Push implements [Store].
func (s *RedisStore) Push(ctx context.Context, sessionID string, toast Toast) error {
	payload, err := json.Marshal(toast)
	if err != nil {
		return fmt.Errorf("notify: encode toast: %w", err)
	}

	key := toastKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("notify: push toast: %w", err)
	}
	return nil
}

// Drain implements [Store]. Reading and deleting happen in one transaction
// so two concurrent renders never show the same toast twice.
func (s *RedisStore) Drain(ctx context.Context, sessionID string) ([]Toast, error) {
	key := toastKey(sessionID)

	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("notify: drain toasts: %w", err)
	}

	raw := items.Val()
	if len(raw) == 0 {
		return nil, nil
	}

	toasts := make([]Toast, 0, len(raw))
	for _, item := range raw {
		var toast Toast
		if err := json.Unmarshal([]byte(item), &toast); err != nil {
			continue
		}
		toasts = append(toasts, toast)
	}
	return toasts, nil
}
