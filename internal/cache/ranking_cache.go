// Package cache keeps the latest ranking result per session in Redis so the
// results view can skip the database on repeat reads. A nil *RankingCache is
// valid and behaves as a permanent miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Hearthside-Labs/Homerank/internal/store"
)

const keyPrefix = "homerank:ranking:"

type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection. The TTL bounds how long
// a cached result survives without invalidation.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RankingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RankingCache{client: client, ttl: ttl}, nil
}

func (c *RankingCache) Set(ctx context.Context, sessionID string, result *store.Result) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+sessionID, data, c.ttl).Err()
}

// Get returns (nil, nil) on a miss.
func (c *RankingCache) Get(ctx context.Context, sessionID string) (*store.Result, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result store.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RankingCache) Delete(ctx context.Context, sessionID string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+sessionID).Err()
}

func (c *RankingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
