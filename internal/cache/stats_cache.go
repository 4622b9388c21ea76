// Package cache keeps short-lived channel statistics in Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "channel_stats:"

// RedisStatsCache implements stats.Cache on a Redis client
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}
	return client, nil
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats; any failure counts as a miss
func (c *RedisStatsCache) Get(ctx context.Context, channelID string) (*models.ChannelStats, bool) {
	raw, err := c.client.Get(ctx, statsKeyPrefix+channelID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.From(ctx).WithError(err).Warn("stats cache read failed")
		}
		return nil, false
	}

	var stats models.ChannelStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.From(ctx).WithError(err).Warn("stats cache entry is corrupt")
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatsCache) Set(ctx context.Context, channelID string, stats models.ChannelStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKeyPrefix+channelID, raw, c.ttl).Err(); err != nil {
		logger.From(ctx).WithError(err).Warn("stats cache write failed")
	}
}

func (c *RedisStatsCache) Delete(ctx context.Context, channelID string) {
	if err := c.client.Del(ctx, statsKeyPrefix+channelID).Err(); err != nil {
		logger.From(ctx).WithError(err).Warn("stats cache eviction failed")
	}
}
