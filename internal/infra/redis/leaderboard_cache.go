package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"kbc-quiz-service/internal/domain"
)

const leaderboardKey = "kbc:leaderboard"

// LeaderboardCache stores ranked snapshots per limit in one hash:
// HSET kbc:leaderboard {limit} {json}. Any score change deletes the whole hash.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error) {
	raw, err := c.client.HGet(ctx, leaderboardKey, strconv.Itoa(limit)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, leaderboardKey, strconv.Itoa(limit), data)
	if c.ttl > 0 {
		pipe.Expire(ctx, leaderboardKey, c.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}
