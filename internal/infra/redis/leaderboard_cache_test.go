package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"kbc-quiz-service/internal/domain"
)

func TestLeaderboardCacheRoundTripAndInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	cache := NewLeaderboardCache(newClient(mr), 5*time.Second)

	if _, ok, err := cache.Get(ctx, 10); err != nil || ok {
		t.Fatalf("expected empty cache, got ok=%v err=%v", ok, err)
	}

	entries := []domain.LeaderboardEntry{
		{Username: "alice", HighScore: 64000, Coins: 50},
		{Username: "bob", HighScore: 1000, Coins: 0},
	}
	if err := cache.Set(ctx, 10, entries); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists(leaderboardKey) {
		t.Fatalf("expected redis key to be set")
	}

	got, ok, err := cache.Get(ctx, 10)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[0].HighScore != 64000 {
		t.Fatalf("unexpected entries %+v", got)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(leaderboardKey) {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	cache := NewLeaderboardCache(newClient(mr), 5*time.Second)
	if err := cache.Set(ctx, 10, []domain.LeaderboardEntry{{Username: "alice"}}); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(6 * time.Second)
	if _, ok, _ := cache.Get(ctx, 10); ok {
		t.Fatalf("expected snapshot to expire")
	}
}
