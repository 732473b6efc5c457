package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kbc-quiz-service/internal/domain"
)

// DefaultLeaderboardLimit is the size of the public high score table.
const DefaultLeaderboardLimit = 10

// LeaderboardService ranks players by high score and fans snapshots out to live subscribers.
type LeaderboardService struct {
	users UserRepository
	cache LeaderboardCache
	now   func() time.Time

	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]struct{}
}

// NewLeaderboardService builds the service. cache may be nil.
func NewLeaderboardService(users UserRepository, cache LeaderboardCache) *LeaderboardService {
	return NewLeaderboardServiceWithClock(users, cache, time.Now)
}

// NewLeaderboardServiceWithClock allows deterministic timestamps in tests.
func NewLeaderboardServiceWithClock(users UserRepository, cache LeaderboardCache, now func() time.Time) *LeaderboardService {
	return &LeaderboardService{
		users:       users,
		cache:       cache,
		now:         now,
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// TopUsers returns up to limit players ordered by high score, highest first.
// A cache failure falls back to the store.
func (s *LeaderboardService) TopUsers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx, limit)
		if err != nil {
			slog.Warn("leaderboard cache read failed", "error", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := s.users.TopByHighScore(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, limit, entries); err != nil {
			slog.Warn("leaderboard cache write failed", "error", err)
		}
	}
	return entries, nil
}

// ScoreChanged drops cached rankings and pushes a fresh snapshot to subscribers.
func (s *LeaderboardService) ScoreChanged(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.Warn("leaderboard cache invalidation failed", "error", err)
		}
	}

	s.mu.Lock()
	listening := len(s.subscribers) > 0
	s.mu.Unlock()
	if !listening {
		return
	}

	lb, err := s.snapshot(ctx)
	if err != nil {
		slog.Error("leaderboard snapshot failed", "error", err)
		return
	}
	s.broadcast(lb)
}

// Subscribe returns a channel that receives leaderboard snapshots, starting with
// the current one. The caller must invoke the returned cancel function to avoid leaks.
func (s *LeaderboardService) Subscribe(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	initial, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan domain.Leaderboard, 8)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- initial
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *LeaderboardService) snapshot(ctx context.Context) (domain.Leaderboard, error) {
	entries, err := s.TopUsers(ctx, DefaultLeaderboardLimit)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{Entries: entries, UpdatedAt: s.now()}, nil
}

func (s *LeaderboardService) broadcast(lb domain.Leaderboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Full buffer: drop the oldest snapshot so slow readers never block scoring.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
