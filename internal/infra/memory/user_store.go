package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"kbc-quiz-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserRepository and
// app.ClaimRepository. Every mutation happens under one lock.
type UserStore struct {
	now func() time.Time

	mu     sync.RWMutex
	users  map[string]*domain.User
	claims map[claimKey]struct{}
}

type claimKey struct {
	userID string
	date   string
}

func NewUserStore() *UserStore {
	return NewUserStoreWithClock(time.Now)
}

// NewUserStoreWithClock allows deterministic creation timestamps in tests.
func NewUserStoreWithClock(now func() time.Time) *UserStore {
	return &UserStore{
		now:    now,
		users:  make(map[string]*domain.User),
		claims: make(map[claimKey]struct{}),
	}
}

func (s *UserStore) Register(_ context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[username]; ok {
		return *user, nil
	}
	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.now(),
	}
	s.users[username] = user
	return *user, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserStore) RaiseHighScore(_ context.Context, username string, score int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if score > user.HighScore {
		user.HighScore = score
	}
	return user.HighScore, nil
}

func (s *UserStore) AddCoins(_ context.Context, username string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	user.Coins += delta
	return user.Coins, nil
}

func (s *UserStore) BankWin(_ context.Context, username string, prize, coins int64) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return 0, 0, domain.ErrUserNotFound
	}
	user.HighScore = max(user.HighScore, prize)
	user.Coins += coins
	return user.HighScore, user.Coins, nil
}

func (s *UserStore) ClaimDaily(_ context.Context, claimant domain.User, date string, coins int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[claimant.Username]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	key := claimKey{userID: user.ID, date: date}
	if _, claimed := s.claims[key]; claimed {
		return 0, domain.ErrAlreadyClaimed
	}
	s.claims[key] = struct{}{}
	user.Coins += coins
	return user.Coins, nil
}

func (s *UserStore) TopByHighScore(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	s.mu.RUnlock()

	// Ties go to whoever registered first, then by name.
	sort.Slice(users, func(i, j int) bool {
		if users[i].HighScore != users[j].HighScore {
			return users[i].HighScore > users[j].HighScore
		}
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].Username < users[j].Username
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, domain.LeaderboardEntry{
			Username:  user.Username,
			HighScore: user.HighScore,
			Coins:     user.Coins,
		})
	}
	return entries, nil
}

// Ping always succeeds for the in-memory store.
func (s *UserStore) Ping(context.Context) error {
	return nil
}
