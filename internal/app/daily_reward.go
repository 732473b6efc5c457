package app

import (
	"context"
	"strings"
	"time"

	"kbc-quiz-service/internal/domain"
)

const claimDateLayout = "2006-01-02"

// DailyRewardService grants the daily coin bonus.
type DailyRewardService struct {
	users    UserRepository
	claims   ClaimRepository
	observer ScoreObserver
	now      func() time.Time
}

func NewDailyRewardService(users UserRepository, claims ClaimRepository, observer ScoreObserver) *DailyRewardService {
	return NewDailyRewardServiceWithClock(users, claims, observer, time.Now)
}

// NewDailyRewardServiceWithClock allows deterministic dates in tests.
func NewDailyRewardServiceWithClock(users UserRepository, claims ClaimRepository, observer ScoreObserver, now func() time.Time) *DailyRewardService {
	return &DailyRewardService{users: users, claims: claims, observer: observer, now: now}
}

// Claim credits the bonus once per server-local calendar day.
func (s *DailyRewardService) Claim(ctx context.Context, username string) (domain.ClaimResult, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return domain.ClaimResult{}, domain.Invalid("username required")
	}
	user, err := s.users.GetByUsername(ctx, name)
	if err != nil {
		return domain.ClaimResult{}, err
	}

	balance, err := s.claims.ClaimDaily(ctx, user, s.now().Format(claimDateLayout), domain.DailyRewardCoins)
	if err != nil {
		return domain.ClaimResult{}, err
	}
	if s.observer != nil {
		s.observer.ScoreChanged(ctx)
	}
	return domain.ClaimResult{CoinsGranted: domain.DailyRewardCoins, NewBalance: balance}, nil
}
