package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kbc-quiz-service/internal/app"
	"kbc-quiz-service/internal/domain"
	"kbc-quiz-service/internal/infra/memory"
)

func TestDailyClaimOncePerDay(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	now := time.Date(2025, 10, 17, 8, 0, 0, 0, time.Local)
	service := app.NewDailyRewardServiceWithClock(users, users, nil, func() time.Time { return now })
	register(t, users, "alice")

	res, err := service.Claim(ctx, "alice")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if res.CoinsGranted != 50 || res.NewBalance != 50 {
		t.Fatalf("unexpected claim result %+v", res)
	}

	now = now.Add(10 * time.Hour)
	if _, err := service.Claim(ctx, "alice"); !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("expected already claimed, got %v", err)
	}
	user, _ := users.GetByUsername(ctx, "alice")
	if user.Coins != 50 {
		t.Fatalf("expected balance unchanged at 50, got %d", user.Coins)
	}

	now = now.Add(24 * time.Hour)
	res, err = service.Claim(ctx, "alice")
	if err != nil {
		t.Fatalf("claim next day: %v", err)
	}
	if res.NewBalance != 100 {
		t.Fatalf("expected 100 coins, got %d", res.NewBalance)
	}
}

func TestDailyClaimErrors(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	service := app.NewDailyRewardService(users, users, nil)

	if _, err := service.Claim(ctx, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := service.Claim(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
