package app

import (
	"context"

	"kbc-quiz-service/internal/domain"
)

// QuestionRepository loads question content (from cache/backing store).
type QuestionRepository interface {
	GetQuestion(ctx context.Context, level int) (domain.Question, error)
}

// UserRepository persists players. Score and coin mutations are single atomic
// statements in the store; callers never write absolute totals.
type UserRepository interface {
	// Register inserts the user if absent and returns the stored record.
	Register(ctx context.Context, username string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// RaiseHighScore applies highscore = max(highscore, score) and returns the stored value.
	RaiseHighScore(ctx context.Context, username string, score int64) (int64, error)
	// AddCoins applies coins = coins + delta and returns the new balance.
	AddCoins(ctx context.Context, username string, delta int64) (int64, error)
	// BankWin raises the high score to at least prize and credits coins in one
	// atomic step, returning the stored high score and balance.
	BankWin(ctx context.Context, username string, prize, coins int64) (high, balance int64, err error)
	TopByHighScore(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// ClaimRepository records one daily claim per user and date.
type ClaimRepository interface {
	// ClaimDaily records the claim and credits coins atomically. A duplicate
	// (user, date) returns domain.ErrAlreadyClaimed and credits nothing.
	ClaimDaily(ctx context.Context, user domain.User, date string, coins int64) (int64, error)
}

// LeaderboardCache holds ranked snapshots between score changes.
type LeaderboardCache interface {
	Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, bool, error)
	Set(ctx context.Context, limit int, entries []domain.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// ScoreObserver is told when a user's high score or coin balance may have changed.
type ScoreObserver interface {
	ScoreChanged(ctx context.Context)
}
