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

func TestCorrectAnswerContinues(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService()
	register(t, users, "alice")

	outcome, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "alice", Level: 1, Selected: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !outcome.Correct || outcome.Finished || outcome.NextLevel != 2 || outcome.Prize != 1000 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	user, _ := users.GetByUsername(ctx, "alice")
	if user.HighScore != 1000 {
		t.Fatalf("expected high score 1000, got %d", user.HighScore)
	}
	if user.Coins != 0 {
		t.Fatalf("expected coins untouched, got %d", user.Coins)
	}
}

func TestFinalRungWins(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService()
	register(t, users, "winner")

	outcome, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "winner", Level: 15, Selected: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !outcome.Correct || !outcome.Finished || outcome.NextLevel != 0 {
		t.Fatalf("expected finished win, got %+v", outcome)
	}
	if outcome.Prize != 70000000 || outcome.NewHighScore != 70000000 {
		t.Fatalf("expected prize and high score 70000000, got %+v", outcome)
	}
	user, _ := users.GetByUsername(ctx, "winner")
	if user.Coins != 7000 {
		t.Fatalf("expected 7000 bonus coins, got %d", user.Coins)
	}
}

func TestWrongAnswerAfterMilestoneKeepsSafeCash(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService()
	register(t, users, "faller")

	// Level 7 answer is option 0.
	outcome, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "faller", Level: 7, Selected: 3})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Correct || !outcome.Finished {
		t.Fatalf("expected finished loss, got %+v", outcome)
	}
	if outcome.SafeAmount != 16000 || outcome.NewHighScore != 16000 {
		t.Fatalf("expected safe amount 16000, got %+v", outcome)
	}
	if outcome.Message != "Wrong answer. You leave with ₹16,000." {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
}

func TestHighScoreIsMonotonic(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService()
	register(t, users, "mono")

	steps := []domain.AnswerSubmission{
		{Username: "mono", Level: 8, Selected: 1},  // correct, banks 125000
		{Username: "mono", Level: 2, Selected: 0},  // wrong, safe 0
		{Username: "mono", Level: 3, Selected: 2},  // correct, 4000
		{Username: "mono", Level: 12, Selected: 0}, // wrong, safe 500000
		{Username: "mono", Level: 6, Selected: 2},  // wrong, safe 16000
	}
	var last int64
	for i, step := range steps {
		outcome, err := service.SubmitAnswer(ctx, step)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		user, _ := users.GetByUsername(ctx, "mono")
		if user.HighScore < last {
			t.Fatalf("step %d: high score dropped from %d to %d", i, last, user.HighScore)
		}
		if outcome.NewHighScore != user.HighScore {
			t.Fatalf("step %d: outcome reports %d, store has %d", i, outcome.NewHighScore, user.HighScore)
		}
		last = user.HighScore
	}
	if last != 500000 {
		t.Fatalf("expected final high score 500000, got %d", last)
	}
}

func TestSubmitValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	service, users := newTestService()
	register(t, users, "val")

	cases := []struct {
		name       string
		submission domain.AnswerSubmission
		check      func(error) bool
	}{
		{"level too high", domain.AnswerSubmission{Username: "val", Level: 16, Selected: 0}, domain.IsValidation},
		{"level zero", domain.AnswerSubmission{Username: "val", Level: 0, Selected: 0}, domain.IsValidation},
		{"negative option", domain.AnswerSubmission{Username: "val", Level: 1, Selected: -1}, domain.IsValidation},
		{"option past end", domain.AnswerSubmission{Username: "val", Level: 1, Selected: 4}, domain.IsValidation},
		{"blank user", domain.AnswerSubmission{Username: "  ", Level: 1, Selected: 1}, domain.IsValidation},
		{"unknown user", domain.AnswerSubmission{Username: "ghost", Level: 1, Selected: 1}, func(err error) bool {
			return errors.Is(err, domain.ErrUserNotFound)
		}},
	}
	for _, tc := range cases {
		if _, err := service.SubmitAnswer(ctx, tc.submission); !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}

	user, _ := users.GetByUsername(ctx, "val")
	if user.HighScore != 0 || user.Coins != 0 {
		t.Fatalf("expected no writes, got %+v", user)
	}
}

func TestMissingQuestionIsNotFound(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	questions := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(domain.SeedQuestions()[:5]), time.Minute)
	service := app.NewQuizService(questions, users, nil)
	register(t, users, "eve")

	if _, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "eve", Level: 9, Selected: 1}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
	if _, err := service.GetQuestion(ctx, 9); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestGetQuestionBounds(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.GetQuestion(context.Background(), 16); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	q, err := service.GetQuestion(context.Background(), 15)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if q.Prize != 70000000 || q.Difficulty != "hard" {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestSubmitNotifiesObserver(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	observer := &countingObserver{}
	service := app.NewQuizService(seededQuestions(), users, observer)
	register(t, users, "obs")

	if _, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "obs", Level: 1, Selected: 1}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "obs", Level: 99, Selected: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if observer.calls != 1 {
		t.Fatalf("expected one notification, got %d", observer.calls)
	}
}

func TestFailedWinLeavesUserUntouched(t *testing.T) {
	ctx := context.Background()
	users := &failingWinStore{UserStore: memory.NewUserStore()}
	service := app.NewQuizService(seededQuestions(), users, nil)
	register(t, users.UserStore, "bob")

	if _, err := service.SubmitAnswer(ctx, domain.AnswerSubmission{Username: "bob", Level: 15, Selected: 1}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	user, _ := users.GetByUsername(ctx, "bob")
	if user.HighScore != 0 || user.Coins != 0 {
		t.Fatalf("expected no partial write, got %+v", user)
	}
}

var errStoreDown = errors.New("db down")

// failingWinStore fails every write that could record a final-rung win.
type failingWinStore struct {
	*memory.UserStore
}

func (s *failingWinStore) BankWin(context.Context, string, int64, int64) (int64, int64, error) {
	return 0, 0, errStoreDown
}

func (s *failingWinStore) AddCoins(context.Context, string, int64) (int64, error) {
	return 0, errStoreDown
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) ScoreChanged(context.Context) {
	o.calls++
}

func newTestService() (*app.QuizService, *memory.UserStore) {
	users := memory.NewUserStore()
	return app.NewQuizService(seededQuestions(), users, nil), users
}

func seededQuestions() *memory.QuestionRepository {
	return memory.NewQuestionRepository(memory.NewStaticQuestionLoader(domain.SeedQuestions()), 5*time.Minute)
}

func register(t *testing.T, users *memory.UserStore, name string) domain.User {
	t.Helper()
	user, err := users.Register(context.Background(), name)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}
