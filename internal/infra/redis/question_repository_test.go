package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"kbc-quiz-service/internal/domain"
	"kbc-quiz-service/internal/infra/memory"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(domain.SeedQuestions())}
	repo := NewQuestionRepository(newClient(mr), loader, time.Minute)

	q, err := repo.GetQuestion(context.Background(), 7)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if mr.HGet(questionsKey, "7") == "" {
		t.Fatalf("expected question cached in redis")
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetQuestion(context.Background(), 7)
	if err != nil {
		t.Fatalf("get cached question: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Correct != q.Correct || cached.Prize != 64000 || len(cached.Options) != 4 {
		t.Fatalf("cached question lost fields: %+v", cached)
	}
}

func TestQuestionRepositoryPropagatesNotFound(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuestionRepository(newClient(mr), memory.NewStaticQuestionLoader(nil), time.Minute)
	if _, err := repo.GetQuestion(context.Background(), 2); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestQuestionRepositoryFallsBackWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	repo := NewQuestionRepository(client, memory.NewStaticQuestionLoader(domain.SeedQuestions()), time.Minute)
	q, err := repo.GetQuestion(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected loader fallback, got %v", err)
	}
	if q.Prize != 1000 {
		t.Fatalf("unexpected question %+v", q)
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestion(ctx context.Context, level int) (domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestion(ctx, level)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
