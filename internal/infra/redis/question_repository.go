package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"kbc-quiz-service/internal/domain"
)

const questionsKey = "kbc:questions"

// QuestionLoader fetches a question from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestion(ctx context.Context, level int) (domain.Question, error)
}

// QuestionRepository caches questions in one Redis hash and falls back to a loader on miss.
// Questions are stored as: HSET kbc:questions {level} {json}
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

// cachedQuestion keeps the correct index, which the public JSON form hides.
type cachedQuestion struct {
	ID         int      `json:"id"`
	Prompt     string   `json:"question"`
	Options    []string `json:"options"`
	Correct    int      `json:"correct"`
	Difficulty string   `json:"difficulty"`
	Prize      int64    `json:"prize"`
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestion(ctx context.Context, level int) (domain.Question, error) {
	field := strconv.Itoa(level)
	if q, ok := r.cached(ctx, field); ok {
		return q, nil
	}

	result, err, _ := r.sf.Do(field, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := r.cached(ctx, field); ok {
			return q, nil
		}

		q, err := r.loader.LoadQuestion(ctx, level)
		if err != nil {
			return domain.Question{}, err
		}

		data, err := json.Marshal(cachedQuestion(q))
		if err != nil {
			return domain.Question{}, err
		}
		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		pipe.HSet(ctx, questionsKey, field, data)
		if ttl > 0 {
			pipe.Expire(ctx, questionsKey, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			slog.Warn("question cache write failed", "level", level, "error", err)
		}
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

func (r *QuestionRepository) cached(ctx context.Context, field string) (domain.Question, bool) {
	raw, err := r.client.HGet(ctx, questionsKey, field).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("question cache read failed", "field", field, "error", err)
		}
		return domain.Question{}, false
	}
	var cq cachedQuestion
	if err := json.Unmarshal(raw, &cq); err != nil {
		return domain.Question{}, false
	}
	return domain.Question(cq), true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
