package memory

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"kbc-quiz-service/internal/domain"
)

// QuestionLoader reads one ladder question from the backing store.
type QuestionLoader interface {
	LoadQuestion(ctx context.Context, level int) (domain.Question, error)
}

// QuestionRepository keeps one slot per ladder level in process memory and
// refills an expired slot from the loader. Concurrent misses on the same level
// share a single load.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	now    func() time.Time
	loads  singleflight.Group

	mu    sync.RWMutex
	slots [domain.Levels + 1]questionSlot
}

type questionSlot struct {
	question domain.Question
	until    time.Time
}

func (s questionSlot) fresh(at time.Time) bool {
	return at.Before(s.until)
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{loader: loader, ttl: ttl, now: time.Now}
}

// GetQuestion serves level from its slot while fresh. Levels off the ladder are
// never cached and go straight to the loader.
func (r *QuestionRepository) GetQuestion(ctx context.Context, level int) (domain.Question, error) {
	if !domain.ValidLevel(level) {
		return r.loader.LoadQuestion(ctx, level)
	}
	if q, ok := r.lookup(level); ok {
		return q, nil
	}

	v, err, _ := r.loads.Do(strconv.Itoa(level), func() (any, error) {
		if q, ok := r.lookup(level); ok {
			return q, nil
		}
		q, err := r.loader.LoadQuestion(ctx, level)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.slots[level] = questionSlot{question: q, until: r.now().Add(r.expiry())}
		r.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return v.(domain.Question), nil
}

func (r *QuestionRepository) lookup(level int) (domain.Question, bool) {
	at := r.now()
	r.mu.RLock()
	slot := r.slots[level]
	r.mu.RUnlock()
	return slot.question, slot.fresh(at)
}

// expiry is the configured TTL stretched by up to a tenth so levels loaded
// together do not all expire together.
func (r *QuestionRepository) expiry() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	return r.ttl + rand.N(r.ttl/10+1)
}

// StaticQuestionLoader answers from a fixed in-memory question set. It backs
// the server when no database is configured.
type StaticQuestionLoader struct {
	byLevel map[int]domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	byLevel := make(map[int]domain.Question, len(questions))
	for _, q := range questions {
		byLevel[q.ID] = q
	}
	return &StaticQuestionLoader{byLevel: byLevel}
}

func (l *StaticQuestionLoader) LoadQuestion(_ context.Context, level int) (domain.Question, error) {
	q, ok := l.byLevel[level]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}
