package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"kbc-quiz-service/internal/domain"
)

// QuestionLoader loads ladder questions from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestion(ctx context.Context, level int) (domain.Question, error) {
	var (
		q   domain.Question
		raw []byte
	)
	err := l.pool.QueryRow(ctx,
		`SELECT id, question, options, correct, difficulty, prize FROM questions WHERE id=$1`, level,
	).Scan(&q.ID, &q.Prompt, &raw, &q.Correct, &q.Difficulty, &q.Prize)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load question: %w", err)
	}
	if err := json.Unmarshal(raw, &q.Options); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return q, nil
}
