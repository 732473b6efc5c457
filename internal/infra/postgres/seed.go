package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"kbc-quiz-service/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID         int      `bun:"id,pk"`
	Question   string   `bun:"question,notnull"`
	Options    []string `bun:"options,type:jsonb,notnull"`
	Correct    int      `bun:"correct,notnull"`
	Difficulty string   `bun:"difficulty,notnull"`
	Prize      int64    `bun:"prize,notnull"`
}

// SeedQuestions fills an empty questions table. A table that already holds
// questions is left untouched and 0 is returned.
func SeedQuestions(ctx context.Context, db *bun.DB, questions []domain.Question) (int, error) {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		prize, ok := domain.PrizeAt(q.ID)
		if !ok || prize != q.Prize {
			return 0, fmt.Errorf("question %d: prize %d does not match ladder", q.ID, q.Prize)
		}
		rows = append(rows, questionRow{
			ID:         q.ID,
			Question:   q.Prompt,
			Options:    q.Options,
			Correct:    q.Correct,
			Difficulty: q.Difficulty,
			Prize:      q.Prize,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().Model((*questionRow)(nil)).Count(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if count > 0 {
			return nil
		}
		res, err := tx.NewInsert().
			Model(&rows).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		inserted = int(n)
		return nil
	})
	return inserted, err
}
