package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"kbc-quiz-service/internal/domain"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk"`
	Username  string    `bun:"username,notnull,unique"`
	Coins     int64     `bun:"coins,notnull"`
	HighScore int64     `bun:"highscore,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Username:  r.Username,
		Coins:     r.Coins,
		HighScore: r.HighScore,
		CreatedAt: r.CreatedAt,
	}
}

type claimRow struct {
	bun.BaseModel `bun:"table:daily_claims,alias:dc"`

	UserID    string    `bun:"user_id,pk"`
	ClaimDate string    `bun:"claim_date,pk"`
	Coins     int64     `bun:"coins,notnull"`
	ClaimedAt time.Time `bun:"claimed_at,nullzero,notnull,default:current_timestamp"`
}

// Store implements app.UserRepository and app.ClaimRepository on Postgres.
// Score and coin changes are single UPDATE ... RETURNING statements.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Register(ctx context.Context, username string) (domain.User, error) {
	row := userRow{ID: uuid.NewString(), Username: username}
	if _, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx); err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return s.GetByUsername(ctx, username)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	err := s.db.NewSelect().
		Model(&row).
		Where("username = ?", username).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) RaiseHighScore(ctx context.Context, username string, score int64) (int64, error) {
	var high int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE users SET highscore = GREATEST(highscore, ?) WHERE username = ? RETURNING highscore`,
		score, username,
	).Scan(&high)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("update highscore: %w", err)
	}
	return high, nil
}

func (s *Store) AddCoins(ctx context.Context, username string, delta int64) (int64, error) {
	var coins int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE users SET coins = coins + ? WHERE username = ? RETURNING coins`,
		delta, username,
	).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("update coins: %w", err)
	}
	return coins, nil
}

// BankWin records a final-rung win in one statement.
func (s *Store) BankWin(ctx context.Context, username string, prize, coins int64) (int64, int64, error) {
	var high, balance int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE users SET highscore = GREATEST(highscore, ?), coins = coins + ? WHERE username = ? RETURNING highscore, coins`,
		prize, coins, username,
	).Scan(&high, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.ErrUserNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("bank win: %w", err)
	}
	return high, balance, nil
}

// ClaimDaily relies on the (user_id, claim_date) primary key: a duplicate insert
// affects no rows and the transaction credits nothing.
func (s *Store) ClaimDaily(ctx context.Context, user domain.User, date string, coins int64) (int64, error) {
	var balance int64
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().
			Model(&claimRow{UserID: user.ID, ClaimDate: date, Coins: coins}).
			On("CONFLICT (user_id, claim_date) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert claim: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if inserted == 0 {
			return domain.ErrAlreadyClaimed
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE users SET coins = coins + ? WHERE id = ? RETURNING coins`,
			coins, user.ID,
		).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("credit claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Store) TopByHighScore(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var rows []userRow
	err := s.db.NewSelect().
		Model(&rows).
		Column("username", "highscore", "coins").
		OrderExpr("highscore DESC, created_at ASC, username ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			Username:  row.Username,
			HighScore: row.HighScore,
			Coins:     row.Coins,
		})
	}
	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
