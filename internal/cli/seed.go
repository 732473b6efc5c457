package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"kbc-quiz-service/internal/config"
	"kbc-quiz-service/internal/domain"
	"kbc-quiz-service/internal/infra/postgres"
)

// NewSeedCmd loads the fixed question set into an empty Postgres questions table.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the question table if it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg)
			return seedWithConfig(cmd.Context(), cfg)
		},
	}
}

func seedWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	db := postgres.Open(cfg.Postgres.URL)
	defer db.Close()

	inserted, err := postgres.SeedQuestions(ctx, db, domain.SeedQuestions())
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	slog.Info("question seed finished", "inserted", inserted)
	return nil
}
