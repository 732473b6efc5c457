package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"kbc-quiz-service/internal/app"
	"kbc-quiz-service/internal/config"
	"kbc-quiz-service/internal/domain"
	"kbc-quiz-service/internal/infra/memory"
	"kbc-quiz-service/internal/infra/postgres"
	infraredis "kbc-quiz-service/internal/infra/redis"
	transport "kbc-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

type stores struct {
	users   app.UserRepository
	claims  app.ClaimRepository
	loader  memory.QuestionLoader
	pingers []transport.Pinger
	closers []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	var lbCache app.LeaderboardCache
	if redisClient != nil {
		questions = infraredis.NewQuestionRepository(redisClient, st.loader, quizTTL)
		lbCache = infraredis.NewLeaderboardCache(redisClient, config.TTLDuration(cfg.Leaderboard.CacheTTL, 5*time.Second))
		st.pingers = append(st.pingers, redisPinger{redisClient})
	} else {
		questions = memory.NewQuestionRepository(st.loader, quizTTL)
	}

	leaderboard := app.NewLeaderboardService(st.users, lbCache)
	handler := transport.NewHandler(
		app.NewQuizService(questions, st.users, leaderboard),
		app.NewUserService(st.users),
		app.NewDailyRewardService(st.users, st.claims, leaderboard),
		leaderboard,
		st.pingers...,
	)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("starting quiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStores picks Postgres when a URL is configured and in-memory stores otherwise.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	if cfg.Postgres.URL == "" {
		slog.Warn("postgres url not configured, using in-memory stores")
		users := memory.NewUserStore()
		return &stores{
			users:   users,
			claims:  users,
			loader:  memory.NewStaticQuestionLoader(domain.SeedQuestions()),
			pingers: []transport.Pinger{users},
		}, nil
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return nil, err
	}

	db := postgres.Open(cfg.Postgres.URL)
	st := &stores{closers: []func(){func() { db.Close() }}}
	inserted, err := postgres.SeedQuestions(ctx, db, domain.SeedQuestions())
	if err != nil {
		st.close()
		return nil, err
	}
	if inserted > 0 {
		slog.Info("seeded questions", "count", inserted)
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		st.close()
		return nil, err
	}
	st.closers = append(st.closers, pool.Close)

	store := postgres.NewStore(db)
	st.users = store
	st.claims = store
	st.loader = postgres.NewQuestionLoader(pool)
	st.pingers = []transport.Pinger{store}
	return st, nil
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
