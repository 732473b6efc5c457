package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"kbc-quiz-service/internal/app"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the quiz HTTP/JSON API and the live leaderboard feed.
type Handler struct {
	quiz        *app.QuizService
	users       *app.UserService
	daily       *app.DailyRewardService
	leaderboard *app.LeaderboardService
	pingers     []Pinger
	upgrader    websocket.Upgrader
}

func NewHandler(
	quiz *app.QuizService,
	users *app.UserService,
	daily *app.DailyRewardService,
	leaderboard *app.LeaderboardService,
	pingers ...Pinger,
) *Handler {
	return &Handler{
		quiz:        quiz,
		users:       users,
		daily:       daily,
		leaderboard: leaderboard,
		pingers:     pingers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the router with its middleware stack.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", h.handleReady)

	// Long-lived; kept outside the request timeout.
	r.Get("/ws/leaderboard", h.ServeLeaderboardWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))

		r.Post("/users/register", h.handleRegister)
		r.Get("/prize-ladder", h.handlePrizeLadder)
		r.Get("/questions", h.handleQuestion)
		r.Post("/answer", h.handleAnswer)
		r.Post("/daily-claim", h.handleDailyClaim)
		r.Get("/leaderboard", h.handleLeaderboard)
	})

	return r
}

// logRequests logs HTTP requests using slog.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, p := range h.pingers {
		if err := p.Ping(r.Context()); err != nil {
			slog.Warn("readiness check failed", "error", err)
			respondError(w, http.StatusServiceUnavailable, "service not ready")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
