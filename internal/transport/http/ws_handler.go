package http

import (
	"log/slog"
	"net/http"

	"kbc-quiz-service/internal/domain"
)

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeLeaderboardWS upgrades the request and streams leaderboard snapshots until
// the client goes away. Inbound messages are ignored.
func (h *Handler) ServeLeaderboardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.leaderboard.Subscribe(r.Context())
	if err != nil {
		slog.Error("leaderboard subscribe failed", "error", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "DB error"}})
		return
	}
	defer cancel()

	// The read loop only detects disconnects; this goroutine is the sole reader
	// and the loop below the sole writer.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if lb.Entries == nil {
				lb.Entries = []domain.LeaderboardEntry{}
			}
			if err := conn.WriteJSON(outboundMessage[domain.Leaderboard]{Type: "leaderboard", Payload: lb}); err != nil {
				slog.Debug("ws write error", "error", err)
				return
			}
		case <-gone:
			return
		}
	}
}
