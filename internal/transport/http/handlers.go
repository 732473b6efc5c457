package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kbc-quiz-service/internal/app"
	"kbc-quiz-service/internal/domain"
)

type registerRequest struct {
	Username string `json:"username"`
}

type registerResponse struct {
	User domain.User `json:"user"`
}

type ladderResponse struct {
	Ladder         []domain.LadderStep `json:"ladder"`
	SafeMilestones map[int]int64       `json:"safeMilestones"`
}

type questionResponse struct {
	Question domain.Question `json:"question"`
}

// answerRequest uses pointers so a missing field is distinguishable from zero.
type answerRequest struct {
	Username   string `json:"username"`
	QuestionID *int   `json:"questionId"`
	Selected   *int   `json:"selected"`
}

type answerResponse struct {
	Correct      bool   `json:"correct"`
	Prize        int64  `json:"prize"`
	QuestionID   int    `json:"questionId"`
	NextQuestion *int   `json:"nextQuestion"`
	Finished     bool   `json:"finished"`
	Message      string `json:"message"`
	NewHighscore *int64 `json:"newHighscore,omitempty"`
	SafeAmount   *int64 `json:"safeAmount,omitempty"`
}

type claimRequest struct {
	Username string `json:"username"`
}

type claimResponse struct {
	Message string `json:"message"`
	Coins   int64  `json:"coins"`
}

type leaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

const answerFieldsRequired = "username, questionId and selected (index) required"

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "username required (min 2 chars)")
		return
	}
	user, err := h.users.Register(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, registerResponse{User: user})
}

func (h *Handler) handlePrizeLadder(w http.ResponseWriter, r *http.Request) {
	ladder, milestones := h.quiz.PrizeLadder()
	respondJSON(w, http.StatusOK, ladderResponse{Ladder: ladder, SafeMilestones: milestones})
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	level := 1
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "index must be between 1 and 15")
			return
		}
		level = n
	}

	question, err := h.quiz.GetQuestion(r.Context(), level)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, questionResponse{Question: question})
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, answerFieldsRequired)
		return
	}
	if req.Username == "" || req.QuestionID == nil || req.Selected == nil {
		respondError(w, http.StatusBadRequest, answerFieldsRequired)
		return
	}

	outcome, err := h.quiz.SubmitAnswer(r.Context(), domain.AnswerSubmission{
		Username: req.Username,
		Level:    *req.QuestionID,
		Selected: *req.Selected,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toAnswerResponse(outcome))
}

func toAnswerResponse(o domain.Outcome) answerResponse {
	resp := answerResponse{
		Correct:    o.Correct,
		Prize:      o.Prize,
		QuestionID: o.Level,
		Finished:   o.Finished,
		Message:    o.Message,
	}
	if o.NextLevel > 0 {
		next := o.NextLevel
		resp.NextQuestion = &next
	}
	if o.Finished {
		high := o.NewHighScore
		resp.NewHighscore = &high
	}
	if o.Finished && !o.Correct {
		safe := o.SafeAmount
		resp.SafeAmount = &safe
	}
	return resp
}

func (h *Handler) handleDailyClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "username required")
		return
	}
	res, err := h.daily.Claim(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, claimResponse{
		Message: domain.ClaimMessage(res.CoinsGranted),
		Coins:   res.NewBalance,
	})
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.TopUsers(r.Context(), app.DefaultLeaderboardLimit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}
