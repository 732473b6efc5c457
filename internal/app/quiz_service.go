package app

import (
	"context"
	"fmt"
	"strings"

	"kbc-quiz-service/internal/domain"
)

// QuizService is the progression and scoring engine.
type QuizService struct {
	questions QuestionRepository
	users     UserRepository
	observer  ScoreObserver
}

// NewQuizService wires the engine. observer may be nil.
func NewQuizService(questions QuestionRepository, users UserRepository, observer ScoreObserver) *QuizService {
	return &QuizService{questions: questions, users: users, observer: observer}
}

// PrizeLadder returns the ladder and its safe milestones.
func (s *QuizService) PrizeLadder() ([]domain.LadderStep, map[int]int64) {
	return domain.Ladder(), domain.SafeMilestones()
}

// GetQuestion returns the question for a ladder level.
func (s *QuizService) GetQuestion(ctx context.Context, level int) (domain.Question, error) {
	if !domain.ValidLevel(level) {
		return domain.Question{}, domain.Invalid(fmt.Sprintf("index must be between 1 and %d", domain.Levels))
	}
	return s.questions.GetQuestion(ctx, level)
}

// SubmitAnswer scores one answer and persists the resulting high score (and the
// coin bonus on the last rung) in a single store write. Every check runs before it.
func (s *QuizService) SubmitAnswer(ctx context.Context, submission domain.AnswerSubmission) (domain.Outcome, error) {
	username := strings.TrimSpace(submission.Username)
	if username == "" {
		return domain.Outcome{}, domain.Invalid("username, questionId and selected (index) required")
	}
	if !domain.ValidLevel(submission.Level) {
		return domain.Outcome{}, domain.Invalid(fmt.Sprintf("questionId must be between 1 and %d", domain.Levels))
	}
	if submission.Selected < 0 {
		return domain.Outcome{}, domain.Invalid("selected must be a non-negative option index")
	}

	question, err := s.questions.GetQuestion(ctx, submission.Level)
	if err != nil {
		return domain.Outcome{}, err
	}
	if submission.Selected >= len(question.Options) {
		return domain.Outcome{}, domain.Invalid(fmt.Sprintf("selected must be between 0 and %d", len(question.Options)-1))
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.Outcome{}, err
	}

	outcome, banked := decide(question, user.HighScore, submission.Selected)

	var high int64
	if outcome.CoinsGranted > 0 {
		high, _, err = s.users.BankWin(ctx, user.Username, banked, outcome.CoinsGranted)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("bank win: %w", err)
		}
	} else {
		high, err = s.users.RaiseHighScore(ctx, user.Username, banked)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("raise high score: %w", err)
		}
	}
	// The store may hold a higher value written by a concurrent request.
	outcome.NewHighScore = high

	if s.observer != nil {
		s.observer.ScoreChanged(ctx)
	}
	return outcome, nil
}

// decide applies the ladder rules. It returns the outcome and the amount to bank
// as a high score candidate.
func decide(question domain.Question, highScore int64, selected int) (domain.Outcome, int64) {
	outcome := domain.Outcome{
		Correct: selected == question.Correct,
		Prize:   question.Prize,
		Level:   question.ID,
	}

	switch {
	case outcome.Correct && question.ID == domain.Levels:
		outcome.Finished = true
		outcome.CoinsGranted = domain.WinCoinBonus(question.Prize)
		outcome.Message = domain.WinMessage(question.Prize)
		outcome.NewHighScore = max(highScore, question.Prize)
		return outcome, question.Prize
	case outcome.Correct:
		// Current rung is banked even though the game goes on.
		outcome.NextLevel = question.ID + 1
		outcome.Message = domain.CorrectMessage(question.Prize)
		outcome.NewHighScore = max(highScore, question.Prize)
		return outcome, question.Prize
	default:
		safe := domain.SafeCashForFailureAt(question.ID)
		outcome.Finished = true
		outcome.SafeAmount = safe
		outcome.Message = domain.LossMessage(safe)
		outcome.NewHighScore = max(highScore, safe)
		return outcome, safe
	}
}
