package domain

import "time"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// DailyRewardCoins is granted by a successful daily claim.
const DailyRewardCoins int64 = 50

// MinUsernameLength applies after trimming surrounding whitespace.
const MinUsernameLength = 2

// Question is one rung of the ladder. ID doubles as the level (1..15).
type Question struct {
	ID         int      `json:"id"`
	Prompt     string   `json:"question"`
	Options    []string `json:"options"`
	Correct    int      `json:"-"`
	Difficulty string   `json:"difficulty"`
	Prize      int64    `json:"prize"`
}

// User is a player record keyed by username.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Coins     int64     `json:"coins"`
	HighScore int64     `json:"highscore"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerSubmission is a validated answer for a single level.
type AnswerSubmission struct {
	Username string
	Level    int
	Selected int
}

// Outcome summarizes what a submitted answer did to the game.
type Outcome struct {
	Correct      bool
	Finished     bool
	Prize        int64
	Level        int
	NextLevel    int // 0 when the game is over
	NewHighScore int64
	SafeAmount   int64
	CoinsGranted int64
	Message      string
}

// ClaimResult is returned by a successful daily claim.
type ClaimResult struct {
	CoinsGranted int64
	NewBalance   int64
}

// LeaderboardEntry is one row of the high score table.
type LeaderboardEntry struct {
	Username  string `json:"username"`
	HighScore int64  `json:"highscore"`
	Coins     int64  `json:"coins"`
}

// Leaderboard is a ranked snapshot pushed to live subscribers.
type Leaderboard struct {
	Entries   []LeaderboardEntry `json:"leaderboard"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
