package domain

// Levels is the number of rungs on the prize ladder.
const Levels = 15

var prizeLadder = [Levels]int64{
	1000, 2000, 4000, 8000, 16000,
	32000, 64000, 125000, 250000, 500000,
	1000000, 2500000, 10000000, 30000000, 70000000,
}

// Safe milestone levels. Passing one guarantees its prize on a later wrong answer.
const (
	FirstMilestone  = 5
	SecondMilestone = 10
)

// LadderStep pairs a level with its prize.
type LadderStep struct {
	Level int   `json:"level"`
	Prize int64 `json:"prize"`
}

// Ladder returns the prize ladder ordered from level 1 to 15.
func Ladder() []LadderStep {
	steps := make([]LadderStep, 0, Levels)
	for i, prize := range prizeLadder {
		steps = append(steps, LadderStep{Level: i + 1, Prize: prize})
	}
	return steps
}

// SafeMilestones maps each milestone level to its guaranteed amount.
func SafeMilestones() map[int]int64 {
	return map[int]int64{
		FirstMilestone:  prizeLadder[FirstMilestone-1],
		SecondMilestone: prizeLadder[SecondMilestone-1],
	}
}

// PrizeAt returns the ladder prize for level, or false when level is off the ladder.
func PrizeAt(level int) (int64, bool) {
	if !ValidLevel(level) {
		return 0, false
	}
	return prizeLadder[level-1], true
}

// ValidLevel reports whether level is on the ladder.
func ValidLevel(level int) bool {
	return level >= 1 && level <= Levels
}

// SafeCashForFailureAt is what a player keeps after answering level wrongly.
// Only two safety nets exist, so this is a step function.
func SafeCashForFailureAt(level int) int64 {
	switch {
	case level > SecondMilestone:
		return prizeLadder[SecondMilestone-1]
	case level > FirstMilestone:
		return prizeLadder[FirstMilestone-1]
	default:
		return 0
	}
}

// WinCoinBonus is the coin bonus for clearing the final rung with the given prize.
func WinCoinBonus(prize int64) int64 {
	return prize / 10000
}
