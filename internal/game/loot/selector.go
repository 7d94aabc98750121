package loot

import (
	"fmt"

	"github.com/gigaverse-labs/advisor/internal/game/combat"
)

// Selection is the chosen option and the scores it was chosen from.
type Selection struct {
	Option Option
	Index  int
	Scores []float64
}

// SelectBest scores options under strategy and returns the highest scorer.
// Exact ties go to the earliest option.
//
// Precondition: options is non-empty; s is a valid snapshot; strategy is built in.
// Postcondition: on nil error, Scores[Index] is the maximum score and Option == options[Index].
func SelectBest(options []Option, s combat.Snapshot, strategy Strategy) (Selection, error) {
	if len(options) == 0 {
		return Selection{}, ErrNoOptions
	}
	if !strategy.Valid() {
		return Selection{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
	if err := s.Validate(); err != nil {
		return Selection{}, err
	}

	scores := Score(options, s, strategy)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Selection{Option: options[best], Index: best, Scores: scores}, nil
}

// Explain renders a deterministic rationale for choosing option under strategy.
func Explain(option Option, scores []float64, strategy Strategy) string {
	msg := fmt.Sprintf("%s strategy (%s): chose %q at rarity %d with upgrade values %d and %d",
		strategy, strategy.Description(), option.BoonType, option.Tier(), option.UpgradeValue1, option.UpgradeValue2)
	if len(scores) == 0 {
		return msg
	}
	top := scores[0]
	for _, sc := range scores[1:] {
		top = max(top, sc)
	}
	return msg + fmt.Sprintf(", scoring %.2f among %d options", top, len(scores))
}
