package loot

import (
	"fmt"
	"sort"

	"github.com/gigaverse-labs/advisor/internal/game/combat"
)

// Scoring weights.
const (
	BaseUpgradeWeight       = 0.1
	AggressiveUpgradeWeight = 0.2
	KeywordMultiplier       = 2.0
	LowHealthRatio          = 0.5
	LowHealthHealMultiplier = 1.5
	FocusedMultiplier       = 2.5
	UnfocusedMultiplier     = 0.3
)

// Keyword sets matched against Option.BoonType.
var (
	AttackKeywords  = []string{"atk", "attack", "damage"}
	DefenseKeywords = []string{"def", "shield", "heal", "health"}
	HealKeywords    = []string{"heal", "health"}
)

// BaseScore is the strategy-neutral value of o.
//
// Postcondition: Returns Tier() + BaseUpgradeWeight*UpgradeTotal().
func BaseScore(o Option) float64 {
	return float64(o.Tier()) + BaseUpgradeWeight*float64(o.UpgradeTotal())
}

// Score returns one score per option under strategy, higher is better.
//
// Precondition: strategy.Valid(); anything else panics.
// Postcondition: len(result) == len(options); options and s are not modified.
func Score(options []Option, s combat.Snapshot, strategy Strategy) []float64 {
	scores := make([]float64, len(options))
	switch strategy {
	case Aggressive:
		for i, o := range options {
			scores[i] = aggressiveScore(o)
		}
	case Defensive:
		lowHealth := s.Player.HealthRatio() < LowHealthRatio
		for i, o := range options {
			scores[i] = defensiveScore(o, lowHealth)
		}
	case Focused:
		focus, rest := FocusedLines(s.Player)
		for i, o := range options {
			scores[i] = focusedScore(o, focus, rest)
		}
	case Balanced:
		for i, o := range options {
			scores[i] = BaseScore(o)
		}
	default:
		panic(fmt.Sprintf("loot.Score: strategy %d is not a built-in strategy", int(strategy)))
	}
	return scores
}

func aggressiveScore(o Option) float64 {
	if !o.Matches(AttackKeywords...) {
		return BaseScore(o)
	}
	return KeywordMultiplier * (float64(o.Tier()) + AggressiveUpgradeWeight*float64(o.UpgradeTotal()))
}

func defensiveScore(o Option, lowHealth bool) float64 {
	score := BaseScore(o)
	if o.Matches(DefenseKeywords...) {
		score *= KeywordMultiplier
	}
	if lowHealth && o.Matches(HealKeywords...) {
		score *= LowHealthHealMultiplier
	}
	return score
}

func focusedScore(o Option, focus [2]combat.MoveType, rest combat.MoveType) float64 {
	score := BaseScore(o)
	switch {
	case o.Matches(focus[0].String(), focus[1].String()):
		return score * FocusedMultiplier
	case o.Matches(rest.String()):
		return score * UnfocusedMultiplier
	default:
		return score
	}
}

// FocusedLines returns the two attack lines with the highest
// AttackPower*ChargesRemaining, and the remaining line. Ties keep
// enumeration order (rock, paper, scissor).
func FocusedLines(c combat.Combatant) ([2]combat.MoveType, combat.MoveType) {
	lines := combat.MoveTypes()
	sort.SliceStable(lines, func(i, j int) bool {
		return potential(c.Line(lines[i])) > potential(c.Line(lines[j]))
	})
	return [2]combat.MoveType{lines[0], lines[1]}, lines[2]
}

func potential(l combat.AttackLine) int {
	return l.AttackPower * l.ChargesRemaining
}
