package observability

import (
	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

// MoveFields returns the fields logged for every combat decision.
func MoveFields(d combat.Decision) []zap.Field {
	candidates := make([]string, 0, len(d.All))
	for _, e := range d.All {
		candidates = append(candidates, e.Move.Name())
	}
	return []zap.Field{
		zap.String("best_move", d.Move.Name()),
		zap.Float64("expected_value", d.Evaluation.ExpectedValue),
		zap.Bool("guarantees_victory", d.Evaluation.GuaranteesVictory),
		zap.Bool("would_exhaust", d.Evaluation.WouldExhaustCharges),
		zap.Bool("charge_override", d.Overridden()),
		zap.Strings("candidates", candidates),
	}
}

// EvaluationFields returns the fields logged for one candidate evaluation.
func EvaluationFields(e combat.Evaluation) []zap.Field {
	return []zap.Field{
		zap.String("move", e.Move.Name()),
		zap.Float64("expected_value", e.ExpectedValue),
		zap.Int("responses", len(e.Outcomes)),
		zap.Bool("guarantees_victory", e.GuaranteesVictory),
		zap.Bool("would_exhaust", e.WouldExhaustCharges),
	}
}

// LootFields returns the fields logged for every loot decision.
func LootFields(sel loot.Selection, strategy loot.Strategy) []zap.Field {
	score := 0.0
	if sel.Index >= 0 && sel.Index < len(sel.Scores) {
		score = sel.Scores[sel.Index]
	}
	return []zap.Field{
		zap.Stringer("strategy", strategy),
		zap.Int("best_index", sel.Index),
		zap.String("boon_type", sel.Option.BoonType),
		zap.Float64("score", score),
		zap.Int("options", len(sel.Scores)),
	}
}
