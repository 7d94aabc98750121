package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

type moveRequest struct {
	Snapshot *combat.SnapshotInput `json:"snapshot" binding:"required"`
}

type lootRequest struct {
	Snapshot *combat.SnapshotInput `json:"snapshot" binding:"required"`
	Options  []loot.Option         `json:"options"`
	Strategy string                `json:"strategy"`
}

type evaluationResponse struct {
	Move                string  `json:"move"`
	ExpectedValue       float64 `json:"expected_value"`
	WouldExhaustCharges bool    `json:"would_exhaust_charges"`
	GuaranteesVictory   bool    `json:"guarantees_victory"`
}

type moveResponse struct {
	DecisionID          uuid.UUID            `json:"decision_id"`
	BestMove            string               `json:"best_move"`
	ExpectedValue       float64              `json:"expected_value"`
	GuaranteesVictory   bool                 `json:"guarantees_victory"`
	WouldExhaustCharges bool                 `json:"would_exhaust_charges"`
	Explanation         string               `json:"explanation"`
	Evaluations         []evaluationResponse `json:"evaluations"`
}

type lootResponse struct {
	DecisionID  uuid.UUID   `json:"decision_id"`
	BestIndex   int         `json:"best_index"`
	BestOption  loot.Option `json:"best_option"`
	Scores      []float64   `json:"scores"`
	Strategy    string      `json:"strategy"`
	Explanation string      `json:"explanation"`
}

func newMoveResponse(rec advisor.MoveRecommendation) moveResponse {
	d := rec.Decision
	evals := make([]evaluationResponse, 0, len(d.All))
	for _, e := range d.All {
		evals = append(evals, evaluationResponse{
			Move:                e.Move.Name(),
			ExpectedValue:       e.ExpectedValue,
			WouldExhaustCharges: e.WouldExhaustCharges,
			GuaranteesVictory:   e.GuaranteesVictory,
		})
	}
	return moveResponse{
		DecisionID:          rec.DecisionID,
		BestMove:            d.Move.Name(),
		ExpectedValue:       d.Evaluation.ExpectedValue,
		GuaranteesVictory:   d.Evaluation.GuaranteesVictory,
		WouldExhaustCharges: d.Evaluation.WouldExhaustCharges,
		Explanation:         rec.Explanation,
		Evaluations:         evals,
	}
}

func newLootResponse(rec advisor.LootRecommendation) lootResponse {
	return lootResponse{
		DecisionID:  rec.DecisionID,
		BestIndex:   rec.Selection.Index,
		BestOption:  rec.Selection.Option,
		Scores:      rec.Selection.Scores,
		Strategy:    rec.Strategy.String(),
		Explanation: rec.Explanation,
	}
}

type decisionResponse struct {
	DecisionID    uuid.UUID       `json:"decision_id"`
	Kind          string          `json:"kind"`
	Choice        string          `json:"choice"`
	ExpectedValue float64         `json:"expected_value"`
	Explanation   string          `json:"explanation"`
	Snapshot      combat.Snapshot `json:"snapshot"`
	Options       []loot.Option   `json:"options,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newDecisionResponses(recs []advisor.Record) []decisionResponse {
	out := make([]decisionResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, decisionResponse{
			DecisionID:    r.ID,
			Kind:          string(r.Kind),
			Choice:        r.Choice,
			ExpectedValue: r.Score,
			Explanation:   r.Explanation,
			Snapshot:      r.Snapshot,
			Options:       r.Options,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}
