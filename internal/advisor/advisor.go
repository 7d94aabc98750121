// Package advisor turns battle snapshots into logged, audited recommendations.
//
// The Service holds no mutable state; it is safe for concurrent use.
package advisor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
	"github.com/gigaverse-labs/advisor/internal/observability"
)

// Kind distinguishes the two decision types in the audit trail.
type Kind string

const (
	KindMove Kind = "move"
	KindLoot Kind = "loot"
)

// Record is one audited decision.
type Record struct {
	ID          uuid.UUID
	Kind        Kind
	Choice      string
	Score       float64
	Explanation string
	Snapshot    combat.Snapshot
	// Options is the loot offer; empty for move decisions.
	Options   []loot.Option
	CreatedAt time.Time
}

// Recorder persists decisions.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// NopRecorder discards every record.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Record) error { return nil }

// MoveRecommendation is the advisor's answer to a combat turn.
type MoveRecommendation struct {
	DecisionID  uuid.UUID
	Decision    combat.Decision
	Explanation string
}

// LootRecommendation is the advisor's answer to a loot offer.
type LootRecommendation struct {
	DecisionID  uuid.UUID
	Strategy    loot.Strategy
	Selection   loot.Selection
	Explanation string
}

// Service produces recommendations.
type Service struct {
	params          combat.Params
	defaultStrategy loot.Strategy
	recorder        Recorder
	logger          *zap.Logger
	now             func() time.Time
}

// New constructs a Service. A nil recorder is replaced by NopRecorder.
//
// Precondition: logger must not be nil; params must pass Validate; defaultStrategy must be Valid.
func New(params combat.Params, defaultStrategy loot.Strategy, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		panic("advisor.New: logger must not be nil")
	}
	if err := params.Validate(); err != nil {
		panic("advisor.New: " + err.Error())
	}
	if !defaultStrategy.Valid() {
		panic("advisor.New: default strategy must be a built-in strategy")
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Service{
		params:          params,
		defaultStrategy: defaultStrategy,
		recorder:        recorder,
		logger:          logger,
		now:             time.Now,
	}
}

// RecommendMove picks the optimal combat move for snap.
//
// Postcondition: returns an error wrapping combat.ErrInvalidSnapshot for malformed
// snapshots; audit failures are logged and never returned.
func (s *Service) RecommendMove(ctx context.Context, snap combat.Snapshot) (MoveRecommendation, error) {
	d, err := combat.FindOptimalMove(snap, s.params)
	if err != nil {
		s.logger.Warn("rejected combat snapshot", zap.Error(err))
		return MoveRecommendation{}, err
	}

	rec := MoveRecommendation{
		DecisionID:  uuid.New(),
		Decision:    d,
		Explanation: combat.Explain(d),
	}
	log := observability.WithDecision(s.logger, string(KindMove), rec.DecisionID)
	for _, e := range d.All {
		log.Debug("candidate evaluated", observability.EvaluationFields(e)...)
	}
	log.Info("combat move recommended", observability.MoveFields(d)...)

	s.record(ctx, log, Record{
		ID:          rec.DecisionID,
		Kind:        KindMove,
		Choice:      d.Move.Name(),
		Score:       d.Evaluation.ExpectedValue,
		Explanation: rec.Explanation,
		Snapshot:    snap,
		CreatedAt:   s.now(),
	})
	return rec, nil
}

// RecommendLoot picks the best loot option under strategyName, or under the
// default strategy when strategyName is empty.
//
// Postcondition: returns an error wrapping loot.ErrUnknownStrategy, loot.ErrNoOptions,
// or combat.ErrInvalidSnapshot on bad input.
func (s *Service) RecommendLoot(ctx context.Context, options []loot.Option, snap combat.Snapshot, strategyName string) (LootRecommendation, error) {
	strategy := s.defaultStrategy
	if strategyName != "" {
		parsed, err := loot.ParseStrategy(strategyName)
		if err != nil {
			s.logger.Warn("rejected loot strategy", zap.String("strategy", strategyName), zap.Error(err))
			return LootRecommendation{}, err
		}
		strategy = parsed
	}

	sel, err := loot.SelectBest(options, snap, strategy)
	if err != nil {
		s.logger.Warn("rejected loot request", zap.Stringer("strategy", strategy), zap.Error(err))
		return LootRecommendation{}, err
	}

	rec := LootRecommendation{
		DecisionID:  uuid.New(),
		Strategy:    strategy,
		Selection:   sel,
		Explanation: loot.Explain(sel.Option, sel.Scores, strategy),
	}
	log := observability.WithDecision(s.logger, string(KindLoot), rec.DecisionID)
	log.Info("loot option recommended", observability.LootFields(sel, strategy)...)

	s.record(ctx, log, Record{
		ID:          rec.DecisionID,
		Kind:        KindLoot,
		Choice:      sel.Option.BoonType,
		Score:       sel.Scores[sel.Index],
		Explanation: rec.Explanation,
		Snapshot:    snap,
		Options:     options,
		CreatedAt:   s.now(),
	})
	return rec, nil
}

func (s *Service) record(ctx context.Context, log *zap.Logger, rec Record) {
	if err := s.recorder.Record(ctx, rec); err != nil {
		log.Warn("recording decision failed", zap.Error(err))
	}
}
