package combat

import (
	"fmt"
	"sort"
)

// Decision is the selected move plus the full ranking it was chosen from.
type Decision struct {
	Move       Move
	Evaluation Evaluation
	// All holds every candidate evaluation, ranked by descending expected value.
	All []Evaluation
}

// Overridden reports whether charge conservation replaced the top-ranked move.
func (d Decision) Overridden() bool {
	return len(d.All) > 0 && d.All[0].Move != d.Move
}

// FindOptimalMove evaluates every playable player move and picks the best one.
//
// Candidates are ranked by expected value with a stable sort, so equal values keep
// enumeration order (rock, paper, scissor, defend). If the top move would spend its
// last charge without guaranteeing victory, the first lower-ranked move that either
// keeps its charges or guarantees victory is chosen instead; when none exists the
// top move stands.
//
// Postcondition: on nil error, Decision.All is non-empty and contains no move with zero charges.
func FindOptimalMove(s Snapshot, p Params) (Decision, error) {
	if err := s.Validate(); err != nil {
		return Decision{}, err
	}
	if err := p.Validate(); err != nil {
		return Decision{}, err
	}

	candidates := PlayerMoves(s)
	if len(candidates) == 0 {
		panic("combat.FindOptimalMove: candidate set must include defend")
	}

	evals := make([]Evaluation, 0, len(candidates))
	for _, m := range candidates {
		evals = append(evals, Evaluate(m, s, p))
	}
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].ExpectedValue > evals[j].ExpectedValue
	})

	best := evals[0]
	if best.WouldExhaustCharges && !best.GuaranteesVictory {
		for _, alt := range evals[1:] {
			if !alt.WouldExhaustCharges || alt.GuaranteesVictory {
				best = alt
				break
			}
		}
	}
	return Decision{Move: best.Move, Evaluation: best, All: evals}, nil
}

// Explain renders d as a deterministic one-line rationale for audit logs.
//
// Precondition: d was produced by FindOptimalMove.
func Explain(d Decision) string {
	e := d.Evaluation
	msg := fmt.Sprintf("play %s: expected value %.2f across %d enemy responses",
		d.Move.Name(), e.ExpectedValue, len(e.Outcomes))
	switch {
	case e.GuaranteesVictory:
		msg += "; defeats the enemy against every response"
	case d.Overridden():
		top := d.All[0]
		return msg + fmt.Sprintf("; %s ranked higher (%.2f) but would spend its last charge",
			top.Move.Name(), top.ExpectedValue)
	case e.WouldExhaustCharges:
		msg += "; spends the last charge of this line"
	}
	if runnerUp, ok := d.runnerUp(); ok {
		msg += fmt.Sprintf("; next best %s (%.2f)", runnerUp.Move.Name(), runnerUp.ExpectedValue)
	}
	return msg
}

// runnerUp returns the highest-ranked evaluation other than the chosen one.
func (d Decision) runnerUp() (Evaluation, bool) {
	for _, e := range d.All {
		if e.Move != d.Move {
			return e, true
		}
	}
	return Evaluation{}, false
}
