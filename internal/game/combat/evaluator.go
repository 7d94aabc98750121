package combat

// Evaluation aggregates one candidate move's outcomes over every enemy response.
type Evaluation struct {
	Move Move
	// ExpectedValue is the mean NetValue across enemy responses, weighted uniformly.
	ExpectedValue float64
	// Outcomes is keyed by enemy move name.
	Outcomes map[string]Outcome
	// WouldExhaustCharges is true when playing Move spends its last charge.
	WouldExhaustCharges bool
	// GuaranteesVictory is true when the enemy ends at 0 health in every branch.
	GuaranteesVictory bool
}

// Evaluate simulates move against every move the enemy can currently make.
//
// Precondition: s has passed Validate; move is Playable.
// Postcondition: len(Outcomes) == len(EnemyMoves(s)); s is not modified.
func Evaluate(move Move, s Snapshot, p Params) Evaluation {
	responses := EnemyMoves(s)
	outcomes := make(map[string]Outcome, len(responses))
	total := 0.0
	victory := true
	for _, response := range responses {
		o := Simulate(move, response, s, p)
		outcomes[response.Name()] = o
		total += o.NetValue(p)
		if o.EnemyHealth > 0 {
			victory = false
		}
	}
	return Evaluation{
		Move:                move,
		ExpectedValue:       total / float64(len(responses)),
		Outcomes:            outcomes,
		WouldExhaustCharges: !move.IsDefend() && move.ChargesRemaining == 1,
		GuaranteesVictory:   victory,
	}
}
