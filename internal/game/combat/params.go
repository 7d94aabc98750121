package combat

import "fmt"

// Balance numbers used when no configuration overrides them.
const (
	// DefaultShieldOnDefend is the shield a side gains when it defends.
	DefaultShieldOnDefend = 5
	// DefaultShieldWeight scales the shield differential in a move's net value.
	DefaultShieldWeight = 0.5
)

// Params holds the tunable constants of the evaluator.
type Params struct {
	ShieldOnDefend int
	ShieldWeight   float64
}

// DefaultParams returns the reference balance numbers.
func DefaultParams() Params {
	return Params{ShieldOnDefend: DefaultShieldOnDefend, ShieldWeight: DefaultShieldWeight}
}

// Validate checks that p holds non-negative constants.
func (p Params) Validate() error {
	if p.ShieldOnDefend < 0 {
		return fmt.Errorf("combat params: shield_on_defend must be >= 0, got %d", p.ShieldOnDefend)
	}
	if p.ShieldWeight < 0 {
		return fmt.Errorf("combat params: shield_weight must be >= 0, got %f", p.ShieldWeight)
	}
	return nil
}
