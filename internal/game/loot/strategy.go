package loot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for strategy names outside the built-in set.
var ErrUnknownStrategy = errors.New("unknown loot strategy")

// Strategy identifies one of the built-in scoring strategies.
// The set is closed; there is no runtime registration.
type Strategy int

const (
	Balanced Strategy = iota
	Aggressive
	Defensive
	Focused
)

// Strategies returns every built-in strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Balanced, Aggressive, Defensive, Focused}
}

// String returns the canonical strategy name.
func (s Strategy) String() string {
	switch s {
	case Balanced:
		return "balanced"
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Focused:
		return "focused"
	default:
		return "unknown"
	}
}

// Description returns a short human-readable summary of the strategy.
func (s Strategy) Description() string {
	switch s {
	case Balanced:
		return "rarity and upgrade values with no stat bias"
	case Aggressive:
		return "glass cannon, doubles attack boons and weighs their upgrades twice as heavily"
	case Defensive:
		return "tank, doubles defensive boons and favors healing below half health"
	case Focused:
		return "two-move specialist, concentrates upgrades on the two strongest attack lines"
	default:
		return "unknown strategy"
	}
}

// Valid reports whether s is a built-in strategy.
func (s Strategy) Valid() bool {
	return s >= Balanced && s <= Focused
}

// ParseStrategy maps a name to a Strategy. Canonical names and the aliases
// "glass-cannon", "tank", and "two-move-specialist" are accepted, ignoring case;
// underscores and spaces are treated as hyphens.
//
// Postcondition: Returns an error wrapping ErrUnknownStrategy for any other name.
func ParseStrategy(name string) (Strategy, error) {
	norm := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch norm {
	case "balanced":
		return Balanced, nil
	case "aggressive", "glass-cannon":
		return Aggressive, nil
	case "defensive", "tank":
		return Defensive, nil
	case "focused", "two-move-specialist":
		return Focused, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
