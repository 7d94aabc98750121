// Package combat implements the expected-value combat advisor for
// rock/paper/scissor style battles.
//
// Every function in this package is pure: it reads a Snapshot and returns a
// fresh value. Nothing is cached between calls and inputs are never mutated,
// so callers may evaluate snapshots concurrently without coordination.
package combat

import (
	"fmt"
	"math"
	"strings"
)

// MoveType identifies one of the three attack lines.
type MoveType int

const (
	Rock MoveType = iota
	Paper
	Scissor
)

// Matchup multipliers applied to attack power.
const (
	WinMultiplier  = 2.0
	TieMultiplier  = 1.0
	LossMultiplier = 0.5
)

// MoveTypes returns the attack lines in enumeration order.
//
// Postcondition: Returns a new slice [Rock, Paper, Scissor].
func MoveTypes() []MoveType {
	return []MoveType{Rock, Paper, Scissor}
}

// String returns the lowercase attack line name.
func (t MoveType) String() string {
	switch t {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissor:
		return "scissor"
	default:
		return "unknown"
	}
}

// ParseMoveType maps a name ("rock", "paper", "scissor" or "scissors") to a MoveType.
//
// Postcondition: Returns an error for any other name.
func ParseMoveType(name string) (MoveType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissor", "scissors":
		return Scissor, nil
	default:
		return 0, fmt.Errorf("unknown move type %q", name)
	}
}

// Beats reports whether t wins the matchup against other.
// Rock beats Scissor, Scissor beats Paper, Paper beats Rock.
func (t MoveType) Beats(other MoveType) bool {
	switch t {
	case Rock:
		return other == Scissor
	case Paper:
		return other == Rock
	case Scissor:
		return other == Paper
	default:
		return false
	}
}

// Multiplier returns the damage multiplier for an attack of type a against an
// attack of type b.
//
// Postcondition: Returns WinMultiplier iff a beats b, LossMultiplier iff b beats a,
// TieMultiplier otherwise.
func Multiplier(a, b MoveType) float64 {
	switch {
	case a.Beats(b):
		return WinMultiplier
	case b.Beats(a):
		return LossMultiplier
	default:
		return TieMultiplier
	}
}

// MoveMultiplier returns the multiplier applied to attacker's damage when it
// meets defender. A defend on either side exchanges no matchup bonus.
func MoveMultiplier(attacker, defender Move) float64 {
	if attacker.IsDefend() || defender.IsDefend() {
		return TieMultiplier
	}
	return Multiplier(attacker.Type, defender.Type)
}

// Damage applies mult to power, truncating toward zero.
//
// Postcondition: Returns floor(power*mult), and 0 when power <= 0.
func Damage(power int, mult float64) int {
	if power <= 0 {
		return 0
	}
	return int(math.Floor(float64(power) * mult))
}

// MoveKind distinguishes attacks from defend.
type MoveKind int

const (
	KindAttack MoveKind = iota
	KindDefend
)

// Move is one playable action: an attack on a line, or defend.
//
// Type, Damage and ChargesRemaining are meaningful only for attacks.
type Move struct {
	Kind             MoveKind
	Type             MoveType
	Damage           int
	ChargesRemaining int
}

// Attack builds an attack move.
func Attack(t MoveType, damage, charges int) Move {
	return Move{Kind: KindAttack, Type: t, Damage: damage, ChargesRemaining: charges}
}

// Defend builds the defend move. Defend has unlimited uses.
func Defend() Move {
	return Move{Kind: KindDefend}
}

// IsDefend reports whether m is the defend move.
func (m Move) IsDefend() bool { return m.Kind == KindDefend }

// Name returns "defend" or the attack line name.
func (m Move) Name() string {
	if m.IsDefend() {
		return "defend"
	}
	return m.Type.String()
}

// Playable reports whether m may be offered as a candidate.
//
// Postcondition: true for defend; for attacks, true iff ChargesRemaining > 0.
func (m Move) Playable() bool {
	return m.IsDefend() || m.ChargesRemaining > 0
}
