package combat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSnapshot is returned when a Snapshot fails validation.
var ErrInvalidSnapshot = errors.New("invalid battle snapshot")

// Gauge is a current/max pair such as health or shield.
type Gauge struct {
	Current int `json:"current" yaml:"current"`
	Max     int `json:"max" yaml:"max"`
}

// AttackLine is one attack type's power and remaining uses.
type AttackLine struct {
	AttackPower      int `json:"attack_power" yaml:"attack_power"`
	ChargesRemaining int `json:"charges_remaining" yaml:"charges_remaining"`
}

// Combatant is a read-only view of one side of a fight.
type Combatant struct {
	Health  Gauge      `json:"health" yaml:"health"`
	Shield  Gauge      `json:"shield" yaml:"shield"`
	Rock    AttackLine `json:"rock" yaml:"rock"`
	Paper   AttackLine `json:"paper" yaml:"paper"`
	Scissor AttackLine `json:"scissor" yaml:"scissor"`
}

// Line returns the attack line for t.
func (c Combatant) Line(t MoveType) AttackLine {
	switch t {
	case Rock:
		return c.Rock
	case Paper:
		return c.Paper
	default:
		return c.Scissor
	}
}

// HealthRatio returns Health.Current / Health.Max; 0 if Max <= 0.
func (c Combatant) HealthRatio() float64 {
	if c.Health.Max <= 0 {
		return 0
	}
	return float64(c.Health.Current) / float64(c.Health.Max)
}

// Snapshot is the battle state a decision is made against.
type Snapshot struct {
	Player Combatant `json:"player" yaml:"player"`
	Enemy  Combatant `json:"enemy" yaml:"enemy"`
}

// Validate checks that both sides are well formed.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidSnapshot that lists every violation.
func (s Snapshot) Validate() error {
	var errs []string
	errs = append(errs, validateCombatant("player", s.Player)...)
	errs = append(errs, validateCombatant("enemy", s.Enemy)...)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(errs, "; "))
	}
	return nil
}

func validateCombatant(side string, c Combatant) []string {
	var errs []string
	if c.Health.Max < 1 {
		errs = append(errs, fmt.Sprintf("%s.health.max must be >= 1, got %d", side, c.Health.Max))
	}
	if c.Health.Current < 0 {
		errs = append(errs, fmt.Sprintf("%s.health.current must be >= 0, got %d", side, c.Health.Current))
	}
	if c.Health.Current > c.Health.Max {
		errs = append(errs, fmt.Sprintf("%s.health.current %d exceeds health.max %d", side, c.Health.Current, c.Health.Max))
	}
	if c.Shield.Max < 0 {
		errs = append(errs, fmt.Sprintf("%s.shield.max must be >= 0, got %d", side, c.Shield.Max))
	}
	if c.Shield.Current < 0 {
		errs = append(errs, fmt.Sprintf("%s.shield.current must be >= 0, got %d", side, c.Shield.Current))
	}
	if c.Shield.Current > c.Shield.Max {
		errs = append(errs, fmt.Sprintf("%s.shield.current %d exceeds shield.max %d", side, c.Shield.Current, c.Shield.Max))
	}
	for _, t := range MoveTypes() {
		line := c.Line(t)
		if line.AttackPower < 0 {
			errs = append(errs, fmt.Sprintf("%s.%s.attack_power must be >= 0, got %d", side, t, line.AttackPower))
		}
		if line.ChargesRemaining < 0 {
			errs = append(errs, fmt.Sprintf("%s.%s.charges_remaining must be >= 0, got %d", side, t, line.ChargesRemaining))
		}
	}
	return errs
}

// AvailableMoves returns every playable move for c in enumeration order:
// attack lines with charges left, then defend.
//
// Postcondition: the result is never empty and always ends with defend.
func (c Combatant) AvailableMoves() []Move {
	moves := make([]Move, 0, 4)
	for _, t := range MoveTypes() {
		line := c.Line(t)
		m := Attack(t, line.AttackPower, line.ChargesRemaining)
		if m.Playable() {
			moves = append(moves, m)
		}
	}
	return append(moves, Defend())
}

// PlayerMoves returns the player's candidate moves.
func PlayerMoves(s Snapshot) []Move { return s.Player.AvailableMoves() }

// EnemyMoves returns every response the enemy could make, weighted equally by the evaluator.
func EnemyMoves(s Snapshot) []Move { return s.Enemy.AvailableMoves() }
