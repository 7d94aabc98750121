package combat

import (
	"fmt"
	"strings"
)

// GaugeInput is the decoded form of a Gauge. Nil fields were absent from the document.
type GaugeInput struct {
	Current *int `json:"current" yaml:"current" binding:"required"`
	Max     *int `json:"max" yaml:"max" binding:"required"`
}

// AttackLineInput is the decoded form of an AttackLine.
type AttackLineInput struct {
	AttackPower      *int `json:"attack_power" yaml:"attack_power" binding:"required"`
	ChargesRemaining *int `json:"charges_remaining" yaml:"charges_remaining" binding:"required"`
}

// CombatantInput is the decoded form of a Combatant.
type CombatantInput struct {
	Health  *GaugeInput      `json:"health" yaml:"health" binding:"required"`
	Shield  *GaugeInput      `json:"shield" yaml:"shield" binding:"required"`
	Rock    *AttackLineInput `json:"rock" yaml:"rock" binding:"required"`
	Paper   *AttackLineInput `json:"paper" yaml:"paper" binding:"required"`
	Scissor *AttackLineInput `json:"scissor" yaml:"scissor" binding:"required"`
}

// SnapshotInput is a snapshot as received from a client or a scenario file.
// Every field is required; a missing value is never read as zero.
type SnapshotInput struct {
	Player *CombatantInput `json:"player" yaml:"player" binding:"required"`
	Enemy  *CombatantInput `json:"enemy" yaml:"enemy" binding:"required"`
}

// Snapshot converts in into a validated Snapshot.
//
// Postcondition: Returns an error wrapping ErrInvalidSnapshot that names every
// missing field, or the result of Snapshot.Validate.
func (in SnapshotInput) Snapshot() (Snapshot, error) {
	var missing []string
	player := in.Player.combatant("player", &missing)
	enemy := in.Enemy.combatant("enemy", &missing)
	if len(missing) > 0 {
		return Snapshot{}, fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, strings.Join(missing, ", "))
	}
	s := Snapshot{Player: player, Enemy: enemy}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Input returns the fully populated decoded form of s.
func (s Snapshot) Input() SnapshotInput {
	return SnapshotInput{Player: s.Player.input(), Enemy: s.Enemy.input()}
}

func (c *CombatantInput) combatant(path string, missing *[]string) Combatant {
	if c == nil {
		*missing = append(*missing, path)
		return Combatant{}
	}
	return Combatant{
		Health:  c.Health.gauge(path+".health", missing),
		Shield:  c.Shield.gauge(path+".shield", missing),
		Rock:    c.Rock.line(path+".rock", missing),
		Paper:   c.Paper.line(path+".paper", missing),
		Scissor: c.Scissor.line(path+".scissor", missing),
	}
}

func (g *GaugeInput) gauge(path string, missing *[]string) Gauge {
	if g == nil {
		*missing = append(*missing, path)
		return Gauge{}
	}
	return Gauge{
		Current: required(g.Current, path+".current", missing),
		Max:     required(g.Max, path+".max", missing),
	}
}

func (l *AttackLineInput) line(path string, missing *[]string) AttackLine {
	if l == nil {
		*missing = append(*missing, path)
		return AttackLine{}
	}
	return AttackLine{
		AttackPower:      required(l.AttackPower, path+".attack_power", missing),
		ChargesRemaining: required(l.ChargesRemaining, path+".charges_remaining", missing),
	}
}

func (c Combatant) input() *CombatantInput {
	return &CombatantInput{
		Health:  c.Health.input(),
		Shield:  c.Shield.input(),
		Rock:    c.Rock.input(),
		Paper:   c.Paper.input(),
		Scissor: c.Scissor.input(),
	}
}

func (g Gauge) input() *GaugeInput {
	return &GaugeInput{Current: &g.Current, Max: &g.Max}
}

func (l AttackLine) input() *AttackLineInput {
	return &AttackLineInput{AttackPower: &l.AttackPower, ChargesRemaining: &l.ChargesRemaining}
}

func required(v *int, path string, missing *[]string) int {
	if v == nil {
		*missing = append(*missing, path)
		return 0
	}
	return *v
}
