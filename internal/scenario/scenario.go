// Package scenario loads battle scenarios from YAML files.
//
// A scenario is a snapshot plus an optional loot offer and strategy name, the
// same inputs the advisor receives over HTTP.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

// Scenario is one battle situation.
type Scenario struct {
	Name     string
	Snapshot combat.Snapshot
	Loot     []loot.Option
	Strategy string
}

// document is the file layout; every snapshot field must be spelled out.
type document struct {
	Name     string                `yaml:"name"`
	Snapshot *combat.SnapshotInput `yaml:"snapshot"`
	Loot     []loot.Option         `yaml:"loot"`
	Strategy string                `yaml:"strategy"`
}

// LoadFromBytes parses and validates a single scenario.
//
// Postcondition: Returns a validated Scenario or a non-nil error. A snapshot
// with absent fields fails with an error wrapping combat.ErrInvalidSnapshot.
func LoadFromBytes(data []byte) (*Scenario, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if doc.Snapshot == nil {
		return nil, fmt.Errorf("scenario %q: %w: missing snapshot", doc.Name, combat.ErrInvalidSnapshot)
	}
	snap, err := doc.Snapshot.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", doc.Name, err)
	}
	s := &Scenario{Name: doc.Name, Snapshot: snap, Loot: doc.Loot, Strategy: doc.Strategy}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads and parses the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", path, err)
	}
	return s, nil
}

// LoadDir loads every .yaml and .yml file in dir, sorted by file name.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all scenarios or a non-nil error naming the first bad file.
// Scenario names must be unique within dir.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	out := make([]*Scenario, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name %q in %s and %s", s.Name, prev, name)
		}
		seen[s.Name] = name
		out = append(out, s)
	}
	return out, nil
}

// Validate checks the name, snapshot, and strategy.
func (s *Scenario) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("scenario name must not be empty"))
	}
	if err := s.Snapshot.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Strategy != "" {
		if _, err := loot.ParseStrategy(s.Strategy); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
