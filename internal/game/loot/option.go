// Package loot ranks loot offers under a named strategy.
//
// Scoring is pure: the same options, snapshot, and strategy always produce the
// same scores, and no state is kept between calls.
package loot

import (
	"errors"
	"strings"
)

// ErrNoOptions is returned when a selection is requested over an empty offer.
var ErrNoOptions = errors.New("no loot options to choose from")

// Option is one item in a loot offer.
type Option struct {
	// BoonType is the free-text classification matched against strategy keywords.
	BoonType string `json:"boon_type" yaml:"boon_type"`
	// Rarity is the tier; zero means unset and scores as tier 1.
	Rarity        int `json:"rarity" yaml:"rarity"`
	UpgradeValue1 int `json:"upgrade_value_1" yaml:"upgrade_value_1"`
	UpgradeValue2 int `json:"upgrade_value_2" yaml:"upgrade_value_2"`
}

// Tier returns Rarity, or 1 when Rarity is unset.
//
// Postcondition: Returns >= 1.
func (o Option) Tier() int {
	if o.Rarity < 1 {
		return 1
	}
	return o.Rarity
}

// UpgradeTotal returns UpgradeValue1 + UpgradeValue2.
func (o Option) UpgradeTotal() int {
	return o.UpgradeValue1 + o.UpgradeValue2
}

// Matches reports whether BoonType contains any keyword, ignoring case.
func (o Option) Matches(keywords ...string) bool {
	boon := strings.ToLower(o.BoonType)
	for _, kw := range keywords {
		if strings.Contains(boon, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
