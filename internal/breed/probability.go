package breed

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

const (
	DefaultSameTierUpgradeChance       = 0.5
	DefaultCrossTierBreakthroughChance = 0.2
)

// ProbabilityConfig carries the two chances that drive resolution.
// The resolver does not check bounds; values outside [0,1] simply make the
// comparison always true or always false.
type ProbabilityConfig struct {
	SameTierUpgradeChance       float64 `json:"same_tier_upgrade_chance" yaml:"same_tier_upgrade_chance"`
	CrossTierBreakthroughChance float64 `json:"cross_tier_breakthrough_chance" yaml:"cross_tier_breakthrough_chance"`
}

func DefaultProbabilities() ProbabilityConfig {
	return ProbabilityConfig{
		SameTierUpgradeChance:       DefaultSameTierUpgradeChance,
		CrossTierBreakthroughChance: DefaultCrossTierBreakthroughChance,
	}
}

// Validate reports the first chance that is not a finite value in [0,1].
func (c ProbabilityConfig) Validate() error {
	if err := validateProb(c.SameTierUpgradeChance); err != nil {
		return fmt.Errorf("same_tier_upgrade_chance=%v: %w", c.SameTierUpgradeChance, err)
	}
	if err := validateProb(c.CrossTierBreakthroughChance); err != nil {
		return fmt.Errorf("cross_tier_breakthrough_chance=%v: %w", c.CrossTierBreakthroughChance, err)
	}
	return nil
}

// Clamp returns a copy with both chances forced into [0,1].
// NaN is replaced by the default chance.
func (c ProbabilityConfig) Clamp() ProbabilityConfig {
	return ProbabilityConfig{
		SameTierUpgradeChance:       ClampProb(c.SameTierUpgradeChance, DefaultSameTierUpgradeChance),
		CrossTierBreakthroughChance: ClampProb(c.CrossTierBreakthroughChance, DefaultCrossTierBreakthroughChance),
	}
}

// ClampProb forces p into [0,1], using fallback for NaN.
func ClampProb(p, fallback float64) float64 {
	switch {
	case math.IsNaN(p):
		return fallback
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}
