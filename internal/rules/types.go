// types.go
package rules

import "github.com/xtding233/breeding-backend/internal/breed"

// Raw config loaded from YAML; every value is optional so layers can merge.
type RawConfig struct {
	Version       string        `yaml:"version"`
	Probabilities Probabilities `yaml:"probabilities"`
	Notes         string        `yaml:"notes,omitempty"`
}

type Probabilities struct {
	SameTierUpgradeChance       *float64 `yaml:"same_tier_upgrade_chance,omitempty"`
	CrossTierBreakthroughChance *float64 `yaml:"cross_tier_breakthrough_chance,omitempty"`
}

// Normalized params handed to internal/breed.
type Params struct {
	Probabilities breed.ProbabilityConfig
	Profile       string
	Version       string // effective config version for tracing
}
