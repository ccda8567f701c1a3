package rules

import (
	"fmt"
	"math"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	checkChance := func(name string, p *float64) {
		if p == nil {
			return
		}
		if math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 || *p > 1 {
			errs = append(errs, fmt.Sprintf("probabilities.%s must be in [0,1], got %v", name, *p))
		}
	}
	checkChance("same_tier_upgrade_chance", cfg.Probabilities.SameTierUpgradeChance)
	checkChance("cross_tier_breakthrough_chance", cfg.Probabilities.CrossTierBreakthroughChance)

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
