// resolve.go
package rules

import (
	"fmt"

	"github.com/xtding233/breeding-backend/internal/breed"
)

// Overrides carries per-request values like query parameters.
// Values are clamped into [0,1] rather than rejected.
type Overrides struct {
	SameTierUpgradeChance       *float64
	CrossTierBreakthroughChance *float64
}

// Resolver turns a profile plus overrides into breed parameters.
type Resolver interface {
	// Returns merged RawConfig and normalized Params
	Resolve(profile string, o Overrides) (RawConfig, Params, error)
}

// FileResolver resolves params from YAML files through a Loader.
type FileResolver struct {
	Loader *Loader
}

func NewFileResolver(l *Loader) *FileResolver {
	return &FileResolver{Loader: l}
}

// Resolve merges default → profile, validates the result, fills unset
// chances with the defaults and applies overrides.
func (r *FileResolver) Resolve(profile string, o Overrides) (RawConfig, Params, error) {
	raw, err := r.Loader.LoadMerged(profile)
	if err != nil {
		return RawConfig{}, Params{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return raw, Params{}, fmt.Errorf("profile %q: %w", profile, err)
	}
	return raw, Normalize(raw, profile, o), nil
}

// Normalize fills defaults and applies overrides. raw must already be valid.
func Normalize(raw RawConfig, profile string, o Overrides) Params {
	probs := breed.DefaultProbabilities()
	if p := raw.Probabilities.SameTierUpgradeChance; p != nil {
		probs.SameTierUpgradeChance = *p
	}
	if p := raw.Probabilities.CrossTierBreakthroughChance; p != nil {
		probs.CrossTierBreakthroughChance = *p
	}
	if o.SameTierUpgradeChance != nil {
		probs.SameTierUpgradeChance = breed.ClampProb(*o.SameTierUpgradeChance, probs.SameTierUpgradeChance)
	}
	if o.CrossTierBreakthroughChance != nil {
		probs.CrossTierBreakthroughChance = breed.ClampProb(*o.CrossTierBreakthroughChance, probs.CrossTierBreakthroughChance)
	}
	return Params{
		Probabilities: probs,
		Profile:       profile,
		Version:       raw.Version,
	}
}
