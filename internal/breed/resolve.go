package breed

// Branch names the rule that produced an outcome.
type Branch string

const (
	BranchSameTier  Branch = "same_tier"
	BranchCrossTier Branch = "cross_tier"
)

// Outcome reports one resolution.
type Outcome struct {
	First      Color
	Second     Color
	Result     Color
	Branch     Branch
	Advanced   bool    // coin flip succeeded (upgrade or breakthrough)
	TargetTier Tier    // tier of the pool when it is a single tier, else the highest tier pooled
	Pool       []Color // candidates the result was drawn from
}

// Resolve returns the offspring color of first and second.
func Resolve(first, second Color, cfg ProbabilityConfig, rng RandomSource) Color {
	return ResolveOutcome(first, second, cfg, rng).Result
}

// ResolveOutcome runs the breeding rules and reports how the result was chosen.
//
// Same tier: with SameTierUpgradeChance the pool moves one tier up (capped
// at TierMax), otherwise it stays at the parents' tier. Two TierMax parents
// therefore always yield a TierMax child.
//
// Different tiers: with CrossTierBreakthroughChance the pool is the tier
// above the higher parent (capped), otherwise every color from the lower
// parent's tier to the higher parent's tier, each with equal weight.
//
// Every call consumes exactly two values from rng: the coin flip and the pick.
func ResolveOutcome(first, second Color, cfg ProbabilityConfig, rng RandomSource) Outcome {
	if rng == nil {
		rng = DefaultRNG()
	}
	level1, level2 := TierOf(first), TierOf(second)
	out := Outcome{First: first, Second: second}

	if level1 == level2 {
		out.Branch = BranchSameTier
		out.Advanced = roll(cfg.SameTierUpgradeChance, rng)
		target := level1
		if out.Advanced {
			target = capTier(level1 + 1)
		}
		out.TargetTier = target
		out.Pool = ColorsInTier(target)
	} else {
		out.Branch = BranchCrossTier
		minLv, maxLv := min(level1, level2), max(level1, level2)
		upperLevel := capTier(maxLv + 1)
		out.Advanced = roll(cfg.CrossTierBreakthroughChance, rng)
		if out.Advanced {
			out.TargetTier = upperLevel
			out.Pool = ColorsInTier(upperLevel)
		} else {
			out.TargetTier = maxLv
			out.Pool = PoolBetween(minLv, maxLv)
		}
	}

	out.Result = pickOne(out.Pool, rng)
	return out
}

// roll always consumes one value so the draw count does not depend on p.
func roll(p float64, rng RandomSource) bool {
	return rng.Float64() < p
}

// pickOne draws a uniform element of pool. An empty pool cannot come out of
// the tier table; if it ever does, ColorA is returned instead of failing.
func pickOne(pool []Color, rng RandomSource) Color {
	if len(pool) == 0 {
		return ColorA
	}
	return pool[rng.IntN(len(pool))]
}

func capTier(t Tier) Tier {
	if t > TierMax {
		return TierMax
	}
	return t
}
