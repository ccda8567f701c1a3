package breed

// Distribution is the probability of each outcome color and tier.
type Distribution struct {
	Colors map[Color]float64
	Tiers  map[Tier]float64
	// AdvanceChance is the probability that the coin flip succeeds.
	AdvanceChance float64
}

// Odds computes the exact outcome distribution of ResolveOutcome for the
// given parents. Chances are clamped to [0,1], which is what the strict
// comparison against a [0,1) draw amounts to.
func Odds(first, second Color, cfg ProbabilityConfig) Distribution {
	level1, level2 := TierOf(first), TierOf(second)

	var p float64
	var hitPool, missPool []Color
	if level1 == level2 {
		p = ClampProb(cfg.SameTierUpgradeChance, 0)
		hitPool = ColorsInTier(capTier(level1 + 1))
		missPool = ColorsInTier(level1)
	} else {
		minLv, maxLv := min(level1, level2), max(level1, level2)
		p = ClampProb(cfg.CrossTierBreakthroughChance, 0)
		hitPool = ColorsInTier(capTier(maxLv + 1))
		missPool = PoolBetween(minLv, maxLv)
	}

	d := Distribution{
		Colors:        make(map[Color]float64),
		Tiers:         make(map[Tier]float64),
		AdvanceChance: p,
	}
	spread(d, hitPool, p)
	spread(d, missPool, 1-p)
	return d
}

func spread(d Distribution, pool []Color, weight float64) {
	if weight == 0 || len(pool) == 0 {
		return
	}
	each := weight / float64(len(pool))
	for _, c := range pool {
		d.Colors[c] += each
		d.Tiers[TierOf(c)] += each
	}
}
