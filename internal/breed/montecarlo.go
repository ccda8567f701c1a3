package breed

import (
	"math"
	"sort"
)

// Stats summarizes integer samples (here: result tiers).
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// SimResult is the outcome of a Monte Carlo run for one parent pair.
type SimResult struct {
	Trials   int
	Colors   map[Color]int
	Tiers    map[Tier]int
	Advanced int // trials where the coin flip succeeded
	Tier     Stats
}

// Frequency returns the observed share of trials that produced c.
func (r SimResult) Frequency(c Color) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Colors[c]) / float64(r.Trials)
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}

// RunMonteCarlo resolves the pair trials times and tallies the results.
// Unlike Resolve it rejects chances outside [0,1], since a simulation is
// requested by a person reading the numbers back.
func RunMonteCarlo(first, second Color, cfg ProbabilityConfig, trials int, rng RandomSource) (SimResult, error) {
	if err := cfg.Validate(); err != nil {
		return SimResult{}, err
	}
	res := SimResult{
		Colors: make(map[Color]int),
		Tiers:  make(map[Tier]int),
	}
	if trials <= 0 {
		return res, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		out := ResolveOutcome(first, second, cfg, rng)
		t := TierOf(out.Result)
		res.Colors[out.Result]++
		res.Tiers[t]++
		if out.Advanced {
			res.Advanced++
		}
		samples[i] = int(t)
	}
	res.Trials = trials
	res.Tier = calcStats(samples)
	return res, nil
}
