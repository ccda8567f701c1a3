package breed

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sum[K comparable](m map[K]float64) float64 {
	var s float64
	for _, v := range m {
		s += v
	}
	return s
}

func TestOddsSumToOne(t *testing.T) {
	for _, cfg := range []ProbabilityConfig{DefaultProbabilities(), {}, {SameTierUpgradeChance: 1, CrossTierBreakthroughChance: 1}} {
		for _, p := range pairs() {
			d := Odds(p[0], p[1], cfg)
			if s := sum(d.Colors); math.Abs(s-1) > 1e-9 {
				t.Fatalf("%v+%v colors sum to %f", p[0], p[1], s)
			}
			if s := sum(d.Tiers); math.Abs(s-1) > 1e-9 {
				t.Fatalf("%v+%v tiers sum to %f", p[0], p[1], s)
			}
		}
	}
}

func TestOddsScenarios(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	d := Odds(ColorA, ColorC, ProbabilityConfig{CrossTierBreakthroughChance: 0})
	want := map[Color]float64{ColorA: 0.25, ColorB: 0.25, ColorC: 0.25, ColorD: 0.25}
	if diff := cmp.Diff(want, d.Colors, approx); diff != "" {
		t.Fatalf("A+C no breakthrough (-want +got):\n%s", diff)
	}

	d = Odds(ColorF, ColorF, ProbabilityConfig{SameTierUpgradeChance: 0.3})
	if diff := cmp.Diff(map[Color]float64{ColorF: 1}, d.Colors, approx); diff != "" {
		t.Fatalf("F+F (-want +got):\n%s", diff)
	}

	d = Odds(ColorA, ColorB, DefaultProbabilities())
	want = map[Color]float64{ColorA: 0.25, ColorB: 0.25, ColorC: 0.25, ColorD: 0.25}
	if diff := cmp.Diff(want, d.Colors, approx); diff != "" {
		t.Fatalf("A+B default (-want +got):\n%s", diff)
	}

	// B + E: 20% F, 80% spread over A..E
	d = Odds(ColorB, ColorE, DefaultProbabilities())
	want = map[Color]float64{ColorA: 0.16, ColorB: 0.16, ColorC: 0.16, ColorD: 0.16, ColorE: 0.16, ColorF: 0.2}
	if diff := cmp.Diff(want, d.Colors, approx); diff != "" {
		t.Fatalf("B+E default (-want +got):\n%s", diff)
	}
	if math.Abs(d.AdvanceChance-0.2) > 1e-12 {
		t.Fatalf("AdvanceChance = %f", d.AdvanceChance)
	}
}

func TestOddsClampsChances(t *testing.T) {
	d := Odds(ColorA, ColorE, ProbabilityConfig{CrossTierBreakthroughChance: 7})
	if d.Colors[ColorF] != 1 {
		t.Fatalf("chance above 1 should make F certain, got %v", d.Colors)
	}
	d = Odds(ColorA, ColorB, ProbabilityConfig{SameTierUpgradeChance: -2})
	if d.Tiers[1] != 1 {
		t.Fatalf("negative chance should keep tier 1, got %v", d.Tiers)
	}
}

func TestMonteCarloMatchesOdds(t *testing.T) {
	const n = 100000
	cfg := DefaultProbabilities()
	res, err := RunMonteCarlo(ColorC, ColorE, cfg, n, NewSeededRNG(42))
	if err != nil {
		t.Fatal(err)
	}
	if res.Trials != n {
		t.Fatalf("Trials = %d", res.Trials)
	}
	odds := Odds(ColorC, ColorE, cfg)
	for _, c := range AllColors() {
		if diff := res.Frequency(c) - odds.Colors[c]; diff > 0.01 || diff < -0.01 {
			t.Fatalf("freq(%v)=%f not close to %f", c, res.Frequency(c), odds.Colors[c])
		}
	}
	adv := float64(res.Advanced) / n
	if diff := adv - 0.2; diff > 0.01 || diff < -0.01 {
		t.Fatalf("advance rate %f not close to 0.2", adv)
	}
	if res.Tier.Mean < 2 || res.Tier.Mean > 4 {
		t.Fatalf("mean tier %f outside [2,4]", res.Tier.Mean)
	}
}

func TestMonteCarloEdgeCases(t *testing.T) {
	res, err := RunMonteCarlo(ColorA, ColorB, DefaultProbabilities(), 0, nil)
	if err != nil || res.Trials != 0 || len(res.Colors) != 0 {
		t.Fatalf("zero trials: %+v, %v", res, err)
	}
	if res.Frequency(ColorA) != 0 {
		t.Fatal("frequency of empty result must be 0")
	}
	_, err = RunMonteCarlo(ColorA, ColorB, ProbabilityConfig{SameTierUpgradeChance: 1.5}, 10, nil)
	if !errors.Is(err, ErrInvalidProb) {
		t.Fatalf("err = %v, want ErrInvalidProb", err)
	}
	_, err = RunMonteCarlo(ColorA, ColorB, ProbabilityConfig{CrossTierBreakthroughChance: math.NaN()}, 10, nil)
	if !errors.Is(err, ErrInvalidProb) {
		t.Fatalf("NaN err = %v, want ErrInvalidProb", err)
	}
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4})
	if s.Mean != 2.5 || s.Var != 1.25 || s.P50 != 2.5 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s := calcStats([]int{3}); s.P99 != 3 || s.StdDev != 0 {
		t.Fatalf("single sample stats %+v", s)
	}
	if s := calcStats(nil); s != (Stats{}) {
		t.Fatalf("empty stats %+v", s)
	}
}

func TestProbabilityConfigValidateAndClamp(t *testing.T) {
	if err := DefaultProbabilities().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := ProbabilityConfig{SameTierUpgradeChance: math.Inf(1), CrossTierBreakthroughChance: -0.1}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidProb) {
		t.Fatalf("Validate err = %v", err)
	}
	got := ProbabilityConfig{SameTierUpgradeChance: math.NaN(), CrossTierBreakthroughChance: 4}.Clamp()
	want := ProbabilityConfig{SameTierUpgradeChance: 0.5, CrossTierBreakthroughChance: 1}
	if got != want {
		t.Fatalf("Clamp = %+v, want %+v", got, want)
	}
	if got := (ProbabilityConfig{SameTierUpgradeChance: -3, CrossTierBreakthroughChance: 0.7}).Clamp(); got.SameTierUpgradeChance != 0 || got.CrossTierBreakthroughChance != 0.7 {
		t.Fatalf("Clamp = %+v", got)
	}
}
