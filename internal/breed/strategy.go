package breed

import (
	"log/slog"
)

// Strategy is the hook a host simulation calls in place of its own
// offspring-color computation.
type Strategy interface {
	ResolveBreedingOutcome(first, second Color) Color
}

// ProbabilitySource supplies the chances for each resolution.
type ProbabilitySource interface {
	Probabilities() ProbabilityConfig
}

// StaticProbabilities is a ProbabilitySource that never changes.
type StaticProbabilities ProbabilityConfig

func (s StaticProbabilities) Probabilities() ProbabilityConfig { return ProbabilityConfig(s) }

// Breeder implements Strategy on top of a ProbabilitySource.
// It is safe for concurrent use.
type Breeder struct {
	probs  ProbabilitySource
	rng    RandomSource
	logger *slog.Logger
}

// NewBreeder creates a Breeder. A nil probs uses the default chances, a nil
// rng uses DefaultRNG and a nil logger uses slog.Default().
func NewBreeder(probs ProbabilitySource, rng RandomSource, logger *slog.Logger) *Breeder {
	if probs == nil {
		probs = StaticProbabilities(DefaultProbabilities())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Breeder{
		probs:  probs,
		rng:    NewLockedRNG(rng),
		logger: logger,
	}
}

func (b *Breeder) ResolveBreedingOutcome(first, second Color) Color {
	return b.Outcome(first, second).Result
}

// Outcome resolves with the current probabilities and returns the details.
func (b *Breeder) Outcome(first, second Color) Outcome {
	cfg := b.probs.Probabilities()
	out := ResolveOutcome(first, second, cfg, b.rng)
	b.logger.Debug("breeding resolved",
		"first", first.String(),
		"second", second.String(),
		"branch", string(out.Branch),
		"advanced", out.Advanced,
		"pool_size", len(out.Pool),
		"result", out.Result.String(),
	)
	return out
}

// Probabilities exposes the chances the next call would use.
func (b *Breeder) Probabilities() ProbabilityConfig {
	return b.probs.Probabilities()
}
