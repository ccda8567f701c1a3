package rules

import (
	"log/slog"
	"sync/atomic"

	"github.com/xtding233/breeding-backend/internal/breed"
)

// Store holds the params of the active profile and serves them to the
// breeder. A failed Reload keeps the previous params.
type Store struct {
	resolver Resolver
	profile  string
	logger   *slog.Logger

	current atomic.Pointer[Params]
}

// NewStore loads the profile once; the initial load must succeed.
func NewStore(resolver Resolver, profile string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{resolver: resolver, profile: profile, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-resolves the profile and swaps in the new params on success.
func (s *Store) Reload() error {
	_, params, err := s.resolver.Resolve(s.profile, Overrides{})
	if err != nil {
		if s.current.Load() != nil {
			s.logger.Warn("config reload failed, keeping previous probabilities", "profile", s.profile, "err", err)
		}
		return err
	}
	s.current.Store(&params)
	s.logger.Info("probabilities loaded",
		"profile", s.profile,
		"version", params.Version,
		"same_tier_upgrade_chance", params.Probabilities.SameTierUpgradeChance,
		"cross_tier_breakthrough_chance", params.Probabilities.CrossTierBreakthroughChance,
	)
	return nil
}

// Params returns the active params.
func (s *Store) Params() Params {
	return *s.current.Load()
}

func (s *Store) Profile() string { return s.profile }

// Probabilities implements breed.ProbabilitySource.
func (s *Store) Probabilities() breed.ProbabilityConfig {
	return s.Params().Probabilities
}
