package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/breed"
	"github.com/xtding233/breeding-backend/internal/logging"
	"github.com/xtding233/breeding-backend/internal/rules"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	configDir string
	profile   string
	same      float64
	cross     float64
	seed      uint64
	logLevel  string
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:           "breedctl",
		Short:         "Inspect and exercise breeding outcome rules",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(f.logLevel)
			if err != nil {
				return err
			}
			logging.Init(level, "text", cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configDir, "config-dir", "config", "Directory holding breeding/default.yaml")
	pf.StringVar(&f.profile, "profile", "", "Profile under breeding/profiles to layer over the defaults")
	pf.Float64Var(&f.same, "same", 0, "Override same_tier_upgrade_chance (0..1)")
	pf.Float64Var(&f.cross, "cross", 0, "Override cross_tier_breakthrough_chance (0..1)")
	pf.Uint64Var(&f.seed, "seed", 0, "Seed for reproducible draws (0 = random)")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newResolveCmd(&f),
		newOddsCmd(&f),
		newSimulateCmd(&f),
		newTiersCmd(),
		newValidateCmd(&f),
	)
	return root
}

// params resolves config files and flag overrides.
func (f *rootFlags) params(cmd *cobra.Command) (rules.Params, error) {
	var o rules.Overrides
	if cmd.Flags().Changed("same") {
		v := f.same
		o.SameTierUpgradeChance = &v
	}
	if cmd.Flags().Changed("cross") {
		v := f.cross
		o.CrossTierBreakthroughChance = &v
	}
	_, params, err := rules.NewFileResolver(rules.NewLoader(f.configDir)).Resolve(f.profile, o)
	if err != nil {
		return rules.Params{}, fmt.Errorf("load probabilities: %w", err)
	}
	return params, nil
}

func (f *rootFlags) rng() breed.RandomSource {
	if f.seed == 0 {
		return breed.DefaultRNG()
	}
	return breed.NewSeededRNG(f.seed)
}

func parseParents(args []string) (breed.Color, breed.Color, error) {
	first, err := breed.ParseColor(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("first parent: %w", err)
	}
	second, err := breed.ParseColor(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("second parent: %w", err)
	}
	return first, second, nil
}

func logger() *slog.Logger { return logging.New("breedctl") }
