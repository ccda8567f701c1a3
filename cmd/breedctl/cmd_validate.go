package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/rules"
)

func newValidateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the probability config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := rules.NewLoader(f.configDir)
			raw, err := loader.LoadMerged(f.profile)
			if err != nil {
				return err
			}
			if err := rules.ValidateRaw(raw); err != nil {
				return err
			}
			params := rules.Normalize(raw, f.profile, rules.Overrides{})
			out := cmd.OutOrStdout()
			for _, p := range loader.Paths().Files(f.profile) {
				fmt.Fprintf(out, "file: %s\n", p)
			}
			fmt.Fprintf(out, "ok: version=%q same_tier_upgrade_chance=%g cross_tier_breakthrough_chance=%g\n",
				params.Version, params.Probabilities.SameTierUpgradeChance, params.Probabilities.CrossTierBreakthroughChance)
			return nil
		},
	}
}
