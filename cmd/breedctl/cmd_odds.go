package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/breed"
)

func newOddsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "odds <first> <second>",
		Short: "Print the exact outcome probabilities for a pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, second, err := parseParents(args)
			if err != nil {
				return err
			}
			params, err := f.params(cmd)
			if err != nil {
				return err
			}
			d := breed.Odds(first, second, params.Probabilities)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s + %s (same=%.3f cross=%.3f)\n", first, second,
				params.Probabilities.SameTierUpgradeChance, params.Probabilities.CrossTierBreakthroughChance)
			for _, c := range breed.AllColors() {
				if p := d.Colors[c]; p > 0 {
					fmt.Fprintf(out, "  %s  tier %d  %6.2f%%\n", c, breed.TierOf(c), p*100)
				}
			}
			return nil
		},
	}
}
