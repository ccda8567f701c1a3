package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/breed"
)

func newSimulateCmd(f *rootFlags) *cobra.Command {
	var trials int
	cmd := &cobra.Command{
		Use:   "simulate <first> <second>",
		Short: "Run a Monte Carlo simulation and compare it with the exact odds",
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
			res, err := breed.RunMonteCarlo(first, second, params.Probabilities, trials, f.rng())
			if err != nil {
				return err
			}
			odds := breed.Odds(first, second, params.Probabilities)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s + %s, %d trials, advanced %d\n", first, second, res.Trials, res.Advanced)
			for _, c := range breed.AllColors() {
				if res.Colors[c] == 0 && odds.Colors[c] == 0 {
					continue
				}
				fmt.Fprintf(out, "  %s  observed %6.2f%%  expected %6.2f%%\n", c, res.Frequency(c)*100, odds.Colors[c]*100)
			}
			fmt.Fprintf(out, "  tier mean %.3f  stddev %.3f  p50 %.0f  p90 %.0f\n",
				res.Tier.Mean, res.Tier.StdDev, res.Tier.P50, res.Tier.P90)
			return nil
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 10000, "Number of simulated breedings")
	return cmd
}
