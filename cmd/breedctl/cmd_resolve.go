package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/breed"
)

func newResolveCmd(f *rootFlags) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "resolve <first> <second>",
		Short: "Breed two parents and print the offspring color",
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
			b := breed.NewBreeder(breed.StaticProbabilities(params.Probabilities), f.rng(), logger())
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				o := b.Outcome(first, second)
				fmt.Fprintf(out, "%s + %s -> %s (tier %d, %s, advanced=%t)\n",
					first, second, o.Result, breed.TierOf(o.Result), o.Branch, o.Advanced)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of offspring to breed")
	return cmd
}
