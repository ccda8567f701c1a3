package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/breeding-backend/internal/breed"
)

func newTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the color to tier table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for t := breed.TierMin; t <= breed.TierMax; t++ {
				fmt.Fprintf(out, "tier %d: %v\n", t, breed.ColorsInTier(t))
			}
			return nil
		},
	}
}
