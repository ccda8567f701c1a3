// breedctl inspects and exercises the breeding rules from the command line.
//
// Usage:
//
//	breedctl resolve <first> <second> [--same=0.5] [--cross=0.2] [--seed=N]
//	breedctl odds <first> <second> [--profile=name]
//	breedctl simulate <first> <second> [--trials=10000] [--seed=N]
//	breedctl tiers
//	breedctl validate [--config-dir=config] [--profile=name]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
