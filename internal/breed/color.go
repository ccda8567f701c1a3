package breed

import (
	"errors"
	"fmt"
	"strings"
)

// Color is the rarity classification of a creature. The host simulation
// owns the enum; values are kept in its order.
type Color uint8

const (
	ColorA Color = iota
	ColorB
	ColorC
	ColorD
	ColorE
	ColorF
)

// Tier is the rarity rank derived from a Color.
type Tier int

const (
	TierMin Tier = 1
	TierMax Tier = 4
)

var ErrUnknownColor = errors.New("unknown color")

// AllColors returns the known colors from lowest to highest tier.
func AllColors() []Color {
	return []Color{ColorA, ColorB, ColorC, ColorD, ColorE, ColorF}
}

func (c Color) String() string {
	switch c {
	case ColorA:
		return "A"
	case ColorB:
		return "B"
	case ColorC:
		return "C"
	case ColorD:
		return "D"
	case ColorE:
		return "E"
	case ColorF:
		return "F"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Known reports whether c is one of the six colors the rules know about.
func (c Color) Known() bool {
	return c <= ColorF
}

// ParseColor accepts a color name (case-insensitive).
func ParseColor(s string) (Color, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range AllColors() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// TierOf maps a color to its tier.
// Colors outside the known set fall back to tier 1; the host is not
// expected to send them, and breeding must not abort if it does.
func TierOf(c Color) Tier {
	switch c {
	case ColorA, ColorB:
		return 1
	case ColorC, ColorD:
		return 2
	case ColorE:
		return 3
	case ColorF:
		return 4
	default:
		return 1
	}
}

// ColorsInTier returns the colors of tier t. Tiers outside [1,4] are
// capped to the tier-4 pool. The returned slice is owned by the caller.
func ColorsInTier(t Tier) []Color {
	switch t {
	case 1:
		return []Color{ColorA, ColorB}
	case 2:
		return []Color{ColorC, ColorD}
	case 3:
		return []Color{ColorE}
	case 4:
		return []Color{ColorF}
	default:
		return []Color{ColorF}
	}
}

// PoolBetween collects the colors of every tier from lo to hi inclusive,
// in ascending tier order.
func PoolBetween(lo, hi Tier) []Color {
	var pool []Color
	for t := lo; t <= hi; t++ {
		pool = append(pool, ColorsInTier(t)...)
	}
	return pool
}
