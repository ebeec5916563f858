// Package score computes a rubric-based design quality score for a rendered
// page schema. Scoring is pure: no I/O, no randomness, recomputed fresh on
// every render.
package score

import (
	"math"
	"strconv"
	"strings"
)

// ContrastRatio computes the WCAG contrast ratio between two colors given as
// #rrggbb hex strings. Unparseable colors yield a ratio of 1 (no contrast),
// which lets the rubric penalize them without failing.
func ContrastRatio(fg, bg string) float64 {
	lf, okF := relativeLuminance(fg)
	lb, okB := relativeLuminance(bg)
	if !okF || !okB {
		return 1
	}

	lighter := math.Max(lf, lb)
	darker := math.Min(lf, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// relativeLuminance implements the WCAG sRGB luminance formula.
func relativeLuminance(hex string) (float64, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, false
	}

	channel := func(s string) (float64, bool) {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, false
		}
		c := float64(v) / 255.0
		if c <= 0.03928 {
			return c / 12.92, true
		}
		return math.Pow((c+0.055)/1.055, 2.4), true
	}

	r, okR := channel(hex[0:2])
	g, okG := channel(hex[2:4])
	b, okB := channel(hex[4:6])
	if !okR || !okG || !okB {
		return 0, false
	}
	return 0.2126*r + 0.7152*g + 0.0722*b, true
}

// bestOnAccent returns the higher of black-on-accent and white-on-accent
// contrast ratios, the legibility floor for button text.
func bestOnAccent(accent string) float64 {
	return math.Max(ContrastRatio("#000000", accent), ContrastRatio("#ffffff", accent))
}
