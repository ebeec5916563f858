package catalog

import "fmt"

// Density is a named tier controlling the vertical spacing scale of a render.
type Density string

// Density tiers. Each maps to a fixed section padding in the renderer.
const (
	DensityTight  Density = "tight"
	DensityNormal Density = "normal"
	DensityLoose  Density = "loose"
)

// ValidDensity reports whether d is a known tier. The empty density is valid
// and resolves to normal.
func ValidDensity(d Density) bool {
	switch d {
	case "", DensityTight, DensityNormal, DensityLoose:
		return true
	}
	return false
}

// Signature is a named global visual theme overlay applied uniformly across
// a render.
type Signature string

// The fixed signature set.
const (
	SignatureNone      Signature = ""
	SignatureDarkNeon  Signature = "dark-neon"
	SignatureEditorial Signature = "editorial"
	SignatureBentoSoft Signature = "bento-soft"
	SignatureBrutalist Signature = "brutalist"
)

// Signatures returns the named (non-empty) signatures.
func Signatures() []Signature {
	return []Signature{SignatureDarkNeon, SignatureEditorial, SignatureBentoSoft, SignatureBrutalist}
}

// ValidSignature reports whether s is a member of the fixed signature set.
func ValidSignature(s Signature) bool {
	if s == SignatureNone {
		return true
	}
	for _, known := range Signatures() {
		if s == known {
			return true
		}
	}
	return false
}

// Palette is a fully materialized color set.
type Palette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
}

// Typography is a heading/body font pairing with weights.
type Typography struct {
	HeadingFamily string `json:"headingFamily"`
	HeadingWeight int    `json:"headingWeight"`
	BodyFamily    string `json:"bodyFamily"`
	BodyWeight    int    `json:"bodyWeight"`
}

// ResolvedTokens is a fully materialized style: derived once from a style
// preset plus optional tweaks, then treated as immutable for the duration of
// a render.
type ResolvedTokens struct {
	Brand      string     `json:"brand"`
	Palette    Palette    `json:"palette"`
	Typography Typography `json:"typography"`
	Radius     string     `json:"radius"`
	Density    Density    `json:"density"`
}

// TokenTweaks carries optional per-run overrides applied on top of a preset.
// Zero values leave the preset value in place.
type TokenTweaks struct {
	Primary string
	Accent  string
	Density Density
}

// stylePresets is the fixed table of style directions a run can start from.
var stylePresets = map[string]ResolvedTokens{
	"modern-trust": {
		Palette: Palette{
			Primary: "#1d4ed8", Secondary: "#1e3a8a", Accent: "#f59e0b",
			Background: "#ffffff", Surface: "#f3f4f6",
			TextPrimary: "#111827", TextSecondary: "#4b5563",
		},
		Typography: Typography{HeadingFamily: "Inter", HeadingWeight: 700, BodyFamily: "Inter", BodyWeight: 400},
		Radius:     "12px",
		Density:    DensityNormal,
	},
	"warm-studio": {
		Palette: Palette{
			Primary: "#9a3412", Secondary: "#7c2d12", Accent: "#16a34a",
			Background: "#fffbf5", Surface: "#fef3e2",
			TextPrimary: "#1c1917", TextSecondary: "#57534e",
		},
		Typography: Typography{HeadingFamily: "Fraunces", HeadingWeight: 600, BodyFamily: "Source Sans 3", BodyWeight: 400},
		Radius:     "16px",
		Density:    DensityLoose,
	},
	"dark-tech": {
		Palette: Palette{
			Primary: "#22d3ee", Secondary: "#0e7490", Accent: "#a3e635",
			Background: "#0a0a0f", Surface: "#16161f",
			TextPrimary: "#f4f4f5", TextSecondary: "#a1a1aa",
		},
		Typography: Typography{HeadingFamily: "Space Grotesk", HeadingWeight: 700, BodyFamily: "IBM Plex Sans", BodyWeight: 400},
		Radius:     "8px",
		Density:    DensityTight,
	},
	"editorial-calm": {
		Palette: Palette{
			Primary: "#171717", Secondary: "#404040", Accent: "#b91c1c",
			Background: "#fafaf9", Surface: "#f5f5f4",
			TextPrimary: "#171717", TextSecondary: "#525252",
		},
		Typography: Typography{HeadingFamily: "Playfair Display", HeadingWeight: 600, BodyFamily: "Lora", BodyWeight: 400},
		Radius:     "2px",
		Density:    DensityLoose,
	},
}

// PresetIDs returns the style preset identifiers in a stable order.
func PresetIDs() []string {
	return []string{"modern-trust", "warm-studio", "dark-tech", "editorial-calm"}
}

// ResolveTokens materializes a style from a preset ID, brand name, and
// optional tweaks. The returned value is a snapshot: later tweak changes do
// not affect it.
func ResolveTokens(presetID, brand string, tweaks TokenTweaks) (ResolvedTokens, error) {
	preset, ok := stylePresets[presetID]
	if !ok {
		return ResolvedTokens{}, fmt.Errorf("unknown style preset: %q", presetID)
	}

	resolved := preset
	resolved.Brand = brand
	if tweaks.Primary != "" {
		resolved.Palette.Primary = tweaks.Primary
	}
	if tweaks.Accent != "" {
		resolved.Palette.Accent = tweaks.Accent
	}
	if tweaks.Density != "" {
		resolved.Density = tweaks.Density
	}
	if resolved.Density == "" {
		resolved.Density = DensityNormal
	}
	return resolved, nil
}
