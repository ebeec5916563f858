package score

import (
	"github.com/goscha01/SiteForge/internal/catalog"
)

// Category weights. They sum to 100, the score ceiling.
const (
	weightContrast  = 20.0
	weightHierarchy = 10.0
	weightLayout    = 25.0
	weightSignature = 20.0
	weightTypo      = 10.0
	weightRhythm    = 10.0
	weightAnti      = 5.0
)

// mustImproveThreshold is the total below which a page is flagged regardless
// of diversity.
const mustImproveThreshold = 60.0

// Breakdown is the per-category score split.
type Breakdown struct {
	Contrast          float64 `json:"contrast"`
	Hierarchy         float64 `json:"hierarchy"`
	LayoutDiversity   float64 `json:"layoutDiversity"`
	SignaturePresence float64 `json:"signaturePresence"`
	Typography        float64 `json:"typography"`
	RhythmVariety     float64 `json:"rhythmVariety"`
	AntiTemplate      float64 `json:"antiTemplate"`
}

// Result is a full design score: total out of 100, the category breakdown,
// and the must-improve flag the QA loop keys off.
type Result struct {
	Total       float64   `json:"total"`
	Breakdown   Breakdown `json:"breakdown"`
	MustImprove bool      `json:"mustImprove"`
}

// curatedPairings is the list of heading/body font pairs that earn full
// typography credit.
var curatedPairings = map[[2]string]bool{
	{"Inter", "Inter"}:                  true,
	{"Space Grotesk", "IBM Plex Sans"}:  true,
	{"Fraunces", "Source Sans 3"}:       true,
	{"Playfair Display", "Lora"}:        true,
	{"Archivo", "Inter"}:                true,
	{"DM Serif Display", "DM Sans"}:     true,
}

// knownGoodFonts earn partial credit when both fonts are known but the pair
// is not curated.
var knownGoodFonts = map[string]bool{
	"Inter": true, "Space Grotesk": true, "IBM Plex Sans": true,
	"Fraunces": true, "Source Sans 3": true, "Playfair Display": true,
	"Lora": true, "Archivo": true, "DM Serif Display": true, "DM Sans": true,
	"Manrope": true, "Work Sans": true,
}

// Compute scores a schema against the design rubric. The dna parameter may
// be nil; it only informs the layout category's view of which kinds count as
// expected rather than novel.
func Compute(page *catalog.PageSchema, tokens catalog.ResolvedTokens, signature catalog.Signature, dna *catalog.DNA) Result {
	b := Breakdown{
		Contrast:          scoreContrast(tokens),
		Hierarchy:         scoreHierarchy(page),
		LayoutDiversity:   scoreLayout(page, dna),
		SignaturePresence: scoreSignature(page, signature),
		Typography:        scoreTypography(tokens),
		RhythmVariety:     scoreRhythm(page),
		AntiTemplate:      scoreAntiTemplate(page),
	}

	total := b.Contrast + b.Hierarchy + b.LayoutDiversity + b.SignaturePresence +
		b.Typography + b.RhythmVariety + b.AntiTemplate
	if total > 100 {
		total = 100
	}

	return Result{
		Total:       total,
		Breakdown:   b,
		MustImprove: total < mustImproveThreshold || countDiversityKinds(page) == 0,
	}
}

// scoreContrast awards tiered credit for three pairwise WCAG checks: body
// text on background, accent on background, and button legibility (best of
// black/white on accent). Max 20.
func scoreContrast(tokens catalog.ResolvedTokens) float64 {
	p := tokens.Palette
	var pts float64

	switch ratio := ContrastRatio(p.TextPrimary, p.Background); {
	case ratio >= 7:
		pts += 8
	case ratio >= 4.5:
		pts += 6
	case ratio >= 3:
		pts += 3
	}

	switch ratio := ContrastRatio(p.Accent, p.Background); {
	case ratio >= 4.5:
		pts += 6
	case ratio >= 3:
		pts += 4
	}

	switch ratio := bestOnAccent(p.Accent); {
	case ratio >= 4.5:
		pts += 6
	case ratio >= 3:
		pts += 3
	}

	if pts > weightContrast {
		pts = weightContrast
	}
	return pts
}

// scoreHierarchy awards hero-first, footer-last, and CTA-presence bonuses.
// Max 10.
func scoreHierarchy(page *catalog.PageSchema) float64 {
	if len(page.Blocks) == 0 {
		return 0
	}

	var pts float64
	if page.Blocks[0].Type == catalog.BlockHero {
		pts += 4
	}
	if page.Blocks[len(page.Blocks)-1].Type == catalog.BlockFooterSimple {
		pts += 3
	}

	hasCTABlock := false
	heroHasCTA := false
	for i := range page.Blocks {
		b := &page.Blocks[i]
		if b.Type == catalog.BlockCTABanner {
			hasCTABlock = true
		}
		if b.Type == catalog.BlockHero && b.CTAText != "" {
			heroHasCTA = true
		}
	}
	if hasCTABlock {
		pts += 3
	} else if heroHasCTA {
		pts += 1.5
	}

	return pts
}

// scoreLayout is the dominant category: distinct content kinds (tiered),
// diversity-signaling kinds present (tiered), minus penalties for matching
// the boilerplate ordering exactly and for deviating from the blueprint's
// structural constraints. Max 25.
func scoreLayout(page *catalog.PageSchema, dna *catalog.DNA) float64 {
	present := map[catalog.BlockType]bool{}
	distinct := map[catalog.BlockType]bool{}
	for _, b := range page.Blocks {
		present[b.Type] = true
		if b.Type == catalog.BlockHero || b.Type == catalog.BlockFooterSimple {
			continue
		}
		distinct[b.Type] = true
	}

	var pts float64
	switch n := len(distinct); {
	case n >= 5:
		pts += 12
	case n >= 4:
		pts += 8
	case n >= 3:
		pts += 5
	}

	switch n := countDiversityKinds(page); {
	case n >= 3:
		pts += 13
	case n >= 2:
		pts += 9
	case n >= 1:
		pts += 5
	}

	if matchesBoilerplate(page) {
		pts -= 6
	}
	if dna != nil {
		for _, required := range dna.RequiredKinds {
			if !present[required] {
				pts -= 2
			}
		}
		for _, forbidden := range dna.ForbiddenKinds {
			if present[forbidden] {
				pts -= 2
			}
		}
	}
	if pts < 0 {
		pts = 0
	}
	if pts > weightLayout {
		pts = weightLayout
	}
	return pts
}

// scoreSignature rewards a named style signature plus the number of blocks
// using a non-default variant (tiered). Max 20.
func scoreSignature(page *catalog.PageSchema, signature catalog.Signature) float64 {
	var pts float64
	if signature != catalog.SignatureNone {
		pts += 10
	}

	nonDefault := map[string]bool{}
	for _, b := range page.Blocks {
		if b.Variant != "" && b.Variant != catalog.DefaultVariant(b.Type) {
			nonDefault[string(b.Type)+"/"+b.Variant] = true
		}
	}
	switch n := len(nonDefault); {
	case n >= 3:
		pts += 10
	case n >= 2:
		pts += 7
	case n >= 1:
		pts += 4
	}

	return pts
}

// scoreTypography awards full credit for a curated heading/body pairing,
// partial credit when both fonts are individually known-good, and minimal
// credit otherwise. Max 10.
func scoreTypography(tokens catalog.ResolvedTokens) float64 {
	t := tokens.Typography
	if curatedPairings[[2]string{t.HeadingFamily, t.BodyFamily}] {
		return weightTypo
	}
	if knownGoodFonts[t.HeadingFamily] && knownGoodFonts[t.BodyFamily] {
		return 6
	}
	return 2
}

// scoreRhythm combines the variant-diversity ratio with a bonus for mixing
// visually dense and sparse block kinds. Max 10.
func scoreRhythm(page *catalog.PageSchema) float64 {
	if len(page.Blocks) == 0 {
		return 0
	}

	variants := map[string]bool{}
	hasDense, hasSparse := false, false
	for _, b := range page.Blocks {
		v := b.Variant
		if v == "" {
			v = catalog.DefaultVariant(b.Type)
		}
		variants[string(b.Type)+"/"+v] = true

		if spec, ok := catalog.Spec(b.Type); ok {
			if spec.VisuallyDense {
				hasDense = true
			}
			if spec.VisuallySparse {
				hasSparse = true
			}
		}
	}

	var pts float64
	switch ratio := float64(len(variants)) / float64(len(page.Blocks)); {
	case ratio >= 0.8:
		pts += 6
	case ratio >= 0.6:
		pts += 4
	case ratio >= 0.4:
		pts += 2
	}

	if hasDense && hasSparse {
		pts += 4
	}
	return pts
}

// scoreAntiTemplate starts at the category maximum and subtracts for
// matching the boilerplate sequence and for using nothing outside the
// original standard kind set. Max 5.
func scoreAntiTemplate(page *catalog.PageSchema) float64 {
	pts := weightAnti
	if matchesBoilerplate(page) {
		pts -= 3
	}
	if countDiversityKinds(page) == 0 {
		pts -= 2
	}
	if pts < 0 {
		pts = 0
	}
	return pts
}

// countDiversityKinds returns the number of distinct diversity-signaling
// kinds present.
func countDiversityKinds(page *catalog.PageSchema) int {
	seen := map[catalog.BlockType]bool{}
	for _, b := range page.Blocks {
		if catalog.IsDiversity(b.Type) {
			seen[b.Type] = true
		}
	}
	return len(seen)
}

// matchesBoilerplate reports whether the page's kind ordering equals the
// known default template sequence exactly.
func matchesBoilerplate(page *catalog.PageSchema) bool {
	if len(page.Blocks) != len(catalog.BoilerplateSequence) {
		return false
	}
	for i, b := range page.Blocks {
		if b.Type != catalog.BoilerplateSequence[i] {
			return false
		}
	}
	return true
}
