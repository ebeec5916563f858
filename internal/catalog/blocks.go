// Package catalog defines the typed contract for a generated page: the closed
// set of content block kinds, their field shapes and bounds, and the design
// token model shared by the validator, renderer, and scorer.
package catalog

// BlockType identifies one content section kind. The set is closed: the
// validator rejects anything outside it, and the renderer keeps a deliberate
// fallback arm for forward compatibility only.
type BlockType string

// Standard block kinds present in nearly every generated page.
const (
	BlockHero         BlockType = "hero"
	BlockValueProps   BlockType = "value-props"
	BlockServicesGrid BlockType = "services-grid"
	BlockTestimonials BlockType = "testimonials"
	BlockFAQ          BlockType = "faq"
	BlockCTABanner    BlockType = "cta-banner"
	BlockFooterSimple BlockType = "footer-simple"
)

// Diversity-signaling block kinds. Their presence indicates the page deviates
// from a generic template; the score engine rewards them and the QA loop's
// forced-diversity fallback injects one when nothing else improved.
const (
	BlockBentoGrid       BlockType = "bento-grid"
	BlockZigzagFeature   BlockType = "zigzag-feature"
	BlockStatsBand       BlockType = "stats-band"
	BlockProcessTimeline BlockType = "process-timeline"
)

// Item is a titled content cell used by value-props, services-grid,
// bento-grid, and zigzag-feature blocks.
type Item struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Icon     string `json:"icon,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Testimonial is a single customer quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role,omitempty"`
}

// FAQItem is a question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Stat is a headline figure for a stats-band block.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Step is one stage of a process-timeline block.
type Step struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Block is one content section of a page, tagged by kind and variant.
// Only the field group matching the Type is populated; KindSpec bounds are
// enforced by the validator, so a Block that reaches the renderer satisfies
// its declared shape.
type Block struct {
	Type    BlockType `json:"type"`
	Variant string    `json:"variant,omitempty"`

	Headline    string `json:"headline,omitempty"`
	Subheadline string `json:"subheadline,omitempty"`
	Body        string `json:"body,omitempty"`
	CTAText     string `json:"ctaText,omitempty"`
	CTAHref     string `json:"ctaHref,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	Items        []Item        `json:"items,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
	FAQItems     []FAQItem     `json:"faqItems,omitempty"`
	Stats        []Stat        `json:"stats,omitempty"`
	Steps        []Step        `json:"steps,omitempty"`
	NavItems     []string      `json:"navItems,omitempty"`
}

// SchemaTokens is the token record carried inside a PageSchema as produced by
// the generation step: brand name plus raw color/font identifiers.
type SchemaTokens struct {
	Brand       string `json:"brand"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary,omitempty"`
	Accent      string `json:"accent"`
	HeadingFont string `json:"headingFont,omitempty"`
	BodyFont    string `json:"bodyFont,omitempty"`
}

// PageSchema is an ordered sequence of blocks plus design tokens. It is
// created as untrusted AI output, repaired by the autofixer, edited by the
// patch applier, and read (never written) by the renderer.
type PageSchema struct {
	Blocks []Block      `json:"blocks"`
	Tokens SchemaTokens `json:"tokens"`
}

// Block count bounds for a whole page.
const (
	MinBlocks = 3
	MaxBlocks = 12
)

// KindSpec describes the shape constraints and rendering strategies of one
// block kind.
type KindSpec struct {
	Type           BlockType
	Variants       []string // first entry is the default variant
	MinItems       int      // bound on the kind's item collection, 0 = no collection
	MaxItems       int
	RequiresHead   bool // headline must be non-empty
	Diversity      bool // counts toward the diversity-signaling set
	VisuallyDense  bool // used by the rhythm-variety score
	VisuallySparse bool
}

// kindSpecs is the authoritative shape table. Order matches the canonical
// boilerplate sequence for the standard kinds.
var kindSpecs = map[BlockType]KindSpec{
	BlockHero: {
		Type: BlockHero, Variants: []string{"centered", "split", "full-bleed"},
		RequiresHead: true, VisuallySparse: true,
	},
	BlockValueProps: {
		Type: BlockValueProps, Variants: []string{"three-up", "icon-list"},
		MinItems: 2, MaxItems: 4, VisuallyDense: true,
	},
	BlockServicesGrid: {
		Type: BlockServicesGrid, Variants: []string{"cards", "compact", "numbered"},
		MinItems: 2, MaxItems: 6, VisuallyDense: true,
	},
	BlockTestimonials: {
		Type: BlockTestimonials, Variants: []string{"cards", "spotlight"},
		MinItems: 1, MaxItems: 4, VisuallySparse: true,
	},
	BlockFAQ: {
		Type: BlockFAQ, Variants: []string{"accordion", "two-column"},
		MinItems: 1, MaxItems: 10, VisuallyDense: true,
	},
	BlockCTABanner: {
		Type: BlockCTABanner, Variants: []string{"banner", "boxed"},
		RequiresHead: true, VisuallySparse: true,
	},
	BlockFooterSimple: {
		Type: BlockFooterSimple, Variants: []string{"minimal", "columns"},
	},
	BlockBentoGrid: {
		Type: BlockBentoGrid, Variants: []string{"grid-2x2", "grid-3col", "mixed-span"},
		MinItems: 3, MaxItems: 6, Diversity: true, VisuallyDense: true,
	},
	BlockZigzagFeature: {
		Type: BlockZigzagFeature, Variants: []string{"alternating", "offset"},
		MinItems: 2, MaxItems: 4, Diversity: true, VisuallySparse: true,
	},
	BlockStatsBand: {
		Type: BlockStatsBand, Variants: []string{"inline", "boxed"},
		MinItems: 2, MaxItems: 5, Diversity: true, VisuallyDense: true,
	},
	BlockProcessTimeline: {
		Type: BlockProcessTimeline, Variants: []string{"vertical", "horizontal"},
		MinItems: 3, MaxItems: 6, Diversity: true,
	},
}

// BoilerplateSequence is the generic template ordering the score engine
// penalizes when a page matches it exactly.
var BoilerplateSequence = []BlockType{
	BlockHero, BlockValueProps, BlockServicesGrid, BlockTestimonials,
	BlockFAQ, BlockCTABanner, BlockFooterSimple,
}

// AllTypes returns every known block kind, standard kinds first.
func AllTypes() []BlockType {
	return []BlockType{
		BlockHero, BlockValueProps, BlockServicesGrid, BlockTestimonials,
		BlockFAQ, BlockCTABanner, BlockFooterSimple,
		BlockBentoGrid, BlockZigzagFeature, BlockStatsBand, BlockProcessTimeline,
	}
}

// Spec returns the shape constraints for a block kind.
func Spec(t BlockType) (KindSpec, bool) {
	s, ok := kindSpecs[t]
	return s, ok
}

// Known reports whether t is a member of the closed kind set.
func Known(t BlockType) bool {
	_, ok := kindSpecs[t]
	return ok
}

// IsDiversity reports whether t belongs to the diversity-signaling kind set.
func IsDiversity(t BlockType) bool {
	return kindSpecs[t].Diversity
}

// DiversityTypes returns the diversity-signaling kinds in catalog order.
func DiversityTypes() []BlockType {
	return []BlockType{BlockBentoGrid, BlockZigzagFeature, BlockStatsBand, BlockProcessTimeline}
}

// DefaultVariant returns the default rendering variant for a kind, or ""
// for unknown kinds.
func DefaultVariant(t BlockType) string {
	s, ok := kindSpecs[t]
	if !ok || len(s.Variants) == 0 {
		return ""
	}
	return s.Variants[0]
}

// ValidVariant reports whether variant is one of the declared rendering
// strategies for kind t. The empty variant is always valid and resolves to
// the default.
func ValidVariant(t BlockType, variant string) bool {
	if variant == "" {
		return true
	}
	s, ok := kindSpecs[t]
	if !ok {
		return false
	}
	for _, v := range s.Variants {
		if v == variant {
			return true
		}
	}
	return false
}

// ItemCount returns the size of the collection a block's kind is bounded on.
func ItemCount(b *Block) int {
	switch b.Type {
	case BlockValueProps, BlockServicesGrid, BlockBentoGrid, BlockZigzagFeature:
		return len(b.Items)
	case BlockTestimonials:
		return len(b.Testimonials)
	case BlockFAQ:
		return len(b.FAQItems)
	case BlockStatsBand:
		return len(b.Stats)
	case BlockProcessTimeline:
		return len(b.Steps)
	default:
		return 0
	}
}
