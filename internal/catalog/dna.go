package catalog

// DNA is a structural constraint bundle used to bias generation toward a
// specific layout blueprint: required and forbidden block kinds, a hero
// variant, and a block-count range.
type DNA struct {
	Name           string      `json:"name"`
	RequiredKinds  []BlockType `json:"requiredKinds,omitempty"`
	ForbiddenKinds []BlockType `json:"forbiddenKinds,omitempty"`
	HeroVariant    string      `json:"heroVariant,omitempty"`
	MinBlocks      int         `json:"minBlocks,omitempty"`
	MaxBlocks      int         `json:"maxBlocks,omitempty"`
}

// blueprints is the fixed set of layout DNAs generation can be seeded with.
var blueprints = map[string]DNA{
	"conversion-focused": {
		Name:          "conversion-focused",
		RequiredKinds: []BlockType{BlockHero, BlockValueProps, BlockCTABanner, BlockFooterSimple},
		HeroVariant:   "centered",
		MinBlocks:     5, MaxBlocks: 8,
	},
	"portfolio-dense": {
		Name:           "portfolio-dense",
		RequiredKinds:  []BlockType{BlockHero, BlockBentoGrid, BlockFooterSimple},
		ForbiddenKinds: []BlockType{BlockFAQ},
		HeroVariant:    "split",
		MinBlocks:      4, MaxBlocks: 7,
	},
	"storytelling": {
		Name:          "storytelling",
		RequiredKinds: []BlockType{BlockHero, BlockZigzagFeature, BlockTestimonials, BlockFooterSimple},
		HeroVariant:   "full-bleed",
		MinBlocks:     5, MaxBlocks: 9,
	},
	"proof-heavy": {
		Name:          "proof-heavy",
		RequiredKinds: []BlockType{BlockHero, BlockStatsBand, BlockTestimonials, BlockFooterSimple},
		HeroVariant:   "centered",
		MinBlocks:     5, MaxBlocks: 8,
	},
}

// Blueprint returns a named DNA, or false if the name is unknown.
func Blueprint(name string) (DNA, bool) {
	d, ok := blueprints[name]
	return d, ok
}

// BlueprintNames returns the known DNA names in a stable order.
func BlueprintNames() []string {
	return []string{"conversion-focused", "portfolio-dense", "storytelling", "proof-heavy"}
}

// Requires reports whether the DNA requires kind t.
func (d *DNA) Requires(t BlockType) bool {
	for _, k := range d.RequiredKinds {
		if k == t {
			return true
		}
	}
	return false
}

// Forbids reports whether the DNA forbids kind t.
func (d *DNA) Forbids(t BlockType) bool {
	for _, k := range d.ForbiddenKinds {
		if k == t {
			return true
		}
	}
	return false
}
