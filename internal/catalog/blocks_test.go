package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_EveryKindHasVariants(t *testing.T) {
	for _, kind := range AllTypes() {
		spec, ok := Spec(kind)
		require.True(t, ok, "missing spec for %s", kind)
		assert.NotEmpty(t, spec.Variants, "kind %s has no variants", kind)
		assert.Equal(t, kind, spec.Type)
	}
}

func TestSpec_UnknownKind(t *testing.T) {
	_, ok := Spec("mega-carousel")
	assert.False(t, ok)
	assert.False(t, Known("mega-carousel"))
}

func TestDefaultVariant_IsFirstDeclared(t *testing.T) {
	assert.Equal(t, "centered", DefaultVariant(BlockHero))
	assert.Equal(t, "three-up", DefaultVariant(BlockValueProps))
	assert.Equal(t, "grid-2x2", DefaultVariant(BlockBentoGrid))
	assert.Equal(t, "", DefaultVariant("mega-carousel"))
}

func TestValidVariant_EmptyResolvesToDefault(t *testing.T) {
	assert.True(t, ValidVariant(BlockHero, ""))
	assert.True(t, ValidVariant(BlockHero, "split"))
	assert.False(t, ValidVariant(BlockHero, "diagonal"))
	assert.False(t, ValidVariant("mega-carousel", "anything"))
}

func TestIsDiversity_MatchesDiversitySet(t *testing.T) {
	for _, kind := range DiversityTypes() {
		assert.True(t, IsDiversity(kind), "%s should be diversity-signaling", kind)
	}
	assert.False(t, IsDiversity(BlockHero))
	assert.False(t, IsDiversity(BlockServicesGrid))
}

func TestItemCount_SelectsKindCollection(t *testing.T) {
	assert.Equal(t, 2, ItemCount(&Block{Type: BlockValueProps, Items: []Item{{}, {}}}))
	assert.Equal(t, 1, ItemCount(&Block{Type: BlockTestimonials, Testimonials: []Testimonial{{}}}))
	assert.Equal(t, 3, ItemCount(&Block{Type: BlockFAQ, FAQItems: []FAQItem{{}, {}, {}}}))
	assert.Equal(t, 2, ItemCount(&Block{Type: BlockStatsBand, Stats: []Stat{{}, {}}}))
	assert.Equal(t, 3, ItemCount(&Block{Type: BlockProcessTimeline, Steps: []Step{{}, {}, {}}}))
	assert.Equal(t, 0, ItemCount(&Block{Type: BlockHero}))
}

func TestBoilerplateSequence_StartsWithHeroEndsWithFooter(t *testing.T) {
	require.NotEmpty(t, BoilerplateSequence)
	assert.Equal(t, BlockHero, BoilerplateSequence[0])
	assert.Equal(t, BlockFooterSimple, BoilerplateSequence[len(BoilerplateSequence)-1])
}
