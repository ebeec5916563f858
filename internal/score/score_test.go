package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goscha01/SiteForge/internal/catalog"
)

func testTokens(t *testing.T) catalog.ResolvedTokens {
	t.Helper()
	tokens, err := catalog.ResolveTokens("modern-trust", "Acme", catalog.TokenTweaks{})
	require.NoError(t, err)
	return tokens
}

func boilerplatePage() *catalog.PageSchema {
	blocks := make([]catalog.Block, 0, len(catalog.BoilerplateSequence))
	for _, kind := range catalog.BoilerplateSequence {
		blocks = append(blocks, catalog.Block{Type: kind, Headline: "Section"})
	}
	return &catalog.PageSchema{Blocks: blocks}
}

func diversePage() *catalog.PageSchema {
	return &catalog.PageSchema{
		Blocks: []catalog.Block{
			{Type: catalog.BlockHero, Variant: "split", Headline: "Hi", CTAText: "Go"},
			{Type: catalog.BlockBentoGrid, Variant: "mixed-span"},
			{Type: catalog.BlockStatsBand, Variant: "boxed"},
			{Type: catalog.BlockZigzagFeature},
			{Type: catalog.BlockTestimonials},
			{Type: catalog.BlockCTABanner, Headline: "Go"},
			{Type: catalog.BlockFooterSimple},
		},
	}
}

func TestCompute_TotalIsSumOfBreakdown(t *testing.T) {
	result := Compute(diversePage(), testTokens(t), catalog.SignatureDarkNeon, nil)

	b := result.Breakdown
	sum := b.Contrast + b.Hierarchy + b.LayoutDiversity + b.SignaturePresence +
		b.Typography + b.RhythmVariety + b.AntiTemplate
	assert.InDelta(t, sum, result.Total, 0.001)
	assert.LessOrEqual(t, result.Total, 100.0)
}

func TestCompute_DiversityOutscoresBoilerplate(t *testing.T) {
	tokens := testTokens(t)

	generic := Compute(boilerplatePage(), tokens, catalog.SignatureNone, nil)
	diverse := Compute(diversePage(), tokens, catalog.SignatureDarkNeon, nil)

	assert.Greater(t, diverse.Total, generic.Total)
}

func TestCompute_MustImproveWhenNoDiversityKind(t *testing.T) {
	result := Compute(boilerplatePage(), testTokens(t), catalog.SignatureDarkNeon, nil)
	assert.True(t, result.MustImprove, "a page with zero diversity kinds must improve regardless of total")
}

func TestCompute_MustImproveBelowThreshold(t *testing.T) {
	// Diversity present, but unstyled page with unparseable colors scores low.
	page := &catalog.PageSchema{
		Blocks: []catalog.Block{
			{Type: catalog.BlockStatsBand},
			{Type: catalog.BlockValueProps},
			{Type: catalog.BlockValueProps},
		},
	}
	tokens := catalog.ResolvedTokens{}

	result := Compute(page, tokens, catalog.SignatureNone, nil)
	assert.Less(t, result.Total, 60.0)
	assert.True(t, result.MustImprove)
}

func TestCompute_AcceptableDiversePageClearsThreshold(t *testing.T) {
	result := Compute(diversePage(), testTokens(t), catalog.SignatureDarkNeon, nil)

	assert.GreaterOrEqual(t, result.Total, 60.0)
	assert.False(t, result.MustImprove)
}

func TestScoreHierarchy_RewardsHeroFirstFooterLast(t *testing.T) {
	ordered := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero, CTAText: "Go"},
		{Type: catalog.BlockStatsBand},
		{Type: catalog.BlockFooterSimple},
	}}
	scrambled := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockStatsBand},
		{Type: catalog.BlockFooterSimple},
		{Type: catalog.BlockHero, CTAText: "Go"},
	}}

	assert.Greater(t, scoreHierarchy(ordered), scoreHierarchy(scrambled))
}

func TestScoreHierarchy_CTABlockBeatsHeroCTAOnly(t *testing.T) {
	withBanner := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero},
		{Type: catalog.BlockCTABanner},
		{Type: catalog.BlockFooterSimple},
	}}
	heroOnly := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero, CTAText: "Go"},
		{Type: catalog.BlockStatsBand},
		{Type: catalog.BlockFooterSimple},
	}}

	assert.Equal(t, 10.0, scoreHierarchy(withBanner))
	assert.Equal(t, 8.5, scoreHierarchy(heroOnly))
}

func TestScoreLayout_MoreDiversityKindsScoreHigher(t *testing.T) {
	one := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero}, {Type: catalog.BlockStatsBand}, {Type: catalog.BlockFooterSimple},
	}}
	three := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero}, {Type: catalog.BlockStatsBand},
		{Type: catalog.BlockBentoGrid}, {Type: catalog.BlockZigzagFeature},
		{Type: catalog.BlockFooterSimple},
	}}

	assert.Greater(t, scoreLayout(three, nil), scoreLayout(one, nil))
}

func TestScoreLayout_BlueprintViolationsPenalized(t *testing.T) {
	page := diversePage()
	dna, ok := catalog.Blueprint("portfolio-dense")
	require.True(t, ok)

	// The page satisfies portfolio-dense; adding its forbidden FAQ kind drops
	// the layout score.
	clean := scoreLayout(page, &dna)

	withFAQ := diversePage()
	withFAQ.Blocks = append(withFAQ.Blocks[:6],
		catalog.Block{Type: catalog.BlockFAQ},
		catalog.Block{Type: catalog.BlockFooterSimple},
	)
	assert.Less(t, scoreLayout(withFAQ, &dna), clean)
}

func TestScoreSignature_TiersOnNonDefaultVariants(t *testing.T) {
	none := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero}, {Type: catalog.BlockStatsBand}, {Type: catalog.BlockFooterSimple},
	}}
	assert.Equal(t, 0.0, scoreSignature(none, catalog.SignatureNone))
	assert.Equal(t, 10.0, scoreSignature(none, catalog.SignatureBrutalist))

	threeCustom := &catalog.PageSchema{Blocks: []catalog.Block{
		{Type: catalog.BlockHero, Variant: "split"},
		{Type: catalog.BlockStatsBand, Variant: "boxed"},
		{Type: catalog.BlockFooterSimple, Variant: "columns"},
	}}
	assert.Equal(t, 20.0, scoreSignature(threeCustom, catalog.SignatureBrutalist))
}

func TestScoreTypography_CuratedThenKnownThenFallback(t *testing.T) {
	curated := catalog.ResolvedTokens{Typography: catalog.Typography{HeadingFamily: "Fraunces", BodyFamily: "Source Sans 3"}}
	known := catalog.ResolvedTokens{Typography: catalog.Typography{HeadingFamily: "Manrope", BodyFamily: "Work Sans"}}
	unknown := catalog.ResolvedTokens{Typography: catalog.Typography{HeadingFamily: "Comic Sans MS", BodyFamily: "Papyrus"}}

	assert.Equal(t, 10.0, scoreTypography(curated))
	assert.Equal(t, 6.0, scoreTypography(known))
	assert.Equal(t, 2.0, scoreTypography(unknown))
}

func TestScoreAntiTemplate_PenalizesBoilerplate(t *testing.T) {
	assert.Equal(t, 0.0, scoreAntiTemplate(boilerplatePage()))
	assert.Equal(t, 5.0, scoreAntiTemplate(diversePage()))
}
