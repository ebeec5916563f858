package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goscha01/SiteForge/internal/catalog"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func testTokens() catalog.ResolvedTokens {
	tokens, err := catalog.ResolveTokens("modern-trust", "Acme Plumbing", catalog.TokenTweaks{})
	if err != nil {
		panic(err)
	}
	return tokens
}

func threeBlockPage() *catalog.PageSchema {
	return &catalog.PageSchema{
		Blocks: []catalog.Block{
			{Type: catalog.BlockHero, Variant: "split", Headline: "Plumbing done right", Subheadline: "Since 1998", CTAText: "Book now"},
			{Type: catalog.BlockStatsBand, Variant: "boxed", Headline: "By the numbers", Stats: []catalog.Stat{
				{Value: "25+", Label: "Years"}, {Value: "4.9", Label: "Rating"},
			}},
			{Type: catalog.BlockFooterSimple, NavItems: []string{"Services", "Contact"}},
		},
		Tokens: catalog.SchemaTokens{Brand: "Acme Plumbing", Primary: "#1d4ed8", Accent: "#f59e0b"},
	}
}

func TestPage_DeterministicWithPinnedClock(t *testing.T) {
	page := threeBlockPage()
	tokens := testTokens()
	opts := Options{Signature: catalog.SignatureEditorial, Now: fixedNow}

	first, firstManifest := Page(page, tokens, opts)
	second, secondManifest := Page(page, tokens, opts)

	assert.Equal(t, first, second, "same inputs must produce byte-identical HTML")
	assert.Equal(t, firstManifest, secondManifest)
}

func TestPage_BlockWrappersCarryDataAttributes(t *testing.T) {
	html, manifest := Page(threeBlockPage(), testTokens(), Options{Now: fixedNow})

	assert.Contains(t, html, `<section class="block block-hero" data-block-type="hero" data-variant="split">`)
	assert.Contains(t, html, `<section class="block block-stats-band" data-block-type="stats-band" data-variant="boxed">`)
	assert.Contains(t, html, `<footer class="block block-footer-simple" data-block-type="footer-simple" data-variant="minimal">`)

	require.Len(t, manifest.Blocks, 3)
	assert.Equal(t, BlockRecord{Index: 0, Type: catalog.BlockHero, Variant: "split"}, manifest.Blocks[0])
	assert.Equal(t, "minimal", manifest.Blocks[2].Variant, "empty variant resolves to the default in the manifest")
}

func TestPage_EscapesUserText(t *testing.T) {
	page := threeBlockPage()
	page.Blocks[0].Headline = `<script>alert("pwned")</script> & 'more'`

	html, _ := Page(page, testTokens(), Options{Now: fixedNow})

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;alert(&#34;pwned&#34;)&lt;/script&gt; &amp; &#39;more&#39;")
}

func TestPage_UnknownKindRendersPlaceholder(t *testing.T) {
	page := threeBlockPage()
	page.Blocks[1] = catalog.Block{Type: "mega-carousel", Variant: "spin"}

	html, manifest := Page(page, testTokens(), Options{Now: fixedNow})

	assert.Contains(t, html, "Unrenderable section")
	assert.Contains(t, html, "mega-carousel")
	assert.True(t, manifest.Blocks[1].Unknown)
	assert.Contains(t, html, "<footer", "the rest of the page still renders")
}

func TestPage_EmptySpotlightTestimonialsRenders(t *testing.T) {
	page := threeBlockPage()
	page.Blocks[1] = catalog.Block{Type: catalog.BlockTestimonials, Variant: "spotlight", Headline: "What clients say"}

	html, manifest := Page(page, testTokens(), Options{Now: fixedNow})

	assert.Contains(t, html, "What clients say")
	assert.Equal(t, catalog.BlockTestimonials, manifest.Blocks[1].Type)
	assert.Contains(t, html, "<footer", "the rest of the page still renders")
}

func TestPage_ManifestEmbeddedBitForBit(t *testing.T) {
	html, manifest := Page(threeBlockPage(), testTokens(), Options{Now: fixedNow})

	start := strings.Index(html, `<script type="application/json" id="render-manifest">`)
	require.GreaterOrEqual(t, start, 0)
	rest := html[start+len(`<script type="application/json" id="render-manifest">`):]
	end := strings.Index(rest, "</script>")
	require.GreaterOrEqual(t, end, 0)

	expected, err := json.Marshal(manifest)
	require.NoError(t, err)
	assert.Equal(t, string(expected), rest[:end])
}

func TestPage_HashCommentAndVersion(t *testing.T) {
	page := threeBlockPage()
	html, manifest := Page(page, testTokens(), Options{Version: VersionPatched, Now: fixedNow})

	assert.Equal(t, VersionPatched, manifest.Version)
	assert.Equal(t, SchemaHash(page), manifest.SchemaHash)
	assert.Contains(t, html, fmt.Sprintf("<!-- schema-hash: %s version: v2 -->", manifest.SchemaHash))
}

func TestPage_DensityControlsSectionPadding(t *testing.T) {
	tight, _ := Page(threeBlockPage(), testTokens(), Options{Density: catalog.DensityTight, Now: fixedNow})
	loose, _ := Page(threeBlockPage(), testTokens(), Options{Density: catalog.DensityLoose, Now: fixedNow})

	assert.Contains(t, tight, "--section-pad:40px;")
	assert.Contains(t, loose, "--section-pad:104px;")
}

func TestPage_DensityDefaultsFromTokens(t *testing.T) {
	tokens := testTokens()
	tokens.Density = catalog.DensityLoose

	html, manifest := Page(threeBlockPage(), tokens, Options{Now: fixedNow})

	assert.Equal(t, catalog.DensityLoose, manifest.Density)
	assert.Contains(t, html, "--section-pad:104px;")
}

func TestPage_SignatureSeparatorsBetweenBlocksOnly(t *testing.T) {
	html, _ := Page(threeBlockPage(), testTokens(), Options{Signature: catalog.SignatureEditorial, Now: fixedNow})

	// Three blocks means exactly two separators.
	assert.Equal(t, 2, strings.Count(html, `<hr class="sep sep-rule"`))

	plain, _ := Page(threeBlockPage(), testTokens(), Options{Now: fixedNow})
	assert.NotContains(t, plain, "sep-rule")
}

func TestPage_DarkNeonForcesBackgroundOverride(t *testing.T) {
	html, _ := Page(threeBlockPage(), testTokens(), Options{Signature: catalog.SignatureDarkNeon, Now: fixedNow})

	assert.Contains(t, html, "--color-bg:#07070c;")
	assert.Contains(t, html, `data-signature="dark-neon"`)
}

func TestPage_FooterUsesInjectedYear(t *testing.T) {
	html, _ := Page(threeBlockPage(), testTokens(), Options{Now: fixedNow})

	assert.Contains(t, html, "&copy; 2026 Acme Plumbing")
}

func TestPage_TokensDriveCSSCustomProperties(t *testing.T) {
	html, _ := Page(threeBlockPage(), testTokens(), Options{Now: fixedNow})

	assert.Contains(t, html, "--color-primary:#1d4ed8;")
	assert.Contains(t, html, "--font-heading:'Inter',sans-serif;")
	assert.Contains(t, html, "--radius:12px;")
}

func TestEscape_AllSpecialCharacters(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&#34;&#39;", Escape(`&<>"'`))
	assert.Equal(t, "plain text", Escape("plain text"))
	assert.Equal(t, "", Escape(""))
}
