package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/extract"
	"github.com/goscha01/SiteForge/internal/llm"
	"github.com/goscha01/SiteForge/internal/schema"
)

const validResponse = `{
	"blocks": [
		{"type": "hero", "variant": "centered", "headline": "Plumbing done right", "ctaText": "Book now"},
		{"type": "stats-band", "stats": [{"value": "25", "label": "Years"}, {"value": "98%", "label": "Happy clients"}]},
		{"type": "footer-simple"}
	],
	"tokens": {"brand": "Acme Plumbing", "primary": "#1d4ed8", "accent": "#f59e0b"}
}`

// fakeClient returns queued responses in order, then repeats the last one.
type fakeClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if f.calls > len(f.responses) {
		return f.responses[len(f.responses)-1], nil
	}
	return f.responses[f.calls-1], nil
}

func (f *fakeClient) GenerateVision(_ context.Context, _ string, _ []byte, _ llm.ModelTier) (string, error) {
	return "", errors.New("not a vision client")
}

func (f *fakeClient) Close() error { return nil }

func sampleContent() *extract.SiteContent {
	return &extract.SiteContent{
		URL:         "https://acmeplumbing.example",
		Title:       "Acme Plumbing",
		Description: "Licensed plumbers serving the metro area.",
		BrandName:   "Acme Plumbing",
		Headings:    []string{"Emergency repairs", "Water heaters", "Drain cleaning"},
		CTATexts:    []string{"Get a free quote"},
	}
}

func TestGenerateSchema_ValidFirstTry(t *testing.T) {
	client := &fakeClient{responses: []string{validResponse}}
	gen := New(client)

	page, warnings, err := gen.GenerateSchema(context.Background(), sampleContent(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	require.Len(t, page.Blocks, 3)
	assert.Equal(t, catalog.BlockStatsBand, page.Blocks[1].Type)
	assert.Empty(t, warnings)
}

func TestGenerateSchema_RepairRoundTrip(t *testing.T) {
	invalid := strings.Replace(validResponse, `"hero"`, `"mega-carousel"`, 1)
	client := &fakeClient{responses: []string{invalid, validResponse}}
	gen := New(client)

	page, _, err := gen.GenerateSchema(context.Background(), sampleContent(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls, "one generation call plus one repair call")
	assert.Equal(t, catalog.BlockHero, page.Blocks[0].Type)
	assert.Contains(t, client.prompts[1], "mega-carousel", "repair prompt carries the invalid document")
	assert.Contains(t, client.prompts[1], "failed page schema validation")
}

func TestGenerateSchema_RepairFailureReportsBothRounds(t *testing.T) {
	invalid := strings.Replace(validResponse, `"hero"`, `"mega-carousel"`, 1)
	client := &fakeClient{responses: []string{invalid, invalid}}
	gen := New(client)

	_, _, err := gen.GenerateSchema(context.Background(), sampleContent(), nil)
	var repairErr *schema.RepairFailedError
	require.ErrorAs(t, err, &repairErr)
	assert.Equal(t, 2, client.calls)
}

func TestGenerateSchema_ClientErrorWrapped(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	gen := New(client)

	_, _, err := gen.GenerateSchema(context.Background(), sampleContent(), nil)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGenerateSchema_NilClient(t *testing.T) {
	gen := New(nil)
	_, _, err := gen.GenerateSchema(context.Background(), sampleContent(), nil)
	assert.Error(t, err)
}

func TestBuildSchemaPrompt_CoversCatalogAndContent(t *testing.T) {
	prompt := BuildSchemaPrompt(sampleContent(), nil)

	for _, kind := range catalog.AllTypes() {
		assert.Contains(t, prompt, string(kind))
	}
	assert.Contains(t, prompt, "Between 3 and 12 blocks.")
	assert.Contains(t, prompt, "Emergency repairs")
	assert.Contains(t, prompt, "Get a free quote")
	assert.NotContains(t, prompt, "Testimonial:", "no testimonials extracted, none promised")
}

func TestBuildSchemaPrompt_IncludesBlueprint(t *testing.T) {
	dna, ok := catalog.Blueprint("proof-heavy")
	require.True(t, ok)

	prompt := BuildSchemaPrompt(sampleContent(), &dna)

	assert.Contains(t, prompt, `Structural blueprint "proof-heavy"`)
	assert.Contains(t, prompt, "Must include:")
}

func TestGeneratePreviews_PerPresetFallback(t *testing.T) {
	client := &fakeClient{err: errors.New("model down")}
	gen := New(client)
	presets := catalog.PresetIDs()

	previews := gen.GeneratePreviews(context.Background(), sampleContent(), nil, presets)

	require.Len(t, previews, len(presets))
	for i, p := range previews {
		assert.Equal(t, presets[i], p.PresetID)
		assert.True(t, p.Fallback)
		require.NotNil(t, p.Schema)
	}
}

func TestGeneratePreviews_SuccessfulGeneration(t *testing.T) {
	client := &fakeClient{responses: []string{validResponse}}
	gen := New(client)

	previews := gen.GeneratePreviews(context.Background(), sampleContent(), nil, []string{"modern-trust", "warm-studio"})

	require.Len(t, previews, 2)
	for _, p := range previews {
		assert.False(t, p.Fallback)
		assert.Equal(t, catalog.BlockHero, p.Schema.Blocks[0].Type)
	}
}

func TestFallbackSchema_PassesStrictValidation(t *testing.T) {
	page := FallbackSchema(sampleContent())

	require.Len(t, page.Blocks, 3)
	assert.Equal(t, catalog.BlockHero, page.Blocks[0].Type)
	assert.Equal(t, "Get a free quote", page.Blocks[0].CTAText)
	assert.Equal(t, catalog.BlockFooterSimple, page.Blocks[2].Type)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	_, err = schema.Parse(raw)
	assert.NoError(t, err, "fallback must survive the strict validator untouched")

	warnings := schema.Guardrails(page)
	assert.Empty(t, warnings)
}

func TestFallbackSchema_EmptyContent(t *testing.T) {
	page := FallbackSchema(&extract.SiteContent{BrandName: "Acme"})

	assert.Equal(t, "Acme", page.Blocks[0].Headline, "brand stands in for a missing title")
	assert.Equal(t, "Get in touch", page.Blocks[0].CTAText)
	require.Len(t, page.Blocks[1].Items, 2, "padded to the value-props minimum")
}
