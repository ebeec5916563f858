// Package generate drives the model calls that turn extracted site content
// into validated page schemas.
package generate

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/extract"
	"github.com/goscha01/SiteForge/internal/llm"
	"github.com/goscha01/SiteForge/internal/schema"
)

// maxConcurrentPreviews bounds the style preview fan-out.
const maxConcurrentPreviews = 4

// Generator produces page schemas via an LLM client. It also serves as the
// schema package's Repairer for the single autofix attempt.
type Generator struct {
	client llm.Client
}

// New creates a Generator over an LLM client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// GenerateSchema asks the model for a page schema and runs it through strict
// validation with one repair attempt. Returns the typed schema plus any
// guardrail warnings.
func (g *Generator) GenerateSchema(ctx context.Context, content *extract.SiteContent, dna *catalog.DNA) (*catalog.PageSchema, []string, error) {
	if g.client == nil {
		return nil, nil, &GenerationError{Message: "no model client configured"}
	}

	prompt := BuildSchemaPrompt(content, dna)
	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, nil, &GenerationError{Message: "schema generation call failed", Cause: err}
	}

	page, warnings, err := schema.ValidateAndAutofix(ctx, []byte(raw), g)
	if err != nil {
		return nil, nil, err
	}
	return page, warnings, nil
}

// Repair implements schema.Repairer: one model round-trip that feeds the
// invalid document and the validator's complaints back to the model.
func (g *Generator) Repair(ctx context.Context, raw []byte, validationErrors []string) ([]byte, error) {
	fixed, err := g.client.GenerateJSON(ctx, BuildRepairPrompt(raw, validationErrors), llm.TierStandard)
	if err != nil {
		return nil, err
	}
	return []byte(fixed), nil
}

// Preview is one style candidate: the schema generated under a preset's
// visual direction, or the deterministic fallback when generation failed.
type Preview struct {
	PresetID string
	Schema   *catalog.PageSchema
	Warnings []string
	Fallback bool
}

// GeneratePreviews fans out one generation per style preset. Failures degrade
// per-preview: a preset whose generation fails gets the deterministic
// fallback schema instead of sinking the whole batch.
func (g *Generator) GeneratePreviews(ctx context.Context, content *extract.SiteContent, dna *catalog.DNA, presetIDs []string) []Preview {
	previews := make([]Preview, len(presetIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentPreviews)

	for i, presetID := range presetIDs {
		group.Go(func() error {
			page, warnings, err := g.GenerateSchema(groupCtx, content, dna)
			if err != nil {
				log.Printf("[GENERATE] Preview %s failed, using fallback: %v", presetID, err)
				previews[i] = Preview{PresetID: presetID, Schema: FallbackSchema(content), Fallback: true}
				return nil
			}
			previews[i] = Preview{PresetID: presetID, Schema: page, Warnings: warnings}
			return nil
		})
	}

	// Goroutines never return errors; Wait only orders the writes.
	_ = group.Wait()
	return previews
}

// FallbackSchema builds a minimal valid page directly from extracted content
// with no model involvement. Used when generation fails outright.
func FallbackSchema(content *extract.SiteContent) *catalog.PageSchema {
	headline := content.Title
	if headline == "" {
		headline = content.BrandName
	}
	ctaText := "Get in touch"
	if len(content.CTATexts) > 0 {
		ctaText = content.CTATexts[0]
	}

	hero := catalog.Block{
		Type:        catalog.BlockHero,
		Variant:     "centered",
		Headline:    headline,
		Subheadline: content.Description,
		CTAText:     ctaText,
	}

	items := make([]catalog.Item, 0, 3)
	for _, h := range content.Headings {
		if h == headline || len(items) == 3 {
			continue
		}
		items = append(items, catalog.Item{Title: h})
	}
	for len(items) < 2 {
		items = append(items, catalog.Item{Title: "What we do"})
	}
	props := catalog.Block{
		Type:     catalog.BlockValueProps,
		Variant:  "three-up",
		Headline: "Why " + content.BrandName,
		Items:    items,
	}

	footer := catalog.Block{Type: catalog.BlockFooterSimple, Variant: "minimal"}

	return &catalog.PageSchema{
		Blocks: []catalog.Block{hero, props, footer},
		Tokens: catalog.SchemaTokens{
			Brand:     content.BrandName,
			Primary:   "#1d4ed8",
			Secondary: "#0f172a",
			Accent:    "#f59e0b",
		},
	}
}
