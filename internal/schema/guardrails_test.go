package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goscha01/SiteForge/internal/catalog"
)

func cleanPage() *catalog.PageSchema {
	return &catalog.PageSchema{
		Blocks: []catalog.Block{
			{Type: catalog.BlockHero, Headline: "Hi"},
			{Type: catalog.BlockStatsBand, Stats: []catalog.Stat{{Value: "10", Label: "Years"}, {Value: "2k", Label: "Jobs"}}},
			{Type: catalog.BlockFooterSimple},
		},
		Tokens: catalog.SchemaTokens{Brand: "Acme", Primary: "#1d4ed8", Secondary: "#1e3a8a", Accent: "#f59e0b"},
	}
}

func TestGuardrails_EmptySchemaWarnsWithoutPanicking(t *testing.T) {
	warnings := Guardrails(&catalog.PageSchema{})

	assert.Contains(t, warnings, "page has no hero block; expected exactly one hero positioned first")
	assert.Contains(t, warnings, "block count 0 outside expected range [3,12]")
}

func TestGuardrails_CleanPageHasNoWarnings(t *testing.T) {
	assert.Empty(t, Guardrails(cleanPage()))
}

func TestGuardrails_MissingHero(t *testing.T) {
	page := cleanPage()
	page.Blocks[0].Type = catalog.BlockCTABanner

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "page has no hero block; expected exactly one hero positioned first")
}

func TestGuardrails_HeroNotFirst(t *testing.T) {
	page := cleanPage()
	page.Blocks[0], page.Blocks[1] = page.Blocks[1], page.Blocks[0]

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "first block is stats-band; expected the hero to open the page")
}

func TestGuardrails_DuplicateHeroReportsCount(t *testing.T) {
	page := cleanPage()
	page.Blocks[1] = catalog.Block{Type: catalog.BlockHero, Headline: "Again"}

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "page has 2 hero blocks; expected exactly one")
}

func TestGuardrails_DuplicateCTABanner(t *testing.T) {
	page := cleanPage()
	page.Blocks = append(page.Blocks[:2],
		catalog.Block{Type: catalog.BlockCTABanner, Headline: "Go"},
		catalog.Block{Type: catalog.BlockCTABanner, Headline: "Go again"},
		catalog.Block{Type: catalog.BlockFooterSimple},
	)

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "page has 2 cta-banner blocks; expected at most one")
}

func TestGuardrails_MissingFooterNamesExpectedKind(t *testing.T) {
	page := cleanPage()
	page.Blocks[2].Type = catalog.BlockCTABanner
	page.Blocks[2].Headline = "Go"

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "last block is cta-banner; expected a footer-simple block to close the page")
}

func TestGuardrails_MalformedHexColor(t *testing.T) {
	page := cleanPage()
	page.Tokens.Primary = "blue"
	page.Tokens.Accent = "#ff00"

	warnings := Guardrails(page)
	assert.Contains(t, warnings, `token primary color "blue" is not a 6-digit hex value`)
	assert.Contains(t, warnings, `token accent color "#ff00" is not a 6-digit hex value`)
}

func TestGuardrails_EmptyColorIsNotFlagged(t *testing.T) {
	page := cleanPage()
	page.Tokens.Secondary = ""

	assert.Empty(t, Guardrails(page))
}

func TestGuardrails_BlockCountOutOfRange(t *testing.T) {
	page := cleanPage()
	for len(page.Blocks) <= catalog.MaxBlocks {
		page.Blocks = append(page.Blocks, catalog.Block{Type: catalog.BlockFooterSimple})
	}

	warnings := Guardrails(page)
	assert.Contains(t, warnings, "block count 13 outside expected range [3,12]")
}
