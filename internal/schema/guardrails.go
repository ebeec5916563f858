package schema

import (
	"fmt"
	"regexp"

	"github.com/goscha01/SiteForge/internal/catalog"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Guardrails runs the fixed battery of non-fatal structural checks against a
// schema that already passed strict validation. Violations come back as
// warnings and are always surfaced to the caller, never swallowed.
func Guardrails(page *catalog.PageSchema) []string {
	var warnings []string

	heroCount := 0
	ctaCount := 0
	for _, b := range page.Blocks {
		switch b.Type {
		case catalog.BlockHero:
			heroCount++
		case catalog.BlockCTABanner:
			ctaCount++
		}
	}

	if heroCount == 0 {
		warnings = append(warnings, "page has no hero block; expected exactly one hero positioned first")
	} else if page.Blocks[0].Type != catalog.BlockHero {
		warnings = append(warnings, fmt.Sprintf("first block is %s; expected the hero to open the page", page.Blocks[0].Type))
	}
	if heroCount > 1 {
		warnings = append(warnings, fmt.Sprintf("page has %d hero blocks; expected exactly one", heroCount))
	}
	if ctaCount > 1 {
		warnings = append(warnings, fmt.Sprintf("page has %d cta-banner blocks; expected at most one", ctaCount))
	}

	if n := len(page.Blocks); n > 0 {
		if last := page.Blocks[n-1].Type; last != catalog.BlockFooterSimple {
			warnings = append(warnings, fmt.Sprintf("last block is %s; expected a %s block to close the page", last, catalog.BlockFooterSimple))
		}
	}

	warnings = append(warnings, checkColors(&page.Tokens)...)

	if n := len(page.Blocks); n < catalog.MinBlocks || n > catalog.MaxBlocks {
		warnings = append(warnings, fmt.Sprintf("block count %d outside expected range [%d,%d]", n, catalog.MinBlocks, catalog.MaxBlocks))
	}

	return warnings
}

// checkColors flags any token color that is not a strict 6-digit hex value.
func checkColors(tokens *catalog.SchemaTokens) []string {
	var warnings []string
	colors := []struct {
		name  string
		value string
	}{
		{"primary", tokens.Primary},
		{"secondary", tokens.Secondary},
		{"accent", tokens.Accent},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if !hexColorPattern.MatchString(c.value) {
			warnings = append(warnings, fmt.Sprintf("token %s color %q is not a 6-digit hex value", c.name, c.value))
		}
	}
	return warnings
}
