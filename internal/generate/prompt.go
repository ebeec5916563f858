package generate

import (
	"fmt"
	"strings"

	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/extract"
)

// BuildSchemaPrompt assembles the generation prompt from extracted site
// content and an optional structural blueprint. The model must answer with a
// single JSON object; the response is treated as untrusted and goes through
// strict validation regardless of what this prompt asks for.
func BuildSchemaPrompt(content *extract.SiteContent, dna *catalog.DNA) string {
	var sb strings.Builder

	sb.WriteString("You are a web designer rebuilding a business website as a modern single-page site.\n")
	sb.WriteString("Produce ONLY a JSON object with this shape:\n")
	sb.WriteString(`{"blocks":[{"type":"...","variant":"...","headline":"...",...}],"tokens":{"brand":"...","primary":"#rrggbb","secondary":"#rrggbb","accent":"#rrggbb"}}`)
	sb.WriteString("\n\nAllowed block types and their variants:\n")
	for _, t := range catalog.AllTypes() {
		spec, _ := catalog.Spec(t)
		fmt.Fprintf(&sb, "- %s (variants: %s)\n", t, strings.Join(spec.Variants, ", "))
	}
	sb.WriteString("\nRules:\n")
	fmt.Fprintf(&sb, "- Between %d and %d blocks.\n", catalog.MinBlocks, catalog.MaxBlocks)
	sb.WriteString("- Exactly one hero block, first. End with footer-simple.\n")
	sb.WriteString("- Include at least one of: bento-grid, zigzag-feature, stats-band, process-timeline.\n")
	sb.WriteString("- Avoid the generic hero/value-props/services-grid/testimonials/faq/cta-banner/footer ordering.\n")
	sb.WriteString("- Reuse the site's real copy below. Do not invent facts, prices, or statistics.\n")

	if dna != nil {
		fmt.Fprintf(&sb, "\nStructural blueprint %q:\n", dna.Name)
		if len(dna.RequiredKinds) > 0 {
			fmt.Fprintf(&sb, "- Must include: %s\n", joinKinds(dna.RequiredKinds))
		}
		if len(dna.ForbiddenKinds) > 0 {
			fmt.Fprintf(&sb, "- Must not include: %s\n", joinKinds(dna.ForbiddenKinds))
		}
		if dna.HeroVariant != "" {
			fmt.Fprintf(&sb, "- Hero variant: %s\n", dna.HeroVariant)
		}
		fmt.Fprintf(&sb, "- Block count between %d and %d.\n", dna.MinBlocks, dna.MaxBlocks)
	}

	sb.WriteString("\nExtracted site content:\n")
	writeContent(&sb, content)

	return sb.String()
}

// BuildRepairPrompt asks the model to fix an invalid schema document without
// changing anything the validator did not complain about.
func BuildRepairPrompt(raw []byte, validationErrors []string) string {
	var sb strings.Builder
	sb.WriteString("The following JSON failed page schema validation. Return ONLY the corrected JSON object.\n")
	sb.WriteString("Fix the listed problems and change nothing else.\n\nProblems:\n")
	for _, e := range validationErrors {
		sb.WriteString("- ")
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	sb.WriteString("\nJSON:\n")
	sb.Write(raw)
	return sb.String()
}

func writeContent(sb *strings.Builder, content *extract.SiteContent) {
	fmt.Fprintf(sb, "Brand: %s\n", content.BrandName)
	if content.Title != "" {
		fmt.Fprintf(sb, "Title: %s\n", content.Title)
	}
	if content.Description != "" {
		fmt.Fprintf(sb, "Description: %s\n", content.Description)
	}
	writeList(sb, "Headings", content.Headings)
	writeList(sb, "Navigation", content.NavItems)
	writeList(sb, "Calls to action", content.CTATexts)
	writeList(sb, "Paragraphs", content.Paragraphs)
	for _, t := range content.Testimonials {
		fmt.Fprintf(sb, "Testimonial: %q — %s\n", t.Quote, t.Author)
	}
	for _, f := range content.FAQItems {
		fmt.Fprintf(sb, "FAQ: %s / %s\n", f.Question, f.Answer)
	}
	if content.Contact.Email != "" {
		fmt.Fprintf(sb, "Contact email: %s\n", content.Contact.Email)
	}
	if content.Contact.Phone != "" {
		fmt.Fprintf(sb, "Contact phone: %s\n", content.Contact.Phone)
	}
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
}

func joinKinds(kinds []catalog.BlockType) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
