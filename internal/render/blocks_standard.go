package render

import (
	"fmt"
	"strings"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// renderHero dispatches between the centered, split, and full-bleed hero
// layouts.
func renderHero(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder

	switch b.Variant {
	case "split":
		sb.WriteString("<div class=\"hero hero-split\" style=\"display:grid;grid-template-columns:1fr 1fr;gap:48px;align-items:center;\">\n<div>\n")
		writeHeroCopy(&sb, b, "h1")
		sb.WriteString("</div>\n")
		if b.ImageURL != "" {
			fmt.Fprintf(&sb, "<img src=%q alt=\"\" style=\"width:100%%;border-radius:var(--radius);\">\n", Escape(b.ImageURL))
		} else {
			sb.WriteString("<div class=\"card\" style=\"min-height:280px;\"></div>\n")
		}
		sb.WriteString("</div>\n")
	case "full-bleed":
		sb.WriteString("<div class=\"hero hero-full\" style=\"min-height:60vh;display:flex;flex-direction:column;justify-content:center;\">\n")
		writeHeroCopy(&sb, b, "h1")
		sb.WriteString("</div>\n")
	default: // centered
		sb.WriteString("<div class=\"hero hero-centered\" style=\"text-align:center;max-width:760px;margin:0 auto;\">\n")
		writeHeroCopy(&sb, b, "h1")
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

func writeHeroCopy(sb *strings.Builder, b *catalog.Block, headingTag string) {
	fmt.Fprintf(sb, "<%s>%s</%s>\n", headingTag, Escape(b.Headline), headingTag)
	if b.Subheadline != "" {
		fmt.Fprintf(sb, "<p class=\"muted\" style=\"font-size:1.25rem;\">%s</p>\n", Escape(b.Subheadline))
	}
	if b.CTAText != "" {
		fmt.Fprintf(sb, "<p><a class=\"btn\" href=%q>%s</a></p>\n", Escape(ctaHref(b)), Escape(b.CTAText))
	}
}

func ctaHref(b *catalog.Block) string {
	if b.CTAHref != "" {
		return b.CTAHref
	}
	return "#contact"
}

// renderValueProps lays out 2-4 value propositions as a row of cards or an
// icon list.
func renderValueProps(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "icon-list":
		sb.WriteString("<ul class=\"props props-list\" style=\"list-style:none;padding:0;display:grid;gap:20px;\">\n")
		for _, item := range b.Items {
			sb.WriteString("<li style=\"display:flex;gap:16px;align-items:baseline;\">\n")
			if item.Icon != "" {
				fmt.Fprintf(&sb, "<span class=\"icon\">%s</span>\n", Escape(item.Icon))
			}
			fmt.Fprintf(&sb, "<div><h3>%s</h3><p class=\"muted\">%s</p></div>\n</li>\n",
				Escape(item.Title), Escape(item.Body))
		}
		sb.WriteString("</ul>\n")
	default: // three-up
		fmt.Fprintf(&sb, "<div class=\"grid props\" style=\"grid-template-columns:repeat(%d,1fr);\">\n", len(b.Items))
		for _, item := range b.Items {
			sb.WriteString("<div class=\"card\">\n")
			if item.Icon != "" {
				fmt.Fprintf(&sb, "<span class=\"icon\">%s</span>\n", Escape(item.Icon))
			}
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</div>\n",
				Escape(item.Title), Escape(item.Body))
		}
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

// renderServicesGrid lists offered services as cards, a compact two-column
// list, or a numbered sequence.
func renderServicesGrid(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "compact":
		sb.WriteString("<div class=\"grid services\" style=\"grid-template-columns:1fr 1fr;gap:12px;\">\n")
		for _, item := range b.Items {
			fmt.Fprintf(&sb, "<div style=\"padding:12px 0;border-bottom:1px solid var(--color-surface);\"><strong>%s</strong> <span class=\"muted\">%s</span></div>\n",
				Escape(item.Title), Escape(item.Body))
		}
		sb.WriteString("</div>\n")
	case "numbered":
		sb.WriteString("<ol class=\"services\" style=\"display:grid;gap:24px;padding-left:1.5rem;\">\n")
		for _, item := range b.Items {
			fmt.Fprintf(&sb, "<li><h3>%s</h3><p class=\"muted\">%s</p></li>\n",
				Escape(item.Title), Escape(item.Body))
		}
		sb.WriteString("</ol>\n")
	default: // cards
		sb.WriteString("<div class=\"grid services\" style=\"grid-template-columns:repeat(auto-fit,minmax(260px,1fr));\">\n")
		for _, item := range b.Items {
			sb.WriteString("<div class=\"card\">\n")
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</div>\n",
				Escape(item.Title), Escape(item.Body))
		}
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

// renderTestimonials shows customer quotes as a card row or a single
// spotlight quote with the rest below.
func renderTestimonials(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "spotlight":
		if len(b.Testimonials) == 0 {
			break
		}
		first := b.Testimonials[0]
		sb.WriteString("<blockquote class=\"testimonial-spotlight\" style=\"font-size:1.5rem;max-width:820px;margin:0 auto;text-align:center;\">\n")
		fmt.Fprintf(&sb, "<p>&ldquo;%s&rdquo;</p>\n", Escape(first.Quote))
		fmt.Fprintf(&sb, "<footer class=\"muted\">%s%s</footer>\n</blockquote>\n",
			Escape(first.Author), attribution(first.Role))
		for _, t := range b.Testimonials[1:] {
			fmt.Fprintf(&sb, "<p class=\"muted\" style=\"text-align:center;\">&ldquo;%s&rdquo; &mdash; %s</p>\n",
				Escape(t.Quote), Escape(t.Author))
		}
	default: // cards
		fmt.Fprintf(&sb, "<div class=\"grid testimonials\" style=\"grid-template-columns:repeat(%d,1fr);\">\n", len(b.Testimonials))
		for _, t := range b.Testimonials {
			sb.WriteString("<blockquote class=\"card\" style=\"margin:0;\">\n")
			fmt.Fprintf(&sb, "<p>&ldquo;%s&rdquo;</p>\n", Escape(t.Quote))
			fmt.Fprintf(&sb, "<footer class=\"muted\">%s%s</footer>\n</blockquote>\n",
				Escape(t.Author), attribution(t.Role))
		}
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

func attribution(role string) string {
	if role == "" {
		return ""
	}
	return ", " + Escape(role)
}

// renderFAQ renders question/answer pairs as native accordions or a
// two-column list.
func renderFAQ(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "two-column":
		sb.WriteString("<div class=\"grid faq\" style=\"grid-template-columns:1fr 1fr;\">\n")
		for _, item := range b.FAQItems {
			fmt.Fprintf(&sb, "<div><h3>%s</h3><p class=\"muted\">%s</p></div>\n",
				Escape(item.Question), Escape(item.Answer))
		}
		sb.WriteString("</div>\n")
	default: // accordion
		sb.WriteString("<div class=\"faq\" style=\"max-width:760px;margin:0 auto;\">\n")
		for _, item := range b.FAQItems {
			fmt.Fprintf(&sb, "<details class=\"card\" style=\"margin-bottom:12px;\"><summary><strong>%s</strong></summary><p class=\"muted\">%s</p></details>\n",
				Escape(item.Question), Escape(item.Answer))
		}
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

// renderCTABanner renders the dedicated call-to-action section.
func renderCTABanner(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder

	inner := func() {
		fmt.Fprintf(&sb, "<h2>%s</h2>\n", Escape(b.Headline))
		if b.Body != "" {
			fmt.Fprintf(&sb, "<p class=\"muted\">%s</p>\n", Escape(b.Body))
		}
		if b.CTAText != "" {
			fmt.Fprintf(&sb, "<p><a class=\"btn\" href=%q>%s</a></p>\n", Escape(ctaHref(b)), Escape(b.CTAText))
		}
	}

	switch b.Variant {
	case "boxed":
		sb.WriteString("<div class=\"cta card\" style=\"text-align:center;padding:56px 32px;\">\n")
		inner()
		sb.WriteString("</div>\n")
	default: // banner
		sb.WriteString("<div class=\"cta\" style=\"text-align:center;\">\n")
		inner()
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

// renderFooter closes the page. The copyright year is the renderer's one
// allowed non-determinism, sourced from the injected clock.
func renderFooter(b *catalog.Block, rc *renderContext) string {
	var sb strings.Builder

	brand := rc.tokens.Brand
	if b.Headline != "" {
		brand = b.Headline
	}

	switch b.Variant {
	case "columns":
		sb.WriteString("<div class=\"grid\" style=\"grid-template-columns:2fr 1fr;align-items:start;\">\n")
		fmt.Fprintf(&sb, "<div><strong>%s</strong>", Escape(brand))
		if b.Body != "" {
			fmt.Fprintf(&sb, "<p class=\"muted\">%s</p>", Escape(b.Body))
		}
		sb.WriteString("</div>\n<nav><ul style=\"list-style:none;padding:0;display:grid;gap:8px;\">\n")
		for _, item := range b.NavItems {
			fmt.Fprintf(&sb, "<li><a href=\"#\" class=\"muted\">%s</a></li>\n", Escape(item))
		}
		sb.WriteString("</ul></nav>\n</div>\n")
	default: // minimal
		sb.WriteString("<div style=\"display:flex;justify-content:space-between;flex-wrap:wrap;gap:16px;\">\n")
		fmt.Fprintf(&sb, "<strong>%s</strong>\n", Escape(brand))
		if len(b.NavItems) > 0 {
			sb.WriteString("<nav style=\"display:flex;gap:20px;\">\n")
			for _, item := range b.NavItems {
				fmt.Fprintf(&sb, "<a href=\"#\" class=\"muted\">%s</a>\n", Escape(item))
			}
			sb.WriteString("</nav>\n")
		}
		sb.WriteString("</div>\n")
	}

	fmt.Fprintf(&sb, "<p class=\"muted\" style=\"margin-top:24px;font-size:0.85rem;\">&copy; %d %s</p>\n",
		rc.year, Escape(brand))

	return sb.String()
}

// writeSectionHeading writes the optional headline/subheadline intro shared
// by list-style blocks.
func writeSectionHeading(sb *strings.Builder, b *catalog.Block) {
	if b.Headline == "" && b.Subheadline == "" {
		return
	}
	sb.WriteString("<header style=\"margin-bottom:40px;\">\n")
	if b.Headline != "" {
		fmt.Fprintf(sb, "<h2>%s</h2>\n", Escape(b.Headline))
	}
	if b.Subheadline != "" {
		fmt.Fprintf(sb, "<p class=\"muted\">%s</p>\n", Escape(b.Subheadline))
	}
	sb.WriteString("</header>\n")
}
