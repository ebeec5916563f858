package render

import (
	"fmt"
	"strings"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// renderBentoGrid dispatches among the 2x2, 3-column, and mixed-span bento
// layouts. mixed-span gives the first cell double width and the second
// double height, which is what makes the layout read as a bento box.
func renderBentoGrid(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "grid-3col":
		sb.WriteString("<div class=\"grid bento\" style=\"grid-template-columns:repeat(3,1fr);\">\n")
		for _, item := range b.Items {
			writeBentoCell(&sb, item, "")
		}
		sb.WriteString("</div>\n")
	case "mixed-span":
		sb.WriteString("<div class=\"grid bento\" style=\"grid-template-columns:repeat(3,1fr);grid-auto-rows:minmax(140px,auto);\">\n")
		for i, item := range b.Items {
			span := ""
			switch i {
			case 0:
				span = "grid-column:span 2;"
			case 1:
				span = "grid-row:span 2;"
			}
			writeBentoCell(&sb, item, span)
		}
		sb.WriteString("</div>\n")
	default: // grid-2x2
		sb.WriteString("<div class=\"grid bento\" style=\"grid-template-columns:1fr 1fr;\">\n")
		for _, item := range b.Items {
			writeBentoCell(&sb, item, "")
		}
		sb.WriteString("</div>\n")
	}

	return sb.String()
}

func writeBentoCell(sb *strings.Builder, item catalog.Item, extraStyle string) {
	if extraStyle != "" {
		fmt.Fprintf(sb, "<div class=\"card\" style=%q>\n", extraStyle)
	} else {
		sb.WriteString("<div class=\"card\">\n")
	}
	if item.ImageURL != "" {
		fmt.Fprintf(sb, "<img src=%q alt=\"\" style=\"width:100%%;border-radius:var(--radius);margin-bottom:12px;\">\n", Escape(item.ImageURL))
	}
	fmt.Fprintf(sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</div>\n",
		Escape(item.Title), Escape(item.Body))
}

// renderZigzag alternates image/copy sides per row. The offset variant
// staggers copy columns instead of using images.
func renderZigzag(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	for i, item := range b.Items {
		switch b.Variant {
		case "offset":
			pad := ""
			if i%2 == 1 {
				pad = "margin-left:20%;"
			}
			fmt.Fprintf(&sb, "<div class=\"zigzag-row\" style=\"max-width:70%%;%smargin-bottom:48px;\">\n", pad)
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</div>\n",
				Escape(item.Title), Escape(item.Body))
		default: // alternating
			direction := ""
			if i%2 == 1 {
				direction = "direction:rtl;"
			}
			fmt.Fprintf(&sb, "<div class=\"zigzag-row\" style=\"display:grid;grid-template-columns:1fr 1fr;gap:48px;align-items:center;margin-bottom:64px;%s\">\n", direction)
			sb.WriteString("<div style=\"direction:ltr;\">\n")
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</div>\n", Escape(item.Title), Escape(item.Body))
			if item.ImageURL != "" {
				fmt.Fprintf(&sb, "<img src=%q alt=\"\" style=\"width:100%%;border-radius:var(--radius);direction:ltr;\">\n", Escape(item.ImageURL))
			} else {
				sb.WriteString("<div class=\"card\" style=\"min-height:200px;direction:ltr;\"></div>\n")
			}
			sb.WriteString("</div>\n")
		}
	}

	return sb.String()
}

// renderStatsBand renders headline figures inline or as boxed cards.
func renderStatsBand(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	boxed := b.Variant == "boxed"
	fmt.Fprintf(&sb, "<div class=\"grid stats\" style=\"grid-template-columns:repeat(%d,1fr);text-align:center;\">\n", len(b.Stats))
	for _, stat := range b.Stats {
		if boxed {
			sb.WriteString("<div class=\"card\">\n")
		} else {
			sb.WriteString("<div>\n")
		}
		fmt.Fprintf(&sb, "<div class=\"stat-value\" style=\"font-size:2.5rem;font-family:var(--font-heading);color:var(--color-primary);\">%s</div>\n", Escape(stat.Value))
		fmt.Fprintf(&sb, "<div class=\"muted\">%s</div>\n</div>\n", Escape(stat.Label))
	}
	sb.WriteString("</div>\n")

	return sb.String()
}

// renderTimeline renders process steps vertically with a rule, or as a
// horizontal numbered row.
func renderTimeline(b *catalog.Block, _ *renderContext) string {
	var sb strings.Builder
	writeSectionHeading(&sb, b)

	switch b.Variant {
	case "horizontal":
		fmt.Fprintf(&sb, "<ol class=\"timeline\" style=\"display:grid;grid-template-columns:repeat(%d,1fr);gap:24px;padding:0;list-style:none;counter-reset:step;\">\n", len(b.Steps))
		for i, step := range b.Steps {
			sb.WriteString("<li>\n")
			fmt.Fprintf(&sb, "<div class=\"step-number\" style=\"font-family:var(--font-heading);color:var(--color-accent);font-size:1.5rem;\">%02d</div>\n", i+1)
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</li>\n", Escape(step.Title), Escape(step.Body))
		}
		sb.WriteString("</ol>\n")
	default: // vertical
		sb.WriteString("<ol class=\"timeline\" style=\"list-style:none;padding:0;border-left:2px solid var(--color-primary);max-width:680px;\">\n")
		for i, step := range b.Steps {
			sb.WriteString("<li style=\"padding:0 0 32px 28px;position:relative;\">\n")
			fmt.Fprintf(&sb, "<span class=\"step-number muted\">Step %d</span>\n", i+1)
			fmt.Fprintf(&sb, "<h3>%s</h3>\n<p class=\"muted\">%s</p>\n</li>\n", Escape(step.Title), Escape(step.Body))
		}
		sb.WriteString("</ol>\n")
	}

	return sb.String()
}
