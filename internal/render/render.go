package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// Options controls a render call. Zero values mean: no signature, the density
// carried by the tokens, version v1, and the real clock.
type Options struct {
	Signature catalog.Signature
	Density   catalog.Density
	Version   string
	Now       func() time.Time
}

// renderFunc produces the inner HTML of one block. Implementations must
// escape all user text and must not fail: a structurally valid block always
// renders.
type renderFunc func(b *catalog.Block, rc *renderContext) string

// renderContext carries per-render state every block renderer can see.
type renderContext struct {
	tokens    catalog.ResolvedTokens
	signature catalog.Signature
	year      int
}

// registry maps block kinds to their renderers. Kinds missing from the
// registry fall back to a visible error placeholder so the pipeline keeps
// running if a new kind appears before its renderer lands.
var registry = map[catalog.BlockType]renderFunc{
	catalog.BlockHero:            renderHero,
	catalog.BlockValueProps:      renderValueProps,
	catalog.BlockServicesGrid:    renderServicesGrid,
	catalog.BlockTestimonials:    renderTestimonials,
	catalog.BlockFAQ:             renderFAQ,
	catalog.BlockCTABanner:       renderCTABanner,
	catalog.BlockFooterSimple:    renderFooter,
	catalog.BlockBentoGrid:       renderBentoGrid,
	catalog.BlockZigzagFeature:   renderZigzag,
	catalog.BlockStatsBand:       renderStatsBand,
	catalog.BlockProcessTimeline: renderTimeline,
}

// densityPadding is the fixed vertical section padding per density tier.
var densityPadding = map[catalog.Density]string{
	catalog.DensityTight:  "40px",
	catalog.DensityNormal: "72px",
	catalog.DensityLoose:  "104px",
}

// Page renders a validated schema with resolved tokens into a full HTML
// document and its manifest. Identical inputs produce byte-identical output
// apart from the timestamp-derived copyright year and the manifest's
// GeneratedAt field.
func Page(page *catalog.PageSchema, tokens catalog.ResolvedTokens, opts Options) (string, Manifest) {
	if opts.Version == "" {
		opts.Version = VersionInitial
	}
	if opts.Density == "" {
		opts.Density = tokens.Density
	}
	if opts.Density == "" {
		opts.Density = catalog.DensityNormal
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	rc := &renderContext{
		tokens:    tokens,
		signature: opts.Signature,
		year:      now().Year(),
	}

	hash := SchemaHash(page)
	manifest := Manifest{
		Blocks:      make([]BlockRecord, 0, len(page.Blocks)),
		Tokens:      tokens,
		Signature:   opts.Signature,
		Density:     opts.Density,
		SchemaHash:  hash,
		Version:     opts.Version,
		GeneratedAt: now().UTC().Format(time.RFC3339),
	}

	separator := signatureSeparator(opts.Signature)

	var body strings.Builder
	for i := range page.Blocks {
		b := &page.Blocks[i]
		variant := b.Variant
		if variant == "" {
			variant = catalog.DefaultVariant(b.Type)
		}

		fn, known := registry[b.Type]
		record := BlockRecord{Index: i, Type: b.Type, Variant: variant}
		var inner string
		if known {
			inner = fn(b, rc)
		} else {
			record.Unknown = true
			record.Variant = b.Variant
			inner = renderUnknown(b)
		}
		manifest.Blocks = append(manifest.Blocks, record)

		if i > 0 && separator != "" {
			body.WriteString(separator)
			body.WriteString("\n")
		}

		tag := "section"
		if b.Type == catalog.BlockFooterSimple {
			tag = "footer"
		}
		fmt.Fprintf(&body, "<%s class=\"block block-%s\" data-block-type=%q data-variant=%q>\n%s</%s>\n",
			tag, b.Type, b.Type, record.Variant, inner, tag)
	}

	manifestJSON, _ := json.Marshal(manifest) //nolint:errcheck // manifest contains only marshalable fields

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	doc.WriteString("<meta charset=\"utf-8\">\n")
	doc.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", Escape(tokens.Brand))
	doc.WriteString("<style>\n")
	doc.WriteString(baseCSS(tokens, opts.Density))
	doc.WriteString(signatureCSS(opts.Signature))
	doc.WriteString("</style>\n</head>\n")
	fmt.Fprintf(&doc, "<body data-signature=%q data-density=%q>\n", opts.Signature, opts.Density)
	fmt.Fprintf(&doc, "<!-- schema-hash: %s version: %s -->\n", hash, opts.Version)
	doc.WriteString(body.String())
	fmt.Fprintf(&doc, "<script type=\"application/json\" id=\"render-manifest\">%s</script>\n", manifestJSON)
	doc.WriteString("</body>\n</html>\n")

	return doc.String(), manifest
}

// renderUnknown substitutes a visibly flagged placeholder for a block whose
// kind has no registered renderer. Non-fatal: the rest of the page renders.
func renderUnknown(b *catalog.Block) string {
	return fmt.Sprintf(
		"<div class=\"block-error\" role=\"alert\">\n<strong>Unrenderable section</strong>\n<p>No renderer registered for block type %q.</p>\n</div>\n",
		Escape(string(b.Type)))
}

// baseCSS emits the CSS custom properties derived from the resolved tokens
// and the density-scaled layout rules shared by every block.
func baseCSS(t catalog.ResolvedTokens, density catalog.Density) string {
	pad, ok := densityPadding[density]
	if !ok {
		pad = densityPadding[catalog.DensityNormal]
	}

	var sb strings.Builder
	sb.WriteString(":root{\n")
	fmt.Fprintf(&sb, "--color-primary:%s;\n", t.Palette.Primary)
	fmt.Fprintf(&sb, "--color-secondary:%s;\n", t.Palette.Secondary)
	fmt.Fprintf(&sb, "--color-accent:%s;\n", t.Palette.Accent)
	fmt.Fprintf(&sb, "--color-bg:%s;\n", t.Palette.Background)
	fmt.Fprintf(&sb, "--color-surface:%s;\n", t.Palette.Surface)
	fmt.Fprintf(&sb, "--color-text:%s;\n", t.Palette.TextPrimary)
	fmt.Fprintf(&sb, "--color-text-muted:%s;\n", t.Palette.TextSecondary)
	fmt.Fprintf(&sb, "--font-heading:'%s',sans-serif;\n", t.Typography.HeadingFamily)
	fmt.Fprintf(&sb, "--font-body:'%s',sans-serif;\n", t.Typography.BodyFamily)
	fmt.Fprintf(&sb, "--weight-heading:%d;\n", t.Typography.HeadingWeight)
	fmt.Fprintf(&sb, "--weight-body:%d;\n", t.Typography.BodyWeight)
	fmt.Fprintf(&sb, "--radius:%s;\n", t.Radius)
	fmt.Fprintf(&sb, "--section-pad:%s;\n", pad)
	sb.WriteString("}\n")
	sb.WriteString("body{margin:0;background:var(--color-bg);color:var(--color-text);" +
		"font-family:var(--font-body);font-weight:var(--weight-body);line-height:1.6;}\n")
	sb.WriteString("h1,h2,h3{font-family:var(--font-heading);font-weight:var(--weight-heading);line-height:1.15;}\n")
	sb.WriteString(".block{padding:var(--section-pad) 24px;max-width:1120px;margin:0 auto;}\n")
	sb.WriteString(".btn{display:inline-block;padding:12px 28px;border-radius:var(--radius);" +
		"background:var(--color-accent);color:var(--color-bg);text-decoration:none;font-weight:600;}\n")
	sb.WriteString(".card{background:var(--color-surface);border-radius:var(--radius);padding:24px;}\n")
	sb.WriteString(".muted{color:var(--color-text-muted);}\n")
	sb.WriteString(".grid{display:grid;gap:24px;}\n")
	return sb.String()
}

// signatureCSS returns the global style overlay for a named signature.
// Overlays are fixed bundles; the token palette still supplies the custom
// properties they build on, except where the signature deliberately forces
// overrides (dark-neon).
func signatureCSS(sig catalog.Signature) string {
	switch sig {
	case catalog.SignatureDarkNeon:
		return ":root{--color-bg:#07070c;--color-surface:#11111c;--color-text:#f2f2f7;--color-text-muted:#9a9ab0;}\n" +
			".btn{box-shadow:0 0 18px var(--color-accent);}\n" +
			"h1,h2{text-shadow:0 0 12px var(--color-primary);}\n" +
			".card{border:1px solid var(--color-primary);}\n"
	case catalog.SignatureEditorial:
		return "h1,h2{text-decoration:underline;text-decoration-thickness:2px;text-underline-offset:8px;}\n" +
			".block{border-top:1px solid var(--color-text-muted);}\n" +
			".block:first-child{border-top:none;}\n"
	case catalog.SignatureBentoSoft:
		return ".block{background:var(--color-surface);border-radius:24px;margin-top:16px;margin-bottom:16px;}\n" +
			".card{box-shadow:0 2px 12px rgba(0,0,0,0.06);}\n"
	case catalog.SignatureBrutalist:
		return "h1,h2{text-transform:uppercase;letter-spacing:-0.02em;}\n" +
			".card{border:3px solid var(--color-text);border-radius:0;box-shadow:6px 6px 0 var(--color-text);}\n" +
			".btn{border-radius:0;border:3px solid var(--color-text);}\n"
	default:
		return ""
	}
}

// signatureSeparator returns the between-block separator markup for a
// signature, or "" when the signature renders blocks flush.
func signatureSeparator(sig catalog.Signature) string {
	switch sig {
	case catalog.SignatureEditorial:
		return `<hr class="sep sep-rule" aria-hidden="true">`
	case catalog.SignatureDarkNeon:
		return `<div class="sep sep-glow" aria-hidden="true"></div>`
	case catalog.SignatureBrutalist:
		return `<div class="sep sep-bar" aria-hidden="true"></div>`
	default:
		return ""
	}
}
