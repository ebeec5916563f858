package render

import (
	"fmt"
	"hash/fnv"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// SchemaHash computes an order-sensitive content hash of a page schema.
// It is stable across re-serialization because it walks the typed structure
// rather than raw JSON bytes. Not cryptographic; it only needs to detect
// whether the schema changed between the v1 and v2 renders.
func SchemaHash(page *catalog.PageSchema) string {
	h := fnv.New64a()

	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p)) //nolint:errcheck // fnv writes cannot fail
			h.Write([]byte{0})
		}
	}

	t := page.Tokens
	write("tokens", t.Brand, t.Primary, t.Secondary, t.Accent, t.HeadingFont, t.BodyFont)

	for i := range page.Blocks {
		b := &page.Blocks[i]
		write("block", string(b.Type), b.Variant, b.Headline, b.Subheadline,
			b.Body, b.CTAText, b.CTAHref, b.ImageURL)
		for _, it := range b.Items {
			write("item", it.Title, it.Body, it.Icon, it.ImageURL)
		}
		for _, ts := range b.Testimonials {
			write("testimonial", ts.Quote, ts.Author, ts.Role)
		}
		for _, f := range b.FAQItems {
			write("faq", f.Question, f.Answer)
		}
		for _, s := range b.Stats {
			write("stat", s.Value, s.Label)
		}
		for _, s := range b.Steps {
			write("step", s.Title, s.Body)
		}
		for _, n := range b.NavItems {
			write("nav", n)
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
