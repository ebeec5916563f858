package qa

import (
	"fmt"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// ApplyResult is the outcome of applying a patch batch.
type ApplyResult struct {
	Schema       *catalog.PageSchema
	AppliedCount int
	Diff         []string
}

// modifiableFields lists the string fields a modify patch may target, by
// kind. A patch referencing anything else is skipped.
var modifiableFields = map[catalog.BlockType]map[string]bool{}

func init() {
	common := []string{"headline", "subheadline", "body"}
	cta := []string{"ctaText", "ctaHref"}
	for _, t := range catalog.AllTypes() {
		fields := map[string]bool{}
		for _, f := range common {
			fields[f] = true
		}
		modifiableFields[t] = fields
	}
	for _, t := range []catalog.BlockType{catalog.BlockHero, catalog.BlockCTABanner} {
		for _, f := range cta {
			modifiableFields[t][f] = true
		}
	}
}

// ApplyPatches applies a batch of patches to a schema. The input schema is
// never mutated; patches operate on a deep copy. Every patch is attempted
// independently and skipped (not fatal) when inapplicable: out-of-range
// index, unknown field for the kind, unknown block type, or a bound
// violation. All block indices in one batch address the pre-batch schema
// snapshot; inserts and removes re-map positions internally.
func ApplyPatches(schema *catalog.PageSchema, patches []Patch) ApplyResult {
	working := deepCopySchema(schema)

	// positions[origIdx] is the current index of the block that sat at
	// origIdx in the pre-batch schema, or -1 once removed.
	positions := make([]int, len(schema.Blocks))
	for i := range positions {
		positions[i] = i
	}

	result := ApplyResult{Schema: working}

	for _, patch := range patches {
		var line string
		var ok bool

		switch patch.Action {
		case ActionModify:
			line, ok = applyModify(working, positions, patch)
		case ActionInsert:
			line, ok = applyInsert(working, positions, patch)
		case ActionRemove:
			line, ok = applyRemove(working, positions, patch)
		case ActionSwapVariant:
			line, ok = applySwapVariant(working, positions, patch)
		default:
			ok = false
		}

		if ok {
			result.AppliedCount++
			result.Diff = append(result.Diff, line)
		}
	}

	return result
}

// resolve maps a pre-batch block index to its current position, reporting
// false for out-of-range or already-removed blocks.
func resolve(positions []int, idx int) (int, bool) {
	if idx < 0 || idx >= len(positions) {
		return 0, false
	}
	cur := positions[idx]
	if cur < 0 {
		return 0, false
	}
	return cur, true
}

func applyModify(schema *catalog.PageSchema, positions []int, p Patch) (string, bool) {
	cur, ok := resolve(positions, p.BlockIndex)
	if !ok {
		return "", false
	}
	block := &schema.Blocks[cur]
	if !modifiableFields[block.Type][p.Field] {
		return "", false
	}

	old := getField(block, p.Field)
	setField(block, p.Field, p.NewValue)
	return fmt.Sprintf("modify block %d (%s): %s %q -> %q",
		p.BlockIndex, block.Type, p.Field, truncate(old, 40), truncate(p.NewValue, 40)), true
}

func applyInsert(schema *catalog.PageSchema, positions []int, p Patch) (string, bool) {
	if p.NewBlock == nil || !blockConforms(p.NewBlock) {
		return "", false
	}
	if len(schema.Blocks) >= catalog.MaxBlocks {
		return "", false
	}

	// Insert before the block at the addressed pre-batch position; an index
	// equal to the original length appends.
	var at int
	if p.BlockIndex >= 0 && p.BlockIndex < len(positions) {
		var ok bool
		at, ok = resolve(positions, p.BlockIndex)
		if !ok {
			return "", false
		}
	} else if p.BlockIndex == len(positions) {
		at = len(schema.Blocks)
	} else {
		return "", false
	}

	schema.Blocks = append(schema.Blocks, catalog.Block{})
	copy(schema.Blocks[at+1:], schema.Blocks[at:])
	schema.Blocks[at] = *p.NewBlock

	for i := range positions {
		if positions[i] >= at {
			positions[i]++
		}
	}

	return fmt.Sprintf("insert %s at %d", p.NewBlock.Type, p.BlockIndex), true
}

func applyRemove(schema *catalog.PageSchema, positions []int, p Patch) (string, bool) {
	cur, ok := resolve(positions, p.BlockIndex)
	if !ok {
		return "", false
	}
	if len(schema.Blocks) <= catalog.MinBlocks {
		return "", false
	}

	removed := schema.Blocks[cur].Type
	schema.Blocks = append(schema.Blocks[:cur], schema.Blocks[cur+1:]...)

	positions[p.BlockIndex] = -1
	for i := range positions {
		if positions[i] > cur {
			positions[i]--
		}
	}

	return fmt.Sprintf("remove block %d (%s)", p.BlockIndex, removed), true
}

func applySwapVariant(schema *catalog.PageSchema, positions []int, p Patch) (string, bool) {
	cur, ok := resolve(positions, p.BlockIndex)
	if !ok {
		return "", false
	}
	block := &schema.Blocks[cur]
	if p.NewVariant == "" || !catalog.ValidVariant(block.Type, p.NewVariant) {
		return "", false
	}

	old := block.Variant
	if old == "" {
		old = catalog.DefaultVariant(block.Type)
	}
	if old == p.NewVariant {
		return "", false
	}
	block.Variant = p.NewVariant
	return fmt.Sprintf("swap-variant block %d (%s): %s -> %s", p.BlockIndex, block.Type, old, p.NewVariant), true
}

// blockConforms applies the same shape checks to an inserted block that the
// validator applies at parse time. Critique output is untrusted; a block that
// skips these checks could reach the renderer partially shaped.
func blockConforms(b *catalog.Block) bool {
	spec, ok := catalog.Spec(b.Type)
	if !ok {
		return false
	}
	if !catalog.ValidVariant(b.Type, b.Variant) {
		return false
	}
	if spec.RequiresHead && b.Headline == "" {
		return false
	}
	if spec.MaxItems > 0 {
		n := catalog.ItemCount(b)
		if n < spec.MinItems || n > spec.MaxItems {
			return false
		}
	}
	return true
}

func getField(b *catalog.Block, field string) string {
	switch field {
	case "headline":
		return b.Headline
	case "subheadline":
		return b.Subheadline
	case "body":
		return b.Body
	case "ctaText":
		return b.CTAText
	case "ctaHref":
		return b.CTAHref
	}
	return ""
}

func setField(b *catalog.Block, field, value string) {
	switch field {
	case "headline":
		b.Headline = value
	case "subheadline":
		b.Subheadline = value
	case "body":
		b.Body = value
	case "ctaText":
		b.CTAText = value
	case "ctaHref":
		b.CTAHref = value
	}
}

// truncate shortens s to at most n runes. Slicing on runes keeps diff lines
// valid UTF-8 when the copy is not ASCII.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// deepCopySchema clones a schema so patch application never mutates the
// caller's copy.
func deepCopySchema(schema *catalog.PageSchema) *catalog.PageSchema {
	out := &catalog.PageSchema{
		Blocks: make([]catalog.Block, len(schema.Blocks)),
		Tokens: schema.Tokens,
	}
	for i, b := range schema.Blocks {
		nb := b
		nb.Items = append([]catalog.Item(nil), b.Items...)
		nb.Testimonials = append([]catalog.Testimonial(nil), b.Testimonials...)
		nb.FAQItems = append([]catalog.FAQItem(nil), b.FAQItems...)
		nb.Stats = append([]catalog.Stat(nil), b.Stats...)
		nb.Steps = append([]catalog.Step(nil), b.Steps...)
		nb.NavItems = append([]string(nil), b.NavItems...)
		out.Blocks[i] = nb
	}
	return out
}
