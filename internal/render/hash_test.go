package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goscha01/SiteForge/internal/catalog"
)

func TestSchemaHash_StableForEqualSchemas(t *testing.T) {
	a := threeBlockPage()
	b := threeBlockPage()

	assert.Equal(t, SchemaHash(a), SchemaHash(b))
}

func TestSchemaHash_OrderSensitive(t *testing.T) {
	a := threeBlockPage()
	b := threeBlockPage()
	b.Blocks[0], b.Blocks[1] = b.Blocks[1], b.Blocks[0]

	assert.NotEqual(t, SchemaHash(a), SchemaHash(b))
}

func TestSchemaHash_ContentSensitive(t *testing.T) {
	a := threeBlockPage()
	b := threeBlockPage()
	b.Blocks[0].Headline = "Different headline"

	assert.NotEqual(t, SchemaHash(a), SchemaHash(b))
}

func TestSchemaHash_FieldBoundariesAreUnambiguous(t *testing.T) {
	a := &catalog.PageSchema{Blocks: []catalog.Block{{Type: "hero", Headline: "ab", Subheadline: "c"}}}
	b := &catalog.PageSchema{Blocks: []catalog.Block{{Type: "hero", Headline: "a", Subheadline: "bc"}}}

	assert.NotEqual(t, SchemaHash(a), SchemaHash(b))
}
