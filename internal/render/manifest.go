package render

import (
	"github.com/goscha01/SiteForge/internal/catalog"
)

// Render version tags. v1 is the pre-QA render; v2 is produced after the QA
// loop patched the schema.
const (
	VersionInitial = "v1"
	VersionPatched = "v2"
)

// BlockRecord is one entry of a manifest's ordered block list: what was
// actually rendered at which position.
type BlockRecord struct {
	Index   int               `json:"index"`
	Type    catalog.BlockType `json:"type"`
	Variant string            `json:"variant"`
	Unknown bool              `json:"unknown,omitempty"`
}

// Manifest is the audit record of a single render call: the blocks rendered
// in order, the token snapshot and signature applied, the density tier, a
// content hash of the input schema, and the render version tag. GeneratedAt
// is the one field excluded from the determinism guarantee.
type Manifest struct {
	Blocks      []BlockRecord          `json:"blocks"`
	Tokens      catalog.ResolvedTokens `json:"tokens"`
	Signature   catalog.Signature      `json:"signature"`
	Density     catalog.Density        `json:"density"`
	SchemaHash  string                 `json:"schemaHash"`
	Version     string                 `json:"version"`
	GeneratedAt string                 `json:"generatedAt"`
}
