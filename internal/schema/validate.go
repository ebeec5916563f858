package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/goscha01/SiteForge/internal/catalog"
)

//go:embed page_schema.json
var pageSchemaJSON string

// Repairer is the external AI collaborator handed a raw document and the
// validation errors it produced. It returns a corrected document to be
// re-parsed with the same strict rules.
type Repairer interface {
	Repair(ctx context.Context, raw []byte, validationErrors []string) ([]byte, error)
}

// Parse performs the strict structural parse of a raw page schema document:
// JSON Schema validation first, then a typed decode with per-kind shape and
// array-bound enforcement. Returns *Error on any violation.
func Parse(raw []byte) (*catalog.PageSchema, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(pageSchemaJSON),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, &Error{Errors: []string{fmt.Sprintf("document is not valid JSON: %v", err)}}
	}

	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			errs = append(errs, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, &Error{Errors: errs}
	}

	var page catalog.PageSchema
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, &Error{Errors: []string{fmt.Sprintf("decode failed: %v", err)}}
	}

	if errs := checkBlocks(&page); len(errs) > 0 {
		return nil, &Error{Errors: errs}
	}
	return &page, nil
}

// checkBlocks enforces the closed kind set, variant membership, required
// headline fields, and per-kind item bounds.
func checkBlocks(page *catalog.PageSchema) []string {
	var errs []string
	for i := range page.Blocks {
		b := &page.Blocks[i]
		spec, known := catalog.Spec(b.Type)
		if !known {
			errs = append(errs, fmt.Sprintf("blocks.%d: unknown block type %q", i, b.Type))
			continue
		}
		if !catalog.ValidVariant(b.Type, b.Variant) {
			errs = append(errs, fmt.Sprintf("blocks.%d: %q is not a variant of %s", i, b.Variant, b.Type))
		}
		if spec.RequiresHead && b.Headline == "" {
			errs = append(errs, fmt.Sprintf("blocks.%d: %s requires a headline", i, b.Type))
		}
		if spec.MaxItems > 0 {
			n := catalog.ItemCount(b)
			if n < spec.MinItems {
				errs = append(errs, fmt.Sprintf("blocks.%d: %s requires at least %d items, got %d", i, b.Type, spec.MinItems, n))
			}
			if n > spec.MaxItems {
				errs = append(errs, fmt.Sprintf("blocks.%d: %s allows at most %d items, got %d", i, b.Type, spec.MaxItems, n))
			}
		}
	}
	return errs
}

// ValidateAndAutofix runs the strict parse and, on failure, performs exactly
// one AI-assisted repair attempt before giving up. On success it returns the
// parsed schema along with guardrail warnings. The fixer may be nil, in which
// case a parse failure is final.
func ValidateAndAutofix(ctx context.Context, raw []byte, fixer Repairer) (*catalog.PageSchema, []string, error) {
	page, err := Parse(raw)
	if err == nil {
		return page, Guardrails(page), nil
	}

	firstErr, ok := err.(*Error)
	if !ok {
		return nil, nil, err
	}
	if fixer == nil {
		return nil, nil, &RepairFailedError{Errors: firstErr.Errors}
	}

	repaired, repairErr := fixer.Repair(ctx, raw, firstErr.Errors)
	if repairErr != nil {
		return nil, nil, &RepairFailedError{Errors: firstErr.Errors, Cause: repairErr}
	}

	page, err = Parse(repaired)
	if err != nil {
		accumulated := firstErr.Errors
		if secondErr, ok := err.(*Error); ok {
			accumulated = append(accumulated, secondErr.Errors...)
		}
		return nil, nil, &RepairFailedError{Errors: accumulated}
	}
	return page, Guardrails(page), nil
}
