// Package qa implements the visual critique-and-patch cycle: screenshot the
// rendered page, ask a vision model for structured edits, apply whichever
// edits survive validation, and re-render. The loop is built to degrade, not
// abort: malformed critiques coerce leniently, inapplicable patches are
// skipped one by one, and a zero-progress iteration falls back to a
// deterministic diversification.
package qa

import (
	"encoding/json"
	"fmt"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// Action is the bounded vocabulary of structural edits a critique may propose.
type Action string

// The four edit kinds. Anything else is dropped during parsing, even on the
// lenient path.
const (
	ActionModify      Action = "modify"
	ActionInsert      Action = "insert"
	ActionRemove      Action = "remove"
	ActionSwapVariant Action = "swap-variant"
)

// Patch is one AI-proposed edit, addressed by block index against the
// pre-batch schema snapshot. Ephemeral: constructed per QA iteration and
// retained only in the audit log.
type Patch struct {
	Action        Action         `json:"action"`
	BlockIndex    int            `json:"blockIndex"`
	Field         string         `json:"field,omitempty"`
	OldValue      string         `json:"oldValue,omitempty"`
	NewValue      string         `json:"newValue,omitempty"`
	NewBlock      *catalog.Block `json:"newBlock,omitempty"`
	NewVariant    string         `json:"newVariant,omitempty"`
	Justification string         `json:"justification,omitempty"`
}

// critiqueEnvelope matches the documented critique response shape.
type critiqueEnvelope struct {
	Patches []Patch `json:"patches"`
	Summary string  `json:"summary,omitempty"`
}

// ParsePatches parses a critique response. It tries the strict envelope
// first; on failure it falls back to a lenient reconstruction that accepts
// any array of objects carrying a recognizable action/blockIndex pair,
// defaulting the rest. The model's JSON is not contractually guaranteed, so
// degrading here beats aborting the pipeline. Returns an error only when the
// text is not usable JSON at all.
func ParsePatches(raw string) ([]Patch, string, error) {
	var envelope critiqueEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.Patches != nil {
		return filterValid(envelope.Patches), envelope.Summary, nil
	}

	// Some models return a bare array instead of the envelope.
	var bare []Patch
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return filterValid(bare), "", nil
	}

	return parseLenient(raw)
}

// filterValid keeps only patches whose action is in the known vocabulary.
func filterValid(patches []Patch) []Patch {
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		if knownAction(p.Action) {
			out = append(out, p)
		}
	}
	return out
}

func knownAction(a Action) bool {
	switch a {
	case ActionModify, ActionInsert, ActionRemove, ActionSwapVariant:
		return true
	}
	return false
}

// parseLenient reconstructs patches from loosely shaped JSON. Objects are
// accepted if they carry an `action` that is one of the known values and a
// numeric `blockIndex`; every other field defaults. Bounding the coercion to
// the known action enum keeps adversarial strings from smuggling in edits.
func parseLenient(raw string) ([]Patch, string, error) {
	var generic any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, "", fmt.Errorf("critique response is not valid JSON: %w", err)
	}

	var objects []map[string]any
	summary := ""
	switch v := generic.(type) {
	case []any:
		objects = collectObjects(v)
	case map[string]any:
		if s, ok := v["summary"].(string); ok {
			summary = s
		}
		if arr, ok := v["patches"].([]any); ok {
			objects = collectObjects(arr)
		} else {
			// A single patch-shaped object at the top level.
			objects = []map[string]any{v}
		}
	default:
		return nil, "", fmt.Errorf("critique response has no patch-shaped content")
	}

	patches := make([]Patch, 0, len(objects))
	for _, obj := range objects {
		p, ok := coercePatch(obj)
		if !ok {
			continue
		}
		patches = append(patches, p)
	}
	return patches, summary, nil
}

func collectObjects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// coercePatch builds a Patch from a loose object, requiring only a known
// action and a usable block index.
func coercePatch(obj map[string]any) (Patch, bool) {
	actionStr, _ := obj["action"].(string)
	action := Action(actionStr)
	if !knownAction(action) {
		return Patch{}, false
	}

	idx, ok := asInt(obj["blockIndex"])
	if !ok {
		idx, ok = asInt(obj["index"])
	}
	if !ok {
		return Patch{}, false
	}

	p := Patch{Action: action, BlockIndex: idx}
	p.Field, _ = obj["field"].(string)
	p.OldValue, _ = obj["oldValue"].(string)
	p.NewValue, _ = obj["newValue"].(string)
	p.NewVariant, _ = obj["newVariant"].(string)
	p.Justification, _ = obj["justification"].(string)

	if nb, ok := obj["newBlock"].(map[string]any); ok {
		if encoded, err := json.Marshal(nb); err == nil {
			var block catalog.Block
			if err := json.Unmarshal(encoded, &block); err == nil {
				p.NewBlock = &block
			}
		}
	}
	return p, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}
