package pipeline

import (
	"context"
	"strings"

	"github.com/goscha01/SiteForge/internal/llm"
)

// critiquePrompt instructs the vision model to respond with a patch envelope
// the qa package can parse. The response is untrusted; parsing is strict with
// a bounded lenient fallback.
const critiquePrompt = `You are reviewing a screenshot of a generated single-page website.
Identify concrete visual problems (weak hierarchy, generic layout, crowded or sparse sections) and propose fixes as JSON:
{"patches":[{"action":"...","blockIndex":0,...}],"summary":"one sentence"}

Allowed actions:
- {"action":"modify","blockIndex":N,"field":"headline|subheadline|body|ctaText|ctaHref","newValue":"..."}
- {"action":"insert","blockIndex":N,"newBlock":{"type":"...","variant":"...",...}}
- {"action":"remove","blockIndex":N}
- {"action":"swap-variant","blockIndex":N,"newVariant":"..."}

Block indices refer to the sections in top-to-bottom order, zero-based.
Propose at most 4 patches. Respond with JSON only.`

// visionCritic adapts the LLM client to the QA loop's Critic interface.
type visionCritic struct {
	client llm.Client
}

func (c *visionCritic) Critique(ctx context.Context, image []byte) (string, error) {
	raw, err := c.client.GenerateVision(ctx, critiquePrompt, image, llm.TierVision)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
