// Package llm provides centralized model configuration and client
// abstractions for the generative AI calls the pipeline makes.
package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: extraction cleanup, classification.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: page schema generation, repair.
	TierStandard ModelTier = "standard"
	// TierVision is for image-grounded tasks: the visual critique.
	TierVision ModelTier = "vision"
)

// Config holds the model selection per tier.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model selection.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierVision:   "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
