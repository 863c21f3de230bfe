// Package llm provides centralized LLM configuration and client abstractions.
// The rest of the application talks to the model through the Client interface
// so providers can be swapped without touching callers.
package llm

// ModelTier represents the cost/quality level of a model.
type ModelTier string

const (
	// TierFast is for cheap, latency-sensitive tasks: short rewrites, translation.
	TierFast ModelTier = "fast"
	// TierBalanced is the default tier for extraction and structured output.
	TierBalanced ModelTier = "balanced"
	// TierQuality is for complex generation: full resume drafts, adaptation.
	TierQuality ModelTier = "quality"
)

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast:     "gemini-2.5-flash-lite",
			TierBalanced: "gemini-2.5-flash",
			TierQuality:  "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier, falling back through
// balanced and fast when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierBalanced]; ok {
		return model
	}
	if model, ok := c.Models[TierFast]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
