package oracle

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// New creates a reasoning oracle based on configuration
func New(config Config) (Oracle, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "perplexity":
		return NewPerplexityProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (supported: openai, perplexity, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.OracleConfig to oracle.Config
func ConfigFromModel(modelConfig model.OracleConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
}
