package oracle

import "context"

// Oracle defines the interface to the reasoning service. The pipeline treats
// it as a black box: a prompt goes in, a reply comes back, and each stage is
// responsible for parsing the reply into its own shape.
type Oracle interface {
	// Name returns the provider name
	Name() string

	// Query sends a prompt and returns the raw reply text
	Query(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// systemPrompt forces every provider to demand pure-JSON replies. Free text
// outside the JSON value is a protocol violation the stages reject.
const systemPrompt = "You are a JSON-focused API that always responds with valid JSON. " +
	"Never include explanatory text outside the JSON structure. " +
	"All analysis and explanations should be contained within the JSON fields."

// Config holds oracle provider configuration
type Config struct {
	// Provider name: "openai", "perplexity", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, Perplexity)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens limits the reply length
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "perplexity",
		Timeout:   60,
		MaxTokens: 2000,
	}
}
