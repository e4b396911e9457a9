package model

import "time"

// Config holds the complete claimlens configuration
type Config struct {
	Cache        CacheConfig        `yaml:"cache"`
	Oracle       OracleConfig       `yaml:"oracle"`
	Search       SearchConfig       `yaml:"search"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// CacheConfig controls the verification result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory ("" = ~/.claimlens/cache)
	ResultTTL time.Duration `yaml:"result_ttl"` // How long verification results stay valid
	MemoryTTL time.Duration `yaml:"memory_ttl"` // Hot-entry lifetime in the memory layer
}

// OracleConfig configures the reasoning oracle provider
type OracleConfig struct {
	Provider  string `yaml:"provider"` // openai, perplexity, anthropic, ollama
	Model     string `yaml:"model"`    // Model name (provider-specific)
	APIKey    string `yaml:"-"`        // Never persisted; from environment
	BaseURL   string `yaml:"base_url"` // Custom endpoint (e.g. Ollama, Perplexity)
	Timeout   int    `yaml:"timeout"`  // Seconds per oracle call
	MaxTokens int    `yaml:"max_tokens"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// SearchConfig configures the literature search client
type SearchConfig struct {
	BaseURL    string `yaml:"base_url"` // E-utilities endpoint
	APIKey     string `yaml:"-"`        // NCBI API key; from environment
	Email      string `yaml:"email"`    // Contact email NCBI asks tools to send
	MaxResults int    `yaml:"max_results"`
	Timeout    int    `yaml:"timeout"` // Seconds per search call
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig controls per-host request pacing for the search backend
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:   true,
			ResultTTL: 7 * 24 * time.Hour,
			MemoryTTL: time.Hour,
		},
		Oracle: OracleConfig{
			Provider:  "perplexity",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Search: SearchConfig{
			BaseURL:    "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			MaxResults: 10,
			Timeout:    30,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			// NCBI allows 3 req/s without an API key
			RequestsPerSecond: 3,
			BurstSize:         3,
		},
	}
}
