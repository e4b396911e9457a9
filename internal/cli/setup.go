package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/worker"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// baseConfig builds the runtime config: defaults, overlaid with the config
// file and CLAIMLENS_* env vars viper has read, then global flags. Command
// flags are applied by the caller, so the full hierarchy is
// flag > env > file > default.
func baseConfig() *model.Config {
	cfg := model.DefaultConfig()

	// The config struct is tagged for yaml, not mapstructure
	err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration ignored: %v\n", err)
		cfg = model.DefaultConfig()
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// resolveOracleKey fills the API key for the configured provider from the
// environment. API keys never live in the config file.
func resolveOracleKey(cfg *model.Config) error {
	switch cfg.Oracle.Provider {
	case "perplexity":
		cfg.Oracle.APIKey = os.Getenv("PERPLEXITY_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return fmt.Errorf("PERPLEXITY_API_KEY environment variable not set")
		}
	case "openai":
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Oracle.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Oracle.BaseURL = baseURL
		}
	}
	return nil
}

// newOracle builds the reasoning oracle from config
func newOracle(cfg *model.Config) (oracle.Oracle, error) {
	if err := resolveOracleKey(cfg); err != nil {
		return nil, err
	}
	return oracle.New(oracle.ConfigFromModel(cfg.Oracle))
}

// newSearchClient builds the rate-limited PubMed client from config
func newSearchClient(cfg *model.Config) search.Client {
	cfg.Search.APIKey = os.Getenv("NCBI_API_KEY")
	if email := os.Getenv("NCBI_EMAIL"); email != "" {
		cfg.Search.Email = email
	}

	rps := cfg.RateLimiting.RequestsPerSecond
	burst := cfg.RateLimiting.BurstSize
	if cfg.Search.APIKey != "" && rps < 10 {
		// NCBI raises the limit to 10 req/s with an API key
		rps, burst = 10, 10
	}
	limiter := worker.NewLimiter(rps, burst)

	return search.NewPubMedClient(search.Config{
		BaseURL: cfg.Search.BaseURL,
		APIKey:  cfg.Search.APIKey,
		Email:   cfg.Search.Email,
		Timeout: cfg.Search.Timeout,
	}, limiter)
}

// newCache builds the layered result cache, or returns nil when disabled
func newCache(cfg *model.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		dir = filepath.Join(home, ".claimlens", "cache")
	}

	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.ResultTTL), nil
}
