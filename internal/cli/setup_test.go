package cli

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestBaseConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := baseConfig()

	if cfg.Oracle.Provider != "perplexity" {
		t.Errorf("Unexpected default provider: %s", cfg.Oracle.Provider)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("Unexpected default max results: %d", cfg.Search.MaxResults)
	}
	if cfg.Cache.ResultTTL != 7*24*time.Hour {
		t.Errorf("Unexpected default result TTL: %s", cfg.Cache.ResultTTL)
	}
}

func TestBaseConfig_ViperOverlay(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	// Simulates values read from the config file or CLAIMLENS_* env vars
	viper.Set("oracle.provider", "ollama")
	viper.Set("search.max_results", 5)
	viper.Set("cache.result_ttl", "48h")
	viper.Set("concurrency.workers", 8)

	cfg := baseConfig()

	if cfg.Oracle.Provider != "ollama" {
		t.Errorf("Provider not overlaid: %s", cfg.Oracle.Provider)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("Max results not overlaid: %d", cfg.Search.MaxResults)
	}
	if cfg.Cache.ResultTTL != 48*time.Hour {
		t.Errorf("Result TTL not overlaid: %s", cfg.Cache.ResultTTL)
	}
	if cfg.Concurrency.Workers != 8 {
		t.Errorf("Workers not overlaid: %d", cfg.Concurrency.Workers)
	}

	// Untouched sections keep their defaults
	if cfg.Search.BaseURL != "https://eutils.ncbi.nlm.nih.gov/entrez/eutils" {
		t.Errorf("Unexpected search base URL: %s", cfg.Search.BaseURL)
	}
}
