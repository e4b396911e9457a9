package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claimlens/claimlens/internal/render"
	"github.com/claimlens/claimlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchJournals   []string
	batchOutDir     string
	batchWorkers    int
	batchTimeout    time.Duration
	batchNoCache    bool
	batchOracle     string
	batchModel      string
	batchMaxResults int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <claims-file>",
	Short: "Verify multiple claims concurrently",
	Long: `Batch reads claims from a file (one per line, # starts a comment)
and verifies them concurrently. All claims share the same journal set.

Each verdict is written as a JSON report under the output directory,
named after a hash of the claim text.

Example:
  claimlens batch claims.txt --out reports/
  claimlens batch claims.txt --workers 8 --journal "BMJ"`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringArrayVar(&batchJournals, "journal", nil, "trusted journal to weight evidence toward (repeatable)")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "reports", "output directory for JSON reports")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent verifications")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable cache (force fresh verification)")
	batchCmd.Flags().StringVar(&batchOracle, "oracle", "", "reasoning oracle provider (perplexity, openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "oracle-model", "", "reasoning oracle model name")
	batchCmd.Flags().IntVar(&batchMaxResults, "max-results", 0, "max PubMed articles to retrieve per claim")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := baseConfig()
	cfg.Cache.Enabled = !batchNoCache
	if batchOracle != "" {
		cfg.Oracle.Provider = batchOracle
	}
	if batchModel != "" {
		cfg.Oracle.Model = batchModel
	}
	if batchMaxResults > 0 {
		cfg.Search.MaxResults = batchMaxResults
	}
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(verifier, batchJournals, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, r.Error)
			continue
		}

		path := filepath.Join(batchOutDir, reportName(r.Claim))
		if err := render.JSON(r.Result, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, err)
			continue
		}

		fmt.Fprintf(os.Stdout, "✓ [%s] %s\n", r.Result.Status, r.Claim)
		if verbose {
			fmt.Fprintf(os.Stderr, "  report: %s\n", path)
		}
	}

	fmt.Fprintf(os.Stdout, "\nVerified %d/%d claims (reports in %s)\n",
		len(results)-failed, len(results), batchOutDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d claims failed", failed, len(results))
	}
	return nil
}

// reportName derives a stable filename from the claim text
func reportName(claim string) string {
	sum := sha256.Sum256([]byte(claim))
	return hex.EncodeToString(sum[:8]) + ".json"
}
