package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/render"
	"github.com/claimlens/claimlens/internal/verify"
	"github.com/spf13/cobra"
)

var (
	journals       []string
	outJSON        string
	outMD          string
	verifyTimeout  time.Duration
	noCache        bool
	oracleProvider string
	oracleModel    string
	maxResults     int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single health claim against the scientific literature",
	Long: `Verify runs the full verification pipeline for one claim:
- Break the claim into testable components
- Search PubMed for relevant studies
- Classify the studies into supporting and conflicting evidence
- Judge the scientific consensus into a verdict with confidence score

Results are cached for 7 days; repeating a verification returns the
cached verdict without any oracle or search calls.

Example:
  claimlens verify "Intermittent fasting increases metabolism by 15%"
  claimlens verify "Vitamin D prevents colds" --journal Nature --journal "The Lancet"
  claimlens verify "Sugar causes hyperactivity" --oracle openai --json verdict.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringArrayVar(&journals, "journal", nil, "trusted journal to weight evidence toward (repeatable)")
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh verification)")
	verifyCmd.Flags().StringVar(&oracleProvider, "oracle", "", "reasoning oracle provider (perplexity, openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "reasoning oracle model name")
	verifyCmd.Flags().IntVar(&maxResults, "max-results", 0, "max PubMed articles to retrieve")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := baseConfig()
	cfg.Cache.Enabled = !noCache
	if oracleProvider != "" {
		cfg.Oracle.Provider = oracleProvider
	}
	if oracleModel != "" {
		cfg.Oracle.Model = oracleModel
	}
	if maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Journals:  %v\n", journals)
		fmt.Fprintf(os.Stderr, "Oracle:    %s\n", cfg.Oracle.Provider)
		fmt.Fprintln(os.Stderr)
	}

	result, err := verifier.Verify(ctx, claim, journals)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if outJSON != "" {
		if err := render.JSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := render.Markdown(result, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	render.Summary(os.Stdout, result)
	return nil
}

// newVerifier wires the oracle, search client, and cache into a pipeline
func newVerifier(cfg *model.Config) (*verify.Verifier, error) {
	o, err := newOracle(cfg)
	if err != nil {
		return nil, err
	}

	store, err := newCache(cfg)
	if err != nil {
		return nil, err
	}

	return verify.NewVerifier(o, newSearchClient(cfg), store, cfg), nil
}
