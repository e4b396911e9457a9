package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/extract"
	"github.com/spf13/cobra"
)

var (
	extractDedupe  bool
	extractJSONOut string
	extractTimeout time.Duration
	extractOracle  string
	extractModel   string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <content-file>",
	Short: "Extract health claims from a piece of content",
	Long: `Extract reads raw content (an article, a transcript, a social media
post) from a file and asks the reasoning oracle to pull out the
health-related claims it contains. Use "-" to read from stdin.

The extracted claims can then be fed to "claimlens batch" for
verification.

Example:
  claimlens extract article.txt
  claimlens extract article.txt --dedupe --json claims.json
  cat article.txt | claimlens extract -`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractDedupe, "dedupe", true, "collapse near-identical claims")
	extractCmd.Flags().StringVar(&extractJSONOut, "json", "", "output JSON path (default: stdout)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "extraction timeout")
	extractCmd.Flags().StringVar(&extractOracle, "oracle", "", "reasoning oracle provider (perplexity, openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&extractModel, "oracle-model", "", "reasoning oracle model name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	content, err := readContent(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := baseConfig()
	if extractOracle != "" {
		cfg.Oracle.Provider = extractOracle
	}
	if extractModel != "" {
		cfg.Oracle.Model = extractModel
	}

	o, err := newOracle(cfg)
	if err != nil {
		return err
	}

	claims, err := extract.NewExtractor(o).Extract(ctx, content, extractDedupe)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal claims: %w", err)
	}
	data = append(data, '\n')

	if extractJSONOut != "" {
		if err := os.WriteFile(extractJSONOut, data, 0644); err != nil {
			return fmt.Errorf("write claims: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Extracted %d claims to %s\n", len(claims), extractJSONOut)
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}

// readContent reads the content file, or stdin when path is "-"
func readContent(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read content file: %w", err)
	}
	return string(data), nil
}
