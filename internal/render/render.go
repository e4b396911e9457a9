package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// JSON writes the verification result as indented JSON
func JSON(result *model.VerificationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	return nil
}

// Markdown writes a human-readable report of the verification result
func Markdown(result *model.VerificationResult, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claim Verification Report\n\n")
	fmt.Fprintf(&b, "**Claim:** %s\n\n", result.Claim)
	fmt.Fprintf(&b, "**Status:** %s\n\n", result.Status)
	fmt.Fprintf(&b, "**Confidence:** %.0f/100\n\n", result.ConfidenceScore)

	comps := result.Analysis.ClaimComponents
	fmt.Fprintf(&b, "## Claim Breakdown\n\n")
	fmt.Fprintf(&b, "- Main claim: %s\n", comps.MainClaim)
	for _, sub := range comps.SubClaims {
		fmt.Fprintf(&b, "- Sub-claim: %s\n", sub)
	}
	for _, outcome := range comps.MeasurableOutcomes {
		fmt.Fprintf(&b, "- Measurable outcome: %s\n", outcome)
	}
	if comps.Timeframe != "" {
		fmt.Fprintf(&b, "- Timeframe: %s\n", comps.Timeframe)
	}
	b.WriteString("\n")

	eq := result.Analysis.EvidenceQuality
	fmt.Fprintf(&b, "## Evidence\n\n")
	fmt.Fprintf(&b, "- Supporting studies: %d\n", len(eq.SupportingStudies))
	fmt.Fprintf(&b, "- Conflicting studies: %d\n", len(eq.ConflictingStudies))
	fmt.Fprintf(&b, "- Consensus strength: %s\n\n", eq.ConsensusStrength)

	if len(eq.Limitations) > 0 {
		fmt.Fprintf(&b, "### Limitations\n\n")
		for _, l := range eq.Limitations {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}

	if len(result.Analysis.Recommendations) > 0 {
		fmt.Fprintf(&b, "### Recommendations\n\n")
		for _, r := range result.Analysis.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	if len(result.References) > 0 {
		fmt.Fprintf(&b, "## References\n\n")
		for i, ref := range result.References {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ref)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}

	return nil
}

// Summary prints a one-screen summary of the result
func Summary(w io.Writer, result *model.VerificationResult) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Claim:      %s\n", result.Claim)
	fmt.Fprintf(w, "Status:     %s\n", result.Status)
	fmt.Fprintf(w, "Confidence: %.0f/100\n", result.ConfidenceScore)
	fmt.Fprintf(w, "Consensus:  %s\n", result.Analysis.EvidenceQuality.ConsensusStrength)
	fmt.Fprintf(w, "Evidence:   %d supporting, %d conflicting, %d references\n",
		len(result.Analysis.EvidenceQuality.SupportingStudies),
		len(result.Analysis.EvidenceQuality.ConflictingStudies),
		len(result.References))
}
