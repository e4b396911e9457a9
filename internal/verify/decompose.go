package verify

import (
	"context"
	"fmt"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
)

// Decomposer breaks a claim into testable components via the reasoning oracle
type Decomposer struct {
	oracle oracle.Oracle
}

// NewDecomposer creates a new claim decomposer
func NewDecomposer(o oracle.Oracle) *Decomposer {
	return &Decomposer{oracle: o}
}

// Decompose turns raw claim text into structured components. A transport
// failure returns ErrUpstream; a malformed or incomplete reply returns
// ErrDecomposition.
func (d *Decomposer) Decompose(ctx context.Context, claim string) (*model.ClaimComponents, error) {
	prompt := buildDecomposePrompt(claim)

	reply, err := d.oracle.Query(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: query reasoning oracle: %v", ErrUpstream, err)
	}

	// timeframe stays optional: many claims carry no time period at all
	var components model.ClaimComponents
	if err := decodeStrictFields(reply, &components,
		"main_claim", "sub_claims", "measurable_outcomes", "keywords"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecomposition, err)
	}

	if components.MainClaim == "" {
		return nil, fmt.Errorf("%w: reply missing main_claim", ErrDecomposition)
	}

	return &components, nil
}

func buildDecomposePrompt(claim string) string {
	return fmt.Sprintf(
		"Break down this health claim into testable components: %s\n"+
			"Return a JSON object with:\n"+
			"- main_claim: the primary assertion\n"+
			"- sub_claims: array of component claims\n"+
			"- measurable_outcomes: specific measurable effects\n"+
			"- timeframe: any mentioned time periods\n"+
			"- keywords: array of key terms for scientific search\n"+
			"Return only the JSON object, no other text.\n",
		claim)
}
