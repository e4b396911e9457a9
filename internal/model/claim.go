package model

// Claim represents a factual assertion extracted from raw content
type Claim struct {
	Text    string `json:"text"`              // The claim text itself
	Context string `json:"context,omitempty"` // Surrounding context the claim appeared in
}

// ClaimComponents is the structured breakdown of a claim into testable parts.
// Produced once per verification attempt and never mutated afterward.
type ClaimComponents struct {
	MainClaim          string   `json:"main_claim"`          // The primary assertion
	SubClaims          []string `json:"sub_claims"`          // Component claims, in order
	MeasurableOutcomes []string `json:"measurable_outcomes"` // Specific measurable effects
	Timeframe          string   `json:"timeframe,omitempty"` // Any mentioned time period
	Keywords           []string `json:"keywords"`            // Key terms for literature search
}
