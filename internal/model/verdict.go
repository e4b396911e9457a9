package model

// Status is the enumerated verdict on a claim. Values are case-sensitive
// and match what the reasoning oracle is instructed to return.
type Status string

const (
	StatusVerified     Status = "Verified"
	StatusQuestionable Status = "Questionable"
	StatusDebunked     Status = "Debunked"
)

// Valid reports whether the status is one of the recognized verdict values.
func (s Status) Valid() bool {
	switch s {
	case StatusVerified, StatusQuestionable, StatusDebunked:
		return true
	}
	return false
}

// Consensus strength labels.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// ValidStrength reports whether s is one of the recognized strength labels.
func ValidStrength(s string) bool {
	return s == StrengthStrong || s == StrengthModerate || s == StrengthWeak
}

// ConsensusVerdict is the oracle's overall judgment of the gathered evidence.
type ConsensusVerdict struct {
	OverallStatus     Status   `json:"overall_status"`
	ConfidenceScore   float64  `json:"confidence_score"`   // 0-100, inclusive
	ConsensusStrength string   `json:"consensus_strength"` // strong, moderate, weak
	Limitations       []string `json:"limitations"`
	Recommendations   []string `json:"recommendations"`
}

// VerificationResult is the final outcome of a claim verification. It is the
// only entity that crosses the cache boundary and the only one returned to
// callers.
type VerificationResult struct {
	Claim           string   `json:"claim"`
	Status          Status   `json:"status"`
	ConfidenceScore float64  `json:"confidence_score"`
	Analysis        Analysis `json:"analysis"`
	References      []string `json:"references"`
}

// Analysis nests the claim breakdown and evidence quality inside a result.
type Analysis struct {
	ClaimComponents ClaimComponents `json:"claim_components"`
	EvidenceQuality EvidenceQuality `json:"evidence_quality"`
	Recommendations []string        `json:"recommendations"`
}

// EvidenceQuality summarizes the classified evidence for a result.
type EvidenceQuality struct {
	SupportingStudies  []string `json:"supporting_studies"`
	ConflictingStudies []string `json:"conflicting_studies"`
	ConsensusStrength  string   `json:"consensus_strength"`
	Limitations        []string `json:"limitations"`
}
