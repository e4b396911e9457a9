package verify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
)

// Synthesizer produces an overall verdict from gathered evidence
type Synthesizer struct {
	oracle oracle.Oracle
}

// NewSynthesizer creates a new consensus synthesizer
func NewSynthesizer(o oracle.Oracle) *Synthesizer {
	return &Synthesizer{oracle: o}
}

// Synthesize asks the oracle for an overall verdict. An unparseable reply,
// an unrecognized status, or an out-of-range confidence score fails with
// ErrConsensus.
func (s *Synthesizer) Synthesize(ctx context.Context, evidence *model.Evidence) (*model.ConsensusVerdict, error) {
	prompt, err := buildConsensusPrompt(evidence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsensus, err)
	}

	reply, err := s.oracle.Query(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: query reasoning oracle: %v", ErrUpstream, err)
	}

	var verdict model.ConsensusVerdict
	if err := decodeStrictFields(reply, &verdict,
		"overall_status", "confidence_score", "consensus_strength",
		"limitations", "recommendations"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConsensus, err)
	}

	if !verdict.OverallStatus.Valid() {
		return nil, fmt.Errorf("%w: unrecognized overall_status %q", ErrConsensus, verdict.OverallStatus)
	}
	if verdict.ConfidenceScore < 0 || verdict.ConfidenceScore > 100 {
		return nil, fmt.Errorf("%w: confidence score %v out of range", ErrConsensus, verdict.ConfidenceScore)
	}
	if !model.ValidStrength(verdict.ConsensusStrength) {
		return nil, fmt.Errorf("%w: unrecognized consensus_strength %q", ErrConsensus, verdict.ConsensusStrength)
	}

	return &verdict, nil
}

func buildConsensusPrompt(evidence *model.Evidence) (string, error) {
	data, err := json.Marshal(evidence)
	if err != nil {
		return "", fmt.Errorf("marshal evidence: %w", err)
	}

	return fmt.Sprintf(
		"Analyze the scientific consensus based on this evidence:\n%s\n"+
			"Return a JSON object with:\n"+
			"- overall_status: [Verified, Questionable, Debunked]\n"+
			"- confidence_score: 0-100 based on evidence quality\n"+
			"- consensus_strength: strong/moderate/weak\n"+
			"- limitations: array of study limitations\n"+
			"- recommendations: suggestions for better evidence\n"+
			"Return only the JSON object, no other text.\n",
		data), nil
}
