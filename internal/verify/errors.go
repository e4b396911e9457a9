package verify

import "errors"

// Pipeline error kinds. Stage-local parse failures abort the pipeline with
// the corresponding sentinel; transport errors surface as ErrUpstream.
// Callers classify with errors.Is.
var (
	// ErrInvalidInput means the claim text was empty after trimming
	ErrInvalidInput = errors.New("claim text is empty")

	// ErrDecomposition means the oracle reply at the decomposition stage
	// was not parseable into claim components
	ErrDecomposition = errors.New("claim decomposition failed")

	// ErrEvidenceAnalysis means the oracle reply at the evidence stage was
	// not parseable into an evidence classification
	ErrEvidenceAnalysis = errors.New("evidence analysis failed")

	// ErrConsensus means the oracle reply at the consensus stage was not
	// parseable into a verdict, or carried an unrecognized status
	ErrConsensus = errors.New("consensus analysis failed")

	// ErrUpstream means the oracle or cache transport failed, independent
	// of reply shape
	ErrUpstream = errors.New("upstream service unavailable")
)
