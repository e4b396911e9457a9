package model

// Evidence is the classified study set backing a verdict. Derived from
// articles plus oracle classification; never mutated after creation.
type Evidence struct {
	SupportingStudies  []string       `json:"supporting_studies"`  // Studies supporting the claim
	ConflictingStudies []string       `json:"conflicting_studies"` // Studies with different findings
	MethodologyScores  map[string]int `json:"methodology_scores"`  // Study ID -> quality score (0-100)
	SampleSizes        map[string]int `json:"sample_sizes"`        // Study ID -> participant count
	References         []string       `json:"references"`          // Formatted citations, in order
}
