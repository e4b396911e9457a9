package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
	"github.com/claimlens/claimlens/internal/search"
)

// Gatherer retrieves candidate studies and asks the oracle to classify them
type Gatherer struct {
	oracle     oracle.Oracle
	search     search.Client
	maxResults int
}

// NewGatherer creates a new evidence gatherer
func NewGatherer(o oracle.Oracle, sc search.Client, maxResults int) *Gatherer {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Gatherer{
		oracle:     o,
		search:     sc,
		maxResults: maxResults,
	}
}

// Gather builds a search query from the claim components, retrieves
// candidate articles, and has the oracle classify them into evidence.
//
// Search failures degrade to an empty article list and never abort the
// stage; classification still runs so the result carries explicit empty
// supporting/conflicting lists. Only an unparseable oracle reply fails.
func (g *Gatherer) Gather(ctx context.Context, components *model.ClaimComponents, journals []string) (*model.Evidence, error) {
	query := BuildSearchQuery(components)

	var articles []model.Article
	if g.search != nil {
		found, err := g.search.Search(ctx, query, g.maxResults)
		if err != nil {
			// Degraded path: log and continue with no articles
			fmt.Fprintf(os.Stderr, "literature search failed, continuing without articles: %v\n", err)
		} else {
			articles = found
		}
	}

	prompt, err := buildEvidencePrompt(components.MainClaim, articles, journals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvidenceAnalysis, err)
	}

	reply, err := g.oracle.Query(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: query reasoning oracle: %v", ErrUpstream, err)
	}

	var evidence model.Evidence
	if err := decodeStrictFields(reply, &evidence,
		"supporting_studies", "conflicting_studies", "methodology_scores",
		"sample_sizes", "references"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvidenceAnalysis, err)
	}

	for id, score := range evidence.MethodologyScores {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("%w: methodology score %d for study %s out of range", ErrEvidenceAnalysis, score, id)
		}
	}

	// The fields are known present; normalize JSON nulls to empty lists
	if evidence.SupportingStudies == nil {
		evidence.SupportingStudies = []string{}
	}
	if evidence.ConflictingStudies == nil {
		evidence.ConflictingStudies = []string{}
	}
	if evidence.References == nil {
		evidence.References = []string{}
	}

	return &evidence, nil
}

// BuildSearchQuery conjunctively combines the main claim with the keywords.
// PubMed supports boolean queries, so AND semantics apply directly.
func BuildSearchQuery(components *model.ClaimComponents) string {
	terms := make([]string, 0, len(components.Keywords)+1)
	terms = append(terms, components.MainClaim)
	terms = append(terms, components.Keywords...)
	return strings.Join(terms, " AND ")
}

func buildEvidencePrompt(mainClaim string, articles []model.Article, journals []string) (string, error) {
	studies, err := json.Marshal(articles)
	if err != nil {
		return "", fmt.Errorf("marshal articles: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze these scientific studies regarding the claim: %s\n", mainClaim)
	fmt.Fprintf(&b, "Studies: %s\n", studies)
	if len(journals) > 0 {
		// Journals guide the analysis; they are not a hard search filter
		fmt.Fprintf(&b, "Give extra weight to studies published in: %s\n", strings.Join(journals, ", "))
	}
	b.WriteString(
		"Return a JSON object with:\n" +
			"- supporting_studies: array of studies supporting the claim\n" +
			"- conflicting_studies: array of studies with different findings\n" +
			"- methodology_scores: object mapping study IDs to quality scores (0-100)\n" +
			"- sample_sizes: object mapping study IDs to participant numbers\n" +
			"- references: array of formatted citations\n" +
			"Return only the JSON object, no other text.\n")

	return b.String(), nil
}
