package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/oracle"
	"github.com/claimlens/claimlens/internal/search"
)

// DefaultResultTTL is how long a verification result stays cached
const DefaultResultTTL = 7 * 24 * time.Hour

// Verifier orchestrates the three-stage verification pipeline behind a
// TTL-bounded result cache. Stages run strictly in order: decompose, gather
// evidence, synthesize consensus. Concurrent calls with the same cache key
// collapse into one computation.
type Verifier struct {
	decomposer  *Decomposer
	gatherer    *Gatherer
	synthesizer *Synthesizer
	store       cache.Cache
	ttl         time.Duration
	group       singleflight.Group
}

// NewVerifier wires the pipeline stages. store may be nil to disable caching.
func NewVerifier(o oracle.Oracle, sc search.Client, store cache.Cache, cfg *model.Config) *Verifier {
	maxResults := 10
	ttl := DefaultResultTTL
	if cfg != nil {
		if cfg.Search.MaxResults > 0 {
			maxResults = cfg.Search.MaxResults
		}
		if cfg.Cache.ResultTTL > 0 {
			ttl = cfg.Cache.ResultTTL
		}
	}

	return &Verifier{
		decomposer:  NewDecomposer(o),
		gatherer:    NewGatherer(o, sc, maxResults),
		synthesizer: NewSynthesizer(o),
		store:       store,
		ttl:         ttl,
	}
}

// Verify turns a claim into a verification result. A fresh cached result is
// returned as-is with no oracle or search calls. On a miss the full pipeline
// runs and the result is cached with a fresh TTL; aborted runs cache nothing.
func (v *Verifier) Verify(ctx context.Context, claim string, journals []string) (*model.VerificationResult, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrInvalidInput
	}

	key := cache.Key(claim, journals)

	if result, ok := v.lookup(key); ok {
		return result, nil
	}

	// Concurrent misses on the same key share one pipeline run. The run is
	// detached from the starting caller's context so one caller's deadline
	// cannot fail every collapsed waiter; each stage call carries its own
	// provider timeout. Callers still honor their own context while waiting.
	ch := v.group.DoChan(key, func() (any, error) {
		// Re-check: a racing run may have populated the cache already
		if result, ok := v.lookup(key); ok {
			return result, nil
		}
		return v.run(context.WithoutCancel(ctx), claim, journals, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.VerificationResult), nil
	}
}

// lookup reads a cached result; corrupt entries count as misses
func (v *Verifier) lookup(key string) (*model.VerificationResult, bool) {
	if v.store == nil {
		return nil, false
	}

	data, found := v.store.Get(key)
	if !found {
		return nil, false
	}

	var result model.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// run executes the full pipeline and caches the assembled result
func (v *Verifier) run(ctx context.Context, claim string, journals []string, key string) (*model.VerificationResult, error) {
	components, err := v.decomposer.Decompose(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("decompose claim: %w", err)
	}

	evidence, err := v.gatherer.Gather(ctx, components, journals)
	if err != nil {
		return nil, fmt.Errorf("gather evidence: %w", err)
	}

	verdict, err := v.synthesizer.Synthesize(ctx, evidence)
	if err != nil {
		return nil, fmt.Errorf("synthesize consensus: %w", err)
	}

	result := assemble(claim, components, evidence, verdict)

	if v.store != nil {
		data, err := json.Marshal(result)
		if err == nil {
			if err := v.store.Set(key, data, v.ttl); err != nil {
				// A failed cache write degrades to recomputation next time
				fmt.Fprintf(os.Stderr, "cache write failed for %s: %v\n", key, err)
			}
		}
	}

	return result, nil
}

// assemble builds the final result from the three stage outputs
func assemble(claim string, components *model.ClaimComponents, evidence *model.Evidence, verdict *model.ConsensusVerdict) *model.VerificationResult {
	return &model.VerificationResult{
		Claim:           claim,
		Status:          verdict.OverallStatus,
		ConfidenceScore: verdict.ConfidenceScore,
		Analysis: model.Analysis{
			ClaimComponents: *components,
			EvidenceQuality: model.EvidenceQuality{
				SupportingStudies:  evidence.SupportingStudies,
				ConflictingStudies: evidence.ConflictingStudies,
				ConsensusStrength:  verdict.ConsensusStrength,
				Limitations:        verdict.Limitations,
			},
			Recommendations: verdict.Recommendations,
		},
		References: evidence.References,
	}
}
